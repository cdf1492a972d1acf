package port

import (
	"context"

	"docflow/internal/domain"
)

// Digitizer ingests a stored file into the remote platform and returns the
// platform's document handle.
type Digitizer interface {
	Digitize(ctx context.Context, path string) (string, error)
}

// Classifier assigns a document type to a digitized document.
type Classifier interface {
	Classify(ctx context.Context, path, digitizedID, classifierID string, prompts domain.Prompts, validate bool) (string, error)
}

// Extractor produces structured field values for a digitized document.
type Extractor interface {
	Extract(ctx context.Context, extractorID, digitizedID string, prompts domain.Prompts) (*domain.ExtractionResult, error)
}

// Validator produces corrected values for a prior extraction result.
type Validator interface {
	Validate(ctx context.Context, extractorID, digitizedID string, result *domain.ExtractionResult, prompts domain.Prompts) (*domain.ValidationResult, error)
}

// Discovery lists the remote resources a processing configuration can refer to.
type Discovery interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListClassifiers(ctx context.Context, projectID string) ([]domain.ClassifierInfo, error)
	ListExtractors(ctx context.Context, projectID string) ([]domain.ExtractorInfo, error)
}
