package port

import (
	"context"

	"docflow/internal/domain"
)

// ResultSink durably records pipeline output. A non-nil validation is always
// written together with the extraction it validates.
type ResultSink interface {
	Write(ctx context.Context, documentPath string, extraction *domain.ExtractionResult, validation *domain.ValidationResult) error
}
