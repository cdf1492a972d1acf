package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
)

// Validation actions are created in the remote action center with these settings.
const (
	validationPriority = "Medium"
	validationFolder   = "Shared"
	validationBucket   = "du_storage_bucket"
)

// Classifier assigns document types with a remote classifier.
type Classifier struct {
	client *Client
}

// NewClassifier creates a Classifier.
func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

type classificationRequest struct {
	DocumentID string          `json:"documentId"`
	Prompts    json.RawMessage `json:"prompts,omitempty"`
}

type classificationResult struct {
	DocumentTypeID string  `json:"documentTypeId"`
	Confidence     float64 `json:"confidence"`
}

type classificationOutput struct {
	ClassificationResults []json.RawMessage `json:"classificationResults"`
}

type classificationValidationRequest struct {
	DocumentID                string            `json:"documentId"`
	ActionTitle               string            `json:"actionTitle"`
	ActionPriority            string            `json:"actionPriority"`
	ActionCatalog             string            `json:"actionCatalog"`
	ActionFolder              string            `json:"actionFolder"`
	StorageBucketName         string            `json:"storageBucketName"`
	AllowChangeOfDocumentType bool              `json:"allowChangeOfDocumentType"`
	ClassificationResults     []json.RawMessage `json:"classificationResults"`
}

type classificationValidationOutput struct {
	ValidatedClassificationResults []json.RawMessage `json:"validatedClassificationResults"`
}

// Classify returns the most confident document type for digitizedID. With
// validate set, the result is routed through a human validation action and
// the validated type is returned instead.
func (c *Classifier) Classify(ctx context.Context, documentPath, digitizedID, classifierID string, prompts domain.Prompts, validate bool) (string, error) {
	projectID := domain.ProjectIDFromContext(ctx)

	var started startResponse
	if err := c.client.doJSON(ctx, http.MethodPost,
		c.client.endpoint(projectID, "classifiers", classifierID, "classification", "start"),
		classificationRequest{DocumentID: digitizedID, Prompts: json.RawMessage(prompts)},
		&started); err != nil {
		return "", fmt.Errorf("starting classification: %w", err)
	}

	raw, err := c.client.poll(ctx, "classification", started.OperationID,
		c.client.endpoint(projectID, "classifiers", classifierID, "classification", "result", started.OperationID))
	if err != nil {
		return "", err
	}

	var out classificationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decoding classification result: %w", err)
	}
	docType, err := bestDocumentType(out.ClassificationResults)
	if err != nil {
		return "", err
	}
	if !validate {
		return docType, nil
	}

	validated, err := c.validate(ctx, projectID, documentPath, digitizedID, classifierID, out.ClassificationResults)
	if err != nil {
		return "", err
	}
	log.Debug().Str("classified", docType).Str("validated", validated).Msg("classifier.Classify: classification validated")
	return validated, nil
}

func (c *Classifier) validate(ctx context.Context, projectID, documentPath, digitizedID, classifierID string, results []json.RawMessage) (string, error) {
	req := classificationValidationRequest{
		DocumentID:                digitizedID,
		ActionTitle:               "Validate classification - " + path.Base(documentPath),
		ActionPriority:            validationPriority,
		ActionCatalog:             c.client.catalog,
		ActionFolder:              validationFolder,
		StorageBucketName:         validationBucket,
		AllowChangeOfDocumentType: true,
		ClassificationResults:     results,
	}

	var started startResponse
	if err := c.client.doJSON(ctx, http.MethodPost,
		c.client.endpoint(projectID, "classifiers", classifierID, "validation", "start"),
		req, &started); err != nil {
		return "", fmt.Errorf("starting classification validation: %w", err)
	}

	raw, err := c.client.poll(ctx, "classification validation", started.OperationID,
		c.client.endpoint(projectID, "classifiers", classifierID, "validation", "result", started.OperationID))
	if err != nil {
		return "", err
	}

	var out classificationValidationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decoding classification validation result: %w", err)
	}
	return bestDocumentType(out.ValidatedClassificationResults)
}

// bestDocumentType picks the highest-confidence result; the first wins ties.
func bestDocumentType(results []json.RawMessage) (string, error) {
	best := classificationResult{Confidence: -1}
	for _, r := range results {
		var cr classificationResult
		if err := json.Unmarshal(r, &cr); err != nil {
			return "", fmt.Errorf("decoding classification entry: %w", err)
		}
		if cr.DocumentTypeID != "" && cr.Confidence > best.Confidence {
			best = cr
		}
	}
	if best.DocumentTypeID == "" {
		return "", errors.New("classifier returned no document type")
	}
	return best.DocumentTypeID, nil
}
