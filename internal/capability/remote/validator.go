package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"docflow/internal/domain"
)

// Validator routes extraction results through a remote human validation action.
type Validator struct {
	client *Client
}

// NewValidator creates a Validator.
func NewValidator(client *Client) *Validator {
	return &Validator{client: client}
}

type extractionValidationRequest struct {
	DocumentID        string          `json:"documentId"`
	ActionTitle       string          `json:"actionTitle"`
	ActionPriority    string          `json:"actionPriority"`
	ActionCatalog     string          `json:"actionCatalog"`
	ActionFolder      string          `json:"actionFolder"`
	StorageBucketName string          `json:"storageBucketName"`
	ExtractionResult  json.RawMessage `json:"extractionResult"`
	Prompts           json.RawMessage `json:"prompts,omitempty"`
}

type extractionValidationOutput struct {
	ValidatedExtractionResults json.RawMessage `json:"validatedExtractionResults"`
}

func (v *Validator) Validate(ctx context.Context, extractorID, digitizedID string, result *domain.ExtractionResult, prompts domain.Prompts) (*domain.ValidationResult, error) {
	if result == nil || len(result.Raw) == 0 {
		return nil, errors.New("no extraction result to validate")
	}
	projectID := domain.ProjectIDFromContext(ctx)

	req := extractionValidationRequest{
		DocumentID:        digitizedID,
		ActionTitle:       "Validate extraction - " + digitizedID,
		ActionPriority:    validationPriority,
		ActionCatalog:     v.client.catalog,
		ActionFolder:      validationFolder,
		StorageBucketName: validationBucket,
		ExtractionResult:  result.Raw,
		Prompts:           json.RawMessage(prompts),
	}

	var started startResponse
	if err := v.client.doJSON(ctx, http.MethodPost,
		v.client.endpoint(projectID, "extractors", extractorID, "validation", "start"),
		req, &started); err != nil {
		return nil, fmt.Errorf("starting extraction validation: %w", err)
	}

	raw, err := v.client.poll(ctx, "extraction validation", started.OperationID,
		v.client.endpoint(projectID, "extractors", extractorID, "validation", "result", started.OperationID))
	if err != nil {
		return nil, err
	}

	var out extractionValidationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding validation output: %w", err)
	}
	_, fields, err := decodeExtraction(out.ValidatedExtractionResults)
	if err != nil {
		return nil, err
	}

	return &domain.ValidationResult{
		OperationID: started.OperationID,
		Fields:      fields,
		Raw:         out.ValidatedExtractionResults,
	}, nil
}
