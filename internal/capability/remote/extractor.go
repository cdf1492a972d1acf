package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"docflow/internal/domain"
)

// Extractor runs remote extractors over digitized documents.
type Extractor struct {
	client *Client
}

// NewExtractor creates an Extractor.
func NewExtractor(client *Client) *Extractor {
	return &Extractor{client: client}
}

type extractionRequest struct {
	DocumentID string          `json:"documentId"`
	Prompts    json.RawMessage `json:"prompts,omitempty"`
}

type extractionOutput struct {
	ExtractionResult json.RawMessage `json:"extractionResult"`
}

func (e *Extractor) Extract(ctx context.Context, extractorID, digitizedID string, prompts domain.Prompts) (*domain.ExtractionResult, error) {
	projectID := domain.ProjectIDFromContext(ctx)

	var started startResponse
	if err := e.client.doJSON(ctx, http.MethodPost,
		e.client.endpoint(projectID, "extractors", extractorID, "extraction", "start"),
		extractionRequest{DocumentID: digitizedID, Prompts: json.RawMessage(prompts)},
		&started); err != nil {
		return nil, fmt.Errorf("starting extraction: %w", err)
	}

	raw, err := e.client.poll(ctx, "extraction", started.OperationID,
		e.client.endpoint(projectID, "extractors", extractorID, "extraction", "result", started.OperationID))
	if err != nil {
		return nil, err
	}

	var out extractionOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding extraction output: %w", err)
	}
	docType, fields, err := decodeExtraction(out.ExtractionResult)
	if err != nil {
		return nil, err
	}

	return &domain.ExtractionResult{
		OperationID:    started.OperationID,
		DocumentTypeID: docType,
		Fields:         fields,
		Raw:            out.ExtractionResult,
	}, nil
}
