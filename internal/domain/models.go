package domain

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"
)

// Document is a file submitted for processing. It is transient: created at
// submission time and never persisted by the orchestrator.
type Document struct {
	ID       string `json:"document_id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// NewDocument derives the document identifier from the filename without its extension.
func NewDocument(filename, path string) Document {
	return Document{
		ID:       DocumentIDFromFilename(filename),
		Filename: filename,
		Path:     path,
	}
}

// DocumentIDFromFilename strips directory and extension from a filename.
func DocumentIDFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileInfo describes an uploaded file together with its current pipeline stage.
type FileInfo struct {
	Filename     string      `json:"filename"`
	DocumentID   string      `json:"document_id"`
	Path         string      `json:"path"`
	Size         int64       `json:"size"`
	LastModified time.Time   `json:"last_modified"`
	Status       StageStatus `json:"status"`
}

// ClassifierRef identifies the classifier configured for a project.
type ClassifierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExtractorRef identifies an extractor configured for a document type.
type ExtractorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectSettings holds the remote project selected for processing.
type ProjectSettings struct {
	ID                       string         `json:"id"`
	Name                     string         `json:"name"`
	Classifier               *ClassifierRef `json:"classifier_id"`
	ExtractorsByDocumentType ExtractorMap   `json:"extractor_ids"`
}

// ProcessingConfig is the snapshot of settings a pipeline run executes against.
// Runs only ever read it; callers hand each submission its own Clone.
type ProcessingConfig struct {
	ValidateClassification  bool            `json:"validate_classification"`
	ValidateExtraction      bool            `json:"validate_extraction"`
	ValidateExtractionLater bool            `json:"validate_extraction_later"`
	PerformClassification   bool            `json:"perform_classification"`
	PerformExtraction       bool            `json:"perform_extraction"`
	Project                 ProjectSettings `json:"project"`
}

// Clone returns a deep copy of c.
func (c *ProcessingConfig) Clone() *ProcessingConfig {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Project.Classifier != nil {
		classifier := *c.Project.Classifier
		cp.Project.Classifier = &classifier
	}
	cp.Project.ExtractorsByDocumentType = c.Project.ExtractorsByDocumentType.Clone()
	return &cp
}

// ClassifierID returns the configured classifier id, or "" when none is set.
func (c *ProcessingConfig) ClassifierID() string {
	if c.Project.Classifier == nil {
		return ""
	}
	return c.Project.Classifier.ID
}

// Prompts is an opaque prompt bundle forwarded to generative capabilities.
type Prompts = json.RawMessage

// ExtractedField is one extracted (or validated) value of a document field.
type ExtractedField struct {
	FieldID           string   `json:"field_id"`
	FieldName         string   `json:"field"`
	IsMissing         bool     `json:"is_missing"`
	Value             string   `json:"field_value"`
	UnformattedValue  string   `json:"field_unformatted_value"`
	Confidence        *float64 `json:"confidence"`
	OCRConfidence     *float64 `json:"ocr_confidence"`
	OperatorConfirmed bool     `json:"operator_confirmed"`
	RowIndex          int      `json:"row_index"`
	ColumnIndex       int      `json:"column_index"`
}

// ExtractionResult is the payload returned by an Extractor. The orchestrator
// passes it through to the result sink without interpreting it.
type ExtractionResult struct {
	OperationID    string           `json:"operation_id"`
	DocumentTypeID string           `json:"document_type_id"`
	Fields         []ExtractedField `json:"fields"`
	Raw            json.RawMessage  `json:"raw"`
}

// ValidationResult is the payload returned by a Validator for a prior extraction.
type ValidationResult struct {
	OperationID string           `json:"operation_id"`
	Fields      []ExtractedField `json:"fields"`
	Raw         json.RawMessage  `json:"raw"`
}

// ExtractionRecord is one persisted field value of a processed document.
type ExtractionRecord struct {
	Filename              string    `db:"filename" json:"filename"`
	DocumentID            string    `db:"document_id" json:"document_id"`
	DocumentTypeID        string    `db:"document_type_id" json:"document_type_id"`
	FieldID               string    `db:"field_id" json:"field_id"`
	Field                 string    `db:"field" json:"field"`
	IsMissing             bool      `db:"is_missing" json:"is_missing"`
	FieldValue            *string   `db:"field_value" json:"field_value"`
	FieldUnformattedValue *string   `db:"field_unformatted_value" json:"field_unformatted_value"`
	ValidatedFieldValue   *string   `db:"validated_field_value" json:"validated_field_value"`
	IsCorrect             bool      `db:"is_correct" json:"is_correct"`
	Confidence            *float64  `db:"confidence" json:"confidence"`
	OCRConfidence         *float64  `db:"ocr_confidence" json:"ocr_confidence"`
	OperatorConfirmed     *bool     `db:"operator_confirmed" json:"operator_confirmed"`
	RowIndex              int       `db:"row_index" json:"row_index"`
	ColumnIndex           int       `db:"column_index" json:"column_index"`
	Timestamp             time.Time `db:"timestamp" json:"timestamp"`
}

// DocumentStats holds average accuracies for one processed document.
type DocumentStats struct {
	DocumentID       string  `db:"document_id" json:"document_id"`
	Filename         string  `db:"filename" json:"filename"`
	AvgFieldAccuracy float64 `db:"avg_field_accuracy" json:"avg_field_accuracy"`
	AvgOCRAccuracy   float64 `db:"avg_ocr_accuracy" json:"avg_ocr_accuracy"`
}

// FieldStats holds average accuracies for one field across documents.
type FieldStats struct {
	FieldID                  string  `db:"field_id" json:"field_id"`
	Field                    string  `db:"field" json:"field"`
	AvgFieldAccuracy         float64 `db:"avg_field_accuracy" json:"avg_field_accuracy"`
	AvgDocumentOCRConfidence float64 `db:"avg_document_ocr_confidence" json:"avg_document_ocr_confidence"`
}

// ExtractionSummary holds overall extraction counters.
type ExtractionSummary struct {
	TotalDocuments int `db:"total_documents" json:"total_documents"`
	TotalFields    int `db:"total_fields" json:"total_fields"`
	CorrectFields  int `db:"correct_fields" json:"correct_fields"`
}

// Project is a remote project available for processing.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// ClassifierInfo is a classifier published in a remote project.
type ClassifierInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Status          string   `json:"status"`
	DocumentTypeIDs []string `json:"documentTypeIds"`
}

// ExtractorInfo is an extractor published in a remote project.
type ExtractorInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	DocumentTypeID string `json:"documentTypeId"`
}

// StatusMessage is pushed to connected status observers.
type StatusMessage struct {
	Documents map[string]StageStatus `json:"documents"`
}
