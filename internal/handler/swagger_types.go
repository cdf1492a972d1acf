package handler

import (
	"docflow/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ProcessRequest names the uploaded documents to process. Empty means all.
type ProcessRequest struct {
	Files []string `json:"files" example:"invoice-001.pdf,receipt-17.png"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// UploadResult represents the result of a single file in an upload request.
type UploadResult struct {
	Filename string           `json:"filename" example:"invoice-001.pdf"`
	File     *domain.FileInfo `json:"file,omitempty"`
	Error    *APIError        `json:"error,omitempty"`
}

// FileListResponse lists uploaded documents.
type FileListResponse struct {
	Files []domain.FileInfo `json:"files"`
}

// ProcessResponse lists the document IDs whose runs were dispatched.
type ProcessResponse struct {
	DocumentIDs []string `json:"document_ids" example:"invoice-001,receipt-17"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
