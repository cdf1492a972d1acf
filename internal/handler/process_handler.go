package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// ProcessHandler handles file upload and processing endpoints.
type ProcessHandler struct {
	processService service.ProcessService
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(processService service.ProcessService) *ProcessHandler {
	return &ProcessHandler{processService: processService}
}

// Upload handles POST /api/process-docs/upload
// @Summary Upload documents
// @Description Upload one or more documents (PDF, JPG, PNG or TIFF) under the "files" form field.
// @Tags process
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Documents to upload"
// @Success 201 {object} Response{data=[]UploadResult} "Per-file upload results"
// @Failure 400 {object} ErrorResponseBody "No files in request"
// @Failure 401 {object} ErrorResponseBody "Missing or invalid API key"
// @Security APIKeyAuth
// @Router /process-docs/upload [post]
func (h *ProcessHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "expected a multipart form with a files field")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "no files uploaded")
		return
	}

	results := make([]UploadResult, 0, len(headers))
	var lastErr error
	for _, header := range headers {
		result := UploadResult{Filename: header.Filename}
		info, err := h.uploadOne(c.Request.Context(), header)
		if err != nil {
			_, code, msg := MapDomainError(err)
			result.Error = &APIError{Code: code, Message: msg}
			lastErr = err
			log.Warn().Err(err).Str("filename", header.Filename).Msg("processHandler.Upload: file rejected")
		} else {
			result.File = info
		}
		results = append(results, result)
	}

	// A single rejected file is reported as a plain error response.
	if len(headers) == 1 && lastErr != nil {
		HandleError(c, lastErr)
		return
	}
	RespondCreated(c, results)
}

func (h *ProcessHandler) uploadOne(ctx context.Context, header *multipart.FileHeader) (*domain.FileInfo, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	return h.processService.Upload(ctx, service.FileUploadInput{
		Filename: header.Filename,
		Size:     header.Size,
		File:     file,
	})
}

// ListFiles handles GET /api/process-docs/files
// @Summary List uploaded documents
// @Description List uploaded documents with their current pipeline stage.
// @Tags process
// @Produce json
// @Success 200 {object} Response{data=FileListResponse} "Uploaded documents"
// @Failure 500 {object} ErrorResponseBody "Storage error"
// @Router /process-docs/files [get]
func (h *ProcessHandler) ListFiles(c *gin.Context) {
	files, err := h.processService.ListFiles(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, FileListResponse{Files: files})
}

// Process handles POST /api/process-docs/process
// @Summary Process documents
// @Description Start pipeline runs for the named documents, or for every uploaded document when files is empty. Returns immediately; progress is reported on /api/process-docs/status and /api/process-docs/ws.
// @Tags process
// @Accept json
// @Produce json
// @Param request body ProcessRequest false "Documents to process"
// @Success 202 {object} Response{data=ProcessResponse} "Runs dispatched"
// @Failure 400 {object} ErrorResponseBody "No documents"
// @Failure 404 {object} ErrorResponseBody "Unknown document"
// @Failure 503 {object} ErrorResponseBody "Shutting down"
// @Security APIKeyAuth
// @Router /process-docs/process [post]
func (h *ProcessHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ids, err := h.processService.ProcessBatch(c.Request.Context(), req.Files)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, ProcessResponse{DocumentIDs: ids})
}

// Status handles GET /api/process-docs/status
// @Summary Pipeline status
// @Description Current pipeline stage of every submitted document.
// @Tags process
// @Produce json
// @Success 200 {object} Response{data=domain.StatusMessage} "Status snapshot"
// @Router /process-docs/status [get]
func (h *ProcessHandler) Status(c *gin.Context) {
	RespondOK(c, h.processService.Status())
}
