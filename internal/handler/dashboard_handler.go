package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docflow/internal/export"
	"docflow/internal/port"
	"docflow/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// DashboardHandler handles read-only endpoints over persisted extraction results.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// ListExtractions handles GET /api/dashboard/extractions
// @Summary List extraction records
// @Tags dashboard
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.ExtractionRecord,meta=PagMeta} "Extraction records"
// @Failure 500 {object} ErrorResponseBody "Database error"
// @Router /dashboard/extractions [get]
func (h *DashboardHandler) ListExtractions(c *gin.Context) {
	offset, limit := parsePagination(c)

	records, total, err := h.dashboardService.ListExtractions(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetDocumentExtractions handles GET /api/dashboard/extractions/:document_id
// @Summary Extraction records of one document
// @Tags dashboard
// @Produce json
// @Param document_id path string true "Document ID"
// @Success 200 {object} Response{data=[]domain.ExtractionRecord} "Extraction records"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Router /dashboard/extractions/{document_id} [get]
func (h *DashboardHandler) GetDocumentExtractions(c *gin.Context) {
	records, err := h.dashboardService.DocumentExtractions(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, records)
}

// DocumentStats handles GET /api/dashboard/document-stats
// @Summary Per-document accuracy
// @Tags dashboard
// @Produce json
// @Param filename query string false "Filter by filename substring"
// @Param document_id query string false "Filter by document ID substring"
// @Success 200 {object} Response{data=[]domain.DocumentStats} "Document statistics"
// @Router /dashboard/document-stats [get]
func (h *DashboardHandler) DocumentStats(c *gin.Context) {
	filter := port.DocumentStatsFilter{
		Filename:   strings.TrimSpace(c.Query("filename")),
		DocumentID: strings.TrimSpace(c.Query("document_id")),
	}

	stats, err := h.dashboardService.DocumentStats(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// FieldStats handles GET /api/dashboard/field-stats
// @Summary Per-field accuracy
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=[]domain.FieldStats} "Field statistics"
// @Router /dashboard/field-stats [get]
func (h *DashboardHandler) FieldStats(c *gin.Context) {
	stats, err := h.dashboardService.FieldStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// Summary handles GET /api/dashboard/stats
// @Summary Extraction totals
// @Tags dashboard
// @Produce json
// @Success 200 {object} Response{data=domain.ExtractionSummary} "Totals"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// Export handles GET /api/dashboard/extractions/export
// @Summary Export extraction records
// @Description Download every extraction record as an Excel workbook (default) or CSV.
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Router /dashboard/extractions/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(service.ExportXLSX))))

	var contentType string
	switch format {
	case service.ExportXLSX:
		contentType = contentTypeXLSX
	case service.ExportCSV:
		contentType = contentTypeCSV
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		return
	}

	var buf bytes.Buffer
	if err := h.dashboardService.Export(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("extractions", string(format), time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
