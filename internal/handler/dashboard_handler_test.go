package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/handler"
	"docflow/internal/port"
	"docflow/internal/service"
	"docflow/mocks"
)

func newDashboardHandler() (*handler.DashboardHandler, *mocks.MockDashboardService) {
	mockSvc := new(mocks.MockDashboardService)
	return handler.NewDashboardHandler(mockSvc), mockSvc
}

func strPtr(s string) *string { return &s }

func TestDashboardHandler_ListExtractions(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", query: "", wantOffset: 0, wantLimit: 20},
		{name: "explicit", query: "?offset=40&limit=10", wantOffset: 40, wantLimit: 10},
		{name: "limit above max", query: "?limit=500", wantOffset: 0, wantLimit: 20},
		{name: "negative offset", query: "?offset=-5", wantOffset: 0, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newDashboardHandler()

			records := []domain.ExtractionRecord{
				{Filename: "a.pdf", DocumentID: "a", FieldID: "total", Field: "Total", FieldValue: strPtr("10.00"), RowIndex: -1, ColumnIndex: -1},
			}
			mockSvc.On("ListExtractions", mock.Anything, tt.wantOffset, tt.wantLimit).Return(records, 57, nil)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/api/extractions"+tt.query, http.NoBody)

			h.ListExtractions(c)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, 57, resp.Meta.Total)
			assert.Equal(t, tt.wantOffset, resp.Meta.Offset)
			assert.Equal(t, tt.wantLimit, resp.Meta.Limit)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetDocumentExtractions_NotFound(t *testing.T) {
	h, mockSvc := newDashboardHandler()

	mockSvc.On("DocumentExtractions", mock.Anything, "missing").Return(nil, domain.ErrDocumentNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/extractions/missing", http.NoBody)
	c.Params = gin.Params{{Key: "document_id", Value: "missing"}}

	h.GetDocumentExtractions(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", resp.Error.Code)
}

func TestDashboardHandler_DocumentStats_Filter(t *testing.T) {
	h, mockSvc := newDashboardHandler()

	filter := port.DocumentStatsFilter{Filename: "invoice", DocumentID: "inv-1"}
	mockSvc.On("DocumentStats", mock.Anything, filter).Return([]domain.DocumentStats{
		{DocumentID: "inv-1", Filename: "invoice-1.pdf", AvgFieldAccuracy: 0.92, AvgOCRAccuracy: 0.88},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/document-stats?filename=+invoice+&document_id=inv-1", http.NoBody)

	h.DocumentStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []domain.DocumentStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.InDelta(t, 0.92, resp.Data[0].AvgFieldAccuracy, 1e-9)
	mockSvc.AssertExpectations(t)
}

func TestDashboardHandler_FieldStats(t *testing.T) {
	h, mockSvc := newDashboardHandler()

	mockSvc.On("FieldStats", mock.Anything).Return([]domain.FieldStats{
		{FieldID: "total", Field: "Total", AvgFieldAccuracy: 0.5},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/field-stats", http.NoBody)

	h.FieldStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardHandler_Summary_DBError(t *testing.T) {
	h, mockSvc := newDashboardHandler()

	mockSvc.On("Summary", mock.Anything).Return(nil, errors.New("connection refused"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/stats", http.NoBody)

	h.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDashboardHandler_Export(t *testing.T) {
	tests := []struct {
		name            string
		query           string
		format          service.ExportFormat
		wantContentType string
		wantExt         string
	}{
		{
			name:            "default xlsx",
			query:           "",
			format:          service.ExportXLSX,
			wantContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			wantExt:         ".xlsx",
		},
		{
			name:            "csv",
			query:           "?format=CSV",
			format:          service.ExportCSV,
			wantContentType: "text/csv; charset=utf-8",
			wantExt:         ".csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newDashboardHandler()

			mockSvc.On("Export", mock.Anything, tt.format, mock.Anything).
				Run(func(args mock.Arguments) {
					_, _ = io.WriteString(args.Get(2).(io.Writer), "payload")
				}).
				Return(nil)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/api/extractions/export"+tt.query, http.NoBody)

			h.Export(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantContentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"extractions_")
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.wantExt+"\"")
			assert.Equal(t, "payload", w.Body.String())
		})
	}
}

func TestDashboardHandler_Export_UnknownFormat(t *testing.T) {
	h, mockSvc := newDashboardHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/extractions/export?format=pdf", http.NoBody)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
}
