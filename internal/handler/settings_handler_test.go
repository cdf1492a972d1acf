package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docflow/internal/capability/remote"
	"docflow/internal/domain"
	"docflow/internal/handler"
	"docflow/mocks"
)

func newSettingsHandler() (*handler.SettingsHandler, *mocks.MockSettingsService, *mocks.MockDiscoveryService) {
	settingsSvc := new(mocks.MockSettingsService)
	discoverySvc := new(mocks.MockDiscoveryService)
	return handler.NewSettingsHandler(settingsSvc, discoverySvc), settingsSvc, discoverySvc
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	h, settingsSvc, _ := newSettingsHandler()

	cfg := &domain.ProcessingConfig{
		PerformClassification: true,
		Project: domain.ProjectSettings{
			ID:         "p-1",
			Name:       "Invoices",
			Classifier: &domain.ClassifierRef{ID: "ml-classification", Name: "Default"},
		},
	}
	settingsSvc.On("Get", mock.Anything).Return(cfg, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/settings", http.NoBody)

	h.GetSettings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data domain.ProcessingConfig `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "p-1", resp.Data.Project.ID)
	assert.Equal(t, "ml-classification", resp.Data.ClassifierID())
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	h, settingsSvc, _ := newSettingsHandler()

	body := `{
		"perform_extraction": true,
		"project": {
			"id": "p-1",
			"name": "Invoices",
			"extractor_ids": {"invoices": {"id": "generative_extractor", "name": "Generative"}}
		}
	}`

	settingsSvc.On("Update", mock.Anything, mock.MatchedBy(func(cfg *domain.ProcessingConfig) bool {
		ref, ok := cfg.Project.ExtractorsByDocumentType.Get("invoices")
		return cfg.PerformExtraction && cfg.Project.ID == "p-1" && ok && ref.ID == "generative_extractor"
	})).Return(&domain.ProcessingConfig{PerformExtraction: true, Project: domain.ProjectSettings{ID: "p-1"}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateSettings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	settingsSvc.AssertExpectations(t)
}

func TestSettingsHandler_UpdateSettings_Invalid(t *testing.T) {
	h, settingsSvc, _ := newSettingsHandler()

	settingsSvc.On("Update", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: project.id is required", domain.ErrInvalidSettings))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`{"perform_extraction":true}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateSettings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_SETTINGS", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "project.id")
}

func TestSettingsHandler_UpdateSettings_MalformedBody(t *testing.T) {
	h, settingsSvc, _ := newSettingsHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`not json`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateSettings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	settingsSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSettingsHandler_ListProjects(t *testing.T) {
	h, _, discoverySvc := newSettingsHandler()

	discoverySvc.On("Projects", mock.Anything).Return([]domain.Project{{ID: "p-1", Name: "Invoices"}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/projects", http.NoBody)

	h.ListProjects(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []domain.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Invoices", resp.Data[0].Name)
}

func TestSettingsHandler_ListProjects_UpstreamError(t *testing.T) {
	h, _, discoverySvc := newSettingsHandler()

	discoverySvc.On("Projects", mock.Anything).
		Return(nil, fmt.Errorf("listing projects: %w", &remote.APIError{StatusCode: http.StatusUnauthorized}))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/projects", http.NoBody)

	h.ListProjects(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "UPSTREAM_ERROR", resp.Error.Code)
}

func TestSettingsHandler_ListClassifiers_Empty(t *testing.T) {
	h, _, discoverySvc := newSettingsHandler()

	discoverySvc.On("Classifiers", mock.Anything, "p-1").
		Return(nil, fmt.Errorf("classifiers for project p-1: %w", domain.ErrNotFound))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/projects/p-1/classifiers", http.NoBody)
	c.Params = gin.Params{{Key: "project_id", Value: "p-1"}}

	h.ListClassifiers(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestSettingsHandler_ListExtractors(t *testing.T) {
	h, _, discoverySvc := newSettingsHandler()

	discoverySvc.On("Extractors", mock.Anything, "p-1").Return([]domain.ExtractorInfo{
		{ID: "invoices", Name: "Invoices", DocumentTypeID: "invoices"},
		{ID: "receipts", Name: "Receipts", DocumentTypeID: "receipts"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/projects/p-1/extractors", http.NoBody)
	c.Params = gin.Params{{Key: "project_id", Value: "p-1"}}

	h.ListExtractors(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []domain.ExtractorInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	discoverySvc.AssertExpectations(t)
}
