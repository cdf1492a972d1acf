package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// SettingsHandler handles processing settings and remote resource discovery.
type SettingsHandler struct {
	settingsService  service.SettingsService
	discoveryService service.DiscoveryService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService, discoveryService service.DiscoveryService) *SettingsHandler {
	return &SettingsHandler{
		settingsService:  settingsService,
		discoveryService: discoveryService,
	}
}

// GetSettings handles GET /api/discovery/settings
// @Summary Get processing settings
// @Tags settings
// @Produce json
// @Success 200 {object} Response{data=domain.ProcessingConfig} "Current settings"
// @Failure 500 {object} ErrorResponseBody "Settings could not be read"
// @Router /discovery/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	cfg, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cfg)
}

// UpdateSettings handles POST /api/discovery/settings
// @Summary Replace processing settings
// @Description Replaces the settings used by subsequent batches. Batches already running keep the settings they started with.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body domain.ProcessingConfig true "New settings"
// @Success 200 {object} Response{data=domain.ProcessingConfig} "Saved settings"
// @Failure 400 {object} ErrorResponseBody "Invalid settings"
// @Failure 401 {object} ErrorResponseBody "Missing or invalid API key"
// @Security APIKeyAuth
// @Router /discovery/settings [post]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var cfg domain.ProcessingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	saved, err := h.settingsService.Update(c.Request.Context(), &cfg)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, saved)
}

// ListProjects handles GET /api/discovery/projects
// @Summary List remote projects
// @Tags discovery
// @Produce json
// @Success 200 {object} Response{data=[]domain.Project} "Projects"
// @Failure 404 {object} ErrorResponseBody "No projects"
// @Failure 502 {object} ErrorResponseBody "Remote service error"
// @Router /discovery/projects [get]
func (h *SettingsHandler) ListProjects(c *gin.Context) {
	projects, err := h.discoveryService.Projects(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, projects)
}

// ListClassifiers handles GET /api/discovery/project/:project_id/classifiers
// @Summary List classifiers of a project
// @Tags discovery
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} Response{data=[]domain.ClassifierInfo} "Classifiers"
// @Failure 404 {object} ErrorResponseBody "No classifiers"
// @Failure 502 {object} ErrorResponseBody "Remote service error"
// @Router /discovery/project/{project_id}/classifiers [get]
func (h *SettingsHandler) ListClassifiers(c *gin.Context) {
	classifiers, err := h.discoveryService.Classifiers(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, classifiers)
}

// ListExtractors handles GET /api/discovery/project/:project_id/extractors
// @Summary List extractors of a project
// @Tags discovery
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} Response{data=[]domain.ExtractorInfo} "Extractors"
// @Failure 404 {object} ErrorResponseBody "No extractors"
// @Failure 502 {object} ErrorResponseBody "Remote service error"
// @Router /discovery/project/{project_id}/extractors [get]
func (h *SettingsHandler) ListExtractors(c *gin.Context) {
	extractors, err := h.discoveryService.Extractors(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, extractors)
}
