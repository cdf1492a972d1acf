package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docflow/internal/handler"
	"docflow/internal/middleware"
)

// Options configures cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	APIKeyHash     string
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	processH *handler.ProcessHandler,
	streamH *handler.StatusStreamHandler,
	settingsH *handler.SettingsHandler,
	dashboardH *handler.DashboardHandler,
	healthH *handler.HealthHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	requireKey := middleware.RequireAPIKey(opts.APIKeyHash)

	// Upload, batch trigger and status
	process := api.Group("/process-docs")
	process.POST("/upload", requireKey, processH.Upload)
	process.GET("/files", processH.ListFiles)
	process.POST("/process", requireKey, processH.Process)
	process.GET("/status", processH.Status)
	process.GET("/ws", requireKey, streamH.Stream)

	// Settings and remote resource discovery
	discovery := api.Group("/discovery")
	discovery.GET("/settings", settingsH.GetSettings)
	discovery.POST("/settings", requireKey, settingsH.UpdateSettings)
	discovery.GET("/projects", settingsH.ListProjects)
	discovery.GET("/project/:project_id/classifiers", settingsH.ListClassifiers)
	discovery.GET("/project/:project_id/extractors", settingsH.ListExtractors)

	// Persisted results
	dashboard := api.Group("/dashboard")
	dashboard.GET("/extractions", dashboardH.ListExtractions)
	dashboard.GET("/extractions/export", dashboardH.Export)
	dashboard.GET("/extractions/:document_id", dashboardH.GetDocumentExtractions)
	dashboard.GET("/document-stats", dashboardH.DocumentStats)
	dashboard.GET("/field-stats", dashboardH.FieldStats)
	dashboard.GET("/stats", dashboardH.Summary)

	return r
}
