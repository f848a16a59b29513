package api

import (
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/scan"
	"github.com/promptdeck/promptdeck/syncer"
)

// Deps holds the services handlers depend on
type Deps struct {
	ScanCfg scan.Config
	Syncer  *syncer.Job

	// SearchNudge asks the search sync worker to push queued documents
	// as soon as possible. May be nil when search is disabled.
	SearchNudge func()
}

var deps Deps

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, d Deps) {
	deps = d

	// API group
	api := r.Group("/api")

	// Sync routes
	api.GET("/sync/check", CheckSync)
	api.POST("/sync/reseed", TriggerReseed)

	// File routes - static routes first, wildcard routes under /record
	api.GET("/files", ListTrackedFiles)
	api.GET("/files/diff", GetFileDrift)
	api.GET("/files/record/*path", GetFileRecord)

	// Master prompt routes
	api.GET("/master-prompts", ListMasterPromptRecords)
	api.GET("/master-prompts/record/*path", GetMasterPromptRecord)

	// Search
	api.GET("/search", Search)

	// Generation
	api.POST("/generate", Generate)

	// Stats and settings
	api.GET("/stats", GetStats)
	api.GET("/settings", GetSettings)
	api.PUT("/settings/:key", UpdateSetting)

	// Notifications (SSE)
	api.GET("/notifications/stream", NotificationStream)

	// Raw file access (read and edit prompt/code files on disk)
	r.GET("/raw/*path", GetRawFile)
	r.PUT("/raw/*path", PutRawFile)
}
