package api

import (
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/notifications"
)

var syncLogger = log.GetLogger("ApiSync")

// CheckSync handles GET /api/sync/check
// Compares the project tree on disk against persisted records without
// modifying anything.
func CheckSync(c *gin.Context) {
	report, err := deps.Syncer.Check(c.Request.Context())
	if err != nil {
		syncLogger.Error().Err(err).Msg("sync check failed")
		RespondInternalError(c, "sync check failed: "+err.Error())
		return
	}

	RespondData(c, report)
}

// TriggerReseed handles POST /api/sync/reseed
// Re-scans the project and rebuilds all file, section, prompt, and
// master prompt records from disk.
func TriggerReseed(c *gin.Context) {
	report, err := deps.Syncer.Reseed(c.Request.Context())
	if err != nil {
		syncLogger.Error().Err(err).Msg("reseed failed")
		RespondInternalError(c, "reseed failed: "+err.Error())
		return
	}

	syncLogger.Info().
		Str("reportId", report.ID).
		Int("masters", report.Masters).
		Int("pages", report.Pages).
		Int("codeFiles", report.CodeFiles).
		Int("failures", report.Failures).
		Int64("durationMs", report.DurationMs).
		Msg("reseed complete")

	// Queued search documents can be pushed right away
	if deps.SearchNudge != nil {
		deps.SearchNudge()
	}

	notifications.GetService().NotifyReseedComplete(gin.H{
		"reportId": report.ID,
		"pages":    report.Pages,
		"failures": report.Failures,
	})

	RespondData(c, report)
}
