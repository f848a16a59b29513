package api

import (
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/notifications"
)

var statsLogger = log.GetLogger("ApiStats")

// GetStats handles GET /api/stats
// Returns record counts for the dashboard overview.
func GetStats(c *gin.Context) {
	stats, err := db.GetFileStats()
	if err != nil {
		statsLogger.Error().Err(err).Msg("failed to compute stats")
		RespondInternalError(c, "failed to compute stats")
		return
	}

	stats["sseSubscribers"] = notifications.GetService().SubscriberCount()

	RespondData(c, stats)
}
