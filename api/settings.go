package api

import (
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
)

var settingsLogger = log.GetLogger("ApiSettings")

// settableKeys are the settings the API accepts writes for
var settableKeys = map[string]bool{
	"log_level": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// GetSettings handles GET /api/settings
func GetSettings(c *gin.Context) {
	settings, err := db.GetAllSettings()
	if err != nil {
		settingsLogger.Error().Err(err).Msg("failed to load settings")
		RespondInternalError(c, "failed to load settings")
		return
	}

	RespondData(c, settings)
}

type updateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSetting handles PUT /api/settings/:key
func UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	if !settableKeys[key] {
		RespondBadRequest(c, "unknown setting: "+key)
		return
	}

	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if key == "log_level" {
		if !validLogLevels[req.Value] {
			RespondBadRequest(c, "invalid log level: "+req.Value)
			return
		}
		log.SetLevel(req.Value)
	}

	if err := db.SetSetting(key, req.Value); err != nil {
		settingsLogger.Error().Err(err).Str("key", key).Msg("failed to save setting")
		RespondInternalError(c, "failed to save setting")
		return
	}

	settingsLogger.Info().Str("key", key).Str("value", req.Value).Msg("setting updated")
	RespondData(c, gin.H{"key": key, "value": req.Value})
}
