package api

import (
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
)

var masterLogger = log.GetLogger("ApiMaster")

// ListMasterPromptRecords handles GET /api/master-prompts
func ListMasterPromptRecords(c *gin.Context) {
	masters, err := db.ListMasterPrompts()
	if err != nil {
		masterLogger.Error().Err(err).Msg("failed to list master prompts")
		RespondInternalError(c, "failed to list master prompts")
		return
	}

	RespondList(c, masters, nil)
}

// GetMasterPromptRecord handles GET /api/master-prompts/record/*path
func GetMasterPromptRecord(c *gin.Context) {
	relPath, ok := cleanRelPath(c.Param("path"))
	if !ok {
		RespondBadRequest(c, "invalid path")
		return
	}

	master, err := db.GetMasterPrompt(relPath)
	if err != nil {
		masterLogger.Error().Err(err).Str("path", relPath).Msg("failed to load master prompt")
		RespondInternalError(c, "failed to load master prompt")
		return
	}
	if master == nil {
		RespondNotFound(c, "no master prompt for path: "+relPath)
		return
	}

	RespondData(c, master)
}
