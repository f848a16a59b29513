package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/notifications"
)

var rawLogger = log.GetLogger("ApiRaw")

// maxRawUploadSize bounds PUT bodies; prompt and code files are text
const maxRawUploadSize = 10 << 20 // 10 MB

// GetRawFile handles GET /raw/*path
// Serves the current on-disk content of a project file.
func GetRawFile(c *gin.Context) {
	relPath, ok := cleanRelPath(c.Param("path"))
	if !ok {
		RespondBadRequest(c, "invalid path")
		return
	}

	absPath := filepath.Join(deps.ScanCfg.Root, filepath.FromSlash(relPath))

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			RespondNotFound(c, "file not found: "+relPath)
			return
		}
		RespondInternalError(c, "failed to stat file")
		return
	}
	if info.IsDir() {
		RespondBadRequest(c, "path is a directory")
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.File(absPath)
}

// PutRawFile handles PUT /raw/*path
// Writes the request body to a project file. Only tracked extensions
// are writable; the companion record stays stale until the next re-seed.
func PutRawFile(c *gin.Context) {
	relPath, ok := cleanRelPath(c.Param("path"))
	if !ok {
		RespondBadRequest(c, "invalid path")
		return
	}

	if !writableExt(relPath) {
		RespondBadRequest(c, "unsupported file extension")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRawUploadSize+1))
	if err != nil {
		RespondBadRequest(c, "failed to read request body")
		return
	}
	if len(body) > maxRawUploadSize {
		respondError(c, http.StatusRequestEntityTooLarge, ErrCodeValidation, "file too large")
		return
	}

	absPath := filepath.Join(deps.ScanCfg.Root, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		RespondInternalError(c, "failed to create parent directory")
		return
	}

	if err := os.WriteFile(absPath, body, 0o644); err != nil {
		rawLogger.Error().Err(err).Str("path", relPath).Msg("failed to write file")
		RespondInternalError(c, "failed to write file")
		return
	}

	rawLogger.Info().Str("path", relPath).Int("bytes", len(body)).Msg("file saved")
	notifications.GetService().NotifyPromptSaved(relPath)

	RespondData(c, gin.H{"path": relPath, "bytes": len(body)})
}

// writableExt restricts editing to the extensions the engine tracks
func writableExt(relPath string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	if ext == deps.ScanCfg.PromptExt {
		return true
	}
	for _, codeExt := range deps.ScanCfg.CodeExts {
		if ext == codeExt {
			return true
		}
	}
	return false
}
