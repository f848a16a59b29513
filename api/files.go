package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
)

var filesLogger = log.GetLogger("ApiFiles")

// ListTrackedFiles handles GET /api/files
// Returns all persisted file records without raw content.
func ListTrackedFiles(c *gin.Context) {
	files, err := db.ListFiles()
	if err != nil {
		filesLogger.Error().Err(err).Msg("failed to list files")
		RespondInternalError(c, "failed to list files")
		return
	}

	RespondList(c, files, nil)
}

// GetFileRecord handles GET /api/files/record/*path
// Returns a file record with its sections and prompts.
func GetFileRecord(c *gin.Context) {
	relPath, ok := cleanRelPath(c.Param("path"))
	if !ok {
		RespondBadRequest(c, "invalid path")
		return
	}

	record, err := db.GetFileWithSections(relPath)
	if err != nil {
		filesLogger.Error().Err(err).Str("path", relPath).Msg("failed to load file record")
		RespondInternalError(c, "failed to load file record")
		return
	}
	if record == nil {
		RespondNotFound(c, "no record for path: "+relPath)
		return
	}

	RespondData(c, record)
}

// DriftSegment is a single run of text in a drift diff
type DriftSegment struct {
	Op   string `json:"op"` // "equal", "insert", "delete"
	Text string `json:"text"`
}

// DriftResponse describes how a file on disk differs from its record
type DriftResponse struct {
	Path     string         `json:"path"`
	InSync   bool           `json:"inSync"`
	Segments []DriftSegment `json:"segments"`
}

// GetFileDrift handles GET /api/files/diff?path=...
// Diffs the persisted raw content of a record against the file
// currently on disk.
func GetFileDrift(c *gin.Context) {
	relPath, ok := cleanRelPath(c.Query("path"))
	if !ok {
		RespondBadRequest(c, "missing or invalid path parameter")
		return
	}

	record, err := db.GetFileByPath(relPath)
	if err != nil {
		filesLogger.Error().Err(err).Str("path", relPath).Msg("failed to load file record")
		RespondInternalError(c, "failed to load file record")
		return
	}
	if record == nil {
		RespondNotFound(c, "no record for path: "+relPath)
		return
	}

	diskContent := ""
	data, err := os.ReadFile(filepath.Join(deps.ScanCfg.Root, filepath.FromSlash(relPath)))
	if err != nil {
		if !os.IsNotExist(err) {
			RespondInternalError(c, "failed to read file: "+err.Error())
			return
		}
		// Deleted on disk — diff against empty content
	} else {
		diskContent = string(data)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(record.RawContent, diskContent, false)
	dmp.DiffCleanupSemantic(diffs)

	resp := DriftResponse{Path: relPath, InSync: true}
	for _, d := range diffs {
		seg := DriftSegment{Text: d.Text}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			seg.Op = "insert"
			resp.InSync = false
		case diffmatchpatch.DiffDelete:
			seg.Op = "delete"
			resp.InSync = false
		default:
			seg.Op = "equal"
		}
		resp.Segments = append(resp.Segments, seg)
	}

	RespondData(c, resp)
}

// cleanRelPath normalizes a client-supplied path to a slash-separated
// relative path and rejects traversal outside the project root.
func cleanRelPath(raw string) (string, bool) {
	p := strings.TrimPrefix(raw, "/")
	if p == "" {
		return "", false
	}

	p = filepath.ToSlash(filepath.Clean(p))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") || filepath.IsAbs(p) {
		return "", false
	}

	return p, true
}
