package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/vendors"
)

var searchLogger = log.GetLogger("ApiSearch")

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Search handles GET /api/search?q=...&limit=&offset=
// Full-text search over indexed prompt documents.
func Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		RespondBadRequest(c, "missing query parameter q")
		return
	}

	limit := parseIntParam(c.Query("limit"), defaultSearchLimit)
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset := parseIntParam(c.Query("offset"), 0)

	meili := vendors.GetMeiliClient()
	if meili == nil {
		RespondServiceUnavailable(c, "search is not configured")
		return
	}

	result, err := meili.Search(query, vendors.MeiliSearchOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		searchLogger.Error().Err(err).Str("query", query).Msg("search failed")
		RespondInternalError(c, "search failed")
		return
	}

	RespondList(c, result.Hits, &Pagination{
		Total:  &result.EstimatedTotalHits,
		Limit:  &limit,
		Offset: &offset,
	})
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
