package vendors

import (
	"sync"

	"github.com/meilisearch/meilisearch-go"
	"github.com/promptdeck/promptdeck/config"
	"github.com/promptdeck/promptdeck/log"
)

var (
	meiliClient     *MeiliClient
	meiliClientOnce sync.Once
	meiliLogger     = log.GetLogger("Meilisearch")
)

// MeiliClient wraps the Meilisearch client
type MeiliClient struct {
	client   meilisearch.ServiceManager
	index    meilisearch.IndexManager
	indexUID string
}

// MeiliSearchOptions holds search options
type MeiliSearchOptions struct {
	Limit  int
	Offset int
}

// MeiliSearchResult represents a search result
type MeiliSearchResult struct {
	Hits               []MeiliHit
	EstimatedTotalHits int
	Limit              int
	Offset             int
	Query              string
}

// MeiliHit represents a single search hit
type MeiliHit struct {
	FilePath  string
	Name      string
	Content   string
	Formatted map[string]string
}

// GetMeiliClient returns the singleton Meilisearch client.
// Returns nil when MEILI_HOST is not configured; all methods are
// nil-safe so callers can treat search as a no-op.
func GetMeiliClient() *MeiliClient {
	meiliClientOnce.Do(func() {
		cfg := config.Get()
		if cfg.MeiliHost == "" {
			meiliLogger.Warn().Msg("MEILI_HOST not configured, Meilisearch disabled")
			return
		}

		client := meilisearch.New(cfg.MeiliHost, meilisearch.WithAPIKey(cfg.MeiliAPIKey))

		// Verify connection
		if _, err := client.Health(); err != nil {
			meiliLogger.Error().Err(err).Msg("failed to connect to Meilisearch")
			return
		}

		index := client.Index(cfg.MeiliIndex)

		meiliClient = &MeiliClient{
			client:   client,
			index:    index,
			indexUID: cfg.MeiliIndex,
		}

		meiliLogger.Info().Str("host", cfg.MeiliHost).Str("index", cfg.MeiliIndex).Msg("Meilisearch initialized")
	})

	return meiliClient
}

// Search performs a search query over indexed prompt documents
func (m *MeiliClient) Search(query string, opts MeiliSearchOptions) (*MeiliSearchResult, error) {
	if m == nil {
		return nil, nil
	}

	searchReq := &meilisearch.SearchRequest{
		Limit:                 int64(opts.Limit),
		Offset:                int64(opts.Offset),
		AttributesToHighlight: []string{"content", "name", "filePath"},
		AttributesToCrop:      []string{"content"},
		CropLength:            200,
		MatchingStrategy:      "all",
	}

	resp, err := m.index.Search(query, searchReq)
	if err != nil {
		return nil, err
	}

	result := &MeiliSearchResult{
		EstimatedTotalHits: int(resp.EstimatedTotalHits),
		Limit:              opts.Limit,
		Offset:             opts.Offset,
		Query:              query,
	}

	for _, hit := range resp.Hits {
		h := hit.(map[string]interface{})

		meiliHit := MeiliHit{
			FilePath: getString(h, "filePath"),
			Name:     getString(h, "name"),
			Content:  getString(h, "content"),
		}

		if formatted, ok := h["_formatted"].(map[string]interface{}); ok {
			meiliHit.Formatted = make(map[string]string)
			for k, v := range formatted {
				if s, ok := v.(string); ok {
					meiliHit.Formatted[k] = s
				}
			}
		}

		result.Hits = append(result.Hits, meiliHit)
	}

	return result, nil
}

// IndexDocument indexes a prompt document keyed by file path
func (m *MeiliClient) IndexDocument(path, name, content string) error {
	if m == nil {
		return nil
	}

	doc := map[string]interface{}{
		"documentId": documentID(path),
		"filePath":   path,
		"name":       name,
		"content":    content,
	}

	_, err := m.index.AddDocuments([]map[string]interface{}{doc}, "documentId")
	return err
}

// DeleteDocument removes a document by file path
func (m *MeiliClient) DeleteDocument(path string) error {
	if m == nil {
		return nil
	}

	_, err := m.index.DeleteDocument(documentID(path))
	return err
}

// documentID converts a file path into a valid Meilisearch document id.
// Meilisearch ids only allow [a-zA-Z0-9_-].
func documentID(path string) string {
	result := make([]byte, 0, len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			result = append(result, c)
		default:
			result = append(result, '-')
		}
	}
	return string(result)
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
