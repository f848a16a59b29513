package search

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/vendors"
)

const (
	// syncBatchSize is the max number of documents to sync per tick
	syncBatchSize = 50

	// syncInterval is how often we poll for pending documents
	syncInterval = 10 * time.Second

	// initialDelay before the first poll (let startup re-seed settle)
	initialDelay = 5 * time.Second
)

// SyncWorker pushes pending search_documents to Meilisearch.
type SyncWorker struct {
	stopChan chan struct{}
	wg       sync.WaitGroup

	// nudgeChan allows immediate sync after a re-seed completes
	nudgeChan chan struct{}
}

// NewSyncWorker creates a new search sync worker.
func NewSyncWorker() *SyncWorker {
	return &SyncWorker{
		stopChan:  make(chan struct{}),
		nudgeChan: make(chan struct{}, 1), // buffered so nudge never blocks
	}
}

// Start begins the sync loop.
func (w *SyncWorker) Start() {
	w.wg.Add(1)
	go w.loop()
	log.Info().Msg("search sync worker started")
}

// Stop signals the worker to exit and waits for it to finish.
func (w *SyncWorker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	log.Info().Msg("search sync worker stopped")
}

// Nudge asks the worker to run a sync cycle as soon as possible.
// Non-blocking — if a nudge is already pending it is a no-op.
func (w *SyncWorker) Nudge() {
	select {
	case w.nudgeChan <- struct{}{}:
	default:
		// already nudged
	}
}

func (w *SyncWorker) loop() {
	defer w.wg.Done()

	select {
	case <-time.After(initialDelay):
	case <-w.stopChan:
		return
	}

	// Run an initial full sync on startup
	w.syncPending()

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncPending()
		case <-w.nudgeChan:
			w.syncPending()
		case <-w.stopChan:
			return
		}
	}
}

// syncPending fetches pending documents from SQLite and pushes them to
// Meilisearch. Processes in batches until all pending documents are synced.
func (w *SyncWorker) syncPending() {
	meili := vendors.GetMeiliClient()
	if meili == nil {
		// Meilisearch not configured — nothing to do
		return
	}

	totalIndexed := 0
	totalFailed := 0

	for {
		docs, err := db.ListSearchDocumentsByStatus(db.SearchStatusPending, syncBatchSize)
		if err != nil {
			log.Error().Err(err).Msg("search sync: failed to list pending documents")
			return
		}

		if len(docs) == 0 {
			break
		}

		log.Info().Int("count", len(docs)).Msg("search sync: pushing pending documents")

		for _, doc := range docs {
			// Check for shutdown between documents
			select {
			case <-w.stopChan:
				log.Info().Int("indexed", totalIndexed).Msg("search sync: interrupted by shutdown")
				return
			default:
			}

			if err := meili.IndexDocument(doc.FilePath, filepath.Base(doc.FilePath), doc.Content); err != nil {
				db.MarkSearchDocumentFailed(doc.FilePath, err.Error())
				log.Warn().Err(err).Str("path", doc.FilePath).Msg("search sync: failed to index document")
				totalFailed++
				continue
			}

			if err := db.MarkSearchDocumentSynced(doc.FilePath); err != nil {
				log.Warn().Err(err).Str("path", doc.FilePath).Msg("search sync: failed to mark document synced")
			}
			totalIndexed++
		}

		// If this batch was smaller than the limit, we've drained all pending docs
		if len(docs) < syncBatchSize {
			break
		}
	}

	if totalIndexed > 0 || totalFailed > 0 {
		log.Info().Int("indexed", totalIndexed).Int("failed", totalFailed).Msg("search sync: cycle complete")
	}
}
