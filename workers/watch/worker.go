// Package watch observes the project tree for on-disk changes and
// reports them to interested subscribers. It never mutates records;
// re-seeding stays an explicit, request-triggered operation.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/scan"
)

var logger = log.GetLogger("Watch")

// debounceWindow collapses bursts of events (editors write files in
// several operations) into a single change notification per path.
const debounceWindow = 500 * time.Millisecond

// ChangeEvent represents a relevant file change under the project root
type ChangeEvent struct {
	RelPath  string
	IsPrompt bool
	Removed  bool
}

// ChangeHandler is called when watched files change
type ChangeHandler func(event ChangeEvent)

// Worker watches the project root for changes to code and prompt files
type Worker struct {
	cfg      scan.Config
	watcher  *fsnotify.Watcher
	onChange ChangeHandler
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	pending map[string]ChangeEvent
	timer   *time.Timer
}

// NewWorker creates a watch worker for the given scan configuration
func NewWorker(cfg scan.Config) *Worker {
	return &Worker{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		pending:  make(map[string]ChangeEvent),
	}
}

// SetChangeHandler sets the callback for file changes.
// Must be called before Start.
func (w *Worker) SetChangeHandler(handler ChangeHandler) {
	w.onChange = handler
}

// Start begins watching the project root
func (w *Worker) Start() error {
	var err error
	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	logger.Info().Str("root", w.cfg.Root).Msg("starting watch worker")

	if err := w.watchRecursive(w.cfg.Root); err != nil {
		logger.Error().Err(err).Msg("failed to watch project root")
	}

	w.wg.Add(1)
	go w.watchLoop()

	return nil
}

// Stop stops the watch worker
func (w *Worker) Stop() {
	close(w.stopChan)
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	logger.Info().Msg("watch worker stopped")
}

// watchRecursive adds all non-skipped directories under root to the watcher
func (w *Worker) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && w.skipDir(d.Name()) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to watch directory")
		}

		return nil
	})
}

func (w *Worker) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return w.cfg.SkipDirs[name]
}

// relevant reports whether the path is a code or prompt file we track
func (w *Worker) relevant(relPath string) (isPrompt, ok bool) {
	ext := strings.ToLower(filepath.Ext(relPath))
	if ext == w.cfg.PromptExt {
		return true, true
	}
	for _, codeExt := range w.cfg.CodeExts {
		if ext == codeExt {
			return false, true
		}
	}
	return false, false
}

func (w *Worker) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("watcher error")

		case <-w.stopChan:
			return
		}
	}
}

func (w *Worker) handleEvent(event fsnotify.Event) {
	relPath, err := filepath.Rel(w.cfg.Root, event.Name)
	if err != nil {
		return
	}
	relPath = filepath.ToSlash(relPath)

	// Skip anything inside a skipped or hidden directory
	for _, part := range strings.Split(relPath, "/") {
		if part != "." && part != ".." && w.skipDir(part) {
			return
		}
	}

	// New directories need to be added to the watcher
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watcher.Add(event.Name)
			return
		}
	}

	isPrompt, ok := w.relevant(relPath)
	if !ok {
		return
	}

	removed := event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
	if !removed && event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	w.enqueue(ChangeEvent{RelPath: relPath, IsPrompt: isPrompt, Removed: removed})
}

// enqueue buffers the event and (re)arms the debounce timer
func (w *Worker) enqueue(event ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[event.RelPath] = event

	if w.timer == nil {
		w.timer = time.AfterFunc(debounceWindow, w.flush)
	} else {
		w.timer.Reset(debounceWindow)
	}
}

// flush delivers all buffered events to the handler
func (w *Worker) flush() {
	w.mu.Lock()
	events := make([]ChangeEvent, 0, len(w.pending))
	for _, e := range w.pending {
		events = append(events, e)
	}
	w.pending = make(map[string]ChangeEvent)
	w.mu.Unlock()

	select {
	case <-w.stopChan:
		return
	default:
	}

	if w.onChange == nil {
		return
	}

	for _, e := range events {
		w.onChange(e)
	}
}
