// Package watch processes workbooks dropped into a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/SamuelRCrider/xplicit-go/sheet"
	"github.com/SamuelRCrider/xplicit-go/store"
)

// DefaultInterval is the debounce and stability interval
const DefaultInterval = 2 * time.Second

// ProcessFunc handles one stable workbook and returns its change count
type ProcessFunc func(ctx context.Context, path string) (int, error)

// Watcher schedules workbooks in a drop directory for processing once they
// stop changing. Each path is processed at most once across restarts.
type Watcher struct {
	dir      string
	store    store.FileStore
	process  ProcessFunc
	interval time.Duration
	logger   *zap.Logger

	ctx     context.Context
	scanMu  sync.Mutex
	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// Option configures a Watcher
type Option func(*Watcher)

// WithInterval sets the debounce and stability interval
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a Watcher for dir
func New(dir string, fs store.FileStore, process ProcessFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		store:    fs,
		process:  process,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
		ctx:      context.Background(),
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsWorkbook reports whether path is a workbook the watcher should handle.
// Office lock files and previously written outputs are skipped.
func IsWorkbook(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, sheet.OutputPrefix) {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".xlsx")
}

// Run watches the directory until ctx is cancelled. Pending scans are
// cancelled and in-flight ones finish before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.ctx = ctx
	w.stopped = false
	w.mu.Unlock()

	w.logger.Info("watching directory", zap.String("dir", w.dir), zap.Duration("interval", w.interval))
	w.InitialScan()

	for {
		select {
		case <-ctx.Done():
			w.stop()
			w.logger.Info("watcher stopped", zap.String("dir", w.dir))
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				w.stop()
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !IsWorkbook(event.Name) {
				w.logger.Debug("ignoring event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
				continue
			}
			w.TriggerScan(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				w.stop()
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		}
	}
}

// InitialScan schedules every unprocessed workbook already in the directory
func (w *Watcher) InitialScan() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("failed to read watch directory", zap.String("dir", w.dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbook(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		processed, err := w.store.IsProcessed(path)
		if err != nil {
			w.logger.Error("failed to check processed status", zap.String("path", path), zap.Error(err))
		}
		if processed {
			w.logger.Debug("already processed, skipping", zap.String("path", path))
			continue
		}
		w.TriggerScan(path)
	}
}

// TriggerScan schedules path for processing after the interval, restarting
// the delay if a scan is already pending
func (w *Watcher) TriggerScan(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if timer, ok := w.pending[path]; ok && timer.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.interval, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.pending[path] == timer {
			delete(w.pending, path)
		}
		w.mu.Unlock()

		w.performScan(path)
	})
	w.pending[path] = timer
	w.logger.Debug("scan scheduled", zap.String("path", path), zap.Duration("delay", w.interval))
}

func (w *Watcher) performScan(path string) {
	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	ctx := w.context()
	if ctx.Err() != nil {
		return
	}

	stable, exists := w.isStable(ctx, path)
	if ctx.Err() != nil {
		return
	}
	if !exists {
		w.logger.Debug("file vanished before processing", zap.String("path", path))
		return
	}
	if !stable {
		w.logger.Debug("file still changing, rescheduling", zap.String("path", path))
		w.TriggerScan(path)
		return
	}

	processed, err := w.store.IsProcessed(path)
	if err != nil {
		w.logger.Error("failed to check processed status", zap.String("path", path), zap.Error(err))
	}
	if processed {
		return
	}

	changes, err := w.process(ctx, path)
	if err != nil {
		w.logger.Error("failed to process workbook", zap.String("path", path), zap.Error(err))
		return
	}

	if err := w.store.MarkProcessed(path, changes); err != nil {
		w.logger.Error("failed to record processed workbook", zap.String("path", path), zap.Error(err))
		return
	}
	w.logger.Info("workbook processed", zap.String("path", path), zap.Int("changes", changes))
}

// isStable compares size and modification time across one interval
func (w *Watcher) isStable(ctx context.Context, path string) (stable, exists bool) {
	before, err := os.Stat(path)
	if err != nil {
		return false, false
	}

	select {
	case <-ctx.Done():
		return false, true
	case <-time.After(w.interval):
	}

	after, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return before.Size() == after.Size() && before.ModTime().Equal(after.ModTime()), true
}

func (w *Watcher) context() context.Context {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ctx
}

func (w *Watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	for path, timer := range w.pending {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.wg.Wait()
}
