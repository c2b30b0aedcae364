// Package watch re-runs a batch when its input files change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Files are the paths to watch. Their directories are watched so files
	// replaced by rename (as editors do) are still seen.
	Files []string

	// Debounce is how long to wait after the last change before notifying.
	Debounce time.Duration

	Logger *slog.Logger
}

// ChangeSet lists the watched files that changed during one debounce window.
type ChangeSet struct {
	Paths []string
	At    time.Time
}

// Status reports what the watcher has done so far.
type Status struct {
	Running   bool
	Batches   int
	Failures  int
	LastError string
	LastRun   time.Time
}

// Watcher notifies callbacks when watched files change. Callbacks run one at
// a time on the watcher goroutine, so batches never overlap.
type Watcher struct {
	files    map[string]bool // absolute path -> watched
	debounce time.Duration
	logger   *slog.Logger

	fsw *fsnotify.Watcher

	// content hash per file, so saves that change nothing are ignored
	hashes map[string]string

	callbacks  []func(ChangeSet) error
	callbackMu sync.RWMutex

	status   Status
	statusMu sync.RWMutex

	cancel    context.CancelFunc
	done      chan struct{}
	running   bool
	runningMu sync.Mutex
}

// New creates a watcher for the configured files.
func New(config Config) (*Watcher, error) {
	if len(config.Files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	files := make(map[string]bool, len(config.Files))
	for _, file := range config.Files {
		absolute, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		files[absolute] = true
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := config.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		files:    files,
		debounce: debounce,
		logger:   logger,
		hashes:   make(map[string]string, len(files)),
	}, nil
}

// OnChange registers a callback for change sets.
func (w *Watcher) OnChange(callback func(ChangeSet) error) {
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching. It returns once every directory is registered; events
// are handled in the background until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	for _, dir := range w.directories() {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", "path", dir)
	}

	for file := range w.files {
		w.hashes[file] = fileHash(file)
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true
	w.setRunning(true)

	go w.processEvents(runCtx)

	w.logger.Info("file watcher started", "files", len(w.files), "debounce", w.debounce)
	return nil
}

// Stop stops watching and waits for a running callback to return.
func (w *Watcher) Stop() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if !w.running {
		return fmt.Errorf("watcher is not running")
	}

	w.cancel()
	<-w.done
	w.running = false
	return w.fsw.Close()
}

// Done is closed when the event loop exits.
func (w *Watcher) Done() <-chan struct{} {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()
	return w.done
}

// Status returns a snapshot of the watcher state.
func (w *Watcher) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}

func (w *Watcher) directories() []string {
	seen := make(map[string]bool)
	var dirs []string
	for file := range w.files {
		dir := filepath.Dir(file)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer w.setRunning(false)

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				pending[filepath.Clean(event.Name)] = true
				timer.Reset(w.debounce)
				w.logger.Debug("file change detected", "path", event.Name, "op", event.Op.String())
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			w.flush(pending)
			pending = make(map[string]bool)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) flush(pending map[string]bool) {
	changes := ChangeSet{At: time.Now()}
	for path := range pending {
		if w.contentChanged(path) {
			changes.Paths = append(changes.Paths, path)
		}
	}
	if len(changes.Paths) == 0 {
		w.logger.Debug("content unchanged, skipping batch")
		return
	}
	sort.Strings(changes.Paths)

	w.callbackMu.RLock()
	callbacks := append([]func(ChangeSet) error(nil), w.callbacks...)
	w.callbackMu.RUnlock()

	var lastErr error
	for _, callback := range callbacks {
		if err := callback(changes); err != nil {
			lastErr = err
			w.logger.Error("change callback failed", "paths", changes.Paths, "error", err)
		}
	}

	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Batches++
	w.status.LastRun = changes.At
	if lastErr != nil {
		w.status.Failures++
		w.status.LastError = lastErr.Error()
	}
}

func (w *Watcher) setRunning(running bool) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Running = running
}

// contentChanged compares the file with its last seen hash and records the
// new one. A file that disappeared counts as changed.
func (w *Watcher) contentChanged(path string) bool {
	hash := fileHash(path)
	previous, known := w.hashes[path]
	w.hashes[path] = hash
	return !known || hash == "" || hash != previous
}

// fileHash returns the hex SHA-256 of the file content, or "" when it cannot
// be read.
func fileHash(path string) string {
	file, err := os.Open(path) // #nosec G304 - watched paths come from run configuration
	if err != nil {
		return ""
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return ""
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
