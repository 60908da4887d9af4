// Package watcher imports spectral files into the library as they
// appear in or change within a directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet before it is imported.
const DefaultSettleDelay = 200 * time.Millisecond

// Result reports the outcome of one import.
type Result struct {
	Path    string
	Records []domain.SpectrumRecord
	Err     error
}

// Importer stores the spectra read from a file.
type Importer interface {
	Import(ctx context.Context, req driving.ReadRequest) ([]domain.SpectrumRecord, error)
}

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	dir      string
	importer Importer
	registry driven.FormatRegistry
	template driving.ReadRequest
	settle   time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithRequest sets the read options applied to every imported file.
// Its Path is ignored. When Format is set every file is read with it,
// otherwise only files with a registered extension are imported.
func WithRequest(req driving.ReadRequest) Option {
	return func(w *Watcher) {
		w.template = req
	}
}

// WithSettleDelay sets how long a file must stay unchanged before import.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// New creates a watcher for dir.
func New(dir string, importer Importer, registry driven.FormatRegistry, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		importer: importer,
		registry: registry,
		settle:   DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts watching and returns a channel of import results.
// The channel is closed once ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan Result, error) {
	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Debug("watching %s (settle %s)", w.dir, w.settle)

	results := make(chan Result)
	go w.run(ctx, fw, results)
	return results, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, results chan<- Result) {
	defer close(results)
	defer fw.Close()

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	pending := make(map[string]time.Time)

	send := func(r Result) bool {
		select {
		case results <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if logger.IsVerbose() {
				logger.Debug("fs event %s", event)
			}
			if path, ok := w.handleFsEvent(event); ok {
				pending[path] = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if !send(Result{Err: err}) {
				return
			}

		case now := <-ticker.C:
			for path, changed := range pending {
				if now.Sub(changed) < w.settle {
					continue
				}
				delete(pending, path)
				if !send(w.importFile(ctx, path)) {
					return
				}
			}
		}
	}
}

// handleFsEvent returns the path to import for event, if any.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}

	if w.template.Format == "" {
		if _, err := w.registry.ForPath(event.Name); err != nil {
			logger.Debug("ignoring %s: %v", event.Name, err)
			return "", false
		}
	}
	return event.Name, true
}

func (w *Watcher) importFile(ctx context.Context, path string) Result {
	req := w.template
	req.Path = path

	records, err := w.importer.Import(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrFormat) {
			logger.Warn("skipping %s: %v", path, err)
		}
		return Result{Path: path, Records: records, Err: err}
	}

	logger.Info("imported %s (%d spectra)", path, len(records))
	return Result{Path: path, Records: records}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
