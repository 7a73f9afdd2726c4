// Package watch re-runs a callback whenever a schema source file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelgen/internal/logging"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watcher observes a single file. The parent directory is watched so atomic
// replace-on-save keeps being noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce. Non-positive values disable
// debouncing.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the watcher logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a watcher for path.
func New(path string, options ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "watch: resolve %s", path)
	}

	w := &Watcher{path: abs, debounce: DefaultDebounce}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	w.logger = logging.Component(w.logger, "watch")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch: create watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, errors.Wrapf(err, "watch: add %s", filepath.Dir(abs))
	}
	w.watcher = fw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, invoking onChange after every settled change
// to the file. Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context) error) error {
	defer w.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	trigger := func() {
		if w.debounce <= 0 {
			w.invoke(ctx, onChange)
			return
		}
		if timer == nil {
			timer = time.NewTimer(w.debounce)
		} else {
			timer.Reset(w.debounce)
		}
		fire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if w.relevant(event) {
				w.logger.Debug("source changed",
					zap.String(logging.FieldPath, event.Name),
					zap.String("op", event.Op.String()),
				)
				trigger()
			}
		case <-fire:
			fire = nil
			w.invoke(ctx, onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if err != nil {
				w.logger.Warn("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) invoke(ctx context.Context, onChange func(ctx context.Context) error) {
	if err := onChange(ctx); err != nil {
		w.logger.Error("regeneration failed", zap.String(logging.FieldPath, w.path), zap.Error(err))
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}
