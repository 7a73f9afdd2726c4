package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestWatcher_relevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(target, []byte("contentTypes: []\n"), 0o644))

	w, err := New(target)
	require.NoError(t, err)
	defer w.watcher.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to target", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create target", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"chmod target", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"write sibling", fsnotify.Event{Name: filepath.Join(dir, "other.yaml"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestWatcher_RunInvokesCallbackOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(target, []byte("contentTypes: []\n"), 0o644))

	w, err := New(target, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	// Give the watcher a moment to start receiving events.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("contentTypes:\n  - {id: 1, alias: a}\n"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "site.yaml"))
	require.Error(t, err)
}
