package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"table-gen/internal/engine"
)

func TestWatch_RerunsOnChange(t *testing.T) {
	engine.WatchDebounce = 20 * time.Millisecond
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "multi"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- engine.Watch(ctx, dir, func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		// Keep touching the file until the watcher is up and has fired.
		_ = os.WriteFile(filepath.Join(dir, "multi", "${table_name}.tmpl"), []byte(time.Now().String()), 0o644)
		return runs.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := engine.Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), func(context.Context) error { return nil })
	require.Error(t, err)
}
