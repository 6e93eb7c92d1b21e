package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"daysheet/internal/pubsub"
)

// TestWatcher_PublishesOnWrite tests a db write produces a debounced event
func TestWatcher_PublishesOnWrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "daysheet.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o644))

	cfg := DefaultConfig(dbPath)
	cfg.DebounceDur = 50 * time.Millisecond
	w, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := w.Broker().Subscribe(ctx)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(dbPath, []byte("xy"), 0o644))

	select {
	case ev := <-ch:
		require.Equal(t, pubsub.ChangedEvent, ev.Type)
		require.Equal(t, dbPath, ev.Payload.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("no change event received")
	}
}

// TestWatcher_IgnoresUnrelatedFiles tests writes to other files do not publish
func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "daysheet.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o644))

	cfg := DefaultConfig(dbPath)
	cfg.DebounceDur = 50 * time.Millisecond
	w, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := w.Broker().Subscribe(ctx)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("y"), 0o644))

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}
