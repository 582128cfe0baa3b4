package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatchDebounce(t *testing.T) {
	w := NewConfigWatchService("/tmp/config.yaml")
	now := time.Now()

	assert.True(t, w.ShouldReload(now))
	assert.False(t, w.ShouldReload(now.Add(100*time.Millisecond)))
	assert.True(t, w.ShouldReload(now.Add(ConfigWatchDebounce+time.Millisecond)))
}

func TestConfigWatchNextEventSingleWaiter(t *testing.T) {
	w := NewConfigWatchService("/tmp/config.yaml")
	w.Events = make(chan struct{}, 1)

	first := w.NextEvent()
	require.NotNil(t, first)
	assert.Nil(t, w.NextEvent())

	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestConfigWatchSignalsOnFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repos: []\n"), 0o600))

	w := NewConfigWatchService(path)
	started, err := w.Start()
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	events := w.NextEvent()
	require.NotNil(t, events)

	require.NoError(t, os.WriteFile(path, []byte("repos: [a/b]\n"), 0o600))

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a watch event after writing the config file")
	}
}

func TestConfigWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repos: []\n"), 0o600))

	w := NewConfigWatchService(path)
	started, err := w.Start()
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)

	events := w.NextEvent()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	select {
	case <-events:
		t.Fatal("unexpected event for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatchStartWithMissingDir(t *testing.T) {
	w := NewConfigWatchService(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	started, err := w.Start()
	assert.NoError(t, err)
	assert.False(t, started)
}
