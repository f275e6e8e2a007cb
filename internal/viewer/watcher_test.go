package viewer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsTargetChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(target, []byte("root: {name: a}\n"), 0o644))

	w, err := Watch(target)
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	select {
	case <-w.Changed():
		t.Fatal("notified for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(target, []byte("root: {name: b}\n"), 0o644))
	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "scene.yaml")
	w, err := Watch(target)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing", "scene.yaml"))
	assert.Error(t, err)
}
