package host

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, w *Watcher) FileEvent {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok)
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no file event")
		return 0
	}
}

func TestWatcher_ChangeAndDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.stl"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	assert.Equal(t, FileChanged, nextEvent(t, w))

	require.NoError(t, os.Remove(path))
	for {
		if nextEvent(t, w) == FileDeleted {
			break
		}
	}
}

func TestWatcher_ReplaceByRenameIsAChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := NewWatcher(path, 500*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, "part.stl.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("b"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Equal(t, FileChanged, nextEvent(t, w))
}

func TestWatcher_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path, 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
	assert.Equal(t, "deleted", FileDeleted.String())
}
