package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Events():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("Expected a change notification")
		return Change{}
	}
}

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := New(path, testDebounce, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`{"layers":[]}`), 0o644))

	c := waitChange(t, w)
	assert.Equal(t, w.Path(), c.Path)
	assert.False(t, c.Removed)
}

func TestWatcher_ReportsAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")

	w, err := New(path, testDebounce, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, ".notes.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("{}"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	c := waitChange(t, w)
	assert.Equal(t, w.Path(), c.Path)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")

	w, err := New(path, testDebounce, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case c := <-w.Events():
		t.Errorf("Expected no change for sibling file, got %+v", c)
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")

	w, err := New(path, testDebounce, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{'{', byte('0' + i), '}'}, 0o644))
	}

	waitChange(t, w)
	select {
	case c := <-w.Events():
		t.Errorf("Expected a single coalesced change, got another %+v", c)
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent", "notes.json"), testDebounce, zerolog.Nop())
	assert.Error(t, err)
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "notes.json"), 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
