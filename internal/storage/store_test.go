package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, quota int64) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "studio.json")
	s, err := NewFileStore(Options{Path: path, QuotaBytes: quota})
	require.NoError(t, err)
	return s, path
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, path := newTestStore(t, 1024)

	_, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyTheme, "dark"))

	reopened, err := NewFileStore(Options{Path: path, QuotaBytes: 1024})
	require.NoError(t, err)
	v, ok, err := reopened.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	require.NoError(t, reopened.Remove(KeyTheme))
	_, ok, err = reopened.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, reopened.Remove("missing"))
}

func TestFileStore_Quota(t *testing.T) {
	s, _ := newTestStore(t, 64)

	require.NoError(t, s.Set("a", strings.Repeat("x", 40)))

	err := s.Set("b", strings.Repeat("y", 40))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	_, ok, err := s.Get("b")
	require.NoError(t, err)
	assert.False(t, ok, "rejected write must not be visible")

	v, _, _ := s.Get("a")
	assert.Len(t, v, 40)

	// Replacing a value only counts the new size.
	require.NoError(t, s.Set("a", strings.Repeat("z", 60)))
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(Options{Path: path})
	require.NoError(t, err)

	_, ok, err := s.Get(KeyHistory)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyHistory, "[]"))
}
