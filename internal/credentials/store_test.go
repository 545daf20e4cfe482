package credentials

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/storage"
)

func newKV(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.NewFileStore(storage.Options{Path: filepath.Join(t.TempDir(), "state.json")})
	require.NoError(t, err)
	return kv
}

func TestStore_APIKey(t *testing.T) {
	t.Run("missing everywhere", func(t *testing.T) {
		s := New(Options{KV: newKV(t)})
		_, err := s.APIKey()
		require.Error(t, err)
		assert.Equal(t, apperr.CredentialMissing, apperr.Classify(err))
		assert.False(t, s.Ready())
	})

	t.Run("persisted key is used", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(storage.KeyCredential, "stored-key"))

		s := New(Options{KV: kv})
		key, err := s.APIKey()
		require.NoError(t, err)
		assert.Equal(t, "stored-key", key)
		assert.True(t, s.Ready())
		assert.False(t, s.FromEnv())
	})

	t.Run("environment wins over persisted", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(storage.KeyCredential, "stored-key"))

		s := New(Options{EnvKey: "  env-key ", KV: kv})
		key, err := s.APIKey()
		require.NoError(t, err)
		assert.Equal(t, "env-key", key)
		assert.True(t, s.FromEnv())
	})
}

func TestStore_Save(t *testing.T) {
	kv := newKV(t)
	s := New(Options{KV: kv})

	calls := 0
	s.OnChange(func() { calls++ })

	err := s.Save("   ")
	require.Error(t, err)
	assert.Equal(t, apperr.ValidationFailed, apperr.Classify(err))
	assert.Zero(t, calls)

	require.NoError(t, s.Save(" new-key "))
	assert.Equal(t, 1, calls)

	stored, ok, err := kv.Get(storage.KeyCredential)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new-key", stored)

	key, err := s.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "new-key", key)
}
