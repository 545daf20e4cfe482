package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STUDIO_DATA_DIR", dir)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.GeminiAPIKey, "missing key is not a config error")
	assert.Equal(t, filepath.Join(dir, "state.json"), cfg.StoragePath)
	assert.Equal(t, int64(5<<20), cfg.StorageQuotaBytes)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 180*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.GeolocationTimeout)
	assert.Equal(t, 4, cfg.RateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STUDIO_DATA_DIR", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", " injected ")
	t.Setenv("STUDIO_LANG", "VI")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("GEMINI_RATE_BURST", "-3")
	t.Setenv("DEBUG", "not-a-bool")
	t.Setenv("GEMINI_BASE_URL", "https://proxy.local/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "injected", cfg.GeminiAPIKey)
	assert.Equal(t, "vi", cfg.Language)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.RateBurst)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "https://proxy.local", cfg.GeminiBaseURL)
}

func TestLoad_RejectsBadQuota(t *testing.T) {
	t.Setenv("STUDIO_DATA_DIR", t.TempDir())
	t.Setenv("STUDIO_STORAGE_QUOTA_BYTES", "-1")

	_, err := Load()
	assert.Error(t, err)
}
