package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const appDirName = "visual-prompt-studio"

type Config struct {
	// GeminiAPIKey is the externally injected credential. Empty is valid:
	// the credential store falls back to the persisted key.
	GeminiAPIKey string

	DataDir           string
	StoragePath       string
	StorageQuotaBytes int64
	Language          string

	LogLevel string
	Debug    bool

	PreferIPv4       bool
	HTTPTimeout      time.Duration
	RequestTimeout   time.Duration
	GeminiBaseURL    string
	GeminiAPIVersion string

	RateInterval       time.Duration
	RateBurst          int
	SuggestionCacheTTL time.Duration
	GeolocationTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		StorageQuotaBytes:  int64(getEnvInt("STUDIO_STORAGE_QUOTA_BYTES", 5<<20)),
		Language:           strings.ToLower(getEnv("STUDIO_LANG", "en")),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Debug:              getEnvBool("DEBUG", false),
		PreferIPv4:         getEnvBool("PREFER_IPV4", true),
		HTTPTimeout:        getEnvSeconds("HTTP_TIMEOUT_SECONDS", 180),
		RequestTimeout:     getEnvSeconds("REQUEST_TIMEOUT_SECONDS", 180),
		GeminiBaseURL:      strings.TrimRight(getEnv("GEMINI_BASE_URL", ""), "/"),
		GeminiAPIVersion:   getEnv("GEMINI_API_VERSION", ""),
		RateInterval:       time.Duration(getEnvInt("GEMINI_RATE_INTERVAL_MS", 250)) * time.Millisecond,
		RateBurst:          getEnvInt("GEMINI_RATE_BURST", 4),
		SuggestionCacheTTL: getEnvSeconds("SUGGESTION_CACHE_TTL_SECONDS", 600),
		GeolocationTimeout: getEnvSeconds("GEOLOCATION_TIMEOUT_SECONDS", 10),
	}

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("API_KEY"))
	}

	dataDir := getEnv("STUDIO_DATA_DIR", "")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("STUDIO_DATA_DIR is not set and no user config dir: %w", err)
		}
		dataDir = filepath.Join(base, appDirName)
	}
	cfg.DataDir = dataDir
	cfg.StoragePath = filepath.Join(dataDir, "state.json")

	if cfg.StorageQuotaBytes <= 0 {
		return Config{}, errors.New("STUDIO_STORAGE_QUOTA_BYTES must be positive")
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}
	// REQUEST_TIMEOUT_SECONDS=0 leaves gateway calls unbounded.
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}
	if cfg.RateInterval < 0 {
		cfg.RateInterval = 0
	}
	if cfg.RateBurst < 1 {
		cfg.RateBurst = 1
	}
	if cfg.SuggestionCacheTTL <= 0 {
		cfg.SuggestionCacheTTL = 10 * time.Minute
	}
	if cfg.GeolocationTimeout <= 0 {
		cfg.GeolocationTimeout = 10 * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
