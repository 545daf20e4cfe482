package credentials

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/storage"
)

type Options struct {
	// EnvKey is the externally injected credential; it always wins.
	EnvKey string
	KV     storage.KV
	Logger *zerolog.Logger
}

// Store resolves the single API credential. Writes only happen from the
// explicit save flow; subscribers are told so they can drop cached clients.
type Store struct {
	mu        sync.Mutex
	envKey    string
	kv        storage.KV
	logger    zerolog.Logger
	listeners []func()
}

func New(opts Options) *Store {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Store{
		envKey: strings.TrimSpace(opts.EnvKey),
		kv:     opts.KV,
		logger: logger.With().Str("component", "credentials").Logger(),
	}
}

// APIKey returns the environment credential, then the persisted one.
func (s *Store) APIKey() (string, error) {
	if s.envKey != "" {
		return s.envKey, nil
	}
	if s.kv == nil {
		return "", apperr.New(apperr.CredentialMissing, "credentials", "no API key configured")
	}

	key, ok, err := s.kv.Get(storage.KeyCredential)
	if err != nil {
		s.logger.Warn().Err(err).Msg("read persisted key failed")
		return "", apperr.Wrap(apperr.CredentialMissing, "credentials", err)
	}
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", apperr.New(apperr.CredentialMissing, "credentials", "no API key configured")
	}
	return key, nil
}

func (s *Store) Ready() bool {
	_, err := s.APIKey()
	return err == nil
}

// FromEnv reports whether the active credential is the injected one.
func (s *Store) FromEnv() bool {
	return s.envKey != ""
}

func (s *Store) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperr.New(apperr.ValidationFailed, "credentials.Save", "API key must not be empty")
	}
	if s.kv == nil {
		return apperr.New(apperr.Unknown, "credentials.Save", "no persistent storage configured")
	}
	if err := s.kv.Set(storage.KeyCredential, key); err != nil {
		return apperr.Wrap(apperr.Unknown, "credentials.Save", err)
	}

	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	s.logger.Info().Bool("env_override", s.envKey != "").Msg("API key saved")
	return nil
}

// OnChange registers fn to run after every successful Save.
func (s *Store) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}
