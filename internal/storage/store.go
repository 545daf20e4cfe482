package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// ErrQuotaExceeded is returned by Set when the serialized store would grow
// past its byte quota. The previous contents are left untouched.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is the persisted local state: string keys, JSON-encoded string values.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

const (
	KeyCredential = "user_api_key"
	KeyTheme      = "theme"
	KeyHistory    = "generationHistory"
)

type Options struct {
	Path       string
	QuotaBytes int64
	Logger     *zerolog.Logger
}

// FileStore keeps every key in one JSON document on disk and enforces the
// quota against the summed key and value sizes, the way browser local
// storage accounts for it.
type FileStore struct {
	mu     sync.Mutex
	path   string
	quota  int64
	logger zerolog.Logger
	data   map[string]string
	loaded bool
}

func NewFileStore(opts Options) (*FileStore, error) {
	if opts.Path == "" {
		return nil, errors.New("storage path is required")
	}

	quota := opts.QuotaBytes
	if quota <= 0 {
		quota = 5 << 20
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &FileStore{
		path:   opts.Path,
		quota:  quota,
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return "", false, err
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}

	next := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = value

	if used := usage(next); used > s.quota {
		s.logger.Debug().
			Str("key", key).
			Int64("bytes", used).
			Int64("quota", s.quota).
			Msg("write rejected by quota")
		return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
	}

	if err := s.flushLocked(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	if _, ok := s.data[key]; !ok {
		return nil
	}

	next := make(map[string]string, len(s.data))
	for k, v := range s.data {
		if k != key {
			next[k] = v
		}
	}
	if err := s.flushLocked(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.data = map[string]string{}
		s.loaded = true
		return nil
	case err != nil:
		return fmt.Errorf("read storage: %w", err)
	}

	data := map[string]string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("storage file is corrupt, starting empty")
			data = map[string]string{}
		}
	}
	s.data = data
	s.loaded = true
	return nil
}

func (s *FileStore) flushLocked(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".studio-*.json")
	if err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}

func usage(data map[string]string) int64 {
	var n int64
	for k, v := range data {
		n += int64(len(k) + len(v))
	}
	return n
}
