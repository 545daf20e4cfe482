package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"visual-prompt-studio/internal/storage"
)

// TruncateToFit writes items through write, dropping the oldest entry (the
// last one) after every quota rejection until a write succeeds. Any other
// error stops the loop immediately and is returned. The input slice is not
// modified. An empty result with a nil error means nothing fit.
func TruncateToFit(items []Item, write func([]Item) error) ([]Item, error) {
	work := append([]Item(nil), items...)
	for len(work) > 0 {
		err := write(work)
		if err == nil {
			return work, nil
		}
		if !errors.Is(err, storage.ErrQuotaExceeded) {
			return nil, err
		}
		work = work[:len(work)-1]
	}
	return work, nil
}

type PersisterOptions struct {
	KV     storage.KV
	Key    string
	Logger *zerolog.Logger
}

// Persister writes history snapshots to the key/value store on a
// best-effort basis. It never reports quota pressure to the caller.
type Persister struct {
	kv     storage.KV
	key    string
	logger zerolog.Logger
}

func NewPersister(opts PersisterOptions) *Persister {
	key := opts.Key
	if key == "" {
		key = storage.KeyHistory
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Persister{
		kv:     opts.KV,
		key:    key,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// Persist stores items and returns how many were actually written.
func (p *Persister) Persist(items []Item) (int, error) {
	if len(items) == 0 {
		if err := p.kv.Remove(p.key); err != nil {
			return 0, fmt.Errorf("clear persisted history: %w", err)
		}
		return 0, nil
	}

	saved, err := TruncateToFit(items, func(batch []Item) error {
		raw, err := json.Marshal(batch)
		if err != nil {
			return err
		}
		if err := p.kv.Set(p.key, string(raw)); err != nil {
			if errors.Is(err, storage.ErrQuotaExceeded) {
				p.logger.Warn().Int("items", len(batch)).Msg("storage quota exceeded, dropping oldest history item")
			}
			return err
		}
		return nil
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to persist history")
		return 0, err
	}

	if len(saved) == 0 {
		p.logger.Error().Msg("no history item fits in storage, clearing persisted history")
		if err := p.kv.Remove(p.key); err != nil {
			return 0, fmt.Errorf("clear persisted history: %w", err)
		}
		return 0, nil
	}

	if len(saved) < len(items) {
		p.logger.Warn().
			Int("in_memory", len(items)).
			Int("persisted", len(saved)).
			Msg("history truncated to fit storage")
	}
	return len(saved), nil
}

// Load reads the persisted history. It never fails: missing, corrupt or
// oddly shaped data yields an empty or filtered list.
func (p *Persister) Load() []Item {
	raw, ok, err := p.kv.Get(p.key)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to read history")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	return Decode([]byte(raw), p.logger)
}

// Decode parses a persisted history document, keeping at most Limit valid
// items in their stored order.
func Decode(raw []byte, logger zerolog.Logger) []Item {
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Error().Err(err).Msg("failed to parse history, starting empty")
		return nil
	}

	out := make([]Item, 0, min(len(items), Limit))
	for _, it := range items {
		if len(out) == Limit {
			break
		}
		if !valid(it) {
			logger.Debug().Int64("id", it.ID).Msg("skipping malformed history item")
			continue
		}
		out = append(out, it)
	}
	return out
}

func valid(it Item) bool {
	return it.ID > 0 && it.Base64 != "" && it.Width > 0 && it.Height > 0
}
