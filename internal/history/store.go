package history

import (
	"sync"
	"time"
)

// Limit caps the in-memory history. Persistence may keep fewer.
const Limit = 30

type Item struct {
	ID     int64  `json:"id"`
	Base64 string `json:"base64"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Options struct {
	Limit int
	// Initial seeds the store, usually from Load. It is copied and clamped.
	Initial []Item
	// OnChange receives a snapshot after every mutation, newest first.
	OnChange func([]Item)
	Now      func() time.Time
}

type Store struct {
	// notifyMu orders OnChange calls the same way mutations were applied,
	// so the last persisted snapshot is always the latest state.
	notifyMu sync.Mutex
	mu       sync.Mutex
	items    []Item
	limit    int
	lastID   int64
	onChange func([]Item)
	now      func() time.Time
}

func NewStore(opts Options) *Store {
	limit := opts.Limit
	if limit <= 0 {
		limit = Limit
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	items := opts.Initial
	if len(items) > limit {
		items = items[:limit]
	}

	s := &Store{
		items:    append([]Item(nil), items...),
		limit:    limit,
		onChange: opts.OnChange,
		now:      now,
	}
	for _, it := range s.items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
	return s
}

// NextID returns a millisecond timestamp, bumped when needed so ids stay
// strictly increasing within this store.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Append prepends item and truncates to the limit in one step.
func (s *Store) Append(item Item) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := make([]Item, 0, min(len(s.items)+1, s.limit))
	next = append(next, item)
	next = append(next, s.items...)
	if len(next) > s.limit {
		next = next[:s.limit]
	}
	s.items = next
	if item.ID > s.lastID {
		s.lastID = item.ID
	}
	snapshot := s.snapshotLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
}

func (s *Store) Clear() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.items = nil
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(nil)
	}
}

func (s *Store) Snapshot() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Get(id int64) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) snapshotLocked() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
