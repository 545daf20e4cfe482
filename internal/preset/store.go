package preset

import (
	"fmt"
	"sync"
	"time"

	"visual-prompt-studio/internal/media"
)

// Selection is the working state of the preset panel.
type Selection struct {
	Options  Options
	Derived  Derived
	FreeText string
	Slots    [2][]media.ReferenceImage

	// Epoch changes on every preset switch so late analysis results for a
	// previous preset can be dropped.
	Epoch     uint64
	UpdatedAt time.Time
}

func (s Selection) ID() ID {
	if s.Options == nil {
		return Default
	}
	return s.Options.Preset()
}

func (s Selection) Input() Input {
	c := s.clone()
	return Input{
		Options:  c.Options,
		Derived:  c.Derived,
		FreeText: c.FreeText,
		Slots:    c.Slots,
	}
}

func (s Selection) Ready() bool { return Ready(s.Input()) }

func (s Selection) clone() Selection {
	out := s
	for i := range s.Slots {
		out.Slots[i] = append([]media.ReferenceImage(nil), s.Slots[i]...)
	}
	out.Derived.Issues = append([]media.IssueTag(nil), s.Derived.Issues...)
	return out
}

type Store struct {
	mu  sync.Mutex
	cur Selection
	now func() time.Time
}

func NewStore() *Store {
	s := &Store{now: time.Now}
	s.cur = s.fresh(Default, 0)
	return s
}

func (s *Store) fresh(id ID, epoch uint64) Selection {
	return Selection{
		Options:   Defaults(id),
		Epoch:     epoch,
		UpdatedAt: s.now(),
	}
}

func (s *Store) Get() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.clone()
}

// Select switches preset and resets options, images, free text and every
// derived value.
func (s *Store) Select(id ID) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = s.fresh(id, s.cur.Epoch+1)
	return s.cur.clone()
}

func (s *Store) Update(fn func(*Selection)) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fn != nil {
		epoch := s.cur.Epoch
		fn(&s.cur)
		s.cur.Epoch = epoch
	}
	s.cur.UpdatedAt = s.now()
	return s.cur.clone()
}

// UpdateIf applies fn only while the selection is still at epoch.
func (s *Store) UpdateIf(epoch uint64, fn func(*Selection)) (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur.Epoch != epoch {
		return s.cur.clone(), false
	}
	fn(&s.cur)
	s.cur.Epoch = epoch
	s.cur.UpdatedAt = s.now()
	return s.cur.clone(), true
}

// SetOptions replaces the options of the current preset.
func (s *Store) SetOptions(o Options) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o == nil || o.Preset() != s.cur.ID() {
		return s.cur.clone(), fmt.Errorf("options for %v do not match preset %s", presetOf(o), s.cur.ID())
	}
	s.cur.Options = o
	for i, spec := range SlotsFor(o) {
		if spec.Single && len(s.cur.Slots[i]) > 1 {
			s.cur.Slots[i] = s.cur.Slots[i][:1]
		}
	}
	s.cur.UpdatedAt = s.now()
	return s.cur.clone(), nil
}

func presetOf(o Options) any {
	if o == nil {
		return "nil"
	}
	return o.Preset()
}

// SetSlot replaces the images of slot 0 or 1. Single slots keep only the
// first image.
func (s *Store) SetSlot(slot int, images []media.ReferenceImage) (Selection, error) {
	if slot < 0 || slot > 1 {
		return Selection{}, fmt.Errorf("slot %d out of range", slot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	specs := SlotsFor(s.cur.Options)
	if slot >= len(specs) {
		return s.cur.clone(), fmt.Errorf("preset %s has no slot %d", s.cur.ID(), slot+1)
	}
	images = append([]media.ReferenceImage(nil), images...)
	if specs[slot].Single && len(images) > 1 {
		images = images[:1]
	}
	s.cur.Slots[slot] = images
	s.cur.UpdatedAt = s.now()
	return s.cur.clone(), nil
}

// SetHairstyle picks a dropdown style. A reference photo and its analyzed
// description are dropped.
func (s *Store) SetHairstyle(name string) Selection {
	return s.Update(func(sel *Selection) {
		o, ok := sel.Options.(HairstyleOptions)
		if !ok {
			return
		}
		o.Hairstyle = name
		sel.Options = o
		sel.Derived.HairstyleDescription = ""
		sel.Slots[1] = nil
	})
}

func (s *Store) SetHairstyleGender(g Gender) Selection {
	return s.Update(func(sel *Selection) {
		o, ok := sel.Options.(HairstyleOptions)
		if !ok {
			return
		}
		o.Gender = g
		o.Hairstyle = ""
		sel.Options = o
	})
}
