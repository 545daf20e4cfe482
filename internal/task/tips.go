package task

import (
	"math/rand/v2"
	"sync"
	"time"
)

const defaultTipInterval = 5 * time.Second

type TipsOptions struct {
	// Pool is read on every rotation so a locale switch applies at once.
	Pool     func() []string
	Interval time.Duration
	// OnChange runs with the tips lock held.
	OnChange func(string)
	// Pick returns an index in [0, n). Defaults to a uniform draw.
	Pick func(n int) int
}

// Tips rotates a random tip while any slot is busy. Draws are with
// replacement, so the same tip may show twice in a row.
type Tips struct {
	mu       sync.Mutex
	pool     func() []string
	interval time.Duration
	onChange func(string)
	pick     func(int) int

	current string
	stop    chan struct{}
}

func NewTips(opts TipsOptions) *Tips {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultTipInterval
	}
	pick := opts.Pick
	if pick == nil {
		pick = rand.IntN
	}
	pool := opts.Pool
	if pool == nil {
		pool = func() []string { return nil }
	}
	return &Tips{pool: pool, interval: interval, onChange: opts.OnChange, pick: pick}
}

// Start shows a tip immediately and keeps rotating until Stop. Calling it
// while running is a no-op.
func (t *Tips) Start() {
	t.mu.Lock()
	if t.stop != nil {
		t.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	t.rotate(stop)
	go t.loop(stop)
}

func (t *Tips) loop(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.rotate(stop)
		}
	}
}

func (t *Tips) rotate(stop chan struct{}) {
	pool := t.pool()
	if len(pool) == 0 {
		return
	}
	tip := pool[t.pick(len(pool))]

	t.mu.Lock()
	if t.stop != stop {
		t.mu.Unlock()
		return
	}
	t.current = tip
	if t.onChange != nil {
		t.onChange(tip)
	}
	t.mu.Unlock()
}

// Stop ends the rotation and clears the current tip.
func (t *Tips) Stop() {
	t.mu.Lock()
	if t.stop == nil {
		t.mu.Unlock()
		return
	}
	close(t.stop)
	t.stop = nil
	t.current = ""
	if t.onChange != nil {
		t.onChange("")
	}
	t.mu.Unlock()
}

func (t *Tips) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

func (t *Tips) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
