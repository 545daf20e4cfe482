package task

import (
	"sync"
	"time"
)

const (
	// ProgressCap is where simulated progress parks until the call returns.
	ProgressCap = 95

	defaultResetDelay = 500 * time.Millisecond
)

type ProgressOptions struct {
	// ResetDelay is how long 100 stays visible after Stop.
	ResetDelay time.Duration
	// OnChange runs with the progress lock held and must not call back
	// into the Progress.
	OnChange func(int)
}

// Progress fakes a percentage for calls that report none. Every Start or
// Stop bumps gen; timers scheduled under an older gen do nothing.
type Progress struct {
	mu         sync.Mutex
	value      int
	gen        uint64
	timer      *time.Timer
	resetDelay time.Duration
	onChange   func(int)
}

func NewProgress(opts ProgressOptions) *Progress {
	delay := opts.ResetDelay
	if delay <= 0 {
		delay = defaultResetDelay
	}
	return &Progress{resetDelay: delay, onChange: opts.OnChange}
}

// Start restarts from 0 and advances one point every d/100 up to the cap.
func (p *Progress) Start(d time.Duration) {
	step := d / 100
	if step <= 0 {
		step = time.Millisecond
	}

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.stopTimerLocked()
	p.value = 0
	p.timer = time.AfterFunc(step, func() { p.tick(gen, step) })
	p.notifyLocked(0)
	p.mu.Unlock()
}

func (p *Progress) tick(gen uint64, step time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.value >= ProgressCap {
		return
	}
	p.value++
	if p.value < ProgressCap {
		p.timer = time.AfterFunc(step, func() { p.tick(gen, step) })
	} else {
		p.timer = nil
	}
	p.notifyLocked(p.value)
}

// Stop snaps to 100 and drops back to 0 after the reset delay.
func (p *Progress) Stop() {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.stopTimerLocked()
	p.value = 100
	p.timer = time.AfterFunc(p.resetDelay, func() { p.reset(gen) })
	p.notifyLocked(100)
	p.mu.Unlock()
}

func (p *Progress) reset(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.value = 0
	p.timer = nil
	p.notifyLocked(0)
}

func (p *Progress) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Progress) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Progress) notifyLocked(v int) {
	if p.onChange != nil {
		p.onChange(v)
	}
}
