package task

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"visual-prompt-studio/internal/apperr"
)

// Slot is one independently busy operation.
type Slot string

const (
	SlotEnhance          Slot = "enhance"
	SlotGenerate         Slot = "generate"
	SlotSuggest          Slot = "suggest"
	SlotAnalyzeEdit      Slot = "analyze-edit"
	SlotAnalyzeRetouch   Slot = "analyze-retouch"
	SlotAnalyzeHairstyle Slot = "analyze-hairstyle"
	SlotAnalyzeJSON      Slot = "analyze-json"
	SlotRefine           Slot = "refine"
)

// TextOnlyGenerate is the simulated duration of a generation without
// reference images.
const TextOnlyGenerate = 20 * time.Second

var durations = map[Slot]time.Duration{
	SlotEnhance:          8 * time.Second,
	SlotGenerate:         12 * time.Second,
	SlotSuggest:          5 * time.Second,
	SlotAnalyzeEdit:      6 * time.Second,
	SlotAnalyzeRetouch:   7 * time.Second,
	SlotAnalyzeHairstyle: 7 * time.Second,
	SlotAnalyzeJSON:      9 * time.Second,
	SlotRefine:           10 * time.Second,
}

// Duration is the simulated progress length of the slot.
func (s Slot) Duration() time.Duration {
	if d, ok := durations[s]; ok {
		return d
	}
	return 10 * time.Second
}

// Generation and refinement both produce the current image and never run
// together.
var conflicts = map[Slot][]Slot{
	SlotGenerate: {SlotRefine},
	SlotRefine:   {SlotGenerate},
}

type Options struct {
	Tips       *Tips
	OnProgress func(Slot, int)
	// OnError sees every failure after the slot has been released.
	OnError    func(Slot, error)
	ResetDelay time.Duration
	Logger     *zerolog.Logger
}

type Runner struct {
	mu       sync.Mutex
	busy     map[Slot]bool
	progress map[Slot]*Progress

	tips       *Tips
	onProgress func(Slot, int)
	onError    func(Slot, error)
	resetDelay time.Duration
	logger     zerolog.Logger
}

func New(opts Options) *Runner {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Runner{
		busy:       make(map[Slot]bool),
		progress:   make(map[Slot]*Progress),
		tips:       opts.Tips,
		onProgress: opts.OnProgress,
		onError:    opts.OnError,
		resetDelay: opts.ResetDelay,
		logger:     logger.With().Str("component", "task").Logger(),
	}
}

// Run executes fn inside slot. A busy slot fails fast with a Busy error and
// fn is not called. Progress runs for d; tips run while any slot is busy.
// Tips are started and stopped under the runner lock, so the tips hooks
// must not call back into the Runner.
func (r *Runner) Run(ctx context.Context, slot Slot, d time.Duration, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	if r.busyLocked(slot) {
		r.mu.Unlock()
		return apperr.New(apperr.Busy, string(slot), "already running")
	}
	r.busy[slot] = true
	if len(r.busy) == 1 && r.tips != nil {
		r.tips.Start()
	}
	p := r.progressLocked(slot)
	r.mu.Unlock()

	p.Start(d)

	started := time.Now()
	err := fn(ctx)

	p.Stop()
	r.mu.Lock()
	delete(r.busy, slot)
	if len(r.busy) == 0 && r.tips != nil {
		r.tips.Stop()
	}
	r.mu.Unlock()

	ev := r.logger.Debug()
	if err != nil {
		ev = r.logger.Warn().Err(err).Str("kind", apperr.Classify(err).String())
	}
	ev.Str("slot", string(slot)).Dur("duration", time.Since(started)).Msg("task finished")

	if err != nil && r.onError != nil {
		r.onError(slot, err)
	}
	return err
}

func (r *Runner) busyLocked(slot Slot) bool {
	if r.busy[slot] {
		return true
	}
	for _, other := range conflicts[slot] {
		if r.busy[other] {
			return true
		}
	}
	return false
}

func (r *Runner) progressLocked(slot Slot) *Progress {
	p, ok := r.progress[slot]
	if ok {
		return p
	}
	var onChange func(int)
	if r.onProgress != nil {
		onChange = func(v int) { r.onProgress(slot, v) }
	}
	p = NewProgress(ProgressOptions{ResetDelay: r.resetDelay, OnChange: onChange})
	r.progress[slot] = p
	return p
}

func (r *Runner) Busy(slot Slot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy[slot]
}

func (r *Runner) AnyBusy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.busy) > 0
}

// Progress returns the slot's current simulated percentage.
func (r *Runner) Progress(slot Slot) int {
	r.mu.Lock()
	p, ok := r.progress[slot]
	r.mu.Unlock()
	if !ok {
		return 0
	}
	return p.Value()
}
