package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-prompt-studio/internal/apperr"
)

type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) add(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}

func TestProgressCapsAt95(t *testing.T) {
	rec := &recorder{}
	p := NewProgress(ProgressOptions{OnChange: rec.add})

	p.Start(100 * time.Millisecond)
	assert.Eventually(t, func() bool { return p.Value() == ProgressCap }, 2*time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, ProgressCap, p.Value())

	vals := rec.snapshot()
	require.NotEmpty(t, vals)
	assert.Equal(t, 0, vals[0])
	for i := 1; i < len(vals); i++ {
		assert.Equal(t, vals[i-1]+1, vals[i])
	}
}

func TestProgressStopPulses(t *testing.T) {
	p := NewProgress(ProgressOptions{ResetDelay: 40 * time.Millisecond})
	p.Start(time.Second)
	p.Stop()
	assert.Equal(t, 100, p.Value())
	assert.Eventually(t, func() bool { return p.Value() == 0 }, time.Second, 5*time.Millisecond)
}

func TestProgressRestartCancelsPendingReset(t *testing.T) {
	rec := &recorder{}
	p := NewProgress(ProgressOptions{ResetDelay: 30 * time.Millisecond, OnChange: rec.add})

	p.Stop()
	p.Start(10 * time.Second)
	time.Sleep(250 * time.Millisecond)

	vals := rec.snapshot()
	require.GreaterOrEqual(t, len(vals), 2)
	assert.Equal(t, []int{100, 0}, vals[:2])
	zeros := 0
	for _, v := range vals {
		if v == 0 {
			zeros++
		}
	}
	assert.Equal(t, 1, zeros)
}

func TestTips(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	tips := NewTips(TipsOptions{
		Pool:     func() []string { return []string{"a", "b"} },
		Interval: 20 * time.Millisecond,
		Pick:     func(n int) int { return 1 },
		OnChange: func(s string) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		},
	})

	tips.Start()
	assert.Equal(t, "b", tips.Current())
	assert.True(t, tips.Running())
	tips.Start()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 3
	}, time.Second, 5*time.Millisecond)

	tips.Stop()
	assert.Empty(t, tips.Current())
	assert.False(t, tips.Running())
	tips.Stop()

	mu.Lock()
	assert.Equal(t, "", seen[len(seen)-1])
	mu.Unlock()
}

func TestTipsEmptyPool(t *testing.T) {
	tips := NewTips(TipsOptions{Interval: time.Millisecond})
	tips.Start()
	time.Sleep(5 * time.Millisecond)
	assert.Empty(t, tips.Current())
	tips.Stop()
}

func TestRunner(t *testing.T) {
	t.Run("busy slot rejects a second run", func(t *testing.T) {
		r := New(Options{})
		release := make(chan struct{})
		started := make(chan struct{})
		done := make(chan error, 1)

		go func() {
			done <- r.Run(context.Background(), SlotEnhance, time.Second, func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		called := false
		err := r.Run(context.Background(), SlotEnhance, time.Second, func(context.Context) error {
			called = true
			return nil
		})
		assert.True(t, apperr.Is(err, apperr.Busy))
		assert.False(t, called)
		assert.True(t, r.Busy(SlotEnhance))

		close(release)
		require.NoError(t, <-done)
		assert.False(t, r.Busy(SlotEnhance))
		assert.False(t, r.AnyBusy())
	})

	t.Run("other slots run concurrently", func(t *testing.T) {
		r := New(Options{})
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_ = r.Run(context.Background(), SlotGenerate, time.Second, func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		defer close(release)

		err := r.Run(context.Background(), SlotSuggest, time.Second, func(context.Context) error { return nil })
		assert.NoError(t, err)

		err = r.Run(context.Background(), SlotRefine, time.Second, func(context.Context) error { return nil })
		assert.True(t, apperr.Is(err, apperr.Busy))
	})

	t.Run("errors reach the hook", func(t *testing.T) {
		var gotSlot Slot
		var gotErr error
		r := New(Options{OnError: func(s Slot, err error) { gotSlot, gotErr = s, err }})
		boom := errors.New("boom")

		err := r.Run(context.Background(), SlotAnalyzeJSON, time.Second, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, SlotAnalyzeJSON, gotSlot)
		assert.ErrorIs(t, gotErr, boom)
		assert.False(t, r.Busy(SlotAnalyzeJSON))
	})

	t.Run("tips follow busy slots", func(t *testing.T) {
		tips := NewTips(TipsOptions{Pool: func() []string { return []string{"tip"} }, Interval: time.Hour})
		r := New(Options{Tips: tips})

		err := r.Run(context.Background(), SlotSuggest, time.Second, func(context.Context) error {
			assert.Equal(t, "tip", tips.Current())
			return nil
		})
		require.NoError(t, err)
		assert.False(t, tips.Running())
	})

	t.Run("tips keep running while another slot is busy", func(t *testing.T) {
		tips := NewTips(TipsOptions{Pool: func() []string { return []string{"tip"} }, Interval: time.Hour})
		r := New(Options{Tips: tips})

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = r.Run(context.Background(), SlotGenerate, time.Second, func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		require.NoError(t, r.Run(context.Background(), SlotSuggest, time.Second, func(context.Context) error { return nil }))
		assert.True(t, tips.Running())

		close(release)
		<-done
		assert.False(t, tips.Running())
	})

	t.Run("tips are running inside every overlapping slot", func(t *testing.T) {
		tips := NewTips(TipsOptions{Pool: func() []string { return []string{"tip"} }, Interval: time.Hour})
		r := New(Options{Tips: tips, ResetDelay: time.Millisecond})
		slots := []Slot{SlotEnhance, SlotGenerate, SlotSuggest, SlotAnalyzeEdit, SlotAnalyzeRetouch, SlotAnalyzeHairstyle, SlotAnalyzeJSON}

		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			misses int
		)
		for _, slot := range slots {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 200 {
					_ = r.Run(context.Background(), slot, time.Second, func(context.Context) error {
						if !tips.Running() {
							mu.Lock()
							misses++
							mu.Unlock()
						}
						return nil
					})
				}
			}()
		}
		wg.Wait()

		assert.Zero(t, misses)
		assert.False(t, tips.Running())
	})

	t.Run("progress snaps to 100", func(t *testing.T) {
		var mu sync.Mutex
		last := map[Slot]int{}
		r := New(Options{
			ResetDelay: time.Hour,
			OnProgress: func(s Slot, v int) {
				mu.Lock()
				last[s] = v
				mu.Unlock()
			},
		})
		require.NoError(t, r.Run(context.Background(), SlotRefine, time.Second, func(context.Context) error { return nil }))
		assert.Equal(t, 100, r.Progress(SlotRefine))
		mu.Lock()
		assert.Equal(t, 100, last[SlotRefine])
		mu.Unlock()
		assert.Equal(t, 0, r.Progress(SlotEnhance))
	})
}

func TestSlotDurations(t *testing.T) {
	assert.Equal(t, 8*time.Second, SlotEnhance.Duration())
	assert.Equal(t, 12*time.Second, SlotGenerate.Duration())
	assert.Equal(t, 5*time.Second, SlotSuggest.Duration())
	assert.Equal(t, 6*time.Second, SlotAnalyzeEdit.Duration())
	assert.Equal(t, 7*time.Second, SlotAnalyzeRetouch.Duration())
	assert.Equal(t, 7*time.Second, SlotAnalyzeHairstyle.Duration())
	assert.Equal(t, 9*time.Second, SlotAnalyzeJSON.Duration())
	assert.Equal(t, 10*time.Second, SlotRefine.Duration())
}
