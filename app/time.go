package app

import "time"

// Time is the frame clock resource. Delta and Elapsed stop advancing while
// Paused; RealDelta always reflects the wall-clock frame length.
type Time struct {
	Delta     time.Duration
	RealDelta time.Duration
	Elapsed   time.Duration
	Frame     uint64
	Paused    bool
}

// Advance moves the clock forward by one frame of length d.
func (t *Time) Advance(d time.Duration) {
	t.RealDelta = d
	t.Frame++
	if t.Paused {
		t.Delta = 0
		return
	}
	t.Delta = d
	t.Elapsed += d
}

// DeltaSeconds returns Delta in seconds.
func (t *Time) DeltaSeconds() float32 {
	return float32(t.Delta.Seconds())
}

// TogglePause flips Paused and returns the new state.
func (t *Time) TogglePause() bool {
	t.Paused = !t.Paused
	return t.Paused
}
