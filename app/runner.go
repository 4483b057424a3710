package app

import (
	"context"
	"fmt"
	"time"
)

// RunOnce runs startup and a single frame.
func RunOnce(a *App) error {
	a.Step(0)
	return nil
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Hz is the frame rate; 60 when zero.
	Hz int
	// Frames stops the runner after this many frames; 0 runs until the
	// context ends or the app exits.
	Frames uint64
}

// HeadlessRunner drives the app from a ticker without opening a window. Every
// frame advances Time by exactly 1/Hz.
func HeadlessRunner(ctx context.Context, cfg HeadlessConfig) Runner {
	return func(a *App) error {
		if cfg.Hz <= 0 {
			cfg.Hz = 60
		}
		d := time.Second / time.Duration(cfg.Hz)
		if d <= 0 {
			return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
		}
		t := time.NewTicker(d)
		defer t.Stop()

		var frame uint64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				a.Step(d)
				frame++
				if a.ShouldExit() || (cfg.Frames > 0 && frame >= cfg.Frames) {
					return nil
				}
			}
		}
	}
}

// FixedRunner runs frames back to back with a fixed delta and no waiting.
// Tests and profiling use it.
func FixedRunner(frames int, d time.Duration) Runner {
	return func(a *App) error {
		for range frames {
			a.Step(d)
			if a.ShouldExit() {
				break
			}
		}
		return nil
	}
}
