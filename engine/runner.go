package engine

import (
	"context"
	"time"
)

// DefaultRunner drives the application without a window: PreInit and Init
// once, then frames until the context is done, an exit is requested or
// MaxFrames frames ran. Frames are paced by TargetFPS, 0 runs unpaced.
func DefaultRunner(ctx context.Context, app *App) error {
	cfg := app.Config()

	app.RunSchedule(PreInit{})
	app.RunSchedule(Init{})

	var tick <-chan time.Time
	if cfg.TargetFPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.TargetFPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	for frame := uint64(1); ; frame++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		app.RunFrame()

		if app.ExitRequested() {
			return nil
		}
		if cfg.MaxFrames > 0 && frame >= cfg.MaxFrames {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}
