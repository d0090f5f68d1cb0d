package engine

import (
	"time"

	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/state"
)

// Time is the frame timing resource, advanced at the start of every frame.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64

	clock *core.Clock
}

func (t Time) DeltaSeconds() float64 {
	return t.Delta.Seconds()
}

// CoreModule adds the resources every other module expects: Time, frame
// metrics, the event bus and the input state.
type CoreModule struct {
	// Now overrides the clock source, nil uses time.Now.
	Now func() time.Time
}

func (m CoreModule) Configure(app *App) {
	clock := core.NewClock()
	if m.Now != nil {
		clock = core.NewClockWithSource(m.Now)
	}

	AddResource(app, Time{clock: clock})
	AddResource(app, core.NewFrameMetrics())
	AddResource(app, core.NewEventBus())
	AddResource(app, core.NewKeyboard())
	AddResource(app, core.NewMouse())

	app.AddHandler(PreUpdate{}, advanceTime)
}

func advanceTime(t state.ResMut[Time], metrics state.ResMut[core.FrameMetrics]) {
	tm := t.Get()
	if tm.clock == nil {
		tm.clock = core.NewClock()
	}
	if !tm.clock.Running() {
		tm.clock.Start()
	}
	tm.clock.Update()

	tm.Delta = tm.clock.Delta()
	tm.Elapsed = tm.clock.Elapsed()
	tm.Frame++

	if tm.Frame > 1 {
		metrics.Get().Update(tm.Delta)
	}
}
