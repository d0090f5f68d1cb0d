package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/state"
)

type Stage uint8

const (
	// App is being configured by its modules
	StageConfiguring Stage = iota
	// App was handed to its runner
	StageRunning
	// Runner returned, the Shutdown schedule is running
	StageShuttingDown
	// Runner and shutdown completed
	StageStopped
)

func (s Stage) String() string {
	switch s {
	case StageConfiguring:
		return "configuring"
	case StageRunning:
		return "running"
	case StageShuttingDown:
		return "shutting down"
	case StageStopped:
		return "stopped"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Runner drives an application once it is configured. It decides when each
// schedule runs and returns when the application should stop.
type Runner func(ctx context.Context, app *App) error

// Module wires resources and handlers into an App. Modules are configured
// in the order they are added and only ever use the App primitives.
type Module interface {
	Configure(app *App)
}

// ModuleFunc adapts a plain function to a Module.
type ModuleFunc func(app *App)

func (f ModuleFunc) Configure(app *App) {
	f(app)
}

// App owns the global State and the Scheduler. Both sit behind one mutex so
// the application can be driven from more than one goroutine, but every
// schedule run is serialized.
//
// App methods lock that mutex: they must not be called from inside a
// handler. Handlers that need to add resources use Commands instead.
type App struct {
	mu        sync.Mutex
	state     *state.State
	scheduler *state.Scheduler
	runner    Runner
	config    ApplicationConfig
	stage     Stage
}

// New creates an App with an empty state. A nil config uses DefaultConfig.
// The config is available to handlers as a Res[ApplicationConfig].
func New(cfg *ApplicationConfig) *App {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	a := &App{
		state:     state.New(),
		scheduler: state.NewScheduler(),
		runner:    DefaultRunner,
		config:    *cfg,
		stage:     StageConfiguring,
	}
	state.Add(a.state, a.config)
	return a
}

// AddResource adds or replaces the resource of type T.
func AddResource[T any](a *App, resource T) *App {
	a.mu.Lock()
	defer a.mu.Unlock()

	state.Add(a.state, resource)
	return a
}

// HasResource reports whether a resource of type T was added.
func HasResource[T any](a *App) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return state.Has[T](a.state)
}

// AddHandler registers fn on the schedule of label. fn is validated right
// away, see state.NewHandler.
func (a *App) AddHandler(label state.ScheduleLabel, fn any) *App {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stage != StageConfiguring {
		core.LogDebug("handler registered while %s", a.stage)
	}
	a.scheduler.AddHandler(label, fn)
	return a
}

func (a *App) AddModule(m Module) *App {
	m.Configure(a)
	return a
}

func (a *App) SetRunner(r Runner) *App {
	a.mu.Lock()
	defer a.mu.Unlock()

	if r == nil {
		r = DefaultRunner
	}
	a.runner = r
	return a
}

// Config returns a copy of the configuration the App was created with.
func (a *App) Config() ApplicationConfig {
	return a.config
}

func (a *App) Stage() Stage {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.stage
}

// WithState runs fn with exclusive access to the state. Runners use it to
// feed platform input between schedule runs.
func (a *App) WithState(fn func(s *state.State)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fn(a.state)
}

// RunSchedule runs the handlers of label and then applies the commands they
// deferred, so deferred writes are visible from the next schedule on.
func (a *App) RunSchedule(label state.ScheduleLabel) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scheduler.Run(label, a.state)
	a.executeCommands()
}

// ExecuteCommands merges everything queued in the Commands resource into
// the state.
func (a *App) ExecuteCommands() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.executeCommands()
}

func (a *App) executeCommands() {
	if !state.Has[Commands](a.state) {
		return
	}
	cmds := state.Fetch[state.ResMut[Commands]](a.state)
	pending := cmds.Get().take()
	cmds.Release()

	if pending == nil || pending.Len() == 0 {
		return
	}
	core.LogDebug("applying %d deferred resources", pending.Len())
	a.state.Merge(pending)
}

// RunFrame runs one frame of the default schedule sequence.
func (a *App) RunFrame() {
	a.RunSchedule(PreUpdate{})
	a.RunSchedule(Update{})
	a.RunSchedule(Render{})
	a.RunPostLoop()
}

// RunPostLoop ends a frame: unread events are dropped and the input state
// rolls over to the next frame.
func (a *App) RunPostLoop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if state.Has[core.EventBus](a.state) {
		bus := state.Fetch[state.ResMut[core.EventBus]](a.state)
		bus.Get().Clear()
		bus.Release()
	}
	if state.Has[core.Keyboard](a.state) {
		kb := state.Fetch[state.ResMut[core.Keyboard]](a.state)
		kb.Get().Swap()
		kb.Release()
	}
	if state.Has[core.Mouse](a.state) {
		m := state.Fetch[state.ResMut[core.Mouse]](a.state)
		m.Get().Swap()
		m.Release()
	}
}

// ExitRequested reports whether a handler asked the application to stop.
func (a *App) ExitRequested() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !state.Has[Exit](a.state) {
		return false
	}
	e := state.Fetch[state.Res[Exit]](a.state)
	defer e.Release()
	return e.Get().Requested()
}

// ExitCode is the code passed to the last Exit.Request, 0 otherwise.
func (a *App) ExitCode() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !state.Has[Exit](a.state) {
		return 0
	}
	e := state.Fetch[state.Res[Exit]](a.state)
	defer e.Release()
	return e.Get().Code()
}

// Run hands the App to its runner and blocks until it returns. The
// Commands and Exit resources are added if no module did. A fatal access
// error escaping a handler is logged and re-raised.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.stage != StageConfiguring {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	if !state.Has[Commands](a.state) {
		state.Add(a.state, Commands{})
	}
	if !state.Has[Exit](a.state) {
		state.Add(a.state, Exit{})
	}
	a.stage = StageRunning
	runner := a.runner
	a.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			core.LogError("%s aborted: %v", a.config.Name, r)
			panic(r)
		}
	}()

	core.LogInfo("running %s", a.config.Name)
	err := runner(ctx, a)

	a.setStage(StageShuttingDown)
	a.RunSchedule(Shutdown{})
	a.setStage(StageStopped)

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	core.LogInfo("%s stopped", a.config.Name)
	return nil
}

func (a *App) setStage(s Stage) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stage = s
}

var ErrAlreadyRunning = errors.New("app already running")
