package platform

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/ember/engine"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/state"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Window is the resource describing the platform window. The handle is set
// once the runner created the window.
type Window struct {
	Title  string
	Width  uint32
	Height uint32

	handle *glfw.Window
}

func (w *Window) Handle() *glfw.Window {
	return w.handle
}

// Minimized reports a zero sized framebuffer.
func (w *Window) Minimized() bool {
	return w.Width == 0 || w.Height == 0
}

// WindowModule replaces the runner with one that opens a GLFW window and
// drives the frame schedules until the window is closed.
type WindowModule struct{}

func (WindowModule) Configure(app *engine.App) {
	cfg := app.Config()
	engine.AddResource(app, Window{
		Title:  cfg.Title(),
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	app.SetRunner(Runner)
}

// Runner is the windowed counterpart of engine.DefaultRunner. It must be
// called from the main goroutine.
func Runner(ctx context.Context, app *engine.App) error {
	cfg := app.Config()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(cfg.Window.Width), int(cfg.Window.Height), cfg.Title(), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	installCallbacks(app, window)
	window.SetPos(int(cfg.Window.X), int(cfg.Window.Y))
	window.Show()

	app.WithState(func(s *state.State) {
		if !state.Has[Window](s) {
			state.Add(s, Window{Title: cfg.Title(), Width: cfg.Window.Width, Height: cfg.Window.Height})
		}
		w := state.Fetch[state.ResMut[Window]](s)
		defer w.Release()
		w.Get().handle = window
	})
	core.LogInfo("window %q opened (%dx%d)", cfg.Title(), cfg.Window.Width, cfg.Window.Height)

	app.RunSchedule(engine.PreInit{})
	app.RunSchedule(engine.Init{})

	var tick <-chan time.Time
	if cfg.TargetFPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.TargetFPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	for frame := uint64(1); !window.ShouldClose(); frame++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		glfw.PollEvents()
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
	return nil
}

// withInput runs fn on the input resources. Callbacks fire from
// glfw.PollEvents, outside of any schedule run.
func withInput(app *engine.App, fn func(kb *core.Keyboard, mouse *core.Mouse, bus *core.EventBus)) {
	app.WithState(func(s *state.State) {
		if !state.Has[core.Keyboard](s) || !state.Has[core.Mouse](s) || !state.Has[core.EventBus](s) {
			return
		}
		kb := state.Fetch[state.ResMut[core.Keyboard]](s)
		defer kb.Release()
		mouse := state.Fetch[state.ResMut[core.Mouse]](s)
		defer mouse.Release()
		bus := state.Fetch[state.ResMut[core.EventBus]](s)
		defer bus.Release()

		fn(kb.Get(), mouse.Get(), bus.Get())
	})
}

func installCallbacks(app *engine.App, window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		code, ok := translateKey(key)
		if !ok || action == glfw.Repeat {
			return
		}
		withInput(app, func(kb *core.Keyboard, _ *core.Mouse, bus *core.EventBus) {
			kb.SetModifiers(translateMods(mods))
			kb.ProcessKey(bus, code, action == glfw.Press)
		})
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		withInput(app, func(_ *core.Keyboard, mouse *core.Mouse, bus *core.EventBus) {
			mouse.ProcessButton(bus, b, action == glfw.Press)
		})
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		withInput(app, func(_ *core.Keyboard, mouse *core.Mouse, bus *core.EventBus) {
			mouse.ProcessMove(bus, int32(xpos), int32(ypos))
		})
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if yoff == 0 {
			return
		}
		delta := int8(1)
		if yoff < 0 {
			delta = -1
		}
		withInput(app, func(_ *core.Keyboard, mouse *core.Mouse, bus *core.EventBus) {
			mouse.ProcessWheel(bus, delta)
		})
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.WithState(func(s *state.State) {
			if state.Has[Window](s) {
				win := state.Fetch[state.ResMut[Window]](s)
				win.Get().Width, win.Get().Height = uint32(width), uint32(height)
				win.Release()
			}
			if state.Has[core.EventBus](s) {
				bus := state.Fetch[state.ResMut[core.EventBus]](s)
				core.WriteEvent(bus.Get(), core.WindowResized{Width: uint32(width), Height: uint32(height)})
				bus.Release()
			}
		})
	})

	window.SetCloseCallback(func(w *glfw.Window) {
		app.WithState(func(s *state.State) {
			if state.Has[core.EventBus](s) {
				bus := state.Fetch[state.ResMut[core.EventBus]](s)
				core.WriteEvent(bus.Get(), core.WindowCloseRequested{})
				bus.Release()
			}
		})
	})
}
