package testbed

import (
	"github.com/spaghettifunk/ember/engine"
	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/state"
)

// Counter counts frames up to Limit, then stays put.
type Counter int

const Limit Counter = 10

// Player is spawned during Init through the deferred commands, so it only
// exists from PreUpdate on.
type Player struct {
	Name  string
	Ticks uint64
}

// Module is the sample game. It expects engine.CoreModule to be added
// first.
type Module struct {
	// LoadMaterials loads every indexed material at Init. Requires the
	// assets module.
	LoadMaterials bool
}

func (m Module) Configure(app *engine.App) {
	engine.AddResource(app, Counter(0))

	app.AddHandler(engine.Init{}, bindKeys).
		AddHandler(engine.Init{}, count).
		AddHandler(engine.Init{}, spawnPlayer).
		AddHandler(engine.Update{}, count).
		AddHandler(engine.Update{}, tickPlayer).
		AddHandler(engine.Update{}, quitOnKey).
		AddHandler(engine.Render{}, reportFrame)

	if m.LoadMaterials {
		app.AddHandler(engine.Init{}, loadMaterials)
	}
}

func bindKeys(kb state.ResMut[core.Keyboard]) {
	kb.Get().Map("quit", core.KeyEscape, core.KeyQ)
}

func count(c state.ResMut[Counter]) {
	if *c.Get() < Limit {
		*c.Get()++
	}
}

func spawnPlayer(cmds state.ResMut[engine.Commands]) {
	engine.Defer(cmds.Get(), Player{Name: "hero"})
}

func tickPlayer(p state.ResMut[Player], t state.Res[engine.Time]) {
	p.Get().Ticks = t.Get().Frame
}

func quitOnKey(kb state.Res[core.Keyboard], exit state.ResMut[engine.Exit]) {
	if kb.Ref().JustPressed("quit") {
		core.LogInfo("quit requested")
		exit.Get().Request(0)
	}
}

func reportFrame(t state.Res[engine.Time], metrics state.Res[core.FrameMetrics], c state.Res[Counter]) {
	if t.Get().Frame%60 != 0 {
		return
	}
	fps, ms := metrics.Ref().Frame()
	core.LogDebug("frame %d: %.0f fps, %.2f ms, counter %d", t.Get().Frame, fps, ms, c.Get())
}

func loadMaterials(server state.Res[*assets.Server], loaded state.ResMut[assets.Assets[*assets.Asset]]) {
	s := server.Get()
	for _, path := range s.Paths() {
		if info, _ := s.Info(path); info.Type != assets.ResourceTypeMaterial {
			continue
		}
		if _, err := assets.LoadInto(s, loaded.Get(), path); err != nil {
			core.LogWarn("material %s: %s", path, err)
		}
	}
	core.LogDebug("%d assets loaded", loaded.Get().Len())
}
