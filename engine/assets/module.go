package assets

import (
	"github.com/spaghettifunk/ember/engine"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/state"
)

// Module serves the files under Dir as the *Server resource. With Watch set,
// file changes are written to the event bus as AssetChanged events at the
// start of every frame.
type Module struct {
	Dir     string
	Watch   bool
	Loaders map[ResourceType]Loader
}

// ModuleFromConfig builds the module from the [assets] table of the
// application config.
func ModuleFromConfig(cfg engine.AssetsConfig, loaders map[ResourceType]Loader) Module {
	return Module{Dir: cfg.Dir, Watch: cfg.Watch, Loaders: loaders}
}

func (m Module) Configure(app *engine.App) {
	server, err := NewServer(m.Dir)
	if err != nil {
		core.LogError("assets disabled: %s", err)
		return
	}
	for t, loader := range m.Loaders {
		server.RegisterLoader(t, loader)
	}
	if m.Watch {
		if err := server.Watch(); err != nil {
			core.LogWarn("asset watcher disabled: %s", err)
		}
	}

	engine.AddResource(app, server)
	engine.AddResource(app, NewAssets[*Asset]())

	if !engine.HasResource[core.EventBus](app) {
		engine.AddResource(app, core.NewEventBus())
	}

	app.AddHandler(engine.PreUpdate{}, forwardChanges)
	app.AddHandler(engine.Shutdown{}, closeServer)
}

func forwardChanges(server state.Res[*Server], bus state.ResMut[core.EventBus], loaded state.ResMut[Assets[*Asset]]) {
	for _, c := range server.Get().Poll() {
		if c.Op == Removed {
			if id, ok := loaded.Get().ID(NewHandle[*Asset](c.Path)); ok {
				loaded.Get().Remove(id)
			}
		}
		core.WriteEvent(bus.Get(), AssetChanged{Change: c})
	}
}

func closeServer(server state.Res[*Server]) {
	if err := server.Get().Close(); err != nil {
		core.LogError("closing asset server: %s", err)
	}
}

// LoadInto loads path and stores it in loaded under the handle of path.
func LoadInto(server *Server, loaded *Assets[*Asset], path string) (Handle[*Asset], error) {
	asset, err := server.Load(path)
	if err != nil {
		return Handle[*Asset]{}, err
	}
	h := NewHandle[*Asset](asset.Path)
	loaded.Insert(h, asset)
	return h, nil
}
