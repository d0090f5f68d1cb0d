/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/ember/engine"
	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/assets/loaders"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/platform"
	"github.com/spaghettifunk/ember/testbed"
)

func main() {
	configPath := flag.String("config", "engine.toml", "path to the engine configuration")
	headless := flag.Bool("headless", false, "run without opening a window")
	flag.Parse()

	cfg, err := engine.LoadConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("no config at %s, using defaults", *configPath)
		cfg, err = engine.DefaultConfig(), nil
	}
	if err != nil {
		core.LogFatal("%s", err)
	}
	core.SetLogLevel(cfg.Level())

	app := engine.New(cfg).
		AddModule(engine.CoreModule{}).
		AddModule(assets.ModuleFromConfig(cfg.Assets, loaders.Defaults()))
	app.AddModule(testbed.Module{LoadMaterials: engine.HasResource[*assets.Server](app)})

	if !*headless {
		app.AddModule(platform.WindowModule{})
	}

	// cancel the run on system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := app.Run(ctx); err != nil {
		core.LogFatal("%s", err)
	}
	os.Exit(app.ExitCode())
}
