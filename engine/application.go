package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/ember/engine/core"
)

type WindowConfig struct {
	// Window starting position x axis, if applicable.
	X uint32 `toml:"x"`
	// Window starting position y axis, if applicable.
	Y uint32 `toml:"y"`
	// Window starting width, if applicable.
	Width uint32 `toml:"width"`
	// Window starting height, if applicable.
	Height uint32 `toml:"height"`
	// The window title, defaults to the application name.
	Title string `toml:"title"`
}

type AssetsConfig struct {
	// Root directory of the asset index.
	Dir string `toml:"dir"`
	// Reload changed assets by watching Dir.
	Watch bool `toml:"watch"`
}

type ApplicationConfig struct {
	// The application name used in logs and windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Frames per second the runners aim for, 0 means unpaced.
	TargetFPS uint32 `toml:"target_fps"`
	// Stop after this many frames, 0 means run until exit.
	MaxFrames uint64       `toml:"max_frames"`
	Window    WindowConfig `toml:"window"`
	Assets    AssetsConfig `toml:"assets"`
}

func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:      "Ember",
		LogLevel:  "info",
		TargetFPS: 60,
		Window: WindowConfig{
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
	}
}

var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig reads a TOML configuration file on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (*ApplicationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(data []byte) (*ApplicationConfig, error) {
	return decodeConfig(bytes.NewReader(data))
}

func decodeConfig(r io.Reader) (*ApplicationConfig, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	return nil
}

// Level is the parsed LogLevel, InfoLevel if it does not parse.
func (c *ApplicationConfig) Level() core.LogLevel {
	level, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return level
}

// Title is the window title, falling back to the application name.
func (c *ApplicationConfig) Title() string {
	if c.Window.Title != "" {
		return c.Window.Title
	}
	return c.Name
}
