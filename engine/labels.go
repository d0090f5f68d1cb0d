package engine

import "github.com/spaghettifunk/ember/engine/state"

// PreInit runs once before Init, typically to create resources other
// modules depend on (through Commands).
type PreInit struct{ state.Label }

// Init runs once when the application starts.
type Init struct{ state.Label }

// PreUpdate runs at the start of every frame, before Update.
type PreUpdate struct{ state.Label }

// Update runs once per frame.
type Update struct{ state.Label }

// Render runs once per frame, after Update.
type Render struct{ state.Label }

// Shutdown runs once after the runner returned.
type Shutdown struct{ state.Label }
