// Package loaders holds the asset loaders the engine ships with. Every
// loader satisfies assets.Loader.
package loaders

import "github.com/spaghettifunk/ember/engine/assets"

var (
	_ assets.Loader = (*ImageLoader)(nil)
	_ assets.Loader = (*MaterialLoader)(nil)
	_ assets.Loader = (*BitmapFontLoader)(nil)
)

// Defaults maps each resource type with a shipped loader to that loader.
func Defaults() map[assets.ResourceType]assets.Loader {
	return map[assets.ResourceType]assets.Loader{
		assets.ResourceTypeImage:      &ImageLoader{},
		assets.ResourceTypeMaterial:   &MaterialLoader{},
		assets.ResourceTypeBitmapFont: &BitmapFontLoader{},
	}
}
