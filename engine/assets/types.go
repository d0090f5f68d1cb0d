package assets

import (
	"path/filepath"
	"strings"
)

type ResourceType uint8

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeText
	ResourceTypeImage
	ResourceTypeMaterial
	ResourceTypeBitmapFont
	ResourceTypeShader
	ResourceTypeModel
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeText:
		return "text"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeBitmapFont:
		return "bitmap font"
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeModel:
		return "model"
	default:
		return "none"
	}
}

// DetermineType maps a file extension to the resource type the server
// indexes it as. Unknown extensions are ResourceTypeNone and not indexed.
func DetermineType(path string) ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return ResourceTypeText
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return ResourceTypeImage
	case ".mat":
		return ResourceTypeMaterial
	case ".fnt":
		return ResourceTypeBitmapFont
	case ".shadercfg":
		return ResourceTypeShader
	case ".obj", ".mtl":
		return ResourceTypeModel
	default:
		return ResourceTypeNone
	}
}

type ChangeOp uint8

const (
	Created ChangeOp = iota + 1
	Modified
	Removed
)

func (op ChangeOp) String() string {
	switch op {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is an index update observed by the watcher.
type Change struct {
	Path string
	Type ResourceType
	Op   ChangeOp
}

// AssetChanged is the event the assets module writes for every Change.
type AssetChanged struct {
	Change
}
