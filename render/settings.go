package render

import "strings"

// WgpuFeatures is a set of optional renderer capabilities.
type WgpuFeatures uint32

// Optional features.
const (
	// FeaturePolygonModeLine allows meshes to be drawn as line polygons.
	FeaturePolygonModeLine WgpuFeatures = 1 << iota
	// FeaturePolygonModePoint allows meshes to be drawn as points.
	FeaturePolygonModePoint
)

// Has reports whether all of f are enabled.
func (w WgpuFeatures) Has(f WgpuFeatures) bool {
	return w&f == f
}

func (w WgpuFeatures) String() string {
	var parts []string
	if w.Has(FeaturePolygonModeLine) {
		parts = append(parts, "POLYGON_MODE_LINE")
	}
	if w.Has(FeaturePolygonModePoint) {
		parts = append(parts, "POLYGON_MODE_POINT")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// WgpuSettings configures the renderer before startup.
type WgpuSettings struct {
	Features WgpuFeatures
}

// WireframeConfig draws every mesh as a wireframe when Global is set.
type WireframeConfig struct {
	Global bool
}
