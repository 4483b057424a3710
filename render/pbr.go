package render

import (
	"github.com/edwinsyarief/combine/asset"
	"github.com/edwinsyarief/combine/transform"
)

// PbrBundle spawns a visible mesh.
type PbrBundle struct {
	Mesh      asset.Handle[Mesh]
	Material  asset.Handle[StandardMaterial]
	Transform transform.Transform
}

// Components implements ecs.Bundle.
func (b PbrBundle) Components() []any {
	return []any{b.Mesh, b.Material, b.Transform}
}

// Wireframe draws the entity's edges on top of its faces when the renderer
// supports line polygons.
type Wireframe struct{}
