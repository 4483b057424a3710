// Package host runs an app inside a desktop window. The window runner needs
// cgo; without it Runner returns an error and callers fall back to the
// headless runner.
package host

import (
	"fmt"
	"strings"

	"github.com/edwinsyarief/combine/diagnostics"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/editor"
	"github.com/edwinsyarief/combine/render"
)

// maxBatchTriangles keeps each DrawTriangles call within 16-bit indices.
const maxBatchTriangles = 65535 / 3

// batches splits n triangles into [start, end) ranges of at most size.
func batches(n, size int) [][2]int {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([][2]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// vertexColor returns c as the straight-alpha components ebiten expects.
func vertexColor(c render.Color) (r, g, b, a float32) {
	return clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)
}

func clamp01(f float32) float32 {
	return max(0, min(1, f))
}

// overlayText is the debug text drawn over the scene while the editor is
// active. It is empty otherwise.
func overlayText(w *ecs.World) string {
	state, _ := ecs.GetResource[editor.EditorState](w.Resources())
	if state == nil || !state.Active {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "editor  entities: %d\n", w.Len())
	if d, _ := ecs.GetResource[diagnostics.Diagnostics](w.Resources()); d != nil {
		b.WriteString(d.String())
	}
	return b.String()
}
