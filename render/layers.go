package render

import (
	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
)

// LayerRenderer draws an extra layer either under the graph (back layer,
// after the background) or over it (fore layer, after the view is popped).
// It receives the raw drawing context in pixel space together with the
// frame's projection metrics. Panics it raises are not suppressed.
type LayerRenderer interface {
	Render(ctx backend.DrawContext, scene gview.Scene, pxPerUnit float64,
		width, height int, lo, hi gview.Point)
}

// LayerFunc adapts a plain function to LayerRenderer.
type LayerFunc func(ctx backend.DrawContext, scene gview.Scene, pxPerUnit float64,
	width, height int, lo, hi gview.Point)

// Render calls f.
func (f LayerFunc) Render(ctx backend.DrawContext, scene gview.Scene, pxPerUnit float64,
	width, height int, lo, hi gview.Point) {
	f(ctx, scene, pxPerUnit, width, height, lo, hi)
}
