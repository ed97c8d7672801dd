package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
)

// selectionRenderer draws the interactive selection extent. One instance
// is bound lazily to the selection object and reused every frame. It
// operates in pixel space, independent of style groups and the camera
// transform.
type selectionRenderer struct {
	sel    gview.Selection
	fill   color.Color
	border color.Color
}

func newSelectionRenderer(sel gview.Selection, cfg gview.Config) *selectionRenderer {
	base, err := cfg.SelectionColor()
	if err != nil {
		base = color.RGBA{R: 0x3c, G: 0x78, B: 0xc8, A: 0xff}
	}
	c, ok := colorful.MakeColor(base)
	if !ok {
		c = colorful.Color{R: 0.24, G: 0.47, B: 0.78}
	}
	rr, gg, bb := c.RGB255()
	return &selectionRenderer{
		sel:    sel,
		fill:   color.NRGBA{R: rr, G: gg, B: bb, A: 0x30},
		border: color.NRGBA{R: rr, G: gg, B: bb, A: 0xc8},
	}
}

// Render draws the current selection rectangle, clamped to the viewport.
func (r *selectionRenderer) Render(bk backend.Backend, width, height int) {
	lo, hi := r.sel.Low(), r.sel.High()
	x1 := math.Max(0, math.Min(lo.X, hi.X))
	y1 := math.Max(0, math.Min(lo.Y, hi.Y))
	x2 := math.Min(float64(width), math.Max(lo.X, hi.X))
	y2 := math.Min(float64(height), math.Max(lo.Y, hi.Y))
	if x2 <= x1 || y2 <= y1 {
		return
	}

	ctx := bk.Context()
	ctx.Push()
	ctx.SetColor(r.fill)
	ctx.DrawRectangle(x1, y1, x2-x1, y2-y1)
	ctx.Fill()
	ctx.SetColor(r.border)
	ctx.SetLineWidth(1)
	ctx.DrawRectangle(x1, y1, x2-x1, y2-y1)
	ctx.Stroke()
	ctx.Pop()
}
