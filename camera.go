package gview

import (
	"errors"
	"math"

	"github.com/gogv/gview/backend"
)

// Camera errors.
var (
	// ErrNoBackend is returned when a view is pushed before the camera
	// is bound to a backend with a prepared frame.
	ErrNoBackend = errors.New("gview: camera is not bound to a backend")

	// ErrUnbalancedView is returned by PopView when no matching PushView
	// is outstanding.
	ErrUnbalancedView = errors.New("gview: PopView without matching PushView")
)

// Camera maintains the mapping between graph units and pixels and exposes
// it to every renderer in a frame.
//
// By default the camera fits the scene bounds into the viewport
// (zoom-to-fit with aspect-preserving centering). Explicit zoom, center or
// rotation override the fit until Reset.
//
// A Camera is created once per top-level renderer and mutated every frame:
// SetBackend, SetBounds and SetViewport must run before any
// projection-dependent rendering. PushView/PopView apply and revert the
// view transform on the backend's drawing context; they must be balanced
// within a frame.
type Camera struct {
	bk backend.Backend

	lo, hi Point // scene bounds, graph units
	vw, vh float64

	zoom       float64
	rotation   float64
	center     Point
	autoCenter bool

	ratio        float64 // pixels per graph unit
	visLo, visHi Point
	tx, inv      Matrix

	depth int
}

// NewCamera creates a camera in zoom-to-fit mode.
func NewCamera() *Camera {
	c := &Camera{zoom: 1, autoCenter: true}
	c.recompute()
	return c
}

// SetBackend binds the camera to the backend whose drawing context it
// transforms. Called once per frame before any push.
func (c *Camera) SetBackend(bk backend.Backend) { c.bk = bk }

// SetBounds recomputes the logical bounding region from the current scene
// geometry. Must be called before any projection-dependent rendering in a
// frame.
func (c *Camera) SetBounds(scene Scene) {
	c.lo, c.hi = scene.Bounds()
	c.recompute()
}

// SetViewport records the target pixel dimensions.
func (c *Camera) SetViewport(width, height float64) {
	c.vw, c.vh = width, height
	c.recompute()
}

// SetZoom sets an explicit zoom factor relative to the fit scale.
// Values <= 0 are ignored.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
	c.recompute()
}

// SetRotation sets the view rotation in radians.
func (c *Camera) SetRotation(angle float64) {
	c.rotation = angle
	c.recompute()
}

// SetCenter sets an explicit view center in graph units, disabling
// automatic centering on the scene bounds.
func (c *Camera) SetCenter(p Point) {
	c.center = p
	c.autoCenter = false
	c.recompute()
}

// Reset restores zoom-to-fit: zoom 1, no rotation, automatic centering.
func (c *Camera) Reset() {
	c.zoom = 1
	c.rotation = 0
	c.autoCenter = true
	c.recompute()
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// Rotation returns the view rotation in radians.
func (c *Camera) Rotation() float64 { return c.rotation }

// Center returns the view center in graph units.
func (c *Camera) Center() Point { return c.center }

// Ratio returns the pixels-per-graph-unit ratio.
func (c *Camera) Ratio() float64 { return c.ratio }

// VisibleLow returns the low corner of the visible region in graph units.
func (c *Camera) VisibleLow() Point { return c.visLo }

// VisibleHigh returns the high corner of the visible region in graph units.
func (c *Camera) VisibleHigh() Point { return c.visHi }

// ViewportSize returns the viewport dimensions in pixels.
func (c *Camera) ViewportSize() (w, h float64) { return c.vw, c.vh }

// Transform maps a graph-unit point to pixels under the current projection.
func (c *Camera) Transform(p Point) Point { return c.tx.TransformPoint(p) }

// InverseTransform maps a pixel point to graph units.
func (c *Camera) InverseTransform(p Point) Point { return c.inv.TransformPoint(p) }

// recompute rebuilds the projection from bounds, viewport and the explicit
// camera state. Fit scale is min(vw/bw, vh/bh); degenerate extents count
// as one graph unit so a single-element scene still projects.
func (c *Camera) recompute() {
	bw := c.hi.X - c.lo.X
	bh := c.hi.Y - c.lo.Y
	if bw <= 0 {
		bw = 1
	}
	if bh <= 0 {
		bh = 1
	}

	fit := 1.0
	if c.vw > 0 && c.vh > 0 {
		fit = math.Min(c.vw/bw, c.vh/bh)
	}
	c.ratio = fit * c.zoom

	if c.autoCenter {
		c.center = Point{X: (c.lo.X + c.hi.X) / 2, Y: (c.lo.Y + c.hi.Y) / 2}
	}

	c.tx = Translate(c.vw/2, c.vh/2).
		Multiply(Rotate(c.rotation)).
		Multiply(Scale(c.ratio, c.ratio)).
		Multiply(Translate(-c.center.X, -c.center.Y))
	c.inv = c.tx.Invert()

	// Visible region: inverse-project the viewport corners. Rotation
	// makes this a conservative axis-aligned cover.
	corners := [4]Point{
		c.inv.TransformPoint(Pt(0, 0)),
		c.inv.TransformPoint(Pt(c.vw, 0)),
		c.inv.TransformPoint(Pt(0, c.vh)),
		c.inv.TransformPoint(Pt(c.vw, c.vh)),
	}
	c.visLo, c.visHi = corners[0], corners[0]
	for _, p := range corners[1:] {
		c.visLo = c.visLo.Min(p)
		c.visHi = c.visHi.Max(p)
	}
}

// PushView applies the camera transform onto the backend's drawing
// context. Every PushView in a frame must be matched by exactly one
// PopView before the frame ends.
func (c *Camera) PushView() error {
	if c.bk == nil || c.bk.Context() == nil {
		return ErrNoBackend
	}
	ctx := c.bk.Context()
	ctx.Push()
	ctx.Translate(c.vw/2, c.vh/2)
	ctx.Rotate(c.rotation)
	ctx.Scale(c.ratio, c.ratio)
	ctx.Translate(-c.center.X, -c.center.Y)
	c.depth++
	return nil
}

// PopView reverts the transform applied by the matching PushView,
// restoring the drawing context state exactly as it was before the push.
func (c *Camera) PopView() error {
	if c.depth == 0 {
		return ErrUnbalancedView
	}
	c.bk.Context().Pop()
	c.depth--
	return nil
}

// Depth returns the current view nesting depth. It must be zero at frame
// boundaries.
func (c *Camera) Depth() int { return c.depth }

// FindElementAt returns the node or decoration whose drawn extent contains
// the given pixel, under the current projection. When several elements
// contain the pixel the one whose center is nearest wins. Returns nil when
// nothing is hit.
func (c *Camera) FindElementAt(scene Scene, x, y float64) Element {
	p := c.InverseTransform(Pt(x, y))

	var best Element
	bestDist := math.Inf(1)
	for _, g := range scene.Groups() {
		if g.Kind() != KindNode && g.Kind() != KindDecor {
			continue
		}
		for _, el := range g.Elements() {
			pos := el.Position()
			w, h := el.Size()
			if math.Abs(p.X-pos.X) > w/2 || math.Abs(p.Y-pos.Y) > h/2 {
				continue
			}
			if d := p.Sub(pos).Length(); d < bestDist {
				best, bestDist = el, d
			}
		}
	}
	return best
}

// AllElementsIn returns the elements intersecting the given pixel
// rectangle under the current projection. Nodes and decorations intersect
// by extent; an edge is included when both its endpoints lie inside.
func (c *Camera) AllElementsIn(scene Scene, x1, y1, x2, y2 float64) []Element {
	corners := [4]Point{
		c.InverseTransform(Pt(x1, y1)),
		c.InverseTransform(Pt(x2, y1)),
		c.InverseTransform(Pt(x1, y2)),
		c.InverseTransform(Pt(x2, y2)),
	}
	lo, hi := corners[0], corners[0]
	for _, p := range corners[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	var hits []Element
	for _, g := range scene.Groups() {
		switch g.Kind() {
		case KindNode, KindDecor:
			for _, el := range g.Elements() {
				pos := el.Position()
				w, h := el.Size()
				if pos.X+w/2 < lo.X || pos.X-w/2 > hi.X ||
					pos.Y+h/2 < lo.Y || pos.Y-h/2 > hi.Y {
					continue
				}
				hits = append(hits, el)
			}
		case KindEdge:
			for _, el := range g.Elements() {
				edge, ok := el.(EdgeElement)
				if !ok {
					continue
				}
				from, to := edge.Ends()
				if inRect(scene, from, lo, hi) && inRect(scene, to, lo, hi) {
					hits = append(hits, el)
				}
			}
		}
	}
	return hits
}

func inRect(scene Scene, id string, lo, hi Point) bool {
	el, ok := scene.Element(id)
	if !ok {
		return false
	}
	p := el.Position()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}
