package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
)

// GroupRenderer draws one style group during the normal pass. Instances
// are created lazily by the renderer cache, bound to their group, and
// reused across frames until removed.
type GroupRenderer interface {
	// Render draws the group's elements for the current frame.
	Render(bk backend.Backend, cam *gview.Camera, scene gview.Scene)

	// Release drops per-element state (skeletons) when the renderer is
	// removed from the cache.
	Release()
}

// ShadowRenderer is the optional capability a group renderer implements
// when it can take part in the shadow pass. The orchestrator checks for
// the capability by presence, never by concrete type.
type ShadowRenderer interface {
	// RenderShadow draws the group's shadow layer.
	RenderShadow(bk backend.Backend, cam *gview.Camera, scene gview.Scene)
}

// groupCache guarantees at most one renderer instance per style group,
// plus one distinct graph-level background renderer. The cache is owned by
// the top-level renderer rather than stored on the groups themselves, so
// collaborators need no attached-state support.
type groupCache struct {
	graph   GroupRenderer
	byGroup map[string]GroupRenderer
}

func newGroupCache() *groupCache {
	return &groupCache{byGroup: make(map[string]GroupRenderer)}
}

// Renderer returns the cached renderer for the group, creating it on
// first use. Calling it every frame has no observable effect beyond the
// first call for a given group.
func (c *groupCache) Renderer(g gview.StyleGroup) GroupRenderer {
	if g.Kind() == gview.KindGraph {
		if c.graph == nil {
			c.graph = &graphRenderer{group: g}
		}
		return c.graph
	}
	r, ok := c.byGroup[g.ID()]
	if !ok {
		r = newStyleRenderer(g)
		c.byGroup[g.ID()] = r
	}
	return r
}

// RemoveAll clears the graph-level slot and every group slot. After this
// call no previously returned renderer is dereferenced again.
func (c *groupCache) RemoveAll() {
	if c.graph != nil {
		c.graph.Release()
		c.graph = nil
	}
	for id, r := range c.byGroup {
		r.Release()
		delete(c.byGroup, id)
	}
}

// Prune releases renderers whose group no longer exists in the scene, so
// a style change never leaves a renderer bound to a vanished group.
func (c *groupCache) Prune(scene gview.Scene) {
	if len(c.byGroup) == 0 {
		return
	}
	live := make(map[string]bool, len(c.byGroup))
	for _, g := range scene.Groups() {
		live[g.ID()] = true
	}
	for id, r := range c.byGroup {
		if !live[id] {
			r.Release()
			delete(c.byGroup, id)
		}
	}
}

// graphRenderer paints the background from the graph-level group style.
type graphRenderer struct {
	group gview.StyleGroup
}

func (r *graphRenderer) Render(bk backend.Backend, _ *gview.Camera, _ gview.Scene) {
	bk.Context().Clear(r.group.FillColor())
}

func (r *graphRenderer) Release() {}

// styleRenderer is the default renderer for node, edge and decoration
// groups. It keeps one skeleton per element, updated from scene geometry
// each frame, and draws through the backend's context so the same code
// serves every backend.
type styleRenderer struct {
	group gview.StyleGroup
	nodes map[string]backend.Skeleton
	edges map[string]backend.EdgeSkeleton
}

func newStyleRenderer(g gview.StyleGroup) *styleRenderer {
	return &styleRenderer{
		group: g,
		nodes: make(map[string]backend.Skeleton),
		edges: make(map[string]backend.EdgeSkeleton),
	}
}

// Render draws the group in the normal pass.
func (r *styleRenderer) Render(bk backend.Backend, cam *gview.Camera, scene gview.Scene) {
	r.draw(bk, cam, scene, r.group.FillColor(), 0, 0)
}

// RenderShadow draws the group's shadow layer: the same geometry, tinted
// toward black and offset down-right by a few pixels worth of graph units.
func (r *styleRenderer) RenderShadow(bk backend.Backend, cam *gview.Camera, scene gview.Scene) {
	off := shadowOffsetPx / cam.Ratio()
	r.draw(bk, cam, scene, shadowTint(r.group.FillColor()), off, off)
}

// Release drops all cached skeletons.
func (r *styleRenderer) Release() {
	clear(r.nodes)
	clear(r.edges)
}

// shadowOffsetPx is the shadow displacement in pixels.
const shadowOffsetPx = 4.0

func (r *styleRenderer) draw(bk backend.Backend, cam *gview.Camera, scene gview.Scene,
	fill color.Color, dx, dy float64) {
	ctx := bk.Context()
	hairline := 1.0 / cam.Ratio()

	switch r.group.Kind() {
	case gview.KindEdge:
		ctx.SetColor(strokeOr(fill, r.group.StrokeColor(), dx != 0 || dy != 0))
		ctx.SetLineWidth(hairline)
		for _, el := range r.group.Elements() {
			edge, ok := el.(gview.EdgeElement)
			if !ok {
				continue
			}
			sk := r.edgeSkeleton(bk, el.ID())
			if !updateEdge(sk, edge, scene) {
				continue
			}
			x1, y1, x2, y2 := sk.Ends()
			ctx.DrawLine(x1+dx, y1+dy, x2+dx, y2+dy)
		}
		ctx.Stroke()

	case gview.KindDecor:
		ctx.SetColor(fill)
		for _, el := range r.group.Elements() {
			sk := r.nodeSkeleton(bk, el.ID(), false)
			updateNode(sk, el)
			x, y := sk.Position()
			w, h := sk.Size()
			ctx.DrawRectangle(x-w/2+dx, y-h/2+dy, w, h)
		}
		ctx.Fill()

	default: // nodes
		ctx.SetColor(fill)
		for _, el := range r.group.Elements() {
			sk := r.nodeSkeleton(bk, el.ID(), true)
			updateNode(sk, el)
			x, y := sk.Position()
			w, _ := sk.Size()
			ctx.DrawCircle(x+dx, y+dy, w/2)
		}
		ctx.Fill()
		if dx == 0 && dy == 0 {
			ctx.SetColor(r.group.StrokeColor())
			ctx.SetLineWidth(hairline)
			for _, el := range r.group.Elements() {
				pos := el.Position()
				w, _ := el.Size()
				ctx.DrawCircle(pos.X, pos.Y, w/2)
			}
			ctx.Stroke()
		}
	}
}

func (r *styleRenderer) nodeSkeleton(bk backend.Backend, id string, node bool) backend.Skeleton {
	sk, ok := r.nodes[id]
	if !ok {
		if node {
			sk = bk.SkeletonFactory().NewNodeSkeleton()
		} else {
			sk = bk.SkeletonFactory().NewDecorSkeleton()
		}
		r.nodes[id] = sk
	}
	return sk
}

func (r *styleRenderer) edgeSkeleton(bk backend.Backend, id string) backend.EdgeSkeleton {
	sk, ok := r.edges[id]
	if !ok {
		sk = bk.SkeletonFactory().NewEdgeSkeleton()
		r.edges[id] = sk
	}
	return sk
}

func updateNode(sk backend.Skeleton, el gview.Element) {
	pos := el.Position()
	sk.Move(pos.X, pos.Y)
	sk.Resize(el.Size())
}

// updateEdge places the edge skeleton on its endpoints. Returns false for
// dangling edges whose endpoints are gone from the scene.
func updateEdge(sk backend.EdgeSkeleton, edge gview.EdgeElement, scene gview.Scene) bool {
	from, to := edge.Ends()
	a, okA := scene.Element(from)
	b, okB := scene.Element(to)
	if !okA || !okB {
		return false
	}
	pa, pb := a.Position(), b.Position()
	sk.SetEnds(pa.X, pa.Y, pb.X, pb.Y)
	return true
}

// strokeOr picks the stroke color for the normal pass and the shadow fill
// for the shadow pass.
func strokeOr(shadowFill, stroke color.Color, shadow bool) color.Color {
	if shadow {
		return shadowFill
	}
	return stroke
}

// shadowTint darkens a style color toward black in Lab space so shadows
// keep a trace of the group hue.
func shadowTint(c color.Color) color.Color {
	base, ok := colorful.MakeColor(c)
	if !ok {
		return color.Black
	}
	return base.BlendLab(colorful.Color{R: 0, G: 0, B: 0}, 0.55).Clamped()
}

// Ensure the default renderers satisfy their interfaces.
var (
	_ GroupRenderer  = (*graphRenderer)(nil)
	_ GroupRenderer  = (*styleRenderer)(nil)
	_ ShadowRenderer = (*styleRenderer)(nil)
)
