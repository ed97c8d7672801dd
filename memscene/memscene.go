// Package memscene provides an in-memory scene-graph implementation of
// the gview collaborator interfaces, suitable for demos and tests.
package memscene

import (
	"image/color"

	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
)

// Scene is a mutable in-memory scene. Not safe for concurrent use; mutate
// it from the rendering thread, between frames.
type Scene struct {
	open    bool
	groups  []*Group
	byElem  map[string]*element
	attrs   map[string]string
	factory backend.SkeletonFactory
}

// New creates an empty, detached scene.
func New() *Scene {
	return &Scene{
		byElem: make(map[string]*element),
		attrs:  make(map[string]string),
	}
}

// Open attaches the scene: rendering becomes effective.
func (s *Scene) Open() { s.open = true }

// Close detaches the scene: rendering it becomes a no-op.
func (s *Scene) Close() { s.open = false }

// IsOpen reports whether the scene is attached.
func (s *Scene) IsOpen() bool { return s.open }

// SetAttribute sets a scene attribute (e.g. gview.AttrLog).
func (s *Scene) SetAttribute(name, value string) { s.attrs[name] = value }

// RemoveAttribute removes a scene attribute.
func (s *Scene) RemoveAttribute(name string) { delete(s.attrs, name) }

// Attribute returns the named scene attribute.
func (s *Scene) Attribute(name string) (string, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// AddGroup creates a style group. The first KindGraph group supplies the
// background style.
func (s *Scene) AddGroup(id string, kind gview.GroupKind, z int, shadow bool) *Group {
	g := &Group{
		scene:  s,
		id:     id,
		kind:   kind,
		z:      z,
		shadow: shadow,
		fill:   color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		stroke: color.RGBA{A: 0xff},
	}
	s.groups = append(s.groups, g)
	return g
}

// RemoveGroup deletes a style group and its elements.
func (s *Scene) RemoveGroup(id string) {
	for i, g := range s.groups {
		if g.id != id {
			continue
		}
		for _, el := range g.elements {
			delete(s.byElem, el.id)
		}
		s.groups = append(s.groups[:i], s.groups[i+1:]...)
		return
	}
}

// Groups returns all style groups in insertion order.
func (s *Scene) Groups() []gview.StyleGroup {
	out := make([]gview.StyleGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = g
	}
	return out
}

// GroupOf returns the style group an element belongs to.
func (s *Scene) GroupOf(elementID string) (gview.StyleGroup, bool) {
	el, ok := s.byElem[elementID]
	if !ok {
		return nil, false
	}
	return el.group, true
}

// Element looks up an element by ID.
func (s *Scene) Element(id string) (gview.Element, bool) {
	el, ok := s.byElem[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Bounds computes the bounding region of all node and decoration extents.
func (s *Scene) Bounds() (lo, hi gview.Point) {
	first := true
	for _, g := range s.groups {
		if g.kind != gview.KindNode && g.kind != gview.KindDecor {
			continue
		}
		for _, el := range g.elements {
			l := gview.Pt(el.x-el.w/2, el.y-el.h/2)
			h := gview.Pt(el.x+el.w/2, el.y+el.h/2)
			if first {
				lo, hi, first = l, h, false
				continue
			}
			lo = lo.Min(l)
			hi = hi.Max(h)
		}
	}
	return lo, hi
}

// SetSkeletonFactory installs the geometry-builder factory of the backend
// currently rendering the scene.
func (s *Scene) SetSkeletonFactory(f backend.SkeletonFactory) { s.factory = f }

// SkeletonFactory returns the installed factory, nil before the first
// renderer opens.
func (s *Scene) SkeletonFactory() backend.SkeletonFactory { return s.factory }

var _ gview.Scene = (*Scene)(nil)

// Group is an in-memory style group.
type Group struct {
	scene    *Scene
	id       string
	kind     gview.GroupKind
	z        int
	shadow   bool
	fill     color.Color
	stroke   color.Color
	elements []*element
}

// ID returns the group identifier.
func (g *Group) ID() string { return g.id }

// Kind returns the group kind.
func (g *Group) Kind() gview.GroupKind { return g.kind }

// ZIndex returns the layering index.
func (g *Group) ZIndex() int { return g.z }

// CastsShadow reports whether the group takes part in the shadow pass.
func (g *Group) CastsShadow() bool { return g.shadow }

// FillColor returns the group fill color.
func (g *Group) FillColor() color.Color { return g.fill }

// StrokeColor returns the group border/line color.
func (g *Group) StrokeColor() color.Color { return g.stroke }

// SetColors sets the fill and stroke colors.
func (g *Group) SetColors(fill, stroke color.Color) {
	g.fill, g.stroke = fill, stroke
}

// Elements returns the group members in insertion order.
func (g *Group) Elements() []gview.Element {
	out := make([]gview.Element, len(g.elements))
	for i, el := range g.elements {
		out[i] = el
	}
	return out
}

// AddNode adds a node element of unit size centered at (x, y).
func (g *Group) AddNode(id string, x, y float64) {
	g.add(&element{id: id, x: x, y: y, w: 1, h: 1})
}

// AddDecor adds a decoration element centered at (x, y).
func (g *Group) AddDecor(id string, x, y, w, h float64) {
	g.add(&element{id: id, x: x, y: y, w: w, h: h})
}

// AddEdge adds an edge element between two elements by ID.
func (g *Group) AddEdge(id, from, to string) {
	g.add(&element{id: id, from: from, to: to, edge: true})
}

// MoveElement repositions an element of this group.
func (g *Group) MoveElement(id string, x, y float64) {
	if el, ok := g.scene.byElem[id]; ok && el.group == g {
		el.x, el.y = x, y
	}
}

func (g *Group) add(el *element) {
	el.group = g
	g.elements = append(g.elements, el)
	g.scene.byElem[el.id] = el
}

var _ gview.StyleGroup = (*Group)(nil)

// element backs nodes, decorations and edges.
type element struct {
	group    *Group
	id       string
	x, y     float64
	w, h     float64
	edge     bool
	from, to string
}

// ID returns the element identifier.
func (e *element) ID() string { return e.id }

// Position returns the element center; for edges, the endpoint midpoint.
func (e *element) Position() gview.Point {
	if e.edge {
		a, okA := e.group.scene.Element(e.from)
		b, okB := e.group.scene.Element(e.to)
		if okA && okB {
			pa, pb := a.Position(), b.Position()
			return gview.Pt((pa.X+pb.X)/2, (pa.Y+pb.Y)/2)
		}
	}
	return gview.Pt(e.x, e.y)
}

// Size returns the element extent.
func (e *element) Size() (w, h float64) { return e.w, e.h }

// Ends returns the endpoint IDs of an edge element.
func (e *element) Ends() (from, to string) { return e.from, e.to }

var (
	_ gview.Element     = (*element)(nil)
	_ gview.EdgeElement = (*element)(nil)
)

// Selection is a mutable pixel-space selection region.
type Selection struct {
	active bool
	lo, hi gview.Point
}

// NewSelection creates an inactive selection.
func NewSelection() *Selection { return &Selection{} }

// Begin starts a selection at the given pixel.
func (s *Selection) Begin(x, y float64) {
	s.active = true
	s.lo = gview.Pt(x, y)
	s.hi = s.lo
}

// Grow extends the selection to the given pixel.
func (s *Selection) Grow(x, y float64) { s.hi = gview.Pt(x, y) }

// End deactivates the selection.
func (s *Selection) End() { s.active = false }

// Active reports whether a selection is in progress.
func (s *Selection) Active() bool { return s.active }

// Low returns the low corner.
func (s *Selection) Low() gview.Point { return s.lo }

// High returns the high corner.
func (s *Selection) High() gview.Point { return s.hi }

var _ gview.Selection = (*Selection)(nil)
