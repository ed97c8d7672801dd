package gview

import (
	"image/color"

	"github.com/gogv/gview/backend"
)

// Scene attributes recognized by the rendering pipeline. They are re-read
// every frame, so attribute changes take effect on the next frame.
const (
	// AttrLog names a file to receive per-frame timing lines. Presence
	// enables frame instrumentation; absence disables it.
	AttrLog = "ui.log"

	// AttrAntialias toggles anti-aliased drawing ("true"/"false").
	AttrAntialias = "ui.antialias"

	// AttrQuality toggles the rendering-quality hint ("true"/"false").
	AttrQuality = "ui.quality"
)

// GroupKind discriminates the kinds of style groups.
type GroupKind uint8

const (
	// KindGraph is the graph-level group: its style paints the
	// background. Never part of the z-ordered element passes.
	KindGraph GroupKind = iota

	// KindNode groups node elements.
	KindNode

	// KindEdge groups edge elements.
	KindEdge

	// KindDecor groups decoration elements attached to the scene.
	KindDecor
)

// String returns the kind name.
func (k GroupKind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	case KindDecor:
		return "decor"
	}
	return "unknown"
}

// Element is one drawable member of a style group. Positions and sizes
// are in graph units.
type Element interface {
	// ID returns the element identifier, unique within the scene.
	ID() string

	// Position returns the element center.
	Position() Point

	// Size returns the element extent.
	Size() (w, h float64)
}

// EdgeElement is an element connecting two other elements. Its Position
// is the midpoint of its endpoints.
type EdgeElement interface {
	Element

	// Ends returns the endpoint element IDs.
	Ends() (from, to string)
}

// StyleGroup is a set of scene elements sharing one visual rule set.
// Groups are external collaborators; the pipeline only reads them.
type StyleGroup interface {
	// ID returns the group identifier, unique within the scene.
	ID() string

	// Kind returns the group kind. KindGraph marks the single
	// background group.
	Kind() GroupKind

	// ZIndex returns the layering index. The normal pass draws groups
	// in non-decreasing z-index order.
	ZIndex() int

	// CastsShadow reports whether the group takes part in the shadow
	// pass.
	CastsShadow() bool

	// FillColor returns the fill color of the group's elements. For the
	// graph group this is the background color.
	FillColor() color.Color

	// StrokeColor returns the border/line color of the group's elements.
	StrokeColor() color.Color

	// Elements returns the group members. Iteration order within a
	// group is not guaranteed stable across frames.
	Elements() []Element
}

// Scene is the scene-graph collaborator the pipeline renders. Its
// internals (attribute change notification, style matching) are outside
// this module.
type Scene interface {
	// IsOpen reports whether the scene is attached. Rendering a
	// detached scene is a no-op.
	IsOpen() bool

	// Bounds computes the current logical bounding region of the scene
	// in graph units.
	Bounds() (lo, hi Point)

	// Groups returns all style groups, including the graph group.
	Groups() []StyleGroup

	// GroupOf returns the style group an element currently belongs to.
	GroupOf(elementID string) (StyleGroup, bool)

	// Element looks up an element by ID.
	Element(id string) (Element, bool)

	// Attribute returns the named scene attribute.
	Attribute(name string) (string, bool)

	// SetSkeletonFactory installs the geometry-builder factory of the
	// backend currently rendering the scene.
	SetSkeletonFactory(f backend.SkeletonFactory)
}

// Selection is the interactive region-of-interest collaborator. Corners
// are in pixel coordinates.
type Selection interface {
	// Active reports whether a selection is in progress.
	Active() bool

	// Low returns the low corner of the selection region.
	Low() Point

	// High returns the high corner of the selection region.
	High() Point
}
