package backend

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrAlreadyOpen is returned when Open is called on a backend that
	// already owns a surface. Opening twice without an intervening Close
	// is a precondition violation, never absorbed silently.
	ErrAlreadyOpen = errors.New("backend: surface already open")

	// ErrNotOpen is returned when a frame or drawing operation is
	// attempted before Open, or after Close.
	ErrNotOpen = errors.New("backend: not open")

	// ErrIncompatibleSurface is returned when a backend is opened on a
	// surface it cannot draw to (e.g. a CPU backend on a surface without
	// pixel access).
	ErrIncompatibleSurface = errors.New("backend: incompatible surface")
)

// Backend is the interface for drawing backends.
// It isolates all target-specific drawing-surface management from the
// rendering pipeline: the orchestrator opens it once, binds a fresh frame
// with PrepareNewFrame before any drawing, and closes it exactly once at
// teardown. A backend must not be used after Close.
type Backend interface {
	// Name returns the backend identifier (e.g., "image", "record").
	Name() string

	// Open acquires the drawing surface. Returns ErrAlreadyOpen if the
	// backend already owns a surface.
	Open(s Surface) error

	// Close releases the surface and any target-specific resources.
	// Returns ErrNotOpen if the backend is not open.
	Close() error

	// PrepareNewFrame binds a new raw drawing context sized to the given
	// pixel dimensions. Must be called once per frame before any drawing.
	// Returns ErrNotOpen before Open.
	PrepareNewFrame(width, height int) error

	// SetAntialias toggles anti-aliased drawing. Safe to call every frame.
	SetAntialias(on bool)

	// SetQuality toggles the rendering-quality hint. Safe to call every
	// frame.
	SetQuality(on bool)

	// Surface returns the surface the backend draws to, or nil before Open.
	Surface() Surface

	// Context returns the drawing context bound by the last
	// PrepareNewFrame, or nil before the first frame.
	Context() DrawContext

	// SkeletonFactory returns the factory element renderers use to build
	// backend-independent geometry descriptors.
	SkeletonFactory() SkeletonFactory
}

// Surface is an opaque handle to a pixel surface.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Format returns the pixel format of the surface.
	Format() gputypes.TextureFormat

	// Image returns the backing image for CPU surfaces, nil otherwise.
	Image() *image.RGBA

	// Resize reallocates the surface to the given dimensions.
	// The contents are not preserved.
	Resize(width, height int)
}

// DrawContext is the raw drawing context element renderers and layer hooks
// draw with. State (color, line width, transform) is scoped by Push/Pop.
type DrawContext interface {
	// SetColor sets the color for subsequent fill and stroke operations.
	SetColor(c color.Color)

	// SetLineWidth sets the width for subsequent stroke operations.
	SetLineWidth(w float64)

	// DrawLine adds a line segment to the current path.
	DrawLine(x1, y1, x2, y2 float64)

	// DrawCircle adds a circle to the current path.
	DrawCircle(cx, cy, r float64)

	// DrawRectangle adds an axis-aligned rectangle to the current path.
	DrawRectangle(x, y, w, h float64)

	// Fill fills the current path and clears it.
	Fill()

	// Stroke strokes the current path and clears it.
	Stroke()

	// Clear fills the entire surface with the given color, ignoring the
	// current transform.
	Clear(c color.Color)

	// Push saves the current graphics state (color, line width, transform).
	Push()

	// Pop restores the most recently pushed graphics state.
	Pop()

	// Translate multiplies the current transform by a translation.
	Translate(x, y float64)

	// Scale multiplies the current transform by a scale.
	Scale(sx, sy float64)

	// Rotate multiplies the current transform by a rotation (radians).
	Rotate(angle float64)

	// TransformPoint applies the current transform to a point.
	TransformPoint(x, y float64) (tx, ty float64)
}

// Skeleton is a backend-independent geometric descriptor for one scene
// element: position, size and orientation in graph units. Renderers
// rebuild or update skeletons each frame and hand them to the drawing
// code, keeping geometry computation separate from pixel output.
type Skeleton interface {
	// Move sets the element center.
	Move(x, y float64)

	// Resize sets the element extent.
	Resize(w, h float64)

	// Orient sets the element orientation (radians).
	Orient(angle float64)

	// Position returns the element center.
	Position() (x, y float64)

	// Size returns the element extent.
	Size() (w, h float64)

	// Orientation returns the element orientation (radians).
	Orientation() float64
}

// EdgeSkeleton extends Skeleton with endpoint placement for edges.
// Position reports the midpoint and Size the endpoint bounding extent.
type EdgeSkeleton interface {
	Skeleton

	// SetEnds places the two edge endpoints.
	SetEnds(x1, y1, x2, y2 float64)

	// Ends returns the two edge endpoints.
	Ends() (x1, y1, x2, y2 float64)
}

// SkeletonFactory builds skeletons for a specific backend. The indirection
// lets a backend substitute descriptors carrying target-specific derived
// data without changing any renderer.
type SkeletonFactory interface {
	// NewNodeSkeleton returns a fresh node skeleton.
	NewNodeSkeleton() Skeleton

	// NewEdgeSkeleton returns a fresh edge skeleton.
	NewEdgeSkeleton() EdgeSkeleton

	// NewDecorSkeleton returns a fresh decoration skeleton.
	NewDecorSkeleton() Skeleton
}

// baseSkeleton is the default skeleton carrying plain geometry.
type baseSkeleton struct {
	x, y  float64
	w, h  float64
	angle float64
}

func (s *baseSkeleton) Move(x, y float64)        { s.x, s.y = x, y }
func (s *baseSkeleton) Resize(w, h float64)      { s.w, s.h = w, h }
func (s *baseSkeleton) Orient(angle float64)     { s.angle = angle }
func (s *baseSkeleton) Position() (x, y float64) { return s.x, s.y }
func (s *baseSkeleton) Size() (w, h float64)     { return s.w, s.h }
func (s *baseSkeleton) Orientation() float64     { return s.angle }

// baseEdgeSkeleton is the default edge skeleton.
type baseEdgeSkeleton struct {
	baseSkeleton
	x1, y1, x2, y2 float64
}

func (s *baseEdgeSkeleton) SetEnds(x1, y1, x2, y2 float64) {
	s.x1, s.y1, s.x2, s.y2 = x1, y1, x2, y2
	s.x = (x1 + x2) / 2
	s.y = (y1 + y2) / 2
	s.w = abs(x2 - x1)
	s.h = abs(y2 - y1)
}

func (s *baseEdgeSkeleton) Ends() (x1, y1, x2, y2 float64) {
	return s.x1, s.y1, s.x2, s.y2
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// baseFactory builds the default plain-geometry skeletons. Both concrete
// backends in this package use it.
type baseFactory struct{}

func (baseFactory) NewNodeSkeleton() Skeleton     { return &baseSkeleton{} }
func (baseFactory) NewEdgeSkeleton() EdgeSkeleton { return &baseEdgeSkeleton{} }
func (baseFactory) NewDecorSkeleton() Skeleton    { return &baseSkeleton{} }

// Ensure the base types satisfy their interfaces.
var (
	_ Skeleton        = (*baseSkeleton)(nil)
	_ EdgeSkeleton    = (*baseEdgeSkeleton)(nil)
	_ SkeletonFactory = baseFactory{}
)
