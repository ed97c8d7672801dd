package backend

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/gogpu/gputypes"
)

// NameImage identifies the CPU image backend.
const NameImage = "image"

func init() {
	Register(NameImage, func() Backend { return NewImageBackend() })
}

// ImageSurface is a CPU-backed surface over *image.RGBA.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface creates a CPU surface with the given pixel dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int { return s.img.Bounds().Dy() }

// Format returns the pixel format (RGBA8).
func (s *ImageSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the backing image. The returned image shares memory with
// the surface.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Resize reallocates the surface. The contents are not preserved.
func (s *ImageSurface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ Surface = (*ImageSurface)(nil)

// ImageBackend draws to a CPU ImageSurface through a fogleman/gg context.
type ImageBackend struct {
	surface   Surface
	ctx       *imageContext
	antialias bool
	quality   bool
	open      bool
}

// NewImageBackend creates a closed image backend with antialias and
// quality enabled.
func NewImageBackend() *ImageBackend {
	return &ImageBackend{antialias: true, quality: true}
}

// Name returns "image".
func (b *ImageBackend) Name() string { return NameImage }

// Open acquires the surface. The surface must provide CPU pixel access.
func (b *ImageBackend) Open(s Surface) error {
	if b.open {
		return ErrAlreadyOpen
	}
	if s == nil || s.Image() == nil {
		return ErrIncompatibleSurface
	}
	b.surface = s
	b.open = true
	return nil
}

// Close releases the surface and the frame context.
func (b *ImageBackend) Close() error {
	if !b.open {
		return ErrNotOpen
	}
	b.surface = nil
	b.ctx = nil
	b.open = false
	return nil
}

// PrepareNewFrame binds a fresh drawing context for the frame, resizing
// the surface if the requested dimensions changed.
func (b *ImageBackend) PrepareNewFrame(width, height int) error {
	if !b.open {
		return ErrNotOpen
	}
	if b.surface.Width() != width || b.surface.Height() != height {
		b.surface.Resize(width, height)
	}
	dc := gg.NewContextForRGBA(b.surface.Image())
	if b.quality {
		dc.SetLineCapRound()
		dc.SetLineJoinRound()
	} else {
		dc.SetLineCapButt()
	}
	b.ctx = &imageContext{dc: dc, backend: b}
	return nil
}

// SetAntialias toggles coordinate snapping: with antialias off, draw calls
// snap to pixel centers so edges land on whole pixels.
func (b *ImageBackend) SetAntialias(on bool) { b.antialias = on }

// SetQuality toggles the quality hint (round vs. butt caps on the next
// frame's context).
func (b *ImageBackend) SetQuality(on bool) { b.quality = on }

// Surface returns the owned surface, or nil when closed.
func (b *ImageBackend) Surface() Surface { return b.surface }

// Context returns the drawing context bound by the last PrepareNewFrame.
func (b *ImageBackend) Context() DrawContext {
	if b.ctx == nil {
		return nil
	}
	return b.ctx
}

// SkeletonFactory returns the plain-geometry skeleton factory.
func (b *ImageBackend) SkeletonFactory() SkeletonFactory { return baseFactory{} }

var _ Backend = (*ImageBackend)(nil)

// imageContext adapts a fogleman/gg context to DrawContext.
type imageContext struct {
	dc      *gg.Context
	backend *ImageBackend
}

// snap rounds a coordinate to the pixel grid when antialiasing is off.
func (c *imageContext) snap(v float64) float64 {
	if c.backend.antialias {
		return v
	}
	return math.Round(v)
}

func (c *imageContext) SetColor(col color.Color) { c.dc.SetColor(col) }
func (c *imageContext) SetLineWidth(w float64)   { c.dc.SetLineWidth(w) }

func (c *imageContext) DrawLine(x1, y1, x2, y2 float64) {
	c.dc.DrawLine(c.snap(x1), c.snap(y1), c.snap(x2), c.snap(y2))
}

func (c *imageContext) DrawCircle(cx, cy, r float64) {
	c.dc.DrawCircle(c.snap(cx), c.snap(cy), r)
}

func (c *imageContext) DrawRectangle(x, y, w, h float64) {
	c.dc.DrawRectangle(c.snap(x), c.snap(y), w, h)
}

func (c *imageContext) Fill()   { c.dc.Fill() }
func (c *imageContext) Stroke() { c.dc.Stroke() }

func (c *imageContext) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *imageContext) Push() { c.dc.Push() }
func (c *imageContext) Pop()  { c.dc.Pop() }

func (c *imageContext) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *imageContext) Scale(sx, sy float64)   { c.dc.Scale(sx, sy) }
func (c *imageContext) Rotate(angle float64)   { c.dc.Rotate(angle) }

func (c *imageContext) TransformPoint(x, y float64) (tx, ty float64) {
	return c.dc.TransformPoint(x, y)
}

var _ DrawContext = (*imageContext)(nil)
