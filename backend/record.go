package backend

import (
	"image/color"
	"math"
)

// NameRecord identifies the recording backend.
const NameRecord = "record"

func init() {
	Register(NameRecord, func() Backend { return NewRecordBackend() })
}

// Op is a single recorded backend or drawing call.
type Op struct {
	// Name is the call name, e.g. "clear", "drawCircle", "push".
	Name string

	// Args are the numeric call arguments; colors are recorded as four
	// 16-bit RGBA components.
	Args []float64
}

// RecordBackend captures every backend and drawing call instead of
// producing pixels. It is used by tests to verify pass ordering and can
// replay a captured frame onto another DrawContext.
type RecordBackend struct {
	ops       []Op
	surface   Surface
	ctx       *recordContext
	antialias bool
	quality   bool
	open      bool
}

// NewRecordBackend creates a closed recording backend.
func NewRecordBackend() *RecordBackend {
	return &RecordBackend{antialias: true, quality: true}
}

// Name returns "record".
func (b *RecordBackend) Name() string { return NameRecord }

func (b *RecordBackend) record(name string, args ...float64) {
	b.ops = append(b.ops, Op{Name: name, Args: args})
}

// Open acquires the surface. Any surface is accepted; the recording
// backend never touches pixels.
func (b *RecordBackend) Open(s Surface) error {
	if b.open {
		return ErrAlreadyOpen
	}
	b.surface = s
	b.open = true
	b.record("open")
	return nil
}

// Close releases the surface.
func (b *RecordBackend) Close() error {
	if !b.open {
		return ErrNotOpen
	}
	b.record("close")
	b.surface = nil
	b.ctx = nil
	b.open = false
	return nil
}

// PrepareNewFrame binds a fresh recording context.
func (b *RecordBackend) PrepareNewFrame(width, height int) error {
	if !b.open {
		return ErrNotOpen
	}
	if b.surface != nil && (b.surface.Width() != width || b.surface.Height() != height) {
		b.surface.Resize(width, height)
	}
	b.record("prepareNewFrame", float64(width), float64(height))
	b.ctx = &recordContext{backend: b, tx: affineIdentity()}
	return nil
}

// SetAntialias records the antialias toggle.
func (b *RecordBackend) SetAntialias(on bool) {
	b.antialias = on
	b.record("setAntialias", boolArg(on))
}

// SetQuality records the quality toggle.
func (b *RecordBackend) SetQuality(on bool) {
	b.quality = on
	b.record("setQuality", boolArg(on))
}

// Surface returns the owned surface, or nil when closed.
func (b *RecordBackend) Surface() Surface { return b.surface }

// Context returns the recording drawing context.
func (b *RecordBackend) Context() DrawContext {
	if b.ctx == nil {
		return nil
	}
	return b.ctx
}

// SkeletonFactory returns the plain-geometry skeleton factory.
func (b *RecordBackend) SkeletonFactory() SkeletonFactory { return baseFactory{} }

// Ops returns the calls recorded so far. The slice is owned by the
// backend; callers must not modify it.
func (b *RecordBackend) Ops() []Op { return b.ops }

// OpNames returns just the recorded call names, in order.
func (b *RecordBackend) OpNames() []string {
	names := make([]string, len(b.ops))
	for i, op := range b.ops {
		names[i] = op.Name
	}
	return names
}

// Reset discards all recorded calls.
func (b *RecordBackend) Reset() { b.ops = b.ops[:0] }

var _ Backend = (*RecordBackend)(nil)

func boolArg(on bool) float64 {
	if on {
		return 1
	}
	return 0
}

func colorArgs(c color.Color) []float64 {
	r, g, bl, a := c.RGBA()
	return []float64{float64(r), float64(g), float64(bl), float64(a)}
}

// affine is a minimal 2x3 transform so the recording context can answer
// TransformPoint without depending on the root package.
type affine struct {
	a, b, c float64
	d, e, f float64
}

func affineIdentity() affine { return affine{a: 1, e: 1} }

func (m affine) mul(o affine) affine {
	return affine{
		a: m.a*o.a + m.b*o.d,
		b: m.a*o.b + m.b*o.e,
		c: m.a*o.c + m.b*o.f + m.c,
		d: m.d*o.a + m.e*o.d,
		e: m.d*o.b + m.e*o.e,
		f: m.d*o.c + m.e*o.f + m.f,
	}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.b*y + m.c, m.d*x + m.e*y + m.f
}

func rotation(angle float64) affine {
	sin, cos := math.Sincos(angle)
	return affine{a: cos, b: -sin, d: sin, e: cos}
}

// recordContext records drawing calls and tracks the transform stack so
// TransformPoint behaves like a real context.
type recordContext struct {
	backend *RecordBackend
	tx      affine
	stack   []affine
}

func (c *recordContext) SetColor(col color.Color) {
	c.backend.record("setColor", colorArgs(col)...)
}

func (c *recordContext) SetLineWidth(w float64) {
	c.backend.record("setLineWidth", w)
}

func (c *recordContext) DrawLine(x1, y1, x2, y2 float64) {
	c.backend.record("drawLine", x1, y1, x2, y2)
}

func (c *recordContext) DrawCircle(cx, cy, r float64) {
	c.backend.record("drawCircle", cx, cy, r)
}

func (c *recordContext) DrawRectangle(x, y, w, h float64) {
	c.backend.record("drawRectangle", x, y, w, h)
}

func (c *recordContext) Fill()   { c.backend.record("fill") }
func (c *recordContext) Stroke() { c.backend.record("stroke") }

func (c *recordContext) Clear(col color.Color) {
	c.backend.record("clear", colorArgs(col)...)
}

func (c *recordContext) Push() {
	c.stack = append(c.stack, c.tx)
	c.backend.record("push")
}

func (c *recordContext) Pop() {
	if n := len(c.stack); n > 0 {
		c.tx = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
	c.backend.record("pop")
}

func (c *recordContext) Translate(x, y float64) {
	c.tx = c.tx.mul(affine{a: 1, e: 1, c: x, f: y})
	c.backend.record("translate", x, y)
}

func (c *recordContext) Scale(sx, sy float64) {
	c.tx = c.tx.mul(affine{a: sx, e: sy})
	c.backend.record("scale", sx, sy)
}

func (c *recordContext) Rotate(angle float64) {
	c.tx = c.tx.mul(rotation(angle))
	c.backend.record("rotate", angle)
}

func (c *recordContext) TransformPoint(x, y float64) (tx, ty float64) {
	return c.tx.apply(x, y)
}

var _ DrawContext = (*recordContext)(nil)
