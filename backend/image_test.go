package backend

import (
	"image/color"
	"testing"
)

func TestImageBackendLifecycle(t *testing.T) {
	bk := NewImageBackend()

	// Drawing before open is a precondition violation.
	if err := bk.PrepareNewFrame(10, 10); err != ErrNotOpen {
		t.Errorf("PrepareNewFrame before Open = %v, want ErrNotOpen", err)
	}
	if err := bk.Close(); err != ErrNotOpen {
		t.Errorf("Close before Open = %v, want ErrNotOpen", err)
	}

	surf := NewImageSurface(10, 10)
	if err := bk.Open(surf); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := bk.Open(surf); err != ErrAlreadyOpen {
		t.Errorf("double Open = %v, want ErrAlreadyOpen", err)
	}

	if err := bk.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := bk.Close(); err != ErrNotOpen {
		t.Errorf("double Close = %v, want ErrNotOpen", err)
	}
	if bk.Surface() != nil {
		t.Error("Surface() after Close is not nil")
	}
}

func TestImageBackendNeedsPixelSurface(t *testing.T) {
	bk := NewImageBackend()
	if err := bk.Open(nil); err != ErrIncompatibleSurface {
		t.Errorf("Open(nil) = %v, want ErrIncompatibleSurface", err)
	}
}

func TestImageBackendFrameResizesSurface(t *testing.T) {
	bk := NewImageBackend()
	surf := NewImageSurface(10, 10)
	if err := bk.Open(surf); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = bk.Close() }()

	if err := bk.PrepareNewFrame(32, 16); err != nil {
		t.Fatalf("PrepareNewFrame: %v", err)
	}
	if surf.Width() != 32 || surf.Height() != 16 {
		t.Errorf("surface = %dx%d after frame, want 32x16", surf.Width(), surf.Height())
	}
	if bk.Context() == nil {
		t.Fatal("Context() = nil after PrepareNewFrame")
	}
}

func TestImageBackendDraws(t *testing.T) {
	bk := NewImageBackend()
	surf := NewImageSurface(8, 8)
	if err := bk.Open(surf); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = bk.Close() }()
	if err := bk.PrepareNewFrame(8, 8); err != nil {
		t.Fatal(err)
	}

	ctx := bk.Context()
	ctx.Clear(color.White)
	ctx.SetColor(color.RGBA{R: 0xff, A: 0xff})
	ctx.DrawRectangle(0, 0, 8, 8)
	ctx.Fill()

	r, _, _, a := surf.Image().At(4, 4).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("pixel (4,4) = r=%#x a=%#x, want opaque red", r, a)
	}
}

func TestImageContextTransformPoint(t *testing.T) {
	bk := NewImageBackend()
	if err := bk.Open(NewImageSurface(10, 10)); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = bk.Close() }()
	if err := bk.PrepareNewFrame(10, 10); err != nil {
		t.Fatal(err)
	}

	ctx := bk.Context()
	ctx.Push()
	ctx.Translate(5, 5)
	ctx.Scale(2, 2)
	if x, y := ctx.TransformPoint(1, 1); x != 7 || y != 7 {
		t.Errorf("TransformPoint(1,1) = (%v,%v), want (7,7)", x, y)
	}
	ctx.Pop()
	if x, y := ctx.TransformPoint(1, 1); x != 1 || y != 1 {
		t.Errorf("TransformPoint after Pop = (%v,%v), want (1,1)", x, y)
	}
}
