package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/gogv/gview/backend"
)

// jpegQuality is used for JPEG screenshot encoding.
const jpegQuality = 92

// Screenshot renders one offscreen frame at the given pixel size and
// writes it to filename. The encoder is chosen by the filename suffix
// (case-insensitive): "png" keeps the alpha channel, "bmp" and
// "jpg"/"jpeg" are opaque (flattened onto the background color). An
// unrecognized suffix falls back to JPEG and appends ".jpg" to the
// filename. I/O errors propagate to the caller; the renderer's own state
// is untouched.
func (r *Renderer) Screenshot(filename string, width, height int) error {
	surf := backend.NewImageSurface(width, height)
	off := New(r.scene,
		WithBackend(backend.NewImageBackend()),
		WithConfig(r.cfg),
		WithBackLayer(r.back),
		WithForeLayer(r.fore),
	)
	if err := off.Open(surf); err != nil {
		return fmt.Errorf("render: screenshot: %w", err)
	}
	err := off.Render(width, height)
	if cerr := off.Close(); err == nil {
		err = cerr
	}
	// The offscreen pass installed its own geometry factory on the scene;
	// put this renderer's back.
	if r.open {
		r.scene.SetSkeletonFactory(r.bk.SkeletonFactory())
	}
	if err != nil {
		return fmt.Errorf("render: screenshot: %w", err)
	}

	bg, cfgErr := r.cfg.BackgroundColor()
	if cfgErr != nil {
		bg = image.White.C
	}
	return writeImage(filename, surf.Image(), func(w io.Writer, img *image.RGBA) error {
		flat := image.NewRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), img, image.Point{}, draw.Over)
		return jpeg.Encode(w, flat, &jpeg.Options{Quality: jpegQuality})
	})
}

// writeImage encodes img to filename by suffix. encodeJPEG handles both
// the jpg/jpeg suffixes and the fallback for unrecognized ones.
func writeImage(filename string, img *image.RGBA, encodeJPEG func(io.Writer, *image.RGBA) error) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var encode func(io.Writer) error
	switch ext {
	case "png":
		encode = func(w io.Writer) error { return png.Encode(w, img) }
	case "bmp":
		encode = func(w io.Writer) error { return bmp.Encode(w, img) }
	case "jpg", "jpeg":
		encode = func(w io.Writer) error { return encodeJPEG(w, img) }
	default:
		filename += ".jpg"
		encode = func(w io.Writer) error { return encodeJPEG(w, img) }
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("render: screenshot: %w", err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: screenshot encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: screenshot: %w", err)
	}
	return nil
}
