package renderer

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/Brooklyn-Dev/ray-tracing/common"
)

func (r *renderer) SaveImage(path string) error {
	if !r.targets.created {
		return ErrNoDisplaySurface
	}

	rb, err := r.backend.ReadDisplaySurface()
	if err != nil {
		return fmt.Errorf("failed to read display surface: %w", err)
	}
	img, err := readbackImage(rb, r.rows)
	if err != nil {
		return err
	}
	if err := writePNG(path, img); err != nil {
		return err
	}

	log.Printf("[Renderer] Saved %dx%d image (frame %d) to %s", rb.Width, rb.Height, r.acc.frame-1, path)
	return nil
}

// readbackImage strips row padding and flips bottom-up readbacks so row 0 is the top of the image.
func readbackImage(rb Readback, rows *common.RowWorker) (*image.NRGBA, error) {
	if rb.Width <= 0 || rb.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rb.Width, rb.Height)
	}
	rowBytes := rb.Width * 4
	stride := common.Coalesce(rb.Stride, rowBytes)
	if stride < rowBytes || len(rb.Pixels) < stride*(rb.Height-1)+rowBytes {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d with stride %d",
			ErrInvalidDimensions, len(rb.Pixels), rb.Width, rb.Height, stride)
	}

	img := image.NewNRGBA(image.Rect(0, 0, rb.Width, rb.Height))
	rows.Run(rb.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src := y
			if rb.BottomUp {
				src = rb.Height - 1 - y
			}
			copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], rb.Pixels[src*stride:src*stride+rowBytes])
		}
	})
	return img, nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
