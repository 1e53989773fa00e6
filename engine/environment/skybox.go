package environment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/Brooklyn-Dev/ray-tracing/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/x448/float16"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when a skybox image decodes to zero pixels.
var ErrEmptyImage = errors.New("skybox image has no pixels")

// skyboxBytesPerPixel is the texel size of an rgba16float texture.
const skyboxBytesPerPixel = 8

var (
	linearLUTOnce sync.Once
	linearLUT     []uint16
)

// srgbToHalf maps a 16-bit sRGB-encoded channel to a linear half float bit pattern.
func srgbToHalf() []uint16 {
	linearLUTOnce.Do(func() {
		linearLUT = make([]uint16, 1<<16)
		for i := range linearLUT {
			linearLUT[i] = float16.Fromfloat32(common.SRGBToLinear(float32(i) / 65535)).Bits()
		}
	})
	return linearLUT
}

// LoadSkybox decodes an equirectangular image into linear rgba16float texels.
// PNG, JPEG, BMP, TIFF and WebP are supported. Images wider or taller than
// maxDimension are scaled down to fit, preserving aspect ratio.
//
// Parameters:
//   - path: the image file to read
//   - maxDimension: the largest texture edge the device accepts, or 0 for no limit
//   - rows: worker used to convert rows in parallel (nil runs inline)
//
// Returns:
//   - common.TextureStagingData: texels ready for upload
//   - error: an error if the file cannot be read or decoded
func LoadSkybox(path string, maxDimension int, rows *common.RowWorker) (common.TextureStagingData, error) {
	f, err := os.Open(path)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open skybox %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode skybox %s: %w", path, err)
	}
	return StageSkybox(img, maxDimension, rows)
}

// StageSkybox converts a decoded image into linear rgba16float texels.
// See LoadSkybox.
func StageSkybox(img image.Image, maxDimension int, rows *common.RowWorker) (common.TextureStagingData, error) {
	src := img.Bounds()
	w, h := fitWithin(src.Dx(), src.Dy(), maxDimension)
	if w == 0 || h == 0 {
		return common.TextureStagingData{}, ErrEmptyImage
	}

	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, src.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	}

	lut := srgbToHalf()
	out := make([]byte, w*h*skyboxBytesPerPixel)
	rows.Run(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := dst.Pix[y*dst.Stride : y*dst.Stride+w*8]
			row := out[y*w*skyboxBytesPerPixel : (y+1)*w*skyboxBytesPerPixel]
			for x := range w {
				px := in[x*8 : x*8+8]
				o := row[x*8 : x*8+8]
				// NRGBA64 stores big-endian channels
				binary.LittleEndian.PutUint16(o[0:], lut[binary.BigEndian.Uint16(px[0:])])
				binary.LittleEndian.PutUint16(o[2:], lut[binary.BigEndian.Uint16(px[2:])])
				binary.LittleEndian.PutUint16(o[4:], lut[binary.BigEndian.Uint16(px[4:])])
				binary.LittleEndian.PutUint16(o[6:], float16.Fromfloat32(1).Bits())
			}
		}
	})

	return common.TextureStagingData{
		Pixels:        out,
		Width:         uint32(w),
		Height:        uint32(h),
		Format:        wgpu.TextureFormatRGBA16Float,
		BytesPerPixel: skyboxBytesPerPixel,
	}, nil
}

// fitWithin scales (w, h) down to fit a square of side limit, keeping aspect ratio.
func fitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
