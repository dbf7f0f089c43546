package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/rendercore/gpucore"
)

// Errors returned by DecodeCube.
var (
	// ErrDecode is returned when the stream is not a decodable image.
	ErrDecode = errors.New("texture: decode failed")

	// ErrLayout is returned when the image dimensions match no cube layout.
	ErrLayout = errors.New("texture: unsupported cube layout")
)

// Layout is the arrangement of cube faces inside a single image.
type Layout uint8

// Supported layouts.
const (
	// LayoutSingle is one square face used for all six sides.
	LayoutSingle Layout = iota

	// LayoutHorizontalStrip is 6:1 in +X -X +Y -Y +Z -Z order.
	LayoutHorizontalStrip

	// LayoutVerticalStrip is 1:6 in +X -X +Y -Y +Z -Z order.
	LayoutVerticalStrip

	// LayoutHorizontalCross is 4:3:
	//
	//	    +Y
	//	-X  +Z  +X  -Z
	//	    -Y
	LayoutHorizontalCross

	// LayoutVerticalCross is 3:4 with -Z stored upside down:
	//
	//	    +Y
	//	-X  +Z  +X
	//	    -Y
	//	    -Z
	LayoutVerticalCross
)

var layoutNames = [...]string{
	LayoutSingle:          "single",
	LayoutHorizontalStrip: "horizontal-strip",
	LayoutVerticalStrip:   "vertical-strip",
	LayoutHorizontalCross: "horizontal-cross",
	LayoutVerticalCross:   "vertical-cross",
}

// String returns the layout name.
func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "unknown"
}

// cell is a face position in face-size units.
type cell struct {
	col, row int
	flip     bool
}

// faceCells gives each layout's cell per gpucore.CubeFace.
var faceCells = map[Layout][6]cell{
	LayoutSingle:          {{0, 0, false}, {0, 0, false}, {0, 0, false}, {0, 0, false}, {0, 0, false}, {0, 0, false}},
	LayoutHorizontalStrip: {{0, 0, false}, {1, 0, false}, {2, 0, false}, {3, 0, false}, {4, 0, false}, {5, 0, false}},
	LayoutVerticalStrip:   {{0, 0, false}, {0, 1, false}, {0, 2, false}, {0, 3, false}, {0, 4, false}, {0, 5, false}},
	LayoutHorizontalCross: {{2, 1, false}, {0, 1, false}, {1, 0, false}, {1, 2, false}, {1, 1, false}, {3, 1, false}},
	LayoutVerticalCross:   {{2, 1, false}, {0, 1, false}, {1, 0, false}, {1, 2, false}, {1, 1, false}, {1, 3, true}},
}

// DetectLayout returns the layout and face size for an image of w×h pixels.
func DetectLayout(w, h int) (Layout, int, error) {
	switch {
	case w <= 0 || h <= 0:
	case w == h:
		return LayoutSingle, w, nil
	case w == 6*h:
		return LayoutHorizontalStrip, h, nil
	case h == 6*w:
		return LayoutVerticalStrip, w, nil
	case w%4 == 0 && 3*w == 4*h:
		return LayoutHorizontalCross, w / 4, nil
	case w%3 == 0 && 4*w == 3*h:
		return LayoutVerticalCross, w / 3, nil
	}
	return 0, 0, fmt.Errorf("%w: %dx%d", ErrLayout, w, h)
}

type decodeOptions struct {
	maxFaceSize int
}

// DecodeOption configures DecodeCube.
type DecodeOption func(*decodeOptions)

// WithMaxFaceSize downscales faces larger than n pixels with Catmull-Rom
// filtering. Zero disables the limit.
func WithMaxFaceSize(n int) DecodeOption {
	return func(o *decodeOptions) {
		o.maxFaceSize = n
	}
}

// DecodeCube decodes r and splits it into six RGBA8 faces.
func DecodeCube(r io.Reader, opts ...DecodeOption) (*gpucore.CubeImage, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b := src.Bounds()
	layout, size, err := DetectLayout(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	out := size
	if o.maxFaceSize > 0 && out > o.maxFaceSize {
		out = o.maxFaceSize
	}

	img := &gpucore.CubeImage{Size: out}
	for face, c := range faceCells[layout] {
		sr := image.Rect(c.col*size, c.row*size, (c.col+1)*size, (c.row+1)*size).Add(b.Min)
		dst := image.NewRGBA(image.Rect(0, 0, out, out))
		if out == size {
			draw.Copy(dst, image.Point{}, src, sr, draw.Src, nil)
		} else {
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
		}
		if c.flip {
			rotate180(dst)
		}
		img.Faces[face] = dst.Pix
	}
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("texture: %s %s: %w", format, layout, err)
	}
	return img, nil
}

// rotate180 rotates a tightly packed RGBA image in place.
func rotate180(m *image.RGBA) {
	px := m.Pix
	n := len(px) / 4
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		a, b := px[i*4:i*4+4], px[j*4:j*4+4]
		for k := range 4 {
			a[k], b[k] = b[k], a[k]
		}
	}
}
