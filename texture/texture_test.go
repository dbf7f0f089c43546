package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/recording"
)

// faceColors gives each cube face a distinct color, indexed by gpucore.CubeFace.
var faceColors = [6]color.RGBA{
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
}

// buildLayout paints an image in layout with face size s, each face a solid
// color from faceColors.
func buildLayout(layout Layout, s int) *image.RGBA {
	cols, rows := 1, 1
	switch layout {
	case LayoutHorizontalStrip:
		cols = 6
	case LayoutVerticalStrip:
		rows = 6
	case LayoutHorizontalCross:
		cols, rows = 4, 3
	case LayoutVerticalCross:
		cols, rows = 3, 4
	}
	m := image.NewRGBA(image.Rect(0, 0, cols*s, rows*s))
	for face, c := range faceCells[layout] {
		for y := c.row * s; y < (c.row+1)*s; y++ {
			for x := c.col * s; x < (c.col+1)*s; x++ {
				m.SetRGBA(x, y, faceColors[face])
			}
		}
	}
	return m
}

func encodePNG(t *testing.T, m image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func facePixel(img *gpucore.CubeImage, face gpucore.CubeFace, x, y int) color.RGBA {
	i := (y*img.Size + x) * 4
	p := img.Faces[face][i : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		w, h     int
		want     Layout
		wantSize int
		wantErr  bool
	}{
		{16, 16, LayoutSingle, 16, false},
		{96, 16, LayoutHorizontalStrip, 16, false},
		{16, 96, LayoutVerticalStrip, 16, false},
		{64, 48, LayoutHorizontalCross, 16, false},
		{48, 64, LayoutVerticalCross, 16, false},
		{50, 30, 0, 0, true},
		{0, 0, 0, 0, true},
	}
	for _, tt := range tests {
		got, size, err := DetectLayout(tt.w, tt.h)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectLayout(%d, %d) err = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrLayout) {
				t.Errorf("err = %v, want ErrLayout", err)
			}
			continue
		}
		if got != tt.want || size != tt.wantSize {
			t.Errorf("DetectLayout(%d, %d) = %v/%d, want %v/%d", tt.w, tt.h, got, size, tt.want, tt.wantSize)
		}
	}
}

func TestDecodeCubeLayouts(t *testing.T) {
	for _, layout := range []Layout{LayoutHorizontalStrip, LayoutVerticalStrip, LayoutHorizontalCross, LayoutVerticalCross} {
		t.Run(layout.String(), func(t *testing.T) {
			data := encodePNG(t, buildLayout(layout, 4))
			img, err := DecodeCube(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("DecodeCube: %v", err)
			}
			if img.Size != 4 {
				t.Fatalf("Size = %d, want 4", img.Size)
			}
			for face := range 6 {
				if got := facePixel(img, gpucore.CubeFace(face), 1, 2); got != faceColors[face] {
					t.Errorf("face %d = %v, want %v", face, got, faceColors[face])
				}
			}
		})
	}
}

func TestDecodeCubeVerticalCrossRotatesNegativeZ(t *testing.T) {
	m := buildLayout(LayoutVerticalCross, 2)
	// Mark the top-left texel of the -Z cell; after rotation it is bottom-right.
	marker := color.RGBA{1, 2, 3, 255}
	m.SetRGBA(2, 6, marker)

	img, err := DecodeCube(bytes.NewReader(encodePNG(t, m)))
	if err != nil {
		t.Fatal(err)
	}
	if got := facePixel(img, gpucore.FaceNegativeZ, 1, 1); got != marker {
		t.Errorf("-Z bottom-right = %v, want marker %v", got, marker)
	}
	if got := facePixel(img, gpucore.FaceNegativeZ, 0, 0); got != faceColors[gpucore.FaceNegativeZ] {
		t.Errorf("-Z top-left = %v, want face color", got)
	}
}

func TestDecodeCubeFormats(t *testing.T) {
	m := buildLayout(LayoutHorizontalStrip, 2)
	tests := []struct {
		name   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", png.Encode},
		{"bmp", bmp.Encode},
		{"tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, m); err != nil {
				t.Fatal(err)
			}
			img, err := DecodeCube(&buf)
			if err != nil {
				t.Fatalf("DecodeCube: %v", err)
			}
			if got := facePixel(img, gpucore.FacePositiveY, 0, 0); got != faceColors[gpucore.FacePositiveY] {
				t.Errorf("+Y = %v, want %v", got, faceColors[gpucore.FacePositiveY])
			}
		})
	}
}

func TestDecodeCubeMaxFaceSize(t *testing.T) {
	data := encodePNG(t, buildLayout(LayoutHorizontalStrip, 8))
	img, err := DecodeCube(bytes.NewReader(data), WithMaxFaceSize(4))
	if err != nil {
		t.Fatal(err)
	}
	if img.Size != 4 {
		t.Errorf("Size = %d, want 4", img.Size)
	}
	if err := img.Validate(); err != nil {
		t.Error(err)
	}
}

func TestDecodeCubeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not an image", []byte("definitely not pixels"), ErrDecode},
		{"bad aspect", nil, ErrLayout},
	}
	tests[1].data = encodePNG(t, image.NewRGBA(image.Rect(0, 0, 5, 3)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCube(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestViewProxy(t *testing.T) {
	rec := recording.NewRecorder()
	p := NewViewProxy(rec, "sky")
	data := encodePNG(t, buildLayout(LayoutHorizontalStrip, 2))

	if err := p.CreateView(nil); err != nil {
		t.Fatalf("CreateView(nil) = %v", err)
	}
	if p.View() != nil {
		t.Error("nil stream should leave no view")
	}

	stream := bytes.NewReader(data)
	if err := p.CreateView(stream); err != nil {
		t.Fatalf("CreateView: %v", err)
	}
	first := p.View()
	if first == nil {
		t.Fatal("no view after CreateView")
	}

	// The same stream again: rewound and re-uploaded in place.
	if err := p.CreateView(stream); err != nil {
		t.Fatalf("CreateView again: %v", err)
	}
	if p.View() == first {
		t.Error("CreateView should replace the view")
	}
	if got := rec.LiveResources(); got != 1 {
		t.Errorf("LiveResources = %d, want 1 (old view released)", got)
	}
	if p.Generation() != 3 {
		t.Errorf("Generation = %d, want 3", p.Generation())
	}

	if err := p.CreateView(strings.NewReader("junk")); !errors.Is(err, ErrDecode) {
		t.Errorf("junk err = %v, want ErrDecode", err)
	}
	if p.View() != nil || rec.LiveResources() != 0 {
		t.Error("failed CreateView should leave the proxy empty")
	}

	boom := errors.New("device lost")
	rec.FailNext(recording.CmdCreateCubeTexture, boom)
	if err := p.CreateView(bytes.NewReader(data)); !errors.Is(err, boom) {
		t.Errorf("upload err = %v, want %v", err, boom)
	}

	_ = p.CreateView(bytes.NewReader(data))
	p.Release()
	p.Release()
	if rec.LiveResources() != 0 {
		t.Errorf("LiveResources after Release = %d, want 0", rec.LiveResources())
	}
}

type funcReader struct {
	fn func()
}

func (funcReader) Read([]byte) (int, error) { return 0, io.EOF }

type sliceReader []byte

func (sliceReader) Read([]byte) (int, error) { return 0, io.EOF }

type ifaceReader struct {
	v any
}

func (ifaceReader) Read([]byte) (int, error) { return 0, io.EOF }

func TestSameStream(t *testing.T) {
	a := bytes.NewReader([]byte("a"))
	b := bytes.NewReader([]byte("a"))
	tests := []struct {
		name string
		x, y io.Reader
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and reader", nil, a, false},
		{"same pointer", a, a, true},
		{"different pointers", a, b, false},
		{"different types", a, strings.NewReader("a"), false},
		{"non-nil func field", funcReader{fn: func() {}}, funcReader{fn: func() {}}, false},
		{"equal slice values", sliceReader{1}, sliceReader{1}, true},
		{"different slice values", sliceReader{1}, sliceReader{2}, false},
		{"comparable struct holding equal slices", ifaceReader{v: []int{1}}, ifaceReader{v: []int{1}}, true},
		{"comparable struct holding different slices", ifaceReader{v: []int{1}}, ifaceReader{v: []int{2}}, false},
		{"comparable struct equal", ifaceReader{v: 1}, ifaceReader{v: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameStream(tt.x, tt.y); got != tt.want {
				t.Errorf("SameStream = %v, want %v", got, tt.want)
			}
		})
	}
}
