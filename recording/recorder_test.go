package recording

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/rendercore/gpucore"
)

func testCube(size int) *gpucore.CubeImage {
	img := &gpucore.CubeImage{Size: size}
	for i := range img.Faces {
		img.Faces[i] = make([]byte, size*size*4)
	}
	return img
}

func TestRecorderResourcesLifecycle(t *testing.T) {
	r := NewRecorder()

	vb, err := r.CreateVertexBuffer("vb", []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	view, err := r.CreateCubeTexture("cube", testCube(2))
	if err != nil {
		t.Fatalf("CreateCubeTexture: %v", err)
	}
	s, err := r.CreateSampler(gpucore.SamplerDescription{MinFilter: gpucore.FilterLinear})
	if err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}
	if got := r.LiveResources(); got != 3 {
		t.Fatalf("LiveResources = %d, want 3", got)
	}

	vb.Release()
	vb.Release()
	view.Release()
	s.Release()
	if got := r.LiveResources(); got != 0 {
		t.Errorf("LiveResources = %d, want 0", got)
	}
	if got := r.Count(CmdRelease); got != 3 {
		t.Errorf("Release commands = %d, want 3 (double release must not record)", got)
	}
}

func TestRecorderWriteBuffer(t *testing.T) {
	r := NewRecorder()
	buf, _ := r.CreateUniformBuffer("ub", 8)

	if err := r.WriteBuffer(buf, 4, []byte{9, 9, 9, 9}); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	got := buf.(*Buffer).Bytes()
	want := []byte{0, 0, 0, 0, 9, 9, 9, 9}
	if string(got) != string(want) {
		t.Errorf("contents = %v, want %v", got, want)
	}

	tests := []struct {
		name string
		buf  gpucore.Buffer
		off  uint64
		want error
	}{
		{"out of range", buf, 6, gpucore.ErrOutOfRange},
		{"foreign buffer", NewRecorder().mustBuffer(t), 0, gpucore.ErrWrongBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.WriteBuffer(tt.buf, tt.off, []byte{1, 2, 3, 4}); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	buf.Release()
	if err := r.WriteBuffer(buf, 0, []byte{1}); !errors.Is(err, gpucore.ErrReleased) {
		t.Errorf("write after release err = %v, want ErrReleased", err)
	}
}

func (r *Recorder) mustBuffer(t *testing.T) gpucore.Buffer {
	t.Helper()
	b, err := r.CreateUniformBuffer("x", 4)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRecorderFailNext(t *testing.T) {
	r := NewRecorder()
	boom := errors.New("out of memory")
	r.FailNext(CmdCreateVertexBuffer, boom)

	if _, err := r.CreateVertexBuffer("vb", nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if _, err := r.CreateVertexBuffer("vb", nil); err != nil {
		t.Fatalf("failure should only apply once, got %v", err)
	}
	if got := r.LiveResources(); got != 1 {
		t.Errorf("LiveResources = %d, want 1", got)
	}
}

func TestRecorderInvalidCube(t *testing.T) {
	r := NewRecorder()
	bad := testCube(2)
	bad.Faces[3] = bad.Faces[3][:4]
	if _, err := r.CreateCubeTexture("cube", bad); !errors.Is(err, gpucore.ErrInvalidCubeImage) {
		t.Errorf("err = %v, want ErrInvalidCubeImage", err)
	}
	if _, err := r.CreateCubeTexture("cube", nil); !errors.Is(err, gpucore.ErrInvalidCubeImage) {
		t.Errorf("nil image err = %v, want ErrInvalidCubeImage", err)
	}
}

func TestRecorderContextCommands(t *testing.T) {
	r := NewRecorder()
	vb, _ := r.CreateVertexBuffer("vb", make([]byte, 12))
	s, _ := r.CreateSampler(gpucore.SamplerDescription{})
	r.Reset()

	r.SetProgram(&gpucore.Program{Label: "skybox"})
	r.SetTexture(gpucore.StagePixel, gpucore.InvalidSlot, nil)
	r.SetTexture(gpucore.StagePixel, 1, nil)
	r.SetSampler(gpucore.StagePixel, 2, s)
	r.SetVertexBuffer(vb, 12, 0)
	r.SetTopology(gpucore.TopologyTriangleList)
	r.Draw(36, 0)

	want := []string{
		`SetProgram "skybox"`,
		"SetTexture Pixel slot=1 nil",
		"SetSampler Pixel slot=2 #2",
		"SetVertexBuffer #1 stride=12 offset=0",
		"SetTopology TriangleList",
		"Draw vertices=36 start=0",
	}
	got := r.Dump()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Dump =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		t    CommandType
		want string
	}{
		{CmdDraw, "Draw"},
		{CmdSetTexture, "SetTexture"},
		{CmdCreateSampler, "CreateSampler"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}
