package technique

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/recording"
	"github.com/gogpu/rendercore/render"
	"github.com/gogpu/rendercore/shader"
	"github.com/gogpu/rendercore/state"
)

func newSkybox(t *testing.T) (*EffectsManager, *Technique, *recording.Recorder) {
	t.Helper()
	rec := recording.NewRecorder()
	em, err := NewEffectsManager(rec)
	if err != nil {
		t.Fatal(err)
	}
	tech, err := NewSkyboxTechnique(em)
	if err != nil {
		t.Fatal(err)
	}
	return em, tech, rec
}

// movedPass is the skybox pass with the cube map and sampler at bindings 3
// and 4.
func movedPass() shader.PassDescription {
	desc := shader.SkyboxPassDescription()
	desc.Name = "moved"
	src := strings.Replace(desc.Source, "@binding(1) var cube_map:", "@binding(3) var cube_map:", 1)
	desc.Source = strings.Replace(src, "@binding(2) var cube_map_sampler:", "@binding(4) var cube_map_sampler:", 1)
	return desc
}

func TestNewEffectsManager(t *testing.T) {
	rec := recording.NewRecorder()
	em, err := NewEffectsManager(rec)
	if err != nil {
		t.Fatal(err)
	}
	if em.Device() != rec {
		t.Error("Device() mismatch")
	}
	if em.StateManager() == nil {
		t.Fatal("no state manager")
	}

	if _, err := NewEffectsManager(nil); !errors.Is(err, state.ErrNilDevice) {
		t.Errorf("NewEffectsManager(nil) err = %v", err)
	}

	shared := em.StateManager()
	other, err := NewEffectsManager(rec, WithStateManager(shared))
	if err != nil {
		t.Fatal(err)
	}
	if other.StateManager() != shared {
		t.Error("WithStateManager ignored")
	}
	h, err := shared.Register(state.DefaultCubeSampler)
	if err != nil {
		t.Fatal(err)
	}
	other.Close()
	if h.Sampler() == nil {
		t.Error("closing a manager released a shared registry")
	}
	em.Close()
	if h.Sampler() != nil {
		t.Error("owner Close did not release the registry")
	}
}

func TestTechniqueRegistry(t *testing.T) {
	em, tech, _ := newSkybox(t)
	if tech.Name() != shader.PassSkybox || tech.EffectsManager() != em {
		t.Errorf("Name() = %q", tech.Name())
	}
	if got, ok := em.Technique(shader.PassSkybox); !ok || got != tech {
		t.Error("Technique() lookup failed")
	}
	if _, ok := em.Technique("missing"); ok {
		t.Error("missing technique found")
	}
	if _, err := NewSkyboxTechnique(em); !errors.Is(err, ErrDuplicateTechnique) {
		t.Errorf("duplicate err = %v", err)
	}
	if _, err := em.NewTechnique("empty"); !errors.Is(err, ErrNoPasses) {
		t.Errorf("no passes err = %v", err)
	}
	if _, err := em.NewTechnique("bad", shader.PassDescription{Name: "bad"}); err == nil {
		t.Error("invalid pass accepted")
	}
	if _, err := em.NewTechnique("alt", movedPass()); err != nil {
		t.Fatal(err)
	}
	names := em.Names()
	if len(names) != 2 || names[0] != "alt" || names[1] != shader.PassSkybox {
		t.Errorf("Names() = %v", names)
	}

	em.Close()
	em.Close()
	if _, err := em.NewTechnique("late", movedPass()); !errors.Is(err, ErrClosed) {
		t.Errorf("after Close err = %v", err)
	}
}

func TestPasses(t *testing.T) {
	_, tech, _ := newSkybox(t)
	first := tech.DefaultPass()
	if first == nil || first.Name() != shader.PassSkybox {
		t.Fatal("first pass not active")
	}
	if err := tech.AddPass(movedPass()); err != nil {
		t.Fatal(err)
	}
	if tech.DefaultPass() != first {
		t.Error("AddPass changed the active pass")
	}
	if err := tech.AddPass(movedPass()); !errors.Is(err, ErrDuplicatePass) {
		t.Errorf("duplicate pass err = %v", err)
	}
	if got := tech.PassNames(); len(got) != 2 || got[1] != "moved" {
		t.Errorf("PassNames() = %v", got)
	}
	if err := tech.SetActivePass("nope"); !errors.Is(err, ErrUnknownPass) {
		t.Errorf("unknown pass err = %v", err)
	}
}

func TestOnPassChanged(t *testing.T) {
	_, tech, _ := newSkybox(t)
	if err := tech.AddPass(movedPass()); err != nil {
		t.Fatal(err)
	}

	var order []string
	cancelA := tech.OnPassChanged(func(p *shader.Pass) { order = append(order, "a:"+p.Name()) })
	tech.OnPassChanged(func(p *shader.Pass) { order = append(order, "b:"+p.Name()) })

	if err := tech.SetActivePass("moved"); err != nil {
		t.Fatal(err)
	}
	if err := tech.SetActivePass("moved"); err != nil {
		t.Fatal(err)
	}
	cancelA()
	cancelA()
	if err := tech.SetActivePass(shader.PassSkybox); err != nil {
		t.Fatal(err)
	}

	want := []string{"a:moved", "b:moved", "b:skybox"}
	if len(order) != len(want) {
		t.Fatalf("notifications = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("notifications = %v, want %v", order, want)
		}
	}
	if tech.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d", tech.Subscribers())
	}
}

func TestRenderUploadsCamera(t *testing.T) {
	_, tech, rec := newSkybox(t)
	core := render.NewSkyboxCore()
	if !core.Attach(tech) {
		t.Fatal("Attach() = false")
	}

	view := mgl32.LookAtV(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	ctx := render.NewContext(view, proj)

	for frame := range 3 {
		tech.Render(ctx, rec, core)
		if ctx.FrameNumber != uint64(frame) {
			t.Errorf("FrameNumber = %d, want %d", ctx.FrameNumber, frame)
		}
	}
	if tech.Frame() != 3 {
		t.Errorf("Frame() = %d", tech.Frame())
	}
	if n := rec.Count(recording.CmdCreateUniformBuffer); n != 1 {
		t.Errorf("camera buffers created = %d, want 1", n)
	}
	if n := rec.Count(recording.CmdWriteBuffer); n != 3 {
		t.Errorf("camera writes = %d, want 3", n)
	}
	if n := rec.Count(recording.CmdDraw); n != 3 {
		t.Errorf("draws = %d, want 3", n)
	}

	cb := rec.CommandsOf(recording.CmdSetConstantBuffer)
	if len(cb) != 3 {
		t.Fatalf("constant buffer binds = %d", len(cb))
	}
	bind := cb[0].(recording.SetConstantBufferCommand)
	if bind.Stage != gpucore.StageVertex || bind.Slot != 0 {
		t.Errorf("camera bound at %s slot %d", bind.Stage, bind.Slot)
	}

	buf := tech.CameraBuffer().(*recording.Buffer)
	if bind.Ref != buf.Ref() {
		t.Errorf("bound %s, want %s", bind.Ref, buf.Ref())
	}
	var got mgl32.Mat4
	if err := binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, &got); err != nil {
		t.Fatal(err)
	}
	if !got.ApproxEqual(ctx.SkyViewProjection()) {
		t.Errorf("camera = %v, want %v", got, ctx.SkyViewProjection())
	}
}

func TestRenderCameraFailureStillDraws(t *testing.T) {
	_, tech, rec := newSkybox(t)
	core := render.NewSkyboxCore()
	if !core.Attach(tech) {
		t.Fatal("Attach() = false")
	}
	rec.FailNext(recording.CmdCreateUniformBuffer, errors.New("oom"))
	tech.Render(render.NewContext(mgl32.Ident4(), mgl32.Ident4()), rec, core)
	if rec.Count(recording.CmdDraw) != 1 {
		t.Error("core not rendered after camera failure")
	}
	if rec.Count(recording.CmdSetConstantBuffer) != 1 {
		t.Error("camera slot not bound")
	}
	if tech.CameraBuffer() != nil {
		t.Error("camera buffer set after failed create")
	}
}

func TestActivePassReachesCore(t *testing.T) {
	_, tech, _ := newSkybox(t)
	if err := tech.AddPass(movedPass()); err != nil {
		t.Fatal(err)
	}
	core := render.NewSkyboxCore()
	if !core.Attach(tech) {
		t.Fatal("Attach() = false")
	}
	if err := tech.SetActivePass("moved"); err != nil {
		t.Fatal(err)
	}
	if core.CubeTextureSlot() != 3 || core.TextureSamplerSlot() != 4 {
		t.Errorf("slots = %d, %d, want 3, 4", core.CubeTextureSlot(), core.TextureSamplerSlot())
	}

	core.Detach()
	if tech.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after detach", tech.Subscribers())
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	em, tech, rec := newSkybox(t)
	core := render.NewSkyboxCore()
	if !core.Attach(tech) {
		t.Fatal("Attach() = false")
	}
	tech.Render(render.NewContext(mgl32.Ident4(), mgl32.Ident4()), rec, core)

	core.Detach()
	em.Close()
	if n := rec.LiveResources(); n != 0 {
		t.Errorf("LiveResources() = %d after Close", n)
	}
}
