package technique

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/render"
	"github.com/gogpu/rendercore/shader"
	"github.com/gogpu/rendercore/state"
)

type subscription struct {
	id int
	fn func(*shader.Pass)
}

// Technique is a named set of passes with one active pass.
//
// A Technique is driven from the render goroutine and is not safe for
// concurrent use.
type Technique struct {
	name   string
	em     *EffectsManager
	passes map[string]*shader.Pass
	order  []string
	active *shader.Pass

	subs    []subscription
	nextSub int

	camera gpucore.Buffer
	frame  uint64
}

var _ render.Technique = (*Technique)(nil)

// NewSkyboxTechnique registers the built-in skybox technique on em.
func NewSkyboxTechnique(em *EffectsManager) (*Technique, error) {
	return em.NewTechnique(shader.PassSkybox, shader.SkyboxPassDescription())
}

// Name returns the technique's registry name.
func (t *Technique) Name() string { return t.name }

// EffectsManager returns the manager the technique belongs to.
func (t *Technique) EffectsManager() *EffectsManager { return t.em }

// Device implements render.Technique.
func (t *Technique) Device() gpucore.Device { return t.em.device }

// StateManager implements render.Technique.
func (t *Technique) StateManager() *state.Manager { return t.em.states }

// DefaultPass implements render.Technique.
func (t *Technique) DefaultPass() *shader.Pass { return t.active }

// Pass returns the pass named name, or nil.
func (t *Technique) Pass(name string) *shader.Pass { return t.passes[name] }

// PassNames returns pass names in the order they were added.
func (t *Technique) PassNames() []string {
	return append([]string(nil), t.order...)
}

// AddPass compiles desc and adds it. The first pass added becomes active.
func (t *Technique) AddPass(desc shader.PassDescription) error {
	if _, ok := t.passes[desc.Name]; ok {
		return fmt.Errorf("%w: %s/%s", ErrDuplicatePass, t.name, desc.Name)
	}
	p, err := shader.NewPass(desc)
	if err != nil {
		return fmt.Errorf("technique %s: %w", t.name, err)
	}
	t.passes[desc.Name] = p
	t.order = append(t.order, desc.Name)
	if t.active == nil {
		t.setActive(p)
	}
	return nil
}

// SetActivePass makes the named pass active and notifies subscribers.
// Activating the current pass does nothing.
func (t *Technique) SetActivePass(name string) error {
	p, ok := t.passes[name]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownPass, t.name, name)
	}
	if p == t.active {
		return nil
	}
	t.setActive(p)
	return nil
}

func (t *Technique) setActive(p *shader.Pass) {
	t.active = p
	rendercore.Logger().Debug("technique: active pass", "technique", t.name, "pass", p.Name())
	for _, s := range append([]subscription(nil), t.subs...) {
		s.fn(p)
	}
}

// OnPassChanged implements render.Technique. Subscribers are called in
// registration order.
func (t *Technique) OnPassChanged(fn func(*shader.Pass)) (cancel func()) {
	id := t.nextSub
	t.nextSub++
	t.subs = append(t.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range t.subs {
			if s.id == id {
				t.subs = append(t.subs[:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of pass-change subscribers.
func (t *Technique) Subscribers() int { return len(t.subs) }

// Frame returns the number of frames rendered.
func (t *Technique) Frame() uint64 { return t.frame }

// Render draws one frame: it uploads the camera, binds it to the active
// pass and renders each core in order. Upload failures are logged and the
// cores still render.
func (t *Technique) Render(ctx *render.Context, dc gpucore.DeviceContext, cores ...render.RenderCore) {
	if t.active == nil {
		return
	}
	ctx.FrameNumber = t.frame
	t.frame++

	if err := t.uploadCamera(ctx); err != nil {
		rendercore.Logger().Warn("technique: camera upload failed", "technique", t.name, "err", err)
	}
	vs := t.active.GetShader(gpucore.StageVertex)
	vs.BindConstantBuffer(dc, vs.ConstantBufferMapping.TryGetBindSlot(shader.CameraName), t.camera)

	for _, c := range cores {
		c.Render(ctx, dc)
	}
}

// uploadCamera writes the eye-centered view projection to the camera
// buffer, creating it on first use.
func (t *Technique) uploadCamera(ctx *render.Context) error {
	if t.camera == nil {
		buf, err := t.em.device.CreateUniformBuffer(t.name+".camera", shader.CameraBufferSize)
		if err != nil {
			return err
		}
		t.camera = buf
	}
	m := ctx.SkyViewProjection()
	data, err := binary.Append(make([]byte, 0, shader.CameraBufferSize), binary.LittleEndian, m)
	if err != nil {
		return err
	}
	return t.em.device.WriteBuffer(t.camera, 0, data)
}

// CameraBuffer returns the camera constant buffer, or nil before the first
// frame.
func (t *Technique) CameraBuffer() gpucore.Buffer { return t.camera }

func (t *Technique) release() {
	if t.camera != nil {
		t.camera.Release()
		t.camera = nil
	}
}
