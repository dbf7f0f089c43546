package recording

import (
	"fmt"
	"sync"

	"github.com/gogpu/rendercore/gpucore"
)

// Recorder is an in-memory gpucore.Device and gpucore.DeviceContext.
//
// Device methods are safe for concurrent use, matching what a shared state
// registry expects. Context methods follow the usual single render thread
// rule but take the same lock.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	pool     *ResourcePool
	failures map[CommandType]error
}

var (
	_ gpucore.Device        = (*Recorder)(nil)
	_ gpucore.DeviceContext = (*Recorder)(nil)
)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands: make([]Command, 0, 64),
		pool:     NewResourcePool(),
		failures: make(map[CommandType]error),
	}
}

// FailNext makes the next command of type t fail with err instead of being
// recorded. Only resource creation commands can fail.
func (r *Recorder) FailNext(t CommandType, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[t] = err
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// CommandsOf returns the recorded commands of the given types, in order.
func (r *Recorder) CommandsOf(types ...CommandType) []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Command
	for _, c := range r.commands {
		for _, t := range types {
			if c.Type() == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	return len(r.CommandsOf(t))
}

// Reset clears the command log. Live resources are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = r.commands[:0]
}

// LiveResources returns the number of created but unreleased resources.
func (r *Recorder) LiveResources() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool.Len()
}

// Resource returns the live resource for ref, or nil.
func (r *Recorder) Resource(ref ResourceRef) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool.Get(ref)
}

// Dump returns one line per recorded command.
func (r *Recorder) Dump() []string {
	cmds := r.Commands()
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}

// record appends c. Caller must hold r.mu.
func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// takeFailure returns and clears the injected failure for t.
// Caller must hold r.mu.
func (r *Recorder) takeFailure(t CommandType) error {
	err, ok := r.failures[t]
	if !ok {
		return nil
	}
	delete(r.failures, t)
	return fmt.Errorf("recording: %s: %w", t, err)
}

func (r *Recorder) release(ref ResourceRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pool.remove(ref) {
		r.record(ReleaseCommand{Ref: ref})
	}
}

// --------------------------------------------------------------------------
// gpucore.Device
// --------------------------------------------------------------------------

// CreateVertexBuffer implements gpucore.Device.
func (r *Recorder) CreateVertexBuffer(label string, data []byte) (gpucore.Buffer, error) {
	return r.createBuffer(label, append([]byte(nil), data...), false)
}

// CreateUniformBuffer implements gpucore.Device.
func (r *Recorder) CreateUniformBuffer(label string, size uint64) (gpucore.Buffer, error) {
	return r.createBuffer(label, make([]byte, size), true)
}

func (r *Recorder) createBuffer(label string, data []byte, uniform bool) (gpucore.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := CmdCreateVertexBuffer
	if uniform {
		t = CmdCreateUniformBuffer
	}
	if err := r.takeFailure(t); err != nil {
		return nil, err
	}
	b := &Buffer{rec: r, label: label, uniform: uniform, data: data}
	b.ref = r.pool.add(b)
	r.record(CreateBufferCommand{Ref: b.ref, Label: label, Size: uint64(len(data)), Uniform: uniform})
	return b, nil
}

// WriteBuffer implements gpucore.Device.
func (r *Recorder) WriteBuffer(buf gpucore.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*Buffer)
	if !ok || b.rec != r {
		return gpucore.ErrWrongBackend
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(CmdWriteBuffer); err != nil {
		return err
	}
	if r.pool.Get(b.ref) == nil {
		return gpucore.ErrReleased
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("%w: %d+%d > %d", gpucore.ErrOutOfRange, offset, len(data), len(b.data))
	}
	copy(b.data[offset:], data)
	r.record(WriteBufferCommand{Ref: b.ref, Offset: offset, Size: len(data)})
	return nil
}

// CreateCubeTexture implements gpucore.Device.
func (r *Recorder) CreateCubeTexture(label string, img *gpucore.CubeImage) (gpucore.TextureView, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(CmdCreateCubeTexture); err != nil {
		return nil, err
	}
	v := &TextureView{rec: r, label: label, image: img}
	v.ref = r.pool.add(v)
	r.record(CreateCubeTextureCommand{Ref: v.ref, Label: label, Size: img.Size})
	return v, nil
}

// CreateSampler implements gpucore.Device.
func (r *Recorder) CreateSampler(desc gpucore.SamplerDescription) (gpucore.Sampler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(CmdCreateSampler); err != nil {
		return nil, err
	}
	s := &Sampler{rec: r, desc: desc}
	s.ref = r.pool.add(s)
	r.record(CreateSamplerCommand{Ref: s.ref, Desc: desc})
	return s, nil
}

// --------------------------------------------------------------------------
// gpucore.DeviceContext
// --------------------------------------------------------------------------

func (r *Recorder) push(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(c)
}

// SetProgram implements gpucore.DeviceContext.
func (r *Recorder) SetProgram(p *gpucore.Program) { r.push(SetProgramCommand{Program: p}) }

// SetBlendState implements gpucore.DeviceContext.
func (r *Recorder) SetBlendState(desc gpucore.BlendDescription) {
	r.push(SetBlendStateCommand{Desc: desc})
}

// SetDepthStencilState implements gpucore.DeviceContext.
func (r *Recorder) SetDepthStencilState(desc gpucore.DepthStencilDescription) {
	r.push(SetDepthStencilStateCommand{Desc: desc})
}

// SetRasterState implements gpucore.DeviceContext.
func (r *Recorder) SetRasterState(desc gpucore.RasterDescription) {
	r.push(SetRasterStateCommand{Desc: desc})
}

// SetTexture implements gpucore.DeviceContext.
func (r *Recorder) SetTexture(stage gpucore.ShaderStage, slot int, view gpucore.TextureView) {
	if slot == gpucore.InvalidSlot {
		return
	}
	r.push(SetTextureCommand{Stage: stage, Slot: slot, Ref: refOf(view)})
}

// SetSampler implements gpucore.DeviceContext.
func (r *Recorder) SetSampler(stage gpucore.ShaderStage, slot int, s gpucore.Sampler) {
	if slot == gpucore.InvalidSlot {
		return
	}
	r.push(SetSamplerCommand{Stage: stage, Slot: slot, Ref: refOf(s)})
}

// SetConstantBuffer implements gpucore.DeviceContext.
func (r *Recorder) SetConstantBuffer(stage gpucore.ShaderStage, slot int, buf gpucore.Buffer) {
	if slot == gpucore.InvalidSlot {
		return
	}
	r.push(SetConstantBufferCommand{Stage: stage, Slot: slot, Ref: refOf(buf)})
}

// SetVertexBuffer implements gpucore.DeviceContext.
func (r *Recorder) SetVertexBuffer(buf gpucore.Buffer, stride, offset uint32) {
	r.push(SetVertexBufferCommand{Ref: refOf(buf), Stride: stride, Offset: offset})
}

// SetTopology implements gpucore.DeviceContext.
func (r *Recorder) SetTopology(t gpucore.PrimitiveTopology) { r.push(SetTopologyCommand{Topology: t}) }

// Draw implements gpucore.DeviceContext.
func (r *Recorder) Draw(vertexCount, startVertex uint32) {
	r.push(DrawCommand{VertexCount: vertexCount, StartVertex: startVertex})
}

// refOf returns the reference of a recorded resource. Nil and foreign
// resources map to the zero reference.
func refOf(res any) ResourceRef {
	switch v := res.(type) {
	case *Buffer:
		if v != nil {
			return v.ref
		}
	case *TextureView:
		if v != nil {
			return v.ref
		}
	case *Sampler:
		if v != nil {
			return v.ref
		}
	}
	return 0
}
