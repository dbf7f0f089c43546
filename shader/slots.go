package shader

import (
	"maps"
	"slices"

	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/state"
)

// SlotMapping maps resource names to bind slots for one resource kind in
// one stage.
type SlotMapping struct {
	slots map[string]int
}

func newSlotMapping() *SlotMapping {
	return &SlotMapping{slots: make(map[string]int)}
}

// TryGetBindSlot returns the slot bound to name, or gpucore.InvalidSlot.
func (m *SlotMapping) TryGetBindSlot(name string) int {
	if m == nil {
		return gpucore.InvalidSlot
	}
	if slot, ok := m.slots[name]; ok {
		return slot
	}
	return gpucore.InvalidSlot
}

// Len returns the number of mapped names.
func (m *SlotMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.slots)
}

// Names returns the mapped names in sorted order.
func (m *SlotMapping) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.slots))
}

// Shader is one stage of a pass.
type Shader struct {
	Stage gpucore.ShaderStage

	TextureMapping        *SlotMapping
	SamplerMapping        *SlotMapping
	ConstantBufferMapping *SlotMapping
}

func newShader(stage gpucore.ShaderStage) *Shader {
	return &Shader{
		Stage:                 stage,
		TextureMapping:        newSlotMapping(),
		SamplerMapping:        newSlotMapping(),
		ConstantBufferMapping: newSlotMapping(),
	}
}

// BindTexture binds view at slot in this stage. gpucore.InvalidSlot is a no-op.
func (s *Shader) BindTexture(dc gpucore.DeviceContext, slot int, view gpucore.TextureView) {
	if slot == gpucore.InvalidSlot {
		return
	}
	dc.SetTexture(s.Stage, slot, view)
}

// BindSampler binds the sampler behind h at slot in this stage. A nil or
// released handle binds nil. gpucore.InvalidSlot is a no-op.
func (s *Shader) BindSampler(dc gpucore.DeviceContext, slot int, h *state.SamplerHandle) {
	if slot == gpucore.InvalidSlot {
		return
	}
	dc.SetSampler(s.Stage, slot, h.Sampler())
}

// BindConstantBuffer binds buf at slot in this stage. gpucore.InvalidSlot is
// a no-op.
func (s *Shader) BindConstantBuffer(dc gpucore.DeviceContext, slot int, buf gpucore.Buffer) {
	if slot == gpucore.InvalidSlot {
		return
	}
	dc.SetConstantBuffer(s.Stage, slot, buf)
}
