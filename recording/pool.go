package recording

import (
	"sort"

	"github.com/gogpu/rendercore/gpucore"
)

// Buffer is a recorded buffer with in-memory contents.
type Buffer struct {
	rec     *Recorder
	ref     ResourceRef
	label   string
	uniform bool
	data    []byte
}

// Ref returns the buffer's reference.
func (b *Buffer) Ref() ResourceRef { return b.ref }

// Label returns the debug label.
func (b *Buffer) Label() string { return b.label }

// Size implements gpucore.Buffer.
func (b *Buffer) Size() uint64 { return uint64(len(b.data)) }

// Bytes returns a copy of the current contents.
func (b *Buffer) Bytes() []byte {
	b.rec.mu.Lock()
	defer b.rec.mu.Unlock()
	return append([]byte(nil), b.data...)
}

// Release implements gpucore.Buffer.
func (b *Buffer) Release() { b.rec.release(b.ref) }

// TextureView is a recorded cube texture view.
type TextureView struct {
	rec   *Recorder
	ref   ResourceRef
	label string
	image *gpucore.CubeImage
}

// Ref returns the view's reference.
func (v *TextureView) Ref() ResourceRef { return v.ref }

// Image returns the uploaded cube image.
func (v *TextureView) Image() *gpucore.CubeImage { return v.image }

// Release implements gpucore.TextureView.
func (v *TextureView) Release() { v.rec.release(v.ref) }

// Sampler is a recorded sampler.
type Sampler struct {
	rec  *Recorder
	ref  ResourceRef
	desc gpucore.SamplerDescription
}

// Ref returns the sampler's reference.
func (s *Sampler) Ref() ResourceRef { return s.ref }

// Description implements gpucore.Sampler.
func (s *Sampler) Description() gpucore.SamplerDescription { return s.desc }

// Release implements gpucore.Sampler.
func (s *Sampler) Release() { s.rec.release(s.ref) }

// ResourcePool tracks which recorded resources are still live.
// The pool is guarded by its Recorder's mutex.
type ResourcePool struct {
	next ResourceRef
	live map[ResourceRef]any
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{live: make(map[ResourceRef]any)}
}

// add registers r and returns its reference.
func (p *ResourcePool) add(r any) ResourceRef {
	p.next++
	p.live[p.next] = r
	return p.next
}

// remove drops ref. It reports whether ref was live.
func (p *ResourcePool) remove(ref ResourceRef) bool {
	if _, ok := p.live[ref]; !ok {
		return false
	}
	delete(p.live, ref)
	return true
}

// Len returns the number of live resources.
func (p *ResourcePool) Len() int { return len(p.live) }

// Refs returns the live references in creation order.
func (p *ResourcePool) Refs() []ResourceRef {
	out := make([]ResourceRef, 0, len(p.live))
	for ref := range p.live {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Get returns the live resource for ref, or nil.
func (p *ResourcePool) Get(ref ResourceRef) any { return p.live[ref] }
