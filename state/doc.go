// Package state provides the state registry shared by every render core on a
// device, plus the default state descriptions cores start from.
//
// Samplers are immutable GPU objects, so identical descriptions can share
// one object. [Manager.Register] returns a [SamplerHandle]; the underlying
// sampler is destroyed when its last handle is released.
//
//	h, err := em.StateManager().Register(state.DefaultCubeSampler)
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//	dc.SetSampler(gpucore.StagePixel, slot, h.Sampler())
package state
