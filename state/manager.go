package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/internal/cache"
)

// Errors returned by Manager.
var (
	// ErrNilDevice is returned by NewManager when device is nil.
	ErrNilDevice = errors.New("state: nil device")

	// ErrClosed is returned by Register after Close.
	ErrClosed = errors.New("state: manager closed")
)

// Manager is the reference-counted state registry for one device.
//
// Manager is safe for concurrent use.
type Manager struct {
	device   gpucore.Device
	samplers *cache.RefCache[gpucore.SamplerDescription, gpucore.Sampler]

	mu     sync.RWMutex
	closed bool
}

// NewManager creates a registry that creates its objects on device.
func NewManager(device gpucore.Device) (*Manager, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Manager{
		device:   device,
		samplers: cache.NewRef[gpucore.SamplerDescription, gpucore.Sampler](),
	}, nil
}

// Device returns the device the registry creates objects on.
func (m *Manager) Device() gpucore.Device {
	return m.device
}

// Register returns a handle to the sampler for desc, creating it if no
// equal description is live.
func (m *Manager) Register(desc gpucore.SamplerDescription) (*SamplerHandle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	s, err := m.samplers.Acquire(desc, func() (gpucore.Sampler, error) {
		rendercore.Logger().Debug("state: creating sampler",
			"min", desc.MinFilter, "mag", desc.MagFilter, "anisotropy", desc.MaxAnisotropy)
		return m.device.CreateSampler(desc)
	})
	if err != nil {
		return nil, fmt.Errorf("state: register sampler: %w", err)
	}
	return &SamplerHandle{manager: m, desc: desc, sampler: s}, nil
}

// RefCount returns the number of live handles for desc.
func (m *Manager) RefCount(desc gpucore.SamplerDescription) int {
	return m.samplers.Refs(desc)
}

// Len returns the number of distinct live samplers.
func (m *Manager) Len() int {
	return m.samplers.Len()
}

// Close destroys every sampler regardless of outstanding handles.
// Outstanding handles return a nil Sampler afterwards and releasing them is
// a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true

	for _, s := range m.samplers.Drain() {
		s.Release()
	}
}

func (m *Manager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *Manager) release(desc gpucore.SamplerDescription) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	if s, last := m.samplers.Release(desc); last {
		rendercore.Logger().Debug("state: destroying sampler")
		s.Release()
	}
}

// SamplerHandle is one reference to a shared sampler.
// A handle is owned by a single render core and is not safe for concurrent
// use; the registry behind it is.
type SamplerHandle struct {
	manager  *Manager
	desc     gpucore.SamplerDescription
	sampler  gpucore.Sampler
	released bool
}

// Sampler returns the shared sampler, or nil after Release or after the
// manager is closed.
func (h *SamplerHandle) Sampler() gpucore.Sampler {
	if h == nil || h.released || h.manager.isClosed() {
		return nil
	}
	return h.sampler
}

// Description returns the description the handle was registered with.
func (h *SamplerHandle) Description() gpucore.SamplerDescription {
	return h.desc
}

// Release drops the reference. Calling it more than once is a no-op.
func (h *SamplerHandle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.manager.release(h.desc)
}
