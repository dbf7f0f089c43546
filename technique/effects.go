package technique

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/shader"
	"github.com/gogpu/rendercore/state"
)

var (
	// ErrDuplicateTechnique is returned when a technique name is taken.
	ErrDuplicateTechnique = errors.New("technique: duplicate technique name")

	// ErrDuplicatePass is returned when a pass name is taken.
	ErrDuplicatePass = errors.New("technique: duplicate pass name")

	// ErrUnknownPass is returned by SetActivePass for a name with no pass.
	ErrUnknownPass = errors.New("technique: unknown pass")

	// ErrNoPasses is returned when a technique is created without passes.
	ErrNoPasses = errors.New("technique: no passes")

	// ErrClosed is returned by a closed EffectsManager.
	ErrClosed = errors.New("technique: effects manager closed")
)

// Option configures an EffectsManager.
type Option func(*effectsOptions)

type effectsOptions struct {
	states *state.Manager
}

// WithStateManager shares an existing sampler registry instead of creating
// one. The registry must be bound to the same device. A shared registry is
// not closed by EffectsManager.Close.
func WithStateManager(sm *state.Manager) Option {
	return func(o *effectsOptions) {
		o.states = sm
	}
}

// EffectsManager owns the shared state for one device: the sampler
// registry and the techniques built on it.
//
// Registry methods are safe for concurrent use.
type EffectsManager struct {
	device     gpucore.Device
	states     *state.Manager
	ownsStates bool

	mu         sync.RWMutex
	techniques map[string]*Technique
	closed     bool
}

// NewEffectsManager creates an effects manager for device.
func NewEffectsManager(device gpucore.Device, opts ...Option) (*EffectsManager, error) {
	var o effectsOptions
	for _, opt := range opts {
		opt(&o)
	}

	em := &EffectsManager{
		device:     device,
		states:     o.states,
		techniques: make(map[string]*Technique),
	}
	if em.states == nil {
		sm, err := state.NewManager(device)
		if err != nil {
			return nil, fmt.Errorf("technique: %w", err)
		}
		em.states = sm
		em.ownsStates = true
	}
	rendercore.Logger().Info("technique: effects manager created", "sharedStates", !em.ownsStates)
	return em, nil
}

// Device returns the device the manager creates resources on.
func (em *EffectsManager) Device() gpucore.Device {
	return em.device
}

// StateManager returns the sampler registry.
func (em *EffectsManager) StateManager() *state.Manager {
	return em.states
}

// NewTechnique builds a technique from passes and registers it under name.
// The first pass is active.
func (em *EffectsManager) NewTechnique(name string, passes ...shader.PassDescription) (*Technique, error) {
	if len(passes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPasses, name)
	}

	t := &Technique{name: name, em: em, passes: make(map[string]*shader.Pass)}
	for _, desc := range passes {
		if err := t.AddPass(desc); err != nil {
			return nil, err
		}
	}

	em.mu.Lock()
	defer em.mu.Unlock()
	if em.closed {
		return nil, ErrClosed
	}
	if _, ok := em.techniques[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTechnique, name)
	}
	em.techniques[name] = t
	rendercore.Logger().Debug("technique: registered", "name", name, "passes", t.PassNames())
	return t, nil
}

// Technique returns the technique registered under name.
func (em *EffectsManager) Technique(name string) (*Technique, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	t, ok := em.techniques[name]
	return t, ok
}

// Names returns the registered technique names, sorted.
func (em *EffectsManager) Names() []string {
	em.mu.RLock()
	defer em.mu.RUnlock()
	names := make([]string, 0, len(em.techniques))
	for name := range em.techniques {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Close releases every technique's buffers and, unless it was shared, the
// sampler registry. Cores should be detached first. Close is idempotent.
func (em *EffectsManager) Close() {
	em.mu.Lock()
	if em.closed {
		em.mu.Unlock()
		return
	}
	em.closed = true
	techniques := em.techniques
	em.techniques = make(map[string]*Technique)
	em.mu.Unlock()

	for _, t := range techniques {
		t.release()
	}
	if em.ownsStates {
		em.states.Close()
	}
}
