package backend

import (
	"errors"

	"github.com/gogpu/rendercore/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendWGPU is the gogpu/wgpu HAL backend.
	BackendWGPU = "wgpu"
	// BackendRecorder is the command recorder used for tests and dumps.
	BackendRecorder = "recorder"
)

// RenderBackend is a device plus a way to obtain the device context of
// each frame. Render cores and techniques only see the gpucore interfaces
// it hands out.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "recorder", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any rendering operations.
	Init() error

	// Device returns the resource factory, or nil before Init.
	Device() gpucore.Device

	// BeginFrame finishes the previous frame and returns the context that
	// records the next one.
	BeginFrame() (gpucore.DeviceContext, error)

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()
}
