package backend

import (
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/recording"
)

// RecorderBackend records device calls instead of drawing. Each frame
// starts with an empty command list.
type RecorderBackend struct {
	rec *recording.Recorder
}

// init registers the recorder backend on package import.
func init() {
	Register(BackendRecorder, func() RenderBackend {
		return &RecorderBackend{}
	})
}

// NewRecorderBackend creates a recorder backend.
func NewRecorderBackend() *RecorderBackend {
	return &RecorderBackend{}
}

// Name returns the backend identifier.
func (b *RecorderBackend) Name() string {
	return BackendRecorder
}

// Init initializes the backend.
func (b *RecorderBackend) Init() error {
	if b.rec == nil {
		b.rec = recording.NewRecorder()
	}
	return nil
}

// Device returns the recorder, or nil before Init.
func (b *RecorderBackend) Device() gpucore.Device {
	if b.rec == nil {
		return nil
	}
	return b.rec
}

// BeginFrame clears the commands of the previous frame.
func (b *RecorderBackend) BeginFrame() (gpucore.DeviceContext, error) {
	if b.rec == nil {
		return nil, ErrNotInitialized
	}
	b.rec.Reset()
	return b.rec, nil
}

// Recorder returns the underlying recorder for inspection.
// Returns nil before Init.
func (b *RecorderBackend) Recorder() *recording.Recorder {
	return b.rec
}

// Close drops the recorder.
func (b *RecorderBackend) Close() {
	b.rec = nil
}
