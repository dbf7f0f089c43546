package wgpu

import "errors"

var (
	// ErrNilDevice is returned when a HAL device or queue is nil.
	ErrNilDevice = errors.New("wgpu: device or queue is nil")

	// ErrNoHAL is returned when a device provider does not expose HAL
	// types.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL device")

	// ErrNoProgram is returned when a pipeline is requested without a
	// program.
	ErrNoProgram = errors.New("wgpu: no program bound")
)
