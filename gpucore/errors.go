package gpucore

import "errors"

// Sentinel errors shared by backends.
var (
	// ErrInvalidCubeImage is returned when cube faces are missing or mis-sized.
	ErrInvalidCubeImage = errors.New("gpucore: invalid cube image")

	// ErrReleased is returned when a released resource is used.
	ErrReleased = errors.New("gpucore: resource released")

	// ErrWrongBackend is returned when a resource from one backend is passed
	// to another.
	ErrWrongBackend = errors.New("gpucore: resource belongs to a different backend")

	// ErrOutOfRange is returned when a buffer write exceeds its size.
	ErrOutOfRange = errors.New("gpucore: write out of range")
)
