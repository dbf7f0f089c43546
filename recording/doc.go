// Package recording provides an in-memory device and device context that
// record every call as a typed command instead of talking to a GPU.
//
// A [Recorder] implements both gpucore.Device and gpucore.DeviceContext, so
// a technique, its render cores and the state registry can run end to end
// without a graphics API. The resulting command log is inspectable and
// printable, which makes it the main tool for testing render cores and for
// dumping a frame from the command line.
//
// Design follows Cairo's approach of typed command structs for
// inspectability, rather than a binary serialization format.
//
// # Example
//
//	rec := recording.NewRecorder()
//	em, _ := technique.NewEffectsManager(rec)
//	...
//	for _, cmd := range rec.Commands() {
//	    fmt.Println(cmd)
//	}
//
// # Failure Injection
//
// [Recorder.FailNext] makes the next call of a given command type return an
// error, which is how attach-failure paths are tested.
package recording
