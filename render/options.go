// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"io"

	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/texture"
)

// SkyboxOption configures a SkyboxCore at construction.
type SkyboxOption func(*SkyboxCore)

// WithCubeTexture sets the initial cube texture stream.
func WithCubeTexture(stream io.Reader) SkyboxOption {
	return func(s *SkyboxCore) {
		s.cubeTexture.value = stream
	}
}

// WithSamplerDescription sets the initial sampler description.
func WithSamplerDescription(desc gpucore.SamplerDescription) SkyboxOption {
	return func(s *SkyboxCore) {
		s.samplerDesc.value = desc
	}
}

// WithCubeTextureName overrides the shader name of the cube texture.
func WithCubeTextureName(name string) SkyboxOption {
	return func(s *SkyboxCore) {
		s.cubeTextureName = name
	}
}

// WithSamplerName overrides the shader name of the cube sampler.
func WithSamplerName(name string) SkyboxOption {
	return func(s *SkyboxCore) {
		s.samplerName = name
	}
}

// WithDecodeOptions passes options to texture.DecodeCube for every view
// the core creates.
func WithDecodeOptions(opts ...texture.DecodeOption) SkyboxOption {
	return func(s *SkyboxCore) {
		s.decodeOpts = append(s.decodeOpts, opts...)
	}
}
