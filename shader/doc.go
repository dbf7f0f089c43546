// Package shader provides render passes and the per-stage name to slot maps
// render cores use to find where a resource binds.
//
// A [Pass] is built from WGSL source. The source is parsed and lowered with
// naga, every @group/@binding variable becomes a slot named after the
// variable, and the stages that reference it are recorded. The source is
// then compiled to SPIR-V so a broken shader fails at pass creation rather
// than at first draw.
//
//	pass, err := shader.NewPass(shader.SkyboxPassDescription())
//	slot := pass.GetShader(gpucore.StagePixel).TextureMapping.TryGetBindSlot(shader.CubeMapName)
package shader
