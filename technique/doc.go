// Package technique groups shader passes into named techniques and owns
// the per-device state shared by every render core attached to them.
//
// An EffectsManager is created once per device. It owns the sampler state
// registry and a registry of techniques by name. A Technique holds one or
// more passes, exactly one of which is active; cores attached to the
// technique are notified whenever the active pass changes.
//
//	em, err := technique.NewEffectsManager(device)
//	sky, err := technique.NewSkyboxTechnique(em)
//	core := render.NewSkyboxCore(render.WithCubeTexture(f))
//	core.Attach(sky)
//	sky.Render(ctx, dc, core)
package technique
