package shader

import (
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/rendercore/gpucore"
)

// reflection is the binding information extracted from a shader module.
type reflection struct {
	vertexEntry string
	pixelEntry  string
	bindings    []gpucore.ProgramBinding
}

// reflectBindings parses and lowers source with naga and collects every resource
// binding together with the entry points that reference it.
//
// Empty entry names select the first entry point of the matching stage.
func reflectBindings(source, vertexEntry, pixelEntry string) (*reflection, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	vs := findEntry(module, ir.StageVertex, vertexEntry)
	if vs == nil {
		return nil, fmt.Errorf("%w: vertex %q", ErrMissingEntry, vertexEntry)
	}
	fs := findEntry(module, ir.StageFragment, pixelEntry)
	if fs == nil {
		return nil, fmt.Errorf("%w: fragment %q", ErrMissingEntry, pixelEntry)
	}

	stages := make(map[ir.GlobalVariableHandle]gpucore.ShaderStages)
	for h := range usedGlobals(module, &vs.Function) {
		stages[h] |= gpucore.StagesVertex
	}
	for h := range usedGlobals(module, &fs.Function) {
		stages[h] |= gpucore.StagesPixel
	}

	r := &reflection{vertexEntry: vs.Name, pixelEntry: fs.Name}
	for i := range module.GlobalVariables {
		gv := &module.GlobalVariables[i]
		if gv.Binding == nil {
			continue
		}
		b := gpucore.ProgramBinding{
			Name:    gv.Name,
			Group:   gv.Binding.Group,
			Binding: gv.Binding.Binding,
			Stages:  stages[ir.GlobalVariableHandle(i)],
		}
		if !classify(module, gv, &b) {
			continue
		}
		r.bindings = append(r.bindings, b)
	}
	sort.Slice(r.bindings, func(i, j int) bool {
		if r.bindings[i].Group != r.bindings[j].Group {
			return r.bindings[i].Group < r.bindings[j].Group
		}
		return r.bindings[i].Binding < r.bindings[j].Binding
	})
	return r, nil
}

// classify fills the kind of b from the variable's address space and type.
// It returns false for bindings no core can use (storage buffers and
// storage textures).
func classify(module *ir.Module, gv *ir.GlobalVariable, b *gpucore.ProgramBinding) bool {
	if gv.Space == ir.SpaceUniform {
		b.Kind = gpucore.BindingUniform
		return true
	}
	if gv.Space != ir.SpaceHandle || int(gv.Type) >= len(module.Types) {
		return false
	}
	switch t := module.Types[gv.Type].Inner.(type) {
	case ir.ImageType:
		if t.Class == ir.ImageClassStorage {
			return false
		}
		b.Kind = gpucore.BindingTexture
		if t.Dim == ir.DimCube {
			b.Dimension = gpucore.TextureDimCube
		}
		return true
	case ir.SamplerType:
		b.Kind = gpucore.BindingSampler
		return true
	}
	return false
}

func findEntry(module *ir.Module, stage ir.ShaderStage, name string) *ir.EntryPoint {
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Stage != stage {
			continue
		}
		if name == "" || ep.Name == name {
			return ep
		}
	}
	return nil
}

// usedGlobals returns the global variables referenced by fn and by every
// function it calls.
func usedGlobals(module *ir.Module, fn *ir.Function) map[ir.GlobalVariableHandle]struct{} {
	out := make(map[ir.GlobalVariableHandle]struct{})
	visited := make(map[ir.FunctionHandle]bool)

	var walkFn func(f *ir.Function)
	var walkBlock func(b ir.Block)

	walkBlock = func(b ir.Block) {
		for _, st := range b {
			switch s := st.Kind.(type) {
			case ir.StmtCall:
				if visited[s.Function] || int(s.Function) >= len(module.Functions) {
					continue
				}
				visited[s.Function] = true
				walkFn(&module.Functions[s.Function])
			case ir.StmtBlock:
				walkBlock(s.Block)
			case ir.StmtIf:
				walkBlock(s.Accept)
				walkBlock(s.Reject)
			case ir.StmtLoop:
				walkBlock(s.Body)
				walkBlock(s.Continuing)
			case ir.StmtSwitch:
				for _, c := range s.Cases {
					walkBlock(c.Body)
				}
			}
		}
	}
	walkFn = func(f *ir.Function) {
		for _, e := range f.Expressions {
			if g, ok := e.Kind.(ir.ExprGlobalVariable); ok {
				out[g.Variable] = struct{}{}
			}
		}
		walkBlock(f.Body)
	}

	walkFn(fn)
	return out
}

// compileSPIRV validates source and returns it as SPIR-V words.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
