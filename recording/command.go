package recording

import (
	"fmt"

	"github.com/gogpu/rendercore/gpucore"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Resource commands
	CmdCreateVertexBuffer  CommandType = iota // Create a vertex buffer
	CmdCreateUniformBuffer                    // Create a uniform buffer
	CmdWriteBuffer                            // Write into a buffer
	CmdCreateCubeTexture                      // Upload a cube texture
	CmdCreateSampler                          // Create a sampler
	CmdRelease                                // Release a resource

	// State commands
	CmdSetProgram           // Bind a shader program
	CmdSetBlendState        // Bind blend state
	CmdSetDepthStencilState // Bind depth-stencil state
	CmdSetRasterState       // Bind rasterizer state
	CmdSetTexture           // Bind a texture view to a slot
	CmdSetSampler           // Bind a sampler to a slot
	CmdSetConstantBuffer    // Bind a constant buffer to a slot
	CmdSetVertexBuffer      // Bind the vertex buffer
	CmdSetTopology          // Set primitive topology

	// Drawing commands
	CmdDraw // Non-indexed draw
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateVertexBuffer:   "CreateVertexBuffer",
	CmdCreateUniformBuffer:  "CreateUniformBuffer",
	CmdWriteBuffer:          "WriteBuffer",
	CmdCreateCubeTexture:    "CreateCubeTexture",
	CmdCreateSampler:        "CreateSampler",
	CmdRelease:              "Release",
	CmdSetProgram:           "SetProgram",
	CmdSetBlendState:        "SetBlendState",
	CmdSetDepthStencilState: "SetDepthStencilState",
	CmdSetRasterState:       "SetRasterState",
	CmdSetTexture:           "SetTexture",
	CmdSetSampler:           "SetSampler",
	CmdSetConstantBuffer:    "SetConstantBuffer",
	CmdSetVertexBuffer:      "SetVertexBuffer",
	CmdSetTopology:          "SetTopology",
	CmdDraw:                 "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
	fmt.Stringer
}

// ResourceRef identifies a resource created by a Recorder.
// Zero is never assigned and stands for "no resource".
type ResourceRef uint32

// String returns "#n", or "nil" for the zero reference.
func (r ResourceRef) String() string {
	if r == 0 {
		return "nil"
	}
	return fmt.Sprintf("#%d", uint32(r))
}

// --------------------------------------------------------------------------
// Resource Commands
// --------------------------------------------------------------------------

// CreateBufferCommand records buffer creation.
type CreateBufferCommand struct {
	Ref     ResourceRef
	Label   string
	Size    uint64
	Uniform bool
}

// Type implements Command.
func (c CreateBufferCommand) Type() CommandType {
	if c.Uniform {
		return CmdCreateUniformBuffer
	}
	return CmdCreateVertexBuffer
}

func (c CreateBufferCommand) String() string {
	return fmt.Sprintf("%s %s %q size=%d", c.Type(), c.Ref, c.Label, c.Size)
}

// WriteBufferCommand records a buffer write.
type WriteBufferCommand struct {
	Ref    ResourceRef
	Offset uint64
	Size   int
}

// Type implements Command.
func (WriteBufferCommand) Type() CommandType { return CmdWriteBuffer }

func (c WriteBufferCommand) String() string {
	return fmt.Sprintf("WriteBuffer %s offset=%d size=%d", c.Ref, c.Offset, c.Size)
}

// CreateCubeTextureCommand records a cube texture upload.
type CreateCubeTextureCommand struct {
	Ref   ResourceRef
	Label string
	Size  int
}

// Type implements Command.
func (CreateCubeTextureCommand) Type() CommandType { return CmdCreateCubeTexture }

func (c CreateCubeTextureCommand) String() string {
	return fmt.Sprintf("CreateCubeTexture %s %q face=%dx%d", c.Ref, c.Label, c.Size, c.Size)
}

// CreateSamplerCommand records sampler creation.
type CreateSamplerCommand struct {
	Ref  ResourceRef
	Desc gpucore.SamplerDescription
}

// Type implements Command.
func (CreateSamplerCommand) Type() CommandType { return CmdCreateSampler }

func (c CreateSamplerCommand) String() string {
	return fmt.Sprintf("CreateSampler %s min=%d mag=%d mip=%d aniso=%d",
		c.Ref, c.Desc.MinFilter, c.Desc.MagFilter, c.Desc.MipFilter, c.Desc.MaxAnisotropy)
}

// ReleaseCommand records the first release of a resource.
type ReleaseCommand struct {
	Ref ResourceRef
}

// Type implements Command.
func (ReleaseCommand) Type() CommandType { return CmdRelease }

func (c ReleaseCommand) String() string { return "Release " + c.Ref.String() }

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SetProgramCommand binds a program.
type SetProgramCommand struct {
	Program *gpucore.Program
}

// Type implements Command.
func (SetProgramCommand) Type() CommandType { return CmdSetProgram }

func (c SetProgramCommand) String() string {
	if c.Program == nil {
		return "SetProgram nil"
	}
	return fmt.Sprintf("SetProgram %q", c.Program.Label)
}

// SetBlendStateCommand binds blend state.
type SetBlendStateCommand struct {
	Desc gpucore.BlendDescription
}

// Type implements Command.
func (SetBlendStateCommand) Type() CommandType { return CmdSetBlendState }

func (c SetBlendStateCommand) String() string {
	return fmt.Sprintf("SetBlendState enabled=%t", c.Desc.Enabled)
}

// SetDepthStencilStateCommand binds depth-stencil state.
type SetDepthStencilStateCommand struct {
	Desc gpucore.DepthStencilDescription
}

// Type implements Command.
func (SetDepthStencilStateCommand) Type() CommandType { return CmdSetDepthStencilState }

func (c SetDepthStencilStateCommand) String() string {
	return fmt.Sprintf("SetDepthStencilState test=%t write=%t compare=%d",
		c.Desc.DepthEnabled, c.Desc.DepthWrite, c.Desc.DepthCompare)
}

// SetRasterStateCommand binds rasterizer state.
type SetRasterStateCommand struct {
	Desc gpucore.RasterDescription
}

// Type implements Command.
func (SetRasterStateCommand) Type() CommandType { return CmdSetRasterState }

func (c SetRasterStateCommand) String() string {
	return fmt.Sprintf("SetRasterState fill=%d cull=%d", c.Desc.Fill, c.Desc.Cull)
}

// SetTextureCommand binds a texture view to a slot.
type SetTextureCommand struct {
	Stage gpucore.ShaderStage
	Slot  int
	Ref   ResourceRef
}

// Type implements Command.
func (SetTextureCommand) Type() CommandType { return CmdSetTexture }

func (c SetTextureCommand) String() string {
	return fmt.Sprintf("SetTexture %s slot=%d %s", c.Stage, c.Slot, c.Ref)
}

// SetSamplerCommand binds a sampler to a slot.
type SetSamplerCommand struct {
	Stage gpucore.ShaderStage
	Slot  int
	Ref   ResourceRef
}

// Type implements Command.
func (SetSamplerCommand) Type() CommandType { return CmdSetSampler }

func (c SetSamplerCommand) String() string {
	return fmt.Sprintf("SetSampler %s slot=%d %s", c.Stage, c.Slot, c.Ref)
}

// SetConstantBufferCommand binds a constant buffer to a slot.
type SetConstantBufferCommand struct {
	Stage gpucore.ShaderStage
	Slot  int
	Ref   ResourceRef
}

// Type implements Command.
func (SetConstantBufferCommand) Type() CommandType { return CmdSetConstantBuffer }

func (c SetConstantBufferCommand) String() string {
	return fmt.Sprintf("SetConstantBuffer %s slot=%d %s", c.Stage, c.Slot, c.Ref)
}

// SetVertexBufferCommand binds the vertex buffer.
type SetVertexBufferCommand struct {
	Ref    ResourceRef
	Stride uint32
	Offset uint32
}

// Type implements Command.
func (SetVertexBufferCommand) Type() CommandType { return CmdSetVertexBuffer }

func (c SetVertexBufferCommand) String() string {
	return fmt.Sprintf("SetVertexBuffer %s stride=%d offset=%d", c.Ref, c.Stride, c.Offset)
}

// SetTopologyCommand sets the primitive topology.
type SetTopologyCommand struct {
	Topology gpucore.PrimitiveTopology
}

// Type implements Command.
func (SetTopologyCommand) Type() CommandType { return CmdSetTopology }

func (c SetTopologyCommand) String() string { return "SetTopology " + c.Topology.String() }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// DrawCommand is a non-indexed draw.
type DrawCommand struct {
	VertexCount uint32
	StartVertex uint32
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

func (c DrawCommand) String() string {
	return fmt.Sprintf("Draw vertices=%d start=%d", c.VertexCount, c.StartVertex)
}
