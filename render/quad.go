// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Quad command errors.
var (
	// ErrNoFramebuffer is returned when a command executes against a pass
	// state with no framebuffer bound.
	ErrNoFramebuffer = errors.New("render: no framebuffer bound in pass state")

	// ErrNoBindGroup is returned when a command executes before its
	// resource bindings were set.
	ErrNoBindGroup = errors.New("render: quad command has no bind group")
)

// quadVertexStride is the byte stride per vertex: 2 x float32 (x, y).
const quadVertexStride = 8

// quadVertexCount is the number of vertices in the full-screen quad
// (two triangles, non-indexed).
const quadVertexCount = 6

// quadVertexData returns the clip-space vertices of a full-screen quad as
// raw little-endian bytes ready for GPU upload.
func quadVertexData() []byte {
	verts := [quadVertexCount * 2]float32{
		-1, -1,
		1, -1,
		1, 1,
		1, 1,
		-1, 1,
		-1, -1,
	}
	data := make([]byte, len(verts)*4)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return data
}

// QuadCommandConfig describes a full-screen-quad draw command: the compiled
// shader it runs, the render state its pipeline bakes in, the formats of
// the attachments it targets, and the shape of its resource bindings.
type QuadCommandConfig struct {
	Label string

	// ShaderSPIRV is the compiled shader module containing vs_main and
	// fs_main entry points.
	ShaderSPIRV []uint32

	// State selects depth, stencil, and blend behavior.
	State *State

	// ColorFormat is the format of the color attachment drawn into.
	ColorFormat gputypes.TextureFormat

	// DepthStencilFormat is the format of the pass's depth-stencil
	// attachment, or TextureFormatUndefined for color-only passes.
	DepthStencilFormat gputypes.TextureFormat

	// LayoutEntries declares the bind group layout at group 0.
	LayoutEntries []gputypes.BindGroupLayoutEntry

	// UniformSize is the byte size of the command's uniform buffer, or 0
	// when the shader has no uniforms.
	UniformSize uint64
}

// QuadCommand is a persistent full-screen-quad draw command. It owns its
// shader module, pipeline, vertex buffer, uniform buffer, and bind group,
// and records a single six-vertex draw into a render pass.
//
// Commands are rebuilt when the stage's operating mode changes and rebound
// (SetBindings) when the textures they sample are reallocated.
type QuadCommand struct {
	device hal.Device
	queue  hal.Queue

	label       string
	state       *State
	uniformSize uint64

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

// NewQuadCommand compiles the shader and builds the pipeline and buffers
// for a full-screen-quad command. Bindings are not set; call
// [QuadCommand.SetBindings] before the first execute.
func NewQuadCommand(device hal.Device, queue hal.Queue, cfg *QuadCommandConfig) (*QuadCommand, error) {
	c := &QuadCommand{
		device:      device,
		queue:       queue,
		label:       cfg.Label,
		state:       cfg.State,
		uniformSize: cfg.UniformSize,
	}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  cfg.Label + "_shader",
		Source: hal.ShaderSource{SPIRV: cfg.ShaderSPIRV},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", cfg.Label, err)
	}
	c.shader = shader

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   cfg.Label + "_bind_layout",
		Entries: cfg.LayoutEntries,
	})
	if err != nil {
		c.Destroy()
		return nil, fmt.Errorf("create %s bind group layout: %w", cfg.Label, err)
	}
	c.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            cfg.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		c.Destroy()
		return nil, fmt.Errorf("create %s pipeline layout: %w", cfg.Label, err)
	}
	c.pipeLayout = pipeLayout

	vertexBufferLayout := []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  cfg.Label + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexBufferLayout,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    cfg.ColorFormat,
					Blend:     cfg.State.Blend(),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if cfg.DepthStencilFormat != gputypes.TextureFormatUndefined {
		desc.DepthStencil = cfg.State.DepthStencil(cfg.DepthStencilFormat)
	}
	pipeline, err := device.CreateRenderPipeline(desc)
	if err != nil {
		c.Destroy()
		return nil, fmt.Errorf("create %s pipeline: %w", cfg.Label, err)
	}
	c.pipeline = pipeline

	vertData := quadVertexData()
	vertBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: cfg.Label + "_verts",
		Size:  uint64(len(vertData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		c.Destroy()
		return nil, fmt.Errorf("create %s vertex buffer: %w", cfg.Label, err)
	}
	c.vertBuf = vertBuf
	queue.WriteBuffer(vertBuf, 0, vertData)

	if cfg.UniformSize > 0 {
		uniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: cfg.Label + "_uniform",
			Size:  cfg.UniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			c.Destroy()
			return nil, fmt.Errorf("create %s uniform buffer: %w", cfg.Label, err)
		}
		c.uniformBuf = uniformBuf
	}

	return c, nil
}

// Label returns the command's debug label.
func (c *QuadCommand) Label() string { return c.label }

// State returns the render state the command's pipeline was built from.
// The returned pointer is the canonical cached descriptor.
func (c *QuadCommand) State() *State { return c.state }

// WriteUniform uploads data to the command's uniform buffer.
func (c *QuadCommand) WriteUniform(data []byte) {
	if c.uniformBuf == nil {
		return
	}
	c.queue.WriteBuffer(c.uniformBuf, 0, data)
}

// UniformBinding returns the bind group entry for the command's own uniform
// buffer at the given binding index, for use with [QuadCommand.SetBindings].
func (c *QuadCommand) UniformBinding(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.BufferBinding{
			Buffer: c.uniformBuf.NativeHandle(),
			Offset: 0,
			Size:   c.uniformSize,
		},
	}
}

// SetBindings replaces the command's bind group with one built from the
// given entries. Called after construction and again whenever the bound
// texture views are reallocated.
func (c *QuadCommand) SetBindings(entries []gputypes.BindGroupEntry) error {
	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   c.label + "_bind",
		Layout:  c.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create %s bind group: %w", c.label, err)
	}
	if c.bindGroup != nil {
		c.device.DestroyBindGroup(c.bindGroup)
	}
	c.bindGroup = bg
	return nil
}

// RecordDraw records the full-screen-quad draw into an existing render
// pass. The pass's attachments must match the formats and render state the
// command was built with.
func (c *QuadCommand) RecordDraw(rp hal.RenderPassEncoder) {
	rp.SetPipeline(c.pipeline)
	rp.SetBindGroup(0, c.bindGroup, nil)
	rp.SetVertexBuffer(0, c.vertBuf, 0)
	rp.Draw(quadVertexCount, 1, 0, 0)
}

// Execute draws the quad into the framebuffer currently bound in the pass
// state, preserving existing attachment contents.
func (c *QuadCommand) Execute(ctx *Context, ps *PassState) error {
	fb := ps.Current()
	if fb == nil {
		return ErrNoFramebuffer
	}
	return c.ExecuteInto(ctx, fb)
}

// ExecuteInto draws the quad into the given framebuffer, preserving
// existing attachment contents.
func (c *QuadCommand) ExecuteInto(ctx *Context, fb *Framebuffer) error {
	if c.bindGroup == nil {
		return ErrNoBindGroup
	}
	encoder, err := ctx.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: c.label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(c.label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	rp := encoder.BeginRenderPass(fb.LoadPass())
	c.RecordDraw(rp)
	rp.End()
	return submitEncoder(ctx, encoder)
}

// Destroy releases all GPU resources held by the command, including its
// compiled shader module. Safe to call on a partially constructed command.
func (c *QuadCommand) Destroy() {
	if c.device == nil {
		return
	}
	if c.bindGroup != nil {
		c.device.DestroyBindGroup(c.bindGroup)
		c.bindGroup = nil
	}
	if c.uniformBuf != nil {
		c.device.DestroyBuffer(c.uniformBuf)
		c.uniformBuf = nil
	}
	if c.vertBuf != nil {
		c.device.DestroyBuffer(c.vertBuf)
		c.vertBuf = nil
	}
	if c.pipeline != nil {
		c.device.DestroyRenderPipeline(c.pipeline)
		c.pipeline = nil
	}
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		c.device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}

// TextureBindingEntry returns a bind group entry for a sampled texture view.
func TextureBindingEntry(binding uint32, view hal.TextureView) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  binding,
		Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()},
	}
}

// SamplerBindingEntry returns a bind group entry for a sampler.
func SamplerBindingEntry(binding uint32, sampler hal.Sampler) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  binding,
		Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()},
	}
}
