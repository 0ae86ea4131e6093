//go:build !nogpu

package invert

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tiles3d"
	"github.com/gogpu/tiles3d/render"
	"github.com/gogpu/tiles3d/shader"
)

// Embedded WGSL shader sources for the inversion stage.

//go:embed shaders/classify_opaque.wgsl
var classifyOpaqueSource string

//go:embed shaders/classify_depth.wgsl
var classifyDepthSource string

//go:embed shaders/capture.wgsl
var captureSource string

// unclassifiedDefine selects the tint branch of the classify shaders.
const unclassifiedDefine = "UNCLASSIFIED"

// tintUniformSize is the byte size of the tint uniform: one vec4<f32>.
const tintUniformSize = 16

// commands owns the stage's persistent draw commands and the sampler their
// shaders share. Commands are rebuilt whenever the mode changes; shader
// programs bound to replaced commands are released explicitly, never left
// to an implicit reference count.
type commands struct {
	sampler hal.Sampler

	unclassified *render.QuadCommand
	classified   *render.QuadCommand

	// capture exists only in ModeOwnedDepth.
	capture *render.QuadCommand

	mode  Mode
	built bool
}

// rebuild destroys any existing commands and compiles the shader
// permutations for the given mode. ModeExternalDepth pairs the opaque
// shader with the stencil-testing states; ModeOwnedDepth pairs the
// fragment-depth shader with the default state and adds the pass-through
// capture command.
func (c *commands) rebuild(device hal.Device, queue hal.Queue, mode Mode, prefix string) error {
	c.destroyCommands()

	if c.sampler == nil {
		sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
			Label:        prefix + "_sampler",
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    gputypes.FilterModeLinear,
			MinFilter:    gputypes.FilterModeLinear,
		})
		if err != nil {
			return fmt.Errorf("create sampler: %w", err)
		}
		c.sampler = sampler
	}

	src := classifyOpaqueSource
	layout := opaqueLayout()
	unclassifiedState := render.UnclassifiedState()
	classifiedState := render.ClassifiedState()
	if mode == ModeOwnedDepth {
		src = classifyDepthSource
		layout = depthLayout()
		unclassifiedState = render.DefaultState()
		classifiedState = render.DefaultState()
	}

	unclassifiedSPIRV, err := shader.Build(src, shader.Define{Name: unclassifiedDefine, Value: true})
	if err != nil {
		return fmt.Errorf("build unclassified shader: %w", err)
	}
	classifiedSPIRV, err := shader.Build(src, shader.Define{Name: unclassifiedDefine, Value: false})
	if err != nil {
		return fmt.Errorf("build classified shader: %w", err)
	}

	unclassified, err := render.NewQuadCommand(device, queue, &render.QuadCommandConfig{
		Label:              prefix + "_unclassified",
		ShaderSPIRV:        unclassifiedSPIRV,
		State:              unclassifiedState,
		ColorFormat:        colorFormat,
		DepthStencilFormat: depthStencilFormat,
		LayoutEntries:      layout,
		UniformSize:        tintUniformSize,
	})
	if err != nil {
		return fmt.Errorf("build unclassified command: %w", err)
	}
	c.unclassified = unclassified

	classified, err := render.NewQuadCommand(device, queue, &render.QuadCommandConfig{
		Label:              prefix + "_classified",
		ShaderSPIRV:        classifiedSPIRV,
		State:              classifiedState,
		ColorFormat:        colorFormat,
		DepthStencilFormat: depthStencilFormat,
		LayoutEntries:      layout,
		UniformSize:        tintUniformSize,
	})
	if err != nil {
		c.destroyCommands()
		return fmt.Errorf("build classified command: %w", err)
	}
	c.classified = classified

	if mode == ModeOwnedDepth {
		captureSPIRV, err := shader.CompileSPIRV(captureSource)
		if err != nil {
			c.destroyCommands()
			return fmt.Errorf("build capture shader: %w", err)
		}
		capture, err := render.NewQuadCommand(device, queue, &render.QuadCommandConfig{
			Label:              prefix + "_capture",
			ShaderSPIRV:        captureSPIRV,
			State:              render.UnclassifiedState(),
			ColorFormat:        colorFormat,
			DepthStencilFormat: depthStencilFormat,
			LayoutEntries:      captureLayout(),
		})
		if err != nil {
			c.destroyCommands()
			return fmt.Errorf("build capture command: %w", err)
		}
		c.capture = capture
	}

	c.mode = mode
	c.built = true
	tiles3d.Logger().Debug("invert: commands rebuilt", "mode", mode.String())
	return nil
}

// rebind recreates the commands' bind groups against the current texture
// views. Called after every reconciliation that reallocated textures: the
// pipelines survive a resize, the bindings do not.
func (c *commands) rebind(res *resources) error {
	if c.mode == ModeOwnedDepth {
		classify := func(cmd *render.QuadCommand) error {
			return cmd.SetBindings([]gputypes.BindGroupEntry{
				cmd.UniformBinding(0),
				render.TextureBindingEntry(1, res.colorView),
				render.TextureBindingEntry(2, res.captureView),
				render.TextureBindingEntry(3, res.depthReadView),
				render.SamplerBindingEntry(4, c.sampler),
			})
		}
		if err := classify(c.unclassified); err != nil {
			return err
		}
		if err := classify(c.classified); err != nil {
			return err
		}
		return c.capture.SetBindings([]gputypes.BindGroupEntry{
			render.TextureBindingEntry(0, res.colorView),
			render.SamplerBindingEntry(1, c.sampler),
		})
	}

	classify := func(cmd *render.QuadCommand) error {
		return cmd.SetBindings([]gputypes.BindGroupEntry{
			cmd.UniformBinding(0),
			render.TextureBindingEntry(1, res.colorView),
			render.SamplerBindingEntry(2, c.sampler),
		})
	}
	if err := classify(c.unclassified); err != nil {
		return err
	}
	return classify(c.classified)
}

// writeTint uploads the highlight color to the unclassified command and the
// identity tint to the classified command.
func (c *commands) writeTint(highlight tiles3d.RGBA) {
	if c.unclassified != nil {
		c.unclassified.WriteUniform(tintData(highlight))
	}
	if c.classified != nil {
		c.classified.WriteUniform(tintData(tiles3d.White))
	}
}

// destroyCommands releases the draw commands and their compiled shader
// programs. The sampler survives rebuilds and is released in destroy.
func (c *commands) destroyCommands() {
	if c.capture != nil {
		c.capture.Destroy()
		c.capture = nil
	}
	if c.classified != nil {
		c.classified.Destroy()
		c.classified = nil
	}
	if c.unclassified != nil {
		c.unclassified.Destroy()
		c.unclassified = nil
	}
	c.built = false
}

// destroy releases everything, including the shared sampler.
func (c *commands) destroy(device hal.Device) {
	c.destroyCommands()
	if c.sampler != nil {
		device.DestroySampler(c.sampler)
		c.sampler = nil
	}
}

// tintData serializes a color as a 16-byte vec4<f32> uniform.
func tintData(color tiles3d.RGBA) []byte {
	v := color.Float32()
	data := make([]byte, tintUniformSize)
	for i, f := range v {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(f))
	}
	return data
}

// opaqueLayout is the bind group layout of the opaque classify shader:
// tint uniform, color texture, sampler.
func opaqueLayout() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    2,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// depthLayout is the bind group layout of the translucency classify shader:
// tint uniform, color texture, capture texture, depth texture, sampler.
func depthLayout() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    2,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    3,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    4,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// captureLayout is the bind group layout of the pass-through capture
// shader: color texture, sampler.
func captureLayout() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}
