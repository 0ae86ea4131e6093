// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tiles3d"
)

// Framebuffer bundles the texture views a render pass targets: one color
// view and, optionally, one depth-stencil view.
//
// A Framebuffer does not own its attachments. The component that created
// the textures destroys them; dropping a Framebuffer never releases GPU
// memory. This keeps attachment lifetime and framebuffer lifetime fully
// independent, which matters when two framebuffers share one depth-stencil
// attachment.
type Framebuffer struct {
	Label string

	ColorView hal.TextureView

	// DepthStencilView is nil for color-only framebuffers.
	DepthStencilView hal.TextureView

	Width, Height uint32
}

// HasDepthStencil reports whether the framebuffer carries a depth-stencil
// attachment.
func (f *Framebuffer) HasDepthStencil() bool {
	return f.DepthStencilView != nil
}

// LoadPass returns a render pass descriptor that preserves the current
// attachment contents: all load ops are Load and all store ops are Store.
// Draw commands use this to composite into an already-rendered target.
func (f *Framebuffer) LoadPass() *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{
		Label: f.Label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    f.ColorView,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	}
	if f.DepthStencilView != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:           f.DepthStencilView,
			DepthLoadOp:    gputypes.LoadOpLoad,
			DepthStoreOp:   gputypes.StoreOpStore,
			StencilLoadOp:  gputypes.LoadOpLoad,
			StencilStoreOp: gputypes.StoreOpStore,
		}
	}
	return desc
}

// ClearPass returns a render pass descriptor that clears the color
// attachment to the given color and, if a depth-stencil attachment is
// present, resets depth and stencil to the given values.
func (f *Framebuffer) ClearPass(color tiles3d.RGBA, depth float32, stencil uint32) *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{
		Label: f.Label + "_clear",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.ColorView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: color.R, G: color.G, B: color.B, A: color.A},
		}},
	}
	if f.DepthStencilView != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              f.DepthStencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   depth,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: stencil,
		}
	}
	return desc
}

// ClearColorPass returns a render pass descriptor that clears only the
// color attachment. The depth-stencil attachment is left out of the pass
// entirely, so its contents are untouched even when present. Used when the
// depth-stencil attachment belongs to an external framebuffer that must not
// be disturbed.
func (f *Framebuffer) ClearColorPass(color tiles3d.RGBA) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: f.Label + "_clear_color",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.ColorView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: color.R, G: color.G, B: color.B, A: color.A},
		}},
	}
}
