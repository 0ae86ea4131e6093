//go:build !nogpu

package invert

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tiles3d"
	"github.com/gogpu/tiles3d/render"
)

const (
	colorFormat        = gputypes.TextureFormatRGBA8Unorm
	depthStencilFormat = gputypes.TextureFormatDepth24PlusStencil8
)

// resources owns the stage's textures and the framebuffers that reference
// them. Framebuffers are non-owning view bundles; all texture lifetime is
// managed here.
//
// Reconciliation runs every frame. Two flags drive reallocation: size
// changed (or first allocation) and mode changed. When neither is set and
// the external attachment is unchanged, reconcile touches nothing.
type resources struct {
	width, height uint32
	mode          Mode
	modeSet       bool

	colorTex  hal.Texture
	colorView hal.TextureView

	// Capture and depth-stencil textures exist only in ModeOwnedDepth.
	captureTex  hal.Texture
	captureView hal.TextureView
	depthTex    hal.Texture
	depthView   hal.TextureView

	// depthReadView is a depth-aspect view of depthTex sampled by the
	// translucency shader.
	depthReadView hal.TextureView

	// externalDS is the external depth-stencil view the primary
	// framebuffer was last built with, nil in owned mode.
	externalDS hal.TextureView

	fb        *render.Framebuffer
	captureFB *render.Framebuffer
}

// reconcile brings the owned resources in line with the current viewport
// size and mode. It reports whether textures were reallocated and whether
// the mode changed; the command builder keys its own rebuilds on those
// flags.
func (r *resources) reconcile(device hal.Device, w, h uint32, mode Mode, external *render.Framebuffer, prefix string) (texturesChanged, modeChanged bool, err error) {
	sizeChanged := r.colorTex == nil || w != r.width || h != r.height
	modeChanged = !r.modeSet || mode != r.mode
	texturesChanged = sizeChanged || modeChanged

	if texturesChanged {
		r.destroyTextures(device)
		if err := r.createTextures(device, w, h, mode, prefix); err != nil {
			r.destroyTextures(device)
			return false, false, err
		}
		r.width = w
		r.height = h
		r.mode = mode
		r.modeSet = true
		tiles3d.Logger().Debug("invert: textures reallocated",
			"width", w, "height", h, "mode", mode.String())
	}

	var extView hal.TextureView
	if external != nil {
		extView = external.DepthStencilView
	}
	if texturesChanged || r.fb == nil || extView != r.externalDS {
		dsView := extView
		if mode == ModeOwnedDepth {
			dsView = r.depthView
		}
		r.fb = &render.Framebuffer{
			Label:            prefix + "_primary",
			ColorView:        r.colorView,
			DepthStencilView: dsView,
			Width:            w,
			Height:           h,
		}
		if mode == ModeOwnedDepth {
			r.captureFB = &render.Framebuffer{
				Label:            prefix + "_capture",
				ColorView:        r.captureView,
				DepthStencilView: r.depthView,
				Width:            w,
				Height:           h,
			}
		} else {
			r.captureFB = nil
		}
		r.externalDS = extView
	}

	return texturesChanged, modeChanged, nil
}

// createTextures allocates the color texture and, in owned-depth mode, the
// capture and depth-stencil textures with their views. On error the caller
// cleans up via destroyTextures.
func (r *resources) createTextures(device hal.Device, w, h uint32, mode Mode, prefix string) error {
	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         prefix + "_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: prefix + "_color_view",
	})
	if err != nil {
		return fmt.Errorf("create color texture view: %w", err)
	}
	r.colorView = colorView

	if mode != ModeOwnedDepth {
		return nil
	}

	captureTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         prefix + "_capture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create capture texture: %w", err)
	}
	r.captureTex = captureTex

	captureView, err := device.CreateTextureView(captureTex, &hal.TextureViewDescriptor{
		Label: prefix + "_capture_view",
	})
	if err != nil {
		return fmt.Errorf("create capture texture view: %w", err)
	}
	r.captureView = captureView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         prefix + "_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthStencilFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create depth-stencil texture: %w", err)
	}
	r.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: prefix + "_depth_stencil_view",
	})
	if err != nil {
		return fmt.Errorf("create depth-stencil texture view: %w", err)
	}
	r.depthView = depthView

	depthReadView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label:  prefix + "_depth_read_view",
		Aspect: gputypes.TextureAspectDepthOnly,
	})
	if err != nil {
		return fmt.Errorf("create depth read view: %w", err)
	}
	r.depthReadView = depthReadView

	return nil
}

// destroyTextures releases all texture views and textures, drops the
// framebuffers referencing them, and resets dimensions to zero. Each
// resource is nil-checked to support partial cleanup.
func (r *resources) destroyTextures(device hal.Device) {
	if r.depthReadView != nil {
		device.DestroyTextureView(r.depthReadView)
		r.depthReadView = nil
	}
	if r.depthView != nil {
		device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		device.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
	if r.captureView != nil {
		device.DestroyTextureView(r.captureView)
		r.captureView = nil
	}
	if r.captureTex != nil {
		device.DestroyTexture(r.captureTex)
		r.captureTex = nil
	}
	if r.colorView != nil {
		device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
	r.fb = nil
	r.captureFB = nil
	r.externalDS = nil
	r.width = 0
	r.height = 0
	r.modeSet = false
}
