// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/wgpu/hal"

// Capabilities describes the device features the compositing stages key
// their shader selection on.
type Capabilities struct {
	// DepthTextureSample indicates the device can bind a depth texture
	// for sampling in a fragment shader.
	DepthTextureSample bool

	// FragDepthWrite indicates fragment shaders may write an explicit
	// output depth value.
	FragDepthWrite bool
}

// DefaultCapabilities returns the capability set of a WebGPU-core device.
// Both depth texture sampling and fragment depth output are core features,
// so hosts only override these when targeting a restricted backend.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		DepthTextureSample: true,
		FragDepthWrite:     true,
	}
}

// Context carries the per-frame inputs a stage needs: the GPU device and
// queue, the current render-target dimensions, and the device capability
// flags. The host pipeline updates Width and Height before each frame's
// update call; the remaining fields are stable for the context's lifetime.
type Context struct {
	Device hal.Device
	Queue  hal.Queue

	// Width and Height are the current render-target dimensions in pixels.
	Width, Height uint32

	Caps Capabilities
}

// NewContext creates a render context for the given device and queue with
// default (WebGPU-core) capabilities. Dimensions start at zero; callers set
// them before the first frame.
func NewContext(device hal.Device, queue hal.Queue) *Context {
	return &Context{
		Device: device,
		Queue:  queue,
		Caps:   DefaultCapabilities(),
	}
}

// PassState tracks the framebuffer currently bound for drawing. It is shared
// mutable state between the host pipeline and the stages it invokes: a stage
// that rebinds the framebuffer must restore the previous binding before
// returning to its caller.
type PassState struct {
	framebuffer *Framebuffer
}

// Bind makes fb the current framebuffer and returns the previous binding so
// the caller can restore it.
func (ps *PassState) Bind(fb *Framebuffer) *Framebuffer {
	prev := ps.framebuffer
	ps.framebuffer = fb
	return prev
}

// Current returns the currently bound framebuffer, or nil if none is bound.
func (ps *PassState) Current() *Framebuffer {
	return ps.framebuffer
}
