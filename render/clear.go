// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// submitTimeout bounds how long a submitted command buffer may take before
// the frame is considered stuck.
const submitTimeout = 5 * time.Second

// ExecuteClear runs an empty render pass with the given descriptor. The
// pass's load ops perform the actual clearing; no draws are recorded.
func ExecuteClear(ctx *Context, desc *hal.RenderPassDescriptor) error {
	encoder, err := ctx.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: desc.Label,
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(desc.Label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	rp := encoder.BeginRenderPass(desc)
	rp.End()
	return submitEncoder(ctx, encoder)
}

// submitEncoder finishes encoding, submits the command buffer, and waits
// for the GPU to complete it. Completion is observed through the queue's
// submission index; the HAL manages its own internal fences.
func submitEncoder(ctx *Context, encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer ctx.Device.FreeCommandBuffer(cmdBuf)

	index, err := ctx.Queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	deadline := time.Now().Add(submitTimeout)
	for ctx.Queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("submission %d not completed within %s", index, submitTimeout)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
