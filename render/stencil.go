// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Stencil bit partition shared across the renderer.
//
// The 8-bit stencil buffer is split between two otherwise unrelated
// features: classification coverage marks the low four bits, and the
// level-of-detail skip pass marks the high four bits. Every stencil read or
// write in either feature must mask to its own nibble. Changing this split
// requires coordinating both consumers; the constants below are the single
// source of truth.
const (
	// StencilMaskClassification selects the low four stencil bits, written
	// by the classification pass and tested by the inversion stage.
	StencilMaskClassification uint32 = 0x0F

	// StencilMaskSkipLOD selects the high four stencil bits, owned by the
	// level-of-detail skip feature.
	StencilMaskSkipLOD uint32 = 0xF0

	// StencilReferenceClassification is the reference value classification
	// stencil tests compare against. Zero matches the hardware default, so
	// no dynamic stencil reference is ever set on a render pass.
	StencilReferenceClassification uint32 = 0
)
