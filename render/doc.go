// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between tiles3d compositing
// stages and the host rendering pipeline.
//
// The host application owns the GPU device and the frame loop. Stages receive
// the device through [DeviceHandle] (or create one via [NewBackend] when
// running standalone) and operate on the boundary types defined here:
//
//   - [Context]: per-frame viewport dimensions and device capability flags.
//   - [PassState]: the mutable current-framebuffer binding shared between the
//     host pipeline and stages. Stages that rebind it are contractually
//     obligated to restore the original binding before returning.
//   - [Framebuffer]: a non-owning bundle of color and depth-stencil texture
//     views. Attachment lifetime stays with whoever created the textures.
//   - [State]: an immutable render-state descriptor (depth, stencil, blend)
//     cached by value and lowered to HAL pipeline state at build time.
//   - [QuadCommand]: a full-screen-quad draw command built from a compiled
//     fragment shader, a render state, and a bind group.
//
// The stencil buffer is partitioned between two features: the low four bits
// carry classification coverage and the high four bits carry the
// level-of-detail skip marks. [StencilMaskClassification] and
// [StencilMaskSkipLOD] are the single source of truth for that split.
package render
