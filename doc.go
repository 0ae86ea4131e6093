// Package tiles3d provides screen-space compositing stages for a 3D-tiles
// scene renderer built on the gogpu/wgpu HAL.
//
// The central piece is the classification-inversion stage in package invert:
// it visually separates surfaces covered by a classification overlay from
// surfaces that are not, using a stencil mask shared with the renderer's
// level-of-detail skip feature. Package render holds the host-pipeline
// boundary types (device handle, render context, pass state, framebuffers,
// render states, full-screen-quad commands) shared by all stages, and
// package shader assembles and validates the WGSL permutations the stages
// compile.
//
// Package description carries the declarative model-description container a
// host application uses to describe a renderable asset (URI, scale,
// highlight color, blend option) with change notification and merge/clone
// semantics.
//
// tiles3d does not create windows or surfaces. The host pipeline owns the
// GPU device and the frame loop; stages receive the device through
// render.DeviceHandle and are invoked in a fixed per-frame order on the
// rendering thread.
package tiles3d
