// Package invert implements the classification-inversion compositing stage.
//
// A classification pass upstream marks covered fragments in the low four
// bits of the stencil buffer. This stage recombines the scene so that
// classified and unclassified surfaces are visually separated: unclassified
// fragments are multiplied by a configurable highlight color while
// classified fragments pass through unchanged (or the reverse, depending on
// which execute call the host routes a surface through).
//
// The stage operates in one of two modes, derived every frame from whether
// the host supplies an external framebuffer:
//
//   - [ModeExternalDepth]: the host's framebuffer provides the depth-stencil
//     attachment. Fragment separation happens in the stencil test and the
//     simple opaque shader applies the tint.
//   - [ModeOwnedDepth]: no external framebuffer exists, so the stage owns
//     its depth-stencil buffer and an extra classified-capture texture.
//     Separation happens by sampling the capture texture, and the shader
//     re-emits fragment depth from the stage's depth buffer so translucent
//     content composites in the right order. This mode requires depth
//     texture sampling and fragment depth output ([Stage.Supported]).
//
// Per-frame call order on the rendering thread is fixed:
// Update, Clear, scene draws into [Stage.Framebuffer], ExecuteClassified,
// ExecuteUnclassified. The stage is single-threaded and frame-synchronous;
// no method may run concurrently with another on the same stage.
package invert
