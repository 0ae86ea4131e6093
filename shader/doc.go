// Package shader assembles and compiles the WGSL shader permutations used
// by the tiles3d compositing stages.
//
// Permutations are expressed as named boolean defines injected ahead of the
// shader source as WGSL const declarations. The source branches on them
// with ordinary if statements, which the compiler folds at constant
// evaluation time, so one source file yields several compiled variants.
// Compilation goes through naga, which validates the WGSL and emits SPIR-V
// for the HAL backends.
package shader
