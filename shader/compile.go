//go:build !nogpu

package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// CompileSPIRV compiles WGSL source to a SPIR-V uint32 slice suitable for
// hal.ShaderSource. Compilation also validates the source, so malformed
// permutations fail here rather than at pipeline creation.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// Build assembles the source with the given defines and compiles the result
// to SPIR-V.
func Build(src string, defines ...Define) ([]uint32, error) {
	return CompileSPIRV(Assemble(src, defines...))
}
