package shader

import (
	"fmt"
	"strings"
)

// Define is a named boolean constant injected into a WGSL source. The
// source must not declare the constant itself; it only references it.
type Define struct {
	Name  string
	Value bool
}

// Assemble prepends const declarations for the given defines to a WGSL
// source. Defines are emitted in argument order, one per line, before the
// first line of the source:
//
//	const UNCLASSIFIED: bool = true;
//
// Assembling with no defines returns the source unchanged.
func Assemble(src string, defines ...Define) string {
	if len(defines) == 0 {
		return src
	}
	var b strings.Builder
	for _, d := range defines {
		fmt.Fprintf(&b, "const %s: bool = %t;\n", d.Name, d.Value)
	}
	b.WriteString(src)
	return b.String()
}
