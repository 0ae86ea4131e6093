package invert

// Mode is the stage's operating mode, derived each frame from the presence
// of a host-supplied external framebuffer. Toggling it invalidates every
// owned resource and compiled command.
type Mode int

const (
	// ModeExternalDepth reuses the depth-stencil attachment of the host's
	// framebuffer. Opaque-only compositing.
	ModeExternalDepth Mode = iota

	// ModeOwnedDepth allocates a stage-owned depth-stencil buffer and a
	// classified-capture texture. Translucency-capable compositing.
	ModeOwnedDepth
)

func (m Mode) String() string {
	switch m {
	case ModeExternalDepth:
		return "external-depth"
	case ModeOwnedDepth:
		return "owned-depth"
	default:
		return "unknown"
	}
}
