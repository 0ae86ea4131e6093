//go:build !nogpu

package invert

import (
	"errors"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tiles3d"
	"github.com/gogpu/tiles3d/render"
)

// Stage lifecycle errors.
var (
	// ErrDestroyed is returned by every method once Destroy has run; a
	// destroyed stage is not reusable.
	ErrDestroyed = errors.New("invert: stage destroyed")

	// ErrNotReady is returned when a clear or execute call runs before a
	// successful Update in the stage's lifetime.
	ErrNotReady = errors.New("invert: update has not completed successfully")

	// ErrTranslucencyUnsupported is returned by Update when owned-depth
	// mode is requested on a device without depth texture sampling or
	// fragment depth output.
	ErrTranslucencyUnsupported = errors.New("invert: device lacks depth sampling or fragment depth output")
)

// transparent is the clear color of the stage's render targets.
var transparent = tiles3d.RGBA{}

// Option configures a Stage during creation.
type Option func(*Stage)

// WithHighlightColor sets the tint multiplied into unclassified fragments.
// Defaults to white, the identity tint.
func WithHighlightColor(c tiles3d.RGBA) Option {
	return func(s *Stage) { s.highlight = c }
}

// WithLabelPrefix sets the prefix used in GPU object debug labels. Useful
// when a host runs several views, each with its own stage. Defaults to
// "invert".
func WithLabelPrefix(prefix string) Option {
	return func(s *Stage) { s.labelPrefix = prefix }
}

// Stage is the classification-inversion compositing stage. One long-lived
// Stage exists per active 3D view; it owns its GPU textures, framebuffers,
// and compiled draw commands, and is their sole mutator.
//
// All methods must run on the rendering thread in the fixed per-frame
// order: Update, Clear, scene draws, ExecuteClassified,
// ExecuteUnclassified. Destroy may run between frames.
type Stage struct {
	device hal.Device
	queue  hal.Queue

	labelPrefix string
	highlight   tiles3d.RGBA

	res  resources
	cmds commands

	ready     bool
	destroyed bool
}

// New creates a stage for the given device and queue. No GPU resources are
// allocated until the first Update call.
func New(device hal.Device, queue hal.Queue, opts ...Option) *Stage {
	s := &Stage{
		device:      device,
		queue:       queue,
		labelPrefix: "invert",
		highlight:   tiles3d.White,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supported reports whether the device can run the translucency-capable
// path: sampling a depth texture in a fragment shader and writing explicit
// fragment depth. Hosts check this before routing classification output
// through owned-depth mode.
func (s *Stage) Supported(ctx *render.Context) bool {
	return ctx.Caps.DepthTextureSample && ctx.Caps.FragDepthWrite
}

// Update reconciles the stage's resources and commands against the current
// viewport size and the presence of an external framebuffer. It must be
// called before Clear or either execute call in the same frame.
//
// The mode is re-derived on every call: a non-nil external framebuffer
// selects [ModeExternalDepth], nil selects [ModeOwnedDepth]. Toggling the
// mode or resizing the viewport reallocates exactly the resources that
// depend on the changed input; a call with unchanged inputs allocates
// nothing.
func (s *Stage) Update(ctx *render.Context, external *render.Framebuffer) error {
	if s.destroyed {
		return ErrDestroyed
	}

	mode := ModeExternalDepth
	if external == nil {
		mode = ModeOwnedDepth
	}
	if mode == ModeOwnedDepth && !s.Supported(ctx) {
		return ErrTranslucencyUnsupported
	}

	texturesChanged, modeChanged, err := s.res.reconcile(s.device, ctx.Width, ctx.Height, mode, external, s.labelPrefix)
	if err != nil {
		return err
	}

	if modeChanged || !s.cmds.built {
		if err := s.cmds.rebuild(s.device, s.queue, mode, s.labelPrefix); err != nil {
			return err
		}
		s.cmds.writeTint(s.highlight)
	}
	if texturesChanged || modeChanged {
		if err := s.cmds.rebind(&s.res); err != nil {
			return err
		}
	}

	s.ready = true
	return nil
}

// Clear resets the stage's render targets for the new frame. In
// external-depth mode only the primary framebuffer's color attachment is
// cleared; the depth-stencil attachment belongs to the external framebuffer
// and is not touched. In owned-depth mode both framebuffers are cleared to
// transparent black with depth reset to the far plane and stencil to zero.
//
// The caller's framebuffer binding in ps is restored before returning.
func (s *Stage) Clear(ctx *render.Context, ps *render.PassState) error {
	if err := s.check(); err != nil {
		return err
	}

	prev := ps.Bind(s.res.fb)
	defer ps.Bind(prev)

	if s.res.mode == ModeExternalDepth {
		return render.ExecuteClear(ctx, s.res.fb.ClearColorPass(transparent))
	}
	if err := render.ExecuteClear(ctx, s.res.fb.ClearPass(transparent, 1.0, 0)); err != nil {
		return err
	}
	return render.ExecuteClear(ctx, s.res.captureFB.ClearPass(transparent, 1.0, 0))
}

// ExecuteClassified draws the classified composite into the framebuffer
// currently bound in ps. In owned-depth mode it first runs the pass-through
// capture command into the classified-capture framebuffer, restoring the
// caller's binding before the composite draw.
func (s *Stage) ExecuteClassified(ctx *render.Context, ps *render.PassState) error {
	if err := s.check(); err != nil {
		return err
	}

	if s.res.mode == ModeOwnedDepth {
		prev := ps.Bind(s.res.captureFB)
		err := s.cmds.capture.Execute(ctx, ps)
		ps.Bind(prev)
		if err != nil {
			return err
		}
	}
	return s.cmds.classified.Execute(ctx, ps)
}

// ExecuteUnclassified draws the highlight-tinted unclassified composite
// into the framebuffer currently bound in ps.
func (s *Stage) ExecuteUnclassified(ctx *render.Context, ps *render.PassState) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.cmds.unclassified.Execute(ctx, ps)
}

// Destroy releases every GPU resource the stage owns: textures,
// framebuffer references, draw commands with their compiled shader
// programs, and the sampler. The stage is not reusable afterwards; all
// methods return ErrDestroyed. Safe to call more than once.
func (s *Stage) Destroy() {
	if s.destroyed {
		return
	}
	s.cmds.destroy(s.device)
	s.res.destroyTextures(s.device)
	s.ready = false
	s.destroyed = true
}

// SetHighlightColor changes the tint multiplied into unclassified
// fragments. Takes effect immediately when commands are built, otherwise on
// the next Update.
func (s *Stage) SetHighlightColor(c tiles3d.RGBA) {
	s.highlight = c
	if s.cmds.built {
		s.cmds.writeTint(c)
	}
}

// HighlightColor returns the current unclassified tint.
func (s *Stage) HighlightColor() tiles3d.RGBA {
	return s.highlight
}

// Mode returns the operating mode derived by the last Update.
func (s *Stage) Mode() Mode {
	return s.res.mode
}

// Framebuffer returns the stage's primary framebuffer. The host pipeline
// renders the scene into it between Clear and ExecuteClassified. Returns
// nil before the first successful Update.
func (s *Stage) Framebuffer() *render.Framebuffer {
	return s.res.fb
}

// UnclassifiedCommand exposes the unclassified draw command for diagnostic
// inspection by the host. Callers must not execute or mutate it.
func (s *Stage) UnclassifiedCommand() *render.QuadCommand {
	return s.cmds.unclassified
}

func (s *Stage) check() error {
	if s.destroyed {
		return ErrDestroyed
	}
	if !s.ready {
		return ErrNotReady
	}
	return nil
}
