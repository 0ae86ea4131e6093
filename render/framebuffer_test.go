// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tiles3d"
)

// fakeView is a test double for hal.TextureView.
type fakeView struct{}

func (fakeView) Destroy() {}

func (fakeView) NativeHandle() uintptr { return 0 }

func TestLoadPass(t *testing.T) {
	fb := &Framebuffer{Label: "t", Width: 64, Height: 64}
	desc := fb.LoadPass()
	if len(desc.ColorAttachments) != 1 {
		t.Fatalf("expected one color attachment, got %d", len(desc.ColorAttachments))
	}
	ca := desc.ColorAttachments[0]
	if ca.LoadOp != gputypes.LoadOpLoad || ca.StoreOp != gputypes.StoreOpStore {
		t.Error("load pass must preserve color contents")
	}
	if desc.DepthStencilAttachment != nil {
		t.Error("color-only framebuffer must not produce a depth-stencil attachment")
	}
	if fb.HasDepthStencil() {
		t.Error("HasDepthStencil must be false without a depth-stencil view")
	}
}

func TestClearPass(t *testing.T) {
	fb := &Framebuffer{Label: "t", Width: 64, Height: 64}
	red := tiles3d.RGB(1, 0, 0)
	desc := fb.ClearPass(red, 1.0, 0)
	ca := desc.ColorAttachments[0]
	if ca.LoadOp != gputypes.LoadOpClear {
		t.Error("clear pass must clear the color attachment")
	}
	if ca.ClearValue.R != 1 || ca.ClearValue.G != 0 || ca.ClearValue.B != 0 || ca.ClearValue.A != 1 {
		t.Errorf("clear value = %+v, want opaque red", ca.ClearValue)
	}
}

func TestClearColorPassOmitsDepthStencil(t *testing.T) {
	// A view handle is irrelevant here, any non-nil value marks the
	// attachment present.
	fb := &Framebuffer{Label: "t", DepthStencilView: fakeView{}, Width: 8, Height: 8}
	if !fb.HasDepthStencil() {
		t.Fatal("expected a depth-stencil attachment")
	}

	full := fb.ClearPass(tiles3d.RGBA{}, 1.0, 0)
	if full.DepthStencilAttachment == nil {
		t.Error("full clear must include the depth-stencil attachment")
	} else {
		dsa := full.DepthStencilAttachment
		if dsa.DepthClearValue != 1.0 || dsa.StencilClearValue != 0 {
			t.Errorf("depth/stencil clear values = %v/%v, want 1.0/0",
				dsa.DepthClearValue, dsa.StencilClearValue)
		}
	}

	colorOnly := fb.ClearColorPass(tiles3d.RGBA{})
	if colorOnly.DepthStencilAttachment != nil {
		t.Error("color-only clear must leave the depth-stencil attachment out of the pass")
	}
}

func TestPassStateBindRestore(t *testing.T) {
	ps := &PassState{}
	if ps.Current() != nil {
		t.Error("fresh pass state must have no binding")
	}

	a := &Framebuffer{Label: "a"}
	b := &Framebuffer{Label: "b"}

	if prev := ps.Bind(a); prev != nil {
		t.Errorf("first bind must return nil, got %v", prev.Label)
	}
	if ps.Current() != a {
		t.Error("bind must make the framebuffer current")
	}

	prev := ps.Bind(b)
	if prev != a {
		t.Error("bind must return the previous binding")
	}
	ps.Bind(prev)
	if ps.Current() != a {
		t.Error("rebinding the returned value must restore the previous state")
	}
}
