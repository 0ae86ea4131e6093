// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func TestCachedStateIdentity(t *testing.T) {
	a := CachedState(State{DepthTest: true, BlendMode: BlendAlpha})
	b := CachedState(State{DepthTest: true, BlendMode: BlendAlpha})
	if a != b {
		t.Error("equal descriptors must share one canonical pointer")
	}
	c := CachedState(State{DepthTest: false, BlendMode: BlendAlpha})
	if a == c {
		t.Error("distinct descriptors must not share a pointer")
	}
}

func TestStateFactoriesCached(t *testing.T) {
	if UnclassifiedState() != UnclassifiedState() {
		t.Error("UnclassifiedState must return the canonical pointer")
	}
	if ClassifiedState() != ClassifiedState() {
		t.Error("ClassifiedState must return the canonical pointer")
	}
	if DefaultState() != DefaultState() {
		t.Error("DefaultState must return the canonical pointer")
	}
	if UnclassifiedState() == ClassifiedState() {
		t.Error("unclassified and classified states must differ")
	}
}

func TestStencilMaskPartition(t *testing.T) {
	if StencilMaskClassification&StencilMaskSkipLOD != 0 {
		t.Errorf("classification mask %#x overlaps skip-LOD mask %#x",
			StencilMaskClassification, StencilMaskSkipLOD)
	}
	if StencilMaskClassification != 0x0F {
		t.Errorf("classification mask = %#x, want 0x0F", StencilMaskClassification)
	}
	if StencilMaskSkipLOD != 0xF0 {
		t.Errorf("skip-LOD mask = %#x, want 0xF0", StencilMaskSkipLOD)
	}
}

func TestUnclassifiedStateDescriptor(t *testing.T) {
	s := UnclassifiedState()
	if s.DepthTest || s.DepthWrite {
		t.Error("unclassified state must not test or write depth")
	}
	if !s.Stencil.Enabled {
		t.Fatal("unclassified state must enable the stencil test")
	}
	if s.Stencil.Compare != gputypes.CompareFunctionEqual {
		t.Errorf("compare = %v, want EQUAL", s.Stencil.Compare)
	}
	if s.Stencil.Reference != StencilReferenceClassification {
		t.Errorf("reference = %d, want %d", s.Stencil.Reference, StencilReferenceClassification)
	}
	if s.Stencil.ReadMask != StencilMaskClassification || s.Stencil.WriteMask != StencilMaskClassification {
		t.Error("stencil masks must cover exactly the classification nibble")
	}
	if s.BlendMode != BlendAlpha {
		t.Error("unclassified state must alpha blend")
	}
}

func TestClassifiedStateDescriptor(t *testing.T) {
	s := ClassifiedState()
	if s.Stencil.Compare != gputypes.CompareFunctionNotEqual {
		t.Errorf("compare = %v, want NOT_EQUAL", s.Stencil.Compare)
	}
	if s.Stencil.Reference != StencilReferenceClassification {
		t.Errorf("reference = %d, want %d", s.Stencil.Reference, StencilReferenceClassification)
	}
	if s.DepthTest || s.DepthWrite {
		t.Error("classified state must not test or write depth")
	}
}

func TestDefaultStateDescriptor(t *testing.T) {
	s := DefaultState()
	if !s.DepthTest || !s.DepthWrite {
		t.Error("default state must test and write depth")
	}
	if s.Stencil.Enabled {
		t.Error("default state must not enable the stencil test")
	}
}

func TestSkipLODStateDescriptor(t *testing.T) {
	s := SkipLODState()
	if !s.Stencil.Enabled || s.Stencil.Compare != gputypes.CompareFunctionNotEqual {
		t.Error("skip-LOD state must stencil-test NOT_EQUAL")
	}
	if s.Stencil.ReadMask != StencilMaskSkipLOD {
		t.Errorf("read mask = %#x, want %#x", s.Stencil.ReadMask, StencilMaskSkipLOD)
	}
	if s.BlendMode != BlendNone {
		t.Error("skip-LOD state must not blend")
	}
}

func TestDepthStencilLowering(t *testing.T) {
	format := gputypes.TextureFormatDepth24PlusStencil8

	ds := UnclassifiedState().DepthStencil(format)
	if ds.Format != format {
		t.Errorf("format = %v, want %v", ds.Format, format)
	}
	if ds.DepthWriteEnabled {
		t.Error("unclassified lowering must disable depth writes")
	}
	if ds.DepthCompare != gputypes.CompareFunctionAlways {
		t.Errorf("depth compare = %v, want ALWAYS with depth test off", ds.DepthCompare)
	}
	if ds.StencilFront.Compare != gputypes.CompareFunctionEqual {
		t.Errorf("front compare = %v, want EQUAL", ds.StencilFront.Compare)
	}
	if ds.StencilBack.Compare != gputypes.CompareFunctionEqual {
		t.Errorf("back compare = %v, want EQUAL", ds.StencilBack.Compare)
	}
	if ds.StencilFront.PassOp != hal.StencilOperationKeep || ds.StencilFront.FailOp != hal.StencilOperationKeep {
		t.Error("stencil ops must be Keep, the stage never modifies stencil")
	}
	if ds.StencilReadMask != StencilMaskClassification {
		t.Errorf("read mask = %#x, want %#x", ds.StencilReadMask, StencilMaskClassification)
	}

	ds = DefaultState().DepthStencil(format)
	if !ds.DepthWriteEnabled {
		t.Error("default lowering must enable depth writes")
	}
	if ds.DepthCompare != gputypes.CompareFunctionLess {
		t.Errorf("depth compare = %v, want LESS", ds.DepthCompare)
	}
	if ds.StencilFront.Compare != gputypes.CompareFunctionAlways {
		t.Error("default lowering must not stencil-test")
	}
	if ds.StencilReadMask != 0 || ds.StencilWriteMask != 0 {
		t.Error("default lowering must leave stencil masks zero")
	}
}

func TestBlendLowering(t *testing.T) {
	blend := UnclassifiedState().Blend()
	if blend == nil {
		t.Fatal("alpha blend mode must lower to a blend descriptor")
	}
	if blend.Color.SrcFactor != gputypes.BlendFactorSrcAlpha ||
		blend.Color.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Error("color blend must be source-over")
	}
	if blend.Alpha.SrcFactor != gputypes.BlendFactorOne ||
		blend.Alpha.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Error("alpha blend must accumulate coverage")
	}
	if SkipLODState().Blend() != nil {
		t.Error("BlendNone must lower to nil")
	}
}
