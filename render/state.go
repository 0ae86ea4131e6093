// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BlendMode selects the color blend configuration of a render state.
type BlendMode int

const (
	// BlendNone disables blending; fragment output replaces the target.
	BlendNone BlendMode = iota

	// BlendAlpha is standard source-over alpha blending:
	// color = src*srcAlpha + dst*(1-srcAlpha), alpha = src + dst*(1-srcAlpha).
	BlendAlpha
)

// StencilTest describes the stencil portion of a render state. Both faces
// use the same comparison and operations. All stencil operations here are
// Keep: the compositing stages test stencil values written upstream, they
// never modify them.
type StencilTest struct {
	Enabled   bool
	Compare   gputypes.CompareFunction
	Reference uint32
	ReadMask  uint32
	WriteMask uint32
}

// State is an immutable render-state descriptor: depth test and write,
// stencil test, and blend mode. States are plain comparable values so they
// can be cached by value; use [CachedState] to obtain the canonical pointer
// for a descriptor.
//
// A State is lowered to HAL pipeline state ([State.DepthStencil] and
// [State.Blend]) when a pipeline is built from it.
type State struct {
	DepthTest  bool
	DepthWrite bool
	Stencil    StencilTest
	BlendMode  BlendMode
}

// UnclassifiedState returns the render state for drawing fragments the
// classification pass did not cover: stencil EQUAL against reference 0
// masked to the classification nibble, depth writes off, alpha blending.
func UnclassifiedState() *State {
	return CachedState(State{
		DepthTest:  false,
		DepthWrite: false,
		Stencil: StencilTest{
			Enabled:   true,
			Compare:   gputypes.CompareFunctionEqual,
			Reference: StencilReferenceClassification,
			ReadMask:  StencilMaskClassification,
			WriteMask: StencilMaskClassification,
		},
		BlendMode: BlendAlpha,
	})
}

// ClassifiedState returns the render state for drawing fragments the
// classification pass covered: stencil NOT_EQUAL against reference 0 masked
// to the classification nibble, depth writes off, alpha blending.
func ClassifiedState() *State {
	return CachedState(State{
		DepthTest:  false,
		DepthWrite: false,
		Stencil: StencilTest{
			Enabled:   true,
			Compare:   gputypes.CompareFunctionNotEqual,
			Reference: StencilReferenceClassification,
			ReadMask:  StencilMaskClassification,
			WriteMask: StencilMaskClassification,
		},
		BlendMode: BlendAlpha,
	})
}

// DefaultState returns the render state used when the stage owns its
// depth-stencil buffer: depth test and write enabled, no stencil test,
// alpha blending.
func DefaultState() *State {
	return CachedState(State{
		DepthTest:  true,
		DepthWrite: true,
		BlendMode:  BlendAlpha,
	})
}

// SkipLODState returns the render state the level-of-detail skip pass uses
// to reject fragments already covered by a finer tile: stencil NOT_EQUAL
// against reference 0 masked to the skip-LOD nibble. It lives here so the
// stencil partition has exactly two consumers of one constant pair.
func SkipLODState() *State {
	return CachedState(State{
		DepthTest:  true,
		DepthWrite: true,
		Stencil: StencilTest{
			Enabled:   true,
			Compare:   gputypes.CompareFunctionNotEqual,
			Reference: 0,
			ReadMask:  StencilMaskSkipLOD,
			WriteMask: StencilMaskSkipLOD,
		},
		BlendMode: BlendNone,
	})
}

// stateCache deduplicates State values so equal descriptors share one
// canonical pointer. Pipeline builders key on that pointer and tests assert
// identity for equal inputs.
var stateCache = struct {
	mu     sync.Mutex
	states map[State]*State
}{states: make(map[State]*State)}

// CachedState returns the canonical pointer for the given descriptor,
// creating it on first use. Two calls with equal values return the same
// pointer. Safe for concurrent use.
func CachedState(s State) *State {
	stateCache.mu.Lock()
	defer stateCache.mu.Unlock()
	if cached, ok := stateCache.states[s]; ok {
		return cached
	}
	p := new(State)
	*p = s
	stateCache.states[s] = p
	return p
}

// DepthStencil lowers the state to a HAL depth-stencil descriptor for a
// pipeline targeting the given depth-stencil format.
func (s *State) DepthStencil(format gputypes.TextureFormat) *hal.DepthStencilState {
	compare := gputypes.CompareFunctionAlways
	if s.DepthTest {
		compare = gputypes.CompareFunctionLess
	}
	face := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	ds := &hal.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: s.DepthWrite,
		DepthCompare:      compare,
		StencilFront:      face,
		StencilBack:       face,
	}
	if s.Stencil.Enabled {
		face.Compare = s.Stencil.Compare
		ds.StencilFront = face
		ds.StencilBack = face
		ds.StencilReadMask = s.Stencil.ReadMask
		ds.StencilWriteMask = s.Stencil.WriteMask
	}
	return ds
}

// Blend lowers the state's blend mode to a HAL blend descriptor, or nil
// when blending is disabled.
func (s *State) Blend() *gputypes.BlendState {
	if s.BlendMode != BlendAlpha {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}
