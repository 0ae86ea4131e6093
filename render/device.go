// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle is how a host application shares its GPU device with the
// compositing stages. Stages never create a device of their own except
// through the standalone [NewBackend] path; they extract the wgpu HAL
// handles from the host's provider via [HALFromProvider] and build every
// texture and pipeline on the shared device.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so any gpucontext
// host (gogpu.App and friends) plugs in without an adapter type.
type DeviceHandle = gpucontext.DeviceProvider

// ErrNoHALAccess is returned when a device provider does not expose the
// underlying wgpu HAL device and queue.
var ErrNoHALAccess = errors.New("render: device provider does not expose HAL types")

// HALFromProvider extracts the wgpu HAL device and queue from a host device
// provider. The provider must additionally implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue, which gogpu contexts do.
func HALFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("render: provider HalDevice is not hal.Device: %w", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("render: provider HalQueue is not hal.Queue: %w", ErrNoHALAccess)
	}
	return device, queue, nil
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used in tests and CPU-only configurations where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
