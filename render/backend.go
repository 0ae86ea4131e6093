// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/tiles3d"
)

// Backend holds a self-created GPU instance, device, and queue for
// standalone operation. Most hosts share their device through
// [DeviceHandle] instead; Backend exists for tools and tests that run
// tiles3d without a surrounding GPU framework.
type Backend struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
}

// NewBackend creates a GPU instance, picks an adapter (preferring discrete,
// then integrated GPUs), and opens a device. The caller owns the returned
// backend and must call Close when done.
func NewBackend() (*Backend, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("render: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("render: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open device: %w", err)
	}
	tiles3d.Logger().Info("render: GPU backend initialized", "adapter", selected.Info.Name)
	return &Backend{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}, nil
}

// Device returns the HAL device.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the HAL queue.
func (b *Backend) Queue() hal.Queue { return b.queue }

// Close destroys the device and instance. Safe to call once; the backend is
// unusable afterwards.
func (b *Backend) Close() {
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.queue = nil
}
