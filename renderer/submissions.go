// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// pollInterval is the sleep between PollCompleted checks while the ring is full.
const pollInterval = 500 * time.Microsecond

// inFlight is a submitted frame whose command buffer and target view the
// GPU may still read.
type inFlight struct {
	index  uint64
	cmdBuf hal.CommandBuffer
	view   hal.TextureView // nil when borrowed from a host
}

// frameRing bounds the number of frames in flight. A frame's command
// buffer and view are released only once PollCompleted reports its
// submission index done, so Render never waits on the frame it has just
// submitted.
type frameRing struct {
	limit  int
	active []inFlight
}

func newFrameRing(limit uint32) *frameRing {
	if limit == 0 {
		limit = 1
	}
	return &frameRing{limit: int(limit), active: make([]inFlight, 0, limit)}
}

// track records a successful submission.
func (f *frameRing) track(index uint64, cmdBuf hal.CommandBuffer, view hal.TextureView) {
	f.active = append(f.active, inFlight{index: index, cmdBuf: cmdBuf, view: view})
}

// triage releases every submission at or below completed.
func (f *frameRing) triage(completed uint64, device hal.Device) {
	n := 0
	for _, s := range f.active {
		if s.index <= completed {
			device.FreeCommandBuffer(s.cmdBuf)
			if s.view != nil {
				device.DestroyTextureView(s.view)
			}
			continue
		}
		f.active[n] = s
		n++
	}
	clear(f.active[n:])
	f.active = f.active[:n]
}

// reserve makes room for one more frame. It returns at once while fewer
// than limit frames are in flight, otherwise it polls the queue until the
// oldest completes or timeout passes.
func (f *frameRing) reserve(queue hal.Queue, device hal.Device, timeout time.Duration) error {
	f.triage(queue.PollCompleted(), device)
	if len(f.active) < f.limit {
		return nil
	}

	deadline := time.Now().Add(timeout)
	for len(f.active) >= f.limit {
		if time.Now().After(deadline) {
			return fmt.Errorf("%d frames in flight after %v: %w", len(f.active), timeout, ErrGPUTimeout)
		}
		time.Sleep(pollInterval)
		f.triage(queue.PollCompleted(), device)
	}
	return nil
}

// drain waits for the device to go idle and frees everything in flight.
func (f *frameRing) drain(device hal.Device) error {
	err := device.WaitIdle()
	f.triage(math.MaxUint64, device)
	return err
}

func (f *frameRing) len() int { return len(f.active) }
