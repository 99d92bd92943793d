// Package tick provides the heartbeat sources that feed frame times into an
// engine. A provider dispatches one tick per DispatchTick call while playing;
// the Runner decides when to call it.
package tick

import (
	"time"

	"github.com/ashrt/ashrt/internal/core/event"
)

// Provider is a source of frame ticks.
type Provider interface {
	// Tick is the signal fired with each frame's duration.
	Tick() *event.Signal1[time.Duration]
	Start()
	Stop()
	Playing() bool
	// DispatchTick fires one tick. It does nothing while stopped.
	DispatchTick()
}

func scale(d time.Duration, adjustment float64) time.Duration {
	if adjustment == 1 {
		return d
	}
	return time.Duration(float64(d) * adjustment)
}

// FixedProvider dispatches the same frame time on every tick regardless of
// how much wall time has passed. Use it for deterministic simulation.
type FixedProvider struct {
	event.Signal1[time.Duration]

	frameTime time.Duration
	playing   bool

	// TimeAdjustment scales every dispatched frame time: 2 runs the engine
	// at double speed, 0.5 at half.
	TimeAdjustment float64
}

func NewFixedProvider(frameTime time.Duration) *FixedProvider {
	return &FixedProvider{frameTime: frameTime, TimeAdjustment: 1}
}

func (p *FixedProvider) Tick() *event.Signal1[time.Duration] { return &p.Signal1 }
func (p *FixedProvider) Start()                              { p.playing = true }
func (p *FixedProvider) Stop()                               { p.playing = false }
func (p *FixedProvider) Playing() bool                       { return p.playing }

func (p *FixedProvider) DispatchTick() {
	if !p.playing {
		return
	}
	p.Dispatch(scale(p.frameTime, p.TimeAdjustment))
}

// FrameProvider dispatches the wall time elapsed since the previous tick,
// clamped to a maximum so a stall does not produce one huge step.
type FrameProvider struct {
	event.Signal1[time.Duration]

	maxFrameTime time.Duration
	previous     time.Time
	playing      bool

	// TimeAdjustment scales every dispatched frame time.
	TimeAdjustment float64
	// Now is the clock. Tests replace it.
	Now func() time.Time
}

// NewFrameProvider creates a provider whose ticks never exceed maxFrameTime.
// Zero means no limit.
func NewFrameProvider(maxFrameTime time.Duration) *FrameProvider {
	return &FrameProvider{maxFrameTime: maxFrameTime, TimeAdjustment: 1, Now: time.Now}
}

func (p *FrameProvider) Tick() *event.Signal1[time.Duration] { return &p.Signal1 }
func (p *FrameProvider) Stop()                               { p.playing = false }
func (p *FrameProvider) Playing() bool                       { return p.playing }

// Start resets the reference time, so the first tick measures from here.
func (p *FrameProvider) Start() {
	p.previous = p.Now()
	p.playing = true
}

func (p *FrameProvider) DispatchTick() {
	if !p.playing {
		return
	}
	now := p.Now()
	frame := now.Sub(p.previous)
	p.previous = now
	if frame < 0 {
		frame = 0
	}
	if p.maxFrameTime > 0 && frame > p.maxFrameTime {
		frame = p.maxFrameTime
	}
	p.Dispatch(scale(frame, p.TimeAdjustment))
}
