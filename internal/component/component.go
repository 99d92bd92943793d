// Package component holds the simulation's component types and the node
// types built from them. Components are pure data; systems do the work.
package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ashrt/ashrt/internal/core/ecs"
)

// Position is a point in world units.
type Position struct {
	mgl64.Vec2
}

func (*Position) ComponentName() ecs.ComponentName { return "Position" }

// Velocity is in world units per second.
type Velocity struct {
	mgl64.Vec2
}

func (*Velocity) ComponentName() ecs.ComponentName { return "Velocity" }

// Lifetime counts down to the entity's removal.
type Lifetime struct {
	Total     time.Duration
	Remaining time.Duration
}

func (*Lifetime) ComponentName() ecs.ComponentName { return "Lifetime" }

// Elapsed returns the share of Total already used, in [0, 1].
func (l *Lifetime) Elapsed() float64 {
	if l.Total <= 0 {
		return 1
	}
	f := 1 - float64(l.Remaining)/float64(l.Total)
	return mgl64.Clamp(f, 0, 1)
}

// Steering names the Lua function that adjusts velocity each frame.
type Steering struct {
	Script string
}

func (*Steering) ComponentName() ecs.ComponentName { return "Steering" }

// Spin is an angle in radians and a turn rate in radians per second.
type Spin struct {
	Angle float64
	Rate  float64
}

func (*Spin) ComponentName() ecs.ComponentName { return "Spin" }

// Node types.
var (
	MotionNode   = ecs.NewNodeType("Motion", ecs.NameOf[*Position](), ecs.NameOf[*Velocity]())
	LifetimeNode = ecs.NewNodeType("Lifetime", ecs.NameOf[*Lifetime]())
	SteeringNode = ecs.NewNodeType("Steering",
		ecs.NameOf[*Steering](), ecs.NameOf[*Position](), ecs.NameOf[*Velocity]())
	SpinNode = ecs.NewNodeType("Spin", ecs.NameOf[*Spin]())
)
