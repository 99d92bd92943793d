package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
	"github.com/ashrt/ashrt/internal/scripting"
)

// Steerer computes a new velocity from a named script.
type Steerer interface {
	Steer(fn string, ctx scripting.SteerContext) (scripting.SteerResult, bool)
}

// SteeringSystem lets Lua functions set the velocity of steered entities.
// Phase 2 (Update), so Movement sees the new velocity in the same frame.
type SteeringSystem struct {
	*coresys.ListIterating
	lua  Steerer
	ages map[*ecs.Entity]time.Duration

	failures int
}

func NewSteeringSystem(lua Steerer) *SteeringSystem {
	s := &SteeringSystem{
		ListIterating: coresys.NewListIterating(component.SteeringNode),
		lua:           lua,
		ages:          make(map[*ecs.Entity]time.Duration),
	}
	s.UpdateNode = s.steer
	s.NodeAdded = func(n *ecs.Node) { s.ages[n.Entity()] = 0 }
	s.NodeRemoved = func(n *ecs.Node) { delete(s.ages, n.Entity()) }
	return s
}

func (s *SteeringSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Failures returns how many script calls have failed.
func (s *SteeringSystem) Failures() int { return s.failures }

func (s *SteeringSystem) steer(n *ecs.Node, dt time.Duration) {
	st, _ := ecs.Get[*component.Steering](n)
	pos, _ := ecs.Get[*component.Position](n)
	vel, _ := ecs.Get[*component.Velocity](n)
	e := n.Entity()

	age := s.ages[e] + dt
	s.ages[e] = age

	res, ok := s.lua.Steer(st.Script, scripting.SteerContext{
		Entity: e.Name(),
		X:      pos.X(),
		Y:      pos.Y(),
		VX:     vel.X(),
		VY:     vel.Y(),
		DT:     dt.Seconds(),
		Age:    age.Seconds(),
	})
	if !ok {
		s.failures++
		return
	}
	vel.Vec2 = mgl64.Vec2{res.VX, res.VY}
}
