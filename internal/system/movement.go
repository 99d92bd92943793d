package system

import (
	"time"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
)

// MovementSystem integrates velocity into position.
// Phase 3 (Move).
type MovementSystem struct {
	*coresys.ListIterating
}

func NewMovementSystem() *MovementSystem {
	s := &MovementSystem{ListIterating: coresys.NewListIterating(component.MotionNode)}
	s.UpdateNode = s.move
	return s
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (s *MovementSystem) move(n *ecs.Node, dt time.Duration) {
	pos, _ := ecs.Get[*component.Position](n)
	vel, _ := ecs.Get[*component.Velocity](n)
	pos.Vec2 = pos.Add(vel.Mul(dt.Seconds()))
}
