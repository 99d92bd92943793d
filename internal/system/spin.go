package system

import (
	"math"
	"time"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
)

// SpinSystem turns every Spin component by its rate, keeping the angle in
// [0, 2π). Phase 6 (Animate).
type SpinSystem struct {
	*coresys.ListIterating
}

func NewSpinSystem() *SpinSystem {
	s := &SpinSystem{ListIterating: coresys.NewListIterating(component.SpinNode)}
	s.UpdateNode = s.turn
	return s
}

func (s *SpinSystem) Phase() coresys.Phase { return coresys.PhaseAnimate }

func (s *SpinSystem) turn(n *ecs.Node, dt time.Duration) {
	spin, _ := ecs.Get[*component.Spin](n)
	a := math.Mod(spin.Angle+spin.Rate*dt.Seconds(), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	spin.Angle = a
}
