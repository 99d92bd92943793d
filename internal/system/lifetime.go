package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
)

// LifetimeSystem counts lifetimes down. Past half-life an entity loses its
// Velocity and coasts to a stop; at zero it is queued for removal at the end
// of the update. Phase 9 (Cleanup).
type LifetimeSystem struct {
	*coresys.ListIterating
	engine *ecs.Engine
	log    *zap.Logger

	expired int
}

func NewLifetimeSystem(log *zap.Logger) *LifetimeSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LifetimeSystem{
		ListIterating: coresys.NewListIterating(component.LifetimeNode),
		log:           log,
	}
	s.UpdateNode = s.age
	return s
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *LifetimeSystem) AddToEngine(en *ecs.Engine) {
	s.engine = en
	s.ListIterating.AddToEngine(en)
}

func (s *LifetimeSystem) RemoveFromEngine(en *ecs.Engine) {
	s.ListIterating.RemoveFromEngine(en)
	s.engine = nil
}

// Expired returns how many entities this system has removed.
func (s *LifetimeSystem) Expired() int { return s.expired }

func (s *LifetimeSystem) age(n *ecs.Node, dt time.Duration) {
	life, _ := ecs.Get[*component.Lifetime](n)
	life.Remaining -= dt
	e := n.Entity()
	if life.Remaining <= 0 {
		s.expired++
		s.log.Debug("entity expired", zap.String("entity", e.Name()))
		s.engine.MarkForRemoval(e)
		return
	}
	if life.Elapsed() >= 0.5 && ecs.Has[*component.Velocity](e) {
		ecs.RemoveComponent[*component.Velocity](e)
	}
}
