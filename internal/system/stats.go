package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
)

// Stats is a snapshot of engine population.
type Stats struct {
	Frame    int
	Elapsed  time.Duration
	Entities int
	Families int
	Motion   int
	Lifetime int
	Steering int
	Spin     int
}

// StatsSystem logs population counts every N frames.
// Phase 7 (Render).
type StatsSystem struct {
	engine *ecs.Engine
	log    *zap.Logger
	every  int

	motion, lifetime, steering, spin *ecs.NodeList

	last Stats
}

// NewStatsSystem logs every `every` frames; values below 1 log every frame.
func NewStatsSystem(every int, log *zap.Logger) *StatsSystem {
	if every < 1 {
		every = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsSystem{every: every, log: log}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *StatsSystem) AddToEngine(en *ecs.Engine) {
	s.engine = en
	s.motion = en.NodeList(component.MotionNode)
	s.lifetime = en.NodeList(component.LifetimeNode)
	s.steering = en.NodeList(component.SteeringNode)
	s.spin = en.NodeList(component.SpinNode)
}

func (s *StatsSystem) RemoveFromEngine(*ecs.Engine) {
	s.engine = nil
	s.motion, s.lifetime, s.steering, s.spin = nil, nil, nil, nil
}

// Last returns the most recent snapshot.
func (s *StatsSystem) Last() Stats { return s.last }

func (s *StatsSystem) Update(dt time.Duration) {
	s.last = Stats{
		Frame:    s.last.Frame + 1,
		Elapsed:  s.last.Elapsed + dt,
		Entities: s.engine.NumEntities(),
		Families: s.engine.NumFamilies(),
		Motion:   s.motion.Len(),
		Lifetime: s.lifetime.Len(),
		Steering: s.steering.Len(),
		Spin:     s.spin.Len(),
	}
	if s.last.Frame%s.every != 0 {
		return
	}
	s.log.Info("stats",
		zap.Int("frame", s.last.Frame),
		zap.Duration("elapsed", s.last.Elapsed),
		zap.Int("entities", s.last.Entities),
		zap.Int("families", s.last.Families),
		zap.Int("motion", s.last.Motion),
		zap.Int("lifetime", s.last.Lifetime),
		zap.Int("steering", s.last.Steering),
		zap.Int("spin", s.last.Spin),
	)
}
