package data

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
)

// Scene is the initial population of a simulation.
type Scene struct {
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec describes one entity, or a group of Count identical ones.
// Every field but Name is optional; absent fields add no component.
type EntitySpec struct {
	Name     string        `yaml:"name"`
	Count    int           `yaml:"count"`  // group size, 0 and 1 both mean a single entity
	Spread   float64       `yaml:"spread"` // group members are placed on a ring of this radius
	Position []float64     `yaml:"position"`
	Velocity []float64     `yaml:"velocity"`
	Steering string        `yaml:"steering"` // Lua function name
	Lifetime time.Duration `yaml:"lifetime"`
	Spin     *SpinSpec     `yaml:"spin"`
}

type SpinSpec struct {
	Angle float64 `yaml:"angle"`
	Rate  float64 `yaml:"rate"`
}

// LoadScene loads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(raw []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i := range s.Entities {
		if err := s.Entities[i].validate(); err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, s.Entities[i].Name, err)
		}
	}
	return &s, nil
}

func (e *EntitySpec) validate() error {
	if e.Count < 0 {
		return fmt.Errorf("count %d is negative", e.Count)
	}
	if e.Position != nil && len(e.Position) != 2 {
		return fmt.Errorf("position wants 2 values, got %d", len(e.Position))
	}
	if e.Velocity != nil && len(e.Velocity) != 2 {
		return fmt.Errorf("velocity wants 2 values, got %d", len(e.Velocity))
	}
	if e.Lifetime < 0 {
		return fmt.Errorf("lifetime %s is negative", e.Lifetime)
	}
	if e.Spread < 0 {
		return fmt.Errorf("spread %g is negative", e.Spread)
	}
	return nil
}

// Size returns the number of entities Spawn creates.
func (s *Scene) Size() int {
	n := 0
	for i := range s.Entities {
		n += max(s.Entities[i].Count, 1)
	}
	return n
}

// Spawn adds the scene's entities to en and returns them in file order.
// Group members are named <name>-<group id>-<index>, with a fresh group id
// per Spawn, so spawning the same scene twice never collides.
func (s *Scene) Spawn(en *ecs.Engine) []*ecs.Entity {
	out := make([]*ecs.Entity, 0, s.Size())
	for i := range s.Entities {
		spec := &s.Entities[i]
		if spec.Count <= 1 {
			out = append(out, en.NewEntity(spec.Name, spec.components(0, 1)...))
			continue
		}
		group := uuid.NewString()[:8]
		for j := 0; j < spec.Count; j++ {
			name := ""
			if spec.Name != "" {
				name = fmt.Sprintf("%s-%s-%d", spec.Name, group, j)
			}
			out = append(out, en.NewEntity(name, spec.components(j, spec.Count)...))
		}
	}
	return out
}

// components builds fresh components for member index of a group of size n.
func (e *EntitySpec) components(index, n int) []ecs.Component {
	var comps []ecs.Component
	if e.Position != nil || e.Spread > 0 {
		pos := vec(e.Position)
		if n > 1 && e.Spread > 0 {
			a := 2 * math.Pi * float64(index) / float64(n)
			pos = pos.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(e.Spread))
		}
		comps = append(comps, &component.Position{Vec2: pos})
	}
	if e.Velocity != nil || e.Steering != "" {
		comps = append(comps, &component.Velocity{Vec2: vec(e.Velocity)})
	}
	if e.Steering != "" {
		if e.Position == nil && e.Spread == 0 {
			comps = append(comps, &component.Position{})
		}
		comps = append(comps, &component.Steering{Script: e.Steering})
	}
	if e.Lifetime > 0 {
		comps = append(comps, &component.Lifetime{Total: e.Lifetime, Remaining: e.Lifetime})
	}
	if e.Spin != nil {
		comps = append(comps, &component.Spin{Angle: e.Spin.Angle, Rate: e.Spin.Rate})
	}
	return comps
}

func vec(v []float64) mgl64.Vec2 {
	if len(v) != 2 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{v[0], v[1]}
}
