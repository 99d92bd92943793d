package system

import "github.com/ashrt/ashrt/internal/core/ecs"

// Phase is a system priority. Engine.AddSystem takes a plain int, so Phase is
// an alias and the constants below can be passed straight through.
type Phase = int

// Execution ordering within a single update. Lower phases run first.
const (
	PhaseInput             Phase = iota // 0: drain queued input
	PhasePreUpdate                      // 1: react to last frame's events
	PhaseUpdate                         // 2: simulation logic, steering
	PhaseMove                           // 3: integrate motion
	PhaseResolveCollisions              // 4
	PhaseStateMachines                  // 5
	PhaseAnimate                        // 6
	PhaseRender                         // 7: output, stats
	PhasePersist                        // 8
	PhaseCleanup                        // 9: expire and remove entities
)

// PhaseName returns a label for logs.
func PhaseName(p Phase) string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhaseMove:
		return "move"
	case PhaseResolveCollisions:
		return "resolve_collisions"
	case PhaseStateMachines:
		return "state_machines"
	case PhaseAnimate:
		return "animate"
	case PhaseRender:
		return "render"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	}
	return "custom"
}

// System is an ecs.System that declares its own phase.
type System interface {
	ecs.System
	Phase() Phase
}

// Register adds each system to the engine at its declared phase.
func Register(en *ecs.Engine, systems ...System) {
	for _, s := range systems {
		en.AddSystem(s, s.Phase())
	}
}
