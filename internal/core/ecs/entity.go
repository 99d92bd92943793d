package ecs

import "github.com/ashrt/ashrt/internal/core/event"

// Entity is a named container of components. Identity is the pointer: two
// entities with the same name are still different entities.
//
// An entity created without a name is given one (_entityN) by the first
// engine it is added to.
type Entity struct {
	name       string
	components map[ComponentName]Component

	componentAdded   *event.Signal1[*Entity]
	componentRemoved *event.Signal2[*Entity, ComponentName]
	nameChanged      *event.Signal2[*Entity, string]

	// engine entity list links
	previous *Entity
	next     *Entity
	engine   *Engine
}

// NewEntity creates an entity. An empty name is replaced on first AddEntity.
func NewEntity(name string) *Entity {
	return &Entity{
		name:             name,
		components:       make(map[ComponentName]Component, 4),
		componentAdded:   event.NewSignal1[*Entity](),
		componentRemoved: event.NewSignal2[*Entity, ComponentName](),
		nameChanged:      event.NewSignal2[*Entity, string](),
	}
}

func (e *Entity) Name() string   { return e.name }
func (e *Entity) String() string { return e.name }

// SetName renames the entity and fires NameChanged with the previous name.
func (e *Entity) SetName(name string) {
	if name == "" {
		panic("ecs: empty entity name")
	}
	if name == e.name {
		return
	}
	previous := e.name
	e.name = name
	e.nameChanged.Dispatch(e, previous)
}

// ComponentAdded fires after a component is stored (including replacements).
func (e *Entity) ComponentAdded() *event.Signal1[*Entity] { return e.componentAdded }

// ComponentRemoved fires after a component is deleted.
func (e *Entity) ComponentRemoved() *event.Signal2[*Entity, ComponentName] {
	return e.componentRemoved
}

// NameChanged fires with the old name after a rename.
func (e *Entity) NameChanged() *event.Signal2[*Entity, string] { return e.nameChanged }

// Add stores c under its name, replacing any other instance with that name.
// Re-adding the instance already stored is a no-op and fires nothing.
func (e *Entity) Add(c Component) *Entity {
	if c == nil {
		panic("ecs: nil component")
	}
	name := c.ComponentName()
	if existing, ok := e.components[name]; ok && sameComponent(existing, c) {
		return e
	}
	e.components[name] = c
	e.componentAdded.Dispatch(e)
	return e
}

// Remove deletes the component stored under name and returns it, or nil if
// there was none.
func (e *Entity) Remove(name ComponentName) Component {
	c, ok := e.components[name]
	if !ok {
		return nil
	}
	delete(e.components, name)
	e.componentRemoved.Dispatch(e, name)
	return c
}

// Get returns the component stored under name, or nil.
func (e *Entity) Get(name ComponentName) Component {
	return e.components[name]
}

func (e *Entity) Has(name ComponentName) bool {
	_, ok := e.components[name]
	return ok
}

// All returns the current components in no particular order.
func (e *Entity) All() []Component {
	all := make([]Component, 0, len(e.components))
	for _, c := range e.components {
		all = append(all, c)
	}
	return all
}

// Len returns the number of components.
func (e *Entity) Len() int { return len(e.components) }

// RemoveAll removes every component, firing ComponentRemoved once for each.
func (e *Entity) RemoveAll() {
	for _, c := range e.All() {
		e.Remove(c.ComponentName())
	}
}

// Engine returns the engine the entity belongs to, or nil.
func (e *Entity) Engine() *Engine { return e.engine }
