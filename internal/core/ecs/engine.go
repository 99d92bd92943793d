package ecs

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ashrt/ashrt/internal/core/event"
)

// Engine is the composition root: it owns the live entities, the
// priority-ordered systems and the families that keep node lists in sync.
//
// An Engine is not safe for concurrent use. Drive it from one goroutine.
type Engine struct {
	log *zap.Logger

	entities    entityList
	entityNames map[string]*Entity
	nameCount   int

	systems       systemList
	families      *familyRegistry
	familyFactory FamilyFactory

	updating       bool
	updateComplete *event.Signal0
	removeQueue    []*Entity

	componentAdded   *event.Listener[func(*Entity)]
	componentRemoved *event.Listener[func(*Entity, ComponentName)]
	nameChanged      *event.Listener[func(*Entity, string)]
}

// NewEngine creates an empty engine. A nil logger disables diagnostics.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	en := &Engine{
		log:            log,
		entityNames:    make(map[string]*Entity, 256),
		systems:        newSystemList(),
		families:       newFamilyRegistry(),
		familyFactory:  DefaultFamilyFactory,
		updateComplete: event.NewSignal0(),
		removeQueue:    make([]*Entity, 0, 64),
	}
	en.componentAdded = event.NewListener(en.onComponentAdded)
	en.componentRemoved = event.NewListener(en.onComponentRemoved)
	en.nameChanged = event.NewListener(en.onNameChanged)
	return en
}

// SetFamilyFactory replaces the factory used for node lists created from now
// on. Existing families are unaffected.
func (en *Engine) SetFamilyFactory(f FamilyFactory) {
	if f == nil {
		f = DefaultFamilyFactory
	}
	en.familyFactory = f
}

// Updating reports whether the engine is inside Update's system loop.
func (en *Engine) Updating() bool { return en.updating }

// UpdateComplete fires after every Update, once the system loop is done.
// Structural changes (adding or removing systems, say) that should not
// happen mid-frame belong in a listener on this signal.
func (en *Engine) UpdateComplete() *event.Signal0 { return en.updateComplete }

// ── Entities ──────────────────────────────────────────────────────

// AddEntity adds e. An entity already registered under e's name is removed
// first. Unnamed entities get the next _entityN name.
func (en *Engine) AddEntity(e *Entity) {
	if e == nil {
		panic("ecs: nil entity")
	}
	if e.engine == en {
		en.log.Debug("entity already in engine", zap.String("entity", e.name))
		return
	}
	if e.engine != nil {
		panic(fmt.Sprintf("ecs: entity %q belongs to another engine", e.name))
	}
	if e.name == "" {
		e.name = en.nextEntityName()
	}
	if existing, ok := en.entityNames[e.name]; ok {
		en.log.Debug("replacing entity with same name", zap.String("entity", e.name))
		en.RemoveEntity(existing)
	}

	en.entities.add(e)
	en.entityNames[e.name] = e
	e.engine = en
	e.componentAdded.Add(en.componentAdded)
	e.componentRemoved.Add(en.componentRemoved)
	e.nameChanged.Add(en.nameChanged)

	for _, f := range en.families.all() {
		f.EntityAdded(e)
	}
}

// NewEntity creates an entity, adds it and returns it.
func (en *Engine) NewEntity(name string, components ...Component) *Entity {
	e := NewEntity(name)
	for _, c := range components {
		e.Add(c)
	}
	en.AddEntity(e)
	return e
}

func (en *Engine) nextEntityName() string {
	for {
		en.nameCount++
		name := "_entity" + strconv.Itoa(en.nameCount)
		if _, taken := en.entityNames[name]; !taken {
			return name
		}
	}
}

// RemoveEntity removes e. Entities that are not in this engine are ignored.
func (en *Engine) RemoveEntity(e *Entity) {
	if e == nil {
		return
	}
	if e.engine != en {
		en.log.Debug("remove of entity not in engine", zap.String("entity", e.name))
		return
	}
	e.componentAdded.Remove(en.componentAdded)
	e.componentRemoved.Remove(en.componentRemoved)
	e.nameChanged.Remove(en.nameChanged)

	for _, f := range en.families.all() {
		f.EntityRemoved(e)
	}

	if en.entityNames[e.name] == e {
		delete(en.entityNames, e.name)
	}
	en.entities.remove(e)
	e.engine = nil
}

// MarkForRemoval removes e after the current update's system loop, before
// UpdateComplete fires. Outside an update it removes e immediately.
func (en *Engine) MarkForRemoval(e *Entity) {
	if !en.updating {
		en.RemoveEntity(e)
		return
	}
	en.removeQueue = append(en.removeQueue, e)
}

func (en *Engine) flushRemovals() {
	queue := en.removeQueue
	for i, e := range queue {
		queue[i] = nil
		if e.engine == en {
			en.RemoveEntity(e)
		}
	}
	en.removeQueue = queue[:0]
}

// RemoveAllEntities removes entities one at a time from the head so every
// family sees each removal.
func (en *Engine) RemoveAllEntities() {
	for en.entities.head != nil {
		en.RemoveEntity(en.entities.head)
	}
}

// FindEntity returns the entity registered under name, or nil.
func (en *Engine) FindEntity(name string) *Entity {
	return en.entityNames[name]
}

// Entities returns the live entities in insertion order.
func (en *Engine) Entities() []*Entity {
	all := make([]*Entity, 0, en.entities.size)
	for e := en.entities.head; e != nil; e = e.next {
		all = append(all, e)
	}
	return all
}

// NumEntities returns the number of live entities.
func (en *Engine) NumEntities() int { return en.entities.size }

func (en *Engine) onComponentAdded(e *Entity) {
	for _, f := range en.families.all() {
		f.ComponentAdded(e)
	}
}

func (en *Engine) onComponentRemoved(e *Entity, name ComponentName) {
	for _, f := range en.families.all() {
		f.ComponentRemoved(e, name)
	}
}

// onNameChanged keeps the name index in step with renames. Renaming onto a
// name held by another entity replaces that entity, as AddEntity would.
func (en *Engine) onNameChanged(e *Entity, previous string) {
	if en.entityNames[previous] == e {
		delete(en.entityNames, previous)
	}
	if other, ok := en.entityNames[e.name]; ok && other != e {
		en.log.Warn("entity renamed onto a name in use, replacing",
			zap.String("entity", e.name),
			zap.String("previous", previous))
		en.RemoveEntity(other)
	}
	en.entityNames[e.name] = e
}

// ── Node lists ────────────────────────────────────────────────────

// NodeList returns the live list of nodes of nodeType, creating its family
// and populating it from the current entities on first request. Later calls
// return the same list.
func (en *Engine) NodeList(nodeType NodeType) *NodeList {
	if f, ok := en.families.get(nodeType.name); ok {
		return f.NodeList()
	}
	f := en.familyFactory(nodeType, en)
	en.families.register(nodeType.name, f)
	for e := en.entities.head; e != nil; e = e.next {
		f.EntityAdded(e)
	}
	en.log.Debug("node list created",
		zap.String("node", string(nodeType.name)),
		zap.Int("nodes", f.NodeList().Len()))
	return f.NodeList()
}

// ReleaseNodeList discards the family of nodeType. The list is emptied and
// no longer maintained.
func (en *Engine) ReleaseNodeList(nodeType NodeType) {
	f, ok := en.families.remove(nodeType.name)
	if !ok {
		en.log.Debug("release of unknown node list", zap.String("node", string(nodeType.name)))
		return
	}
	f.CleanUp()
}

// NumFamilies returns the number of registered families.
func (en *Engine) NumFamilies() int { return en.families.len() }

// ── Systems ───────────────────────────────────────────────────────

// AddSystem inserts s so that it updates after every system with a lower or
// equal priority, then calls s.AddToEngine. Adding a system that is already
// present re-inserts it with the new priority.
func (en *Engine) AddSystem(s System, priority int) *Engine {
	if s == nil {
		panic("ecs: nil system")
	}
	if _, ok := en.systems.get(s); ok {
		en.RemoveSystem(s)
	}
	en.systems.add(s, priority)
	s.AddToEngine(en)
	return en
}

// RemoveSystem removes s and calls s.RemoveFromEngine. Unknown systems are ignored.
func (en *Engine) RemoveSystem(s System) {
	if _, ok := en.systems.remove(s); !ok {
		en.log.Debug("remove of system not in engine", zap.String("system", fmt.Sprintf("%T", s)))
		return
	}
	s.RemoveFromEngine(en)
}

// RemoveAllSystems removes every system, head first.
func (en *Engine) RemoveAllSystems() {
	for en.systems.head != nil {
		en.RemoveSystem(en.systems.head.system)
	}
}

// Systems returns the systems in update order.
func (en *Engine) Systems() []System {
	all := make([]System, 0, en.systems.len())
	for s := en.systems.head; s != nil; s = s.next {
		all = append(all, s.system)
	}
	return all
}

// Priority returns the priority s was added with.
func (en *Engine) Priority(s System) (int, bool) {
	entry, ok := en.systems.get(s)
	if !ok {
		return 0, false
	}
	return entry.priority, true
}

// FindSystem returns the first system of type T in update order.
func FindSystem[T System](en *Engine) (T, bool) {
	for s := en.systems.head; s != nil; s = s.next {
		if t, ok := s.system.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ── Update loop ───────────────────────────────────────────────────

// Update runs every system once in priority order, then removes entities
// queued by MarkForRemoval, then fires UpdateComplete. Nodes that leave a
// list during the loop keep their fields until UpdateComplete.
func (en *Engine) Update(dt time.Duration) {
	if en.updating {
		panic("ecs: Engine.Update called during update")
	}
	en.updating = true
	for s := en.systems.head; s != nil; s = s.next {
		if s.removed {
			continue
		}
		s.system.Update(dt)
	}
	en.updating = false
	en.flushRemovals()
	en.updateComplete.Dispatch()
}
