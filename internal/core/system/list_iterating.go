package system

import (
	"time"

	"github.com/ashrt/ashrt/internal/core/ecs"
	"github.com/ashrt/ashrt/internal/core/event"
)

// ListIterating is a System that walks one node list per update, calling
// UpdateNode for every node. Embed a *ListIterating in a concrete system and
// set the callbacks before adding it to an engine:
//
//	type Movement struct{ *system.ListIterating }
//
//	func NewMovement() *Movement {
//		m := &Movement{system.NewListIterating(component.MotionNode)}
//		m.UpdateNode = m.move
//		return m
//	}
type ListIterating struct {
	nodeType ecs.NodeType

	// UpdateNode is called once per node on every update.
	UpdateNode func(n *ecs.Node, dt time.Duration)
	// NodeAdded, if set, is called for nodes already in the list when the
	// system joins an engine and for every node added afterwards.
	NodeAdded func(n *ecs.Node)
	// NodeRemoved, if set, is called for every node leaving the list.
	NodeRemoved func(n *ecs.Node)

	list    *ecs.NodeList
	added   *event.Listener[func(*ecs.Node)]
	removed *event.Listener[func(*ecs.Node)]
}

func NewListIterating(nodeType ecs.NodeType) *ListIterating {
	return &ListIterating{nodeType: nodeType}
}

// NodeType returns the node type the system iterates.
func (s *ListIterating) NodeType() ecs.NodeType { return s.nodeType }

// List returns the node list, or nil while the system is not in an engine.
func (s *ListIterating) List() *ecs.NodeList { return s.list }

func (s *ListIterating) AddToEngine(en *ecs.Engine) {
	s.list = en.NodeList(s.nodeType)
	if s.NodeAdded != nil {
		for n := s.list.Head(); n != nil; n = n.Next() {
			s.NodeAdded(n)
		}
		s.added = event.NewListener(s.NodeAdded)
		s.list.NodeAdded().Add(s.added)
	}
	if s.NodeRemoved != nil {
		s.removed = event.NewListener(s.NodeRemoved)
		s.list.NodeRemoved().Add(s.removed)
	}
}

func (s *ListIterating) RemoveFromEngine(*ecs.Engine) {
	if s.list == nil {
		return
	}
	if s.added != nil {
		s.list.NodeAdded().Remove(s.added)
		s.added = nil
	}
	if s.removed != nil {
		s.list.NodeRemoved().Remove(s.removed)
		s.removed = nil
	}
	s.list = nil
}

func (s *ListIterating) Update(dt time.Duration) {
	if s.list == nil || s.UpdateNode == nil {
		return
	}
	for n := s.list.Head(); n != nil; n = n.Next() {
		s.UpdateNode(n, dt)
	}
}
