package ecs

import "fmt"

// NodeName identifies a node type within an engine's family registry.
type NodeName string

// NodeType declares a node: a name and the fixed set of components an entity
// must carry to be projected into that node's list.
type NodeType struct {
	name       NodeName
	components []ComponentName
}

// NewNodeType declares a node type. Duplicate component names are folded.
func NewNodeType(name NodeName, components ...ComponentName) NodeType {
	if name == "" {
		panic("ecs: empty node name")
	}
	if len(components) == 0 {
		panic(fmt.Sprintf("ecs: node %q requires no components", name))
	}
	seen := make(map[ComponentName]struct{}, len(components))
	required := make([]ComponentName, 0, len(components))
	for _, c := range components {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		required = append(required, c)
	}
	return NodeType{name: name, components: required}
}

func (t NodeType) Name() NodeName { return t.name }

// Components returns a copy of the required component names.
func (t NodeType) Components() []ComponentName {
	return append([]ComponentName(nil), t.components...)
}

// Node is the view of one matching entity handed to systems: exactly the
// required components plus a back-reference to the entity. Nodes are owned
// by a family and recycled through its NodePool; do not keep them past the
// update in which they were removed from their list.
type Node struct {
	entity     *Entity
	components map[ComponentName]Component

	previous *Node
	next     *Node
	list     *NodeList
}

func newNode(required []ComponentName) *Node {
	n := &Node{components: make(map[ComponentName]Component, len(required))}
	for _, name := range required {
		n.components[name] = nil
	}
	return n
}

// Entity returns the entity the node projects, or nil once disposed.
func (n *Node) Entity() *Entity { return n.entity }

// Get returns the component stored under name, or nil.
func (n *Node) Get(name ComponentName) Component { return n.components[name] }

// Previous returns the preceding node in the list.
func (n *Node) Previous() *Node { return n.previous }

// Next returns the following node in the list. It stays valid on a node that
// was just removed, so loops may remove the node they are standing on. Outside
// an engine update a family disposes removed nodes at once, which clears it.
func (n *Node) Next() *Node { return n.next }

// bind points the node at e and copies in e's required components.
func (n *Node) bind(e *Entity) {
	n.entity = e
	for name := range n.components {
		n.components[name] = e.Get(name)
	}
}
