package ecs

import (
	"iter"

	"github.com/ashrt/ashrt/internal/core/event"
)

// NodeList is the live, ordered collection of nodes for one node type. The
// engine hands out the same list for the life of its family and mutates it
// in place, so holders never need to fetch it again.
//
// Only the owning family adds and removes nodes. Systems may reorder the list
// with Swap and InsertionSort.
//
// Removing a node during iteration is safe: Remove relinks the neighbours but
// leaves the removed node's own links alone.
//
//	for n := list.Head(); n != nil; n = n.Next() {
//		...
//	}
type NodeList struct {
	head  *Node
	tail  *Node
	count int

	nodeAdded   *event.Signal1[*Node]
	nodeRemoved *event.Signal1[*Node]
}

func NewNodeList() *NodeList {
	return &NodeList{
		nodeAdded:   event.NewSignal1[*Node](),
		nodeRemoved: event.NewSignal1[*Node](),
	}
}

// NodeAdded fires after a node is appended.
func (l *NodeList) NodeAdded() *event.Signal1[*Node] { return l.nodeAdded }

// NodeRemoved fires after a node is unlinked.
func (l *NodeList) NodeRemoved() *event.Signal1[*Node] { return l.nodeRemoved }

func (l *NodeList) Head() *Node { return l.head }
func (l *NodeList) Tail() *Node { return l.tail }
func (l *NodeList) Len() int    { return l.count }
func (l *NodeList) Empty() bool { return l.head == nil }

// Add appends n and fires NodeAdded.
func (l *NodeList) Add(n *Node) {
	if n.list != nil {
		panic("ecs: node is already in a list")
	}
	if l.head == nil {
		l.head = n
		l.tail = n
		n.previous = nil
		n.next = nil
	} else {
		l.tail.next = n
		n.previous = l.tail
		n.next = nil
		l.tail = n
	}
	n.list = l
	l.count++
	l.nodeAdded.Dispatch(n)
}

// Remove unlinks n and fires NodeRemoved. n.Next and n.Previous keep
// pointing where they did.
func (l *NodeList) Remove(n *Node) {
	if n.list != l {
		panic("ecs: node does not belong to this list")
	}
	if l.head == n {
		l.head = n.next
	}
	if l.tail == n {
		l.tail = n.previous
	}
	if n.previous != nil {
		n.previous.next = n.next
	}
	if n.next != nil {
		n.next.previous = n.previous
	}
	n.list = nil
	l.count--
	l.nodeRemoved.Dispatch(n)
}

// RemoveAll drains the list head to tail, clearing each node's links and
// firing NodeRemoved for each.
func (l *NodeList) RemoveAll() {
	for l.head != nil {
		n := l.head
		l.head = n.next
		if l.head != nil {
			l.head.previous = nil
		} else {
			l.tail = nil
		}
		n.previous = nil
		n.next = nil
		n.list = nil
		l.count--
		l.nodeRemoved.Dispatch(n)
	}
}

// Swap exchanges the positions of a and b. No events fire.
func (l *NodeList) Swap(a, b *Node) {
	if a.list != l || b.list != l {
		panic("ecs: swap of node that does not belong to this list")
	}
	switch {
	case a == b:
		return
	case a.next == b:
		prev, next := a.previous, b.next
		b.previous, b.next = prev, a
		a.previous, a.next = b, next
	case b.next == a:
		prev, next := b.previous, a.next
		a.previous, a.next = prev, b
		b.previous, b.next = a, next
	default:
		a.previous, b.previous = b.previous, a.previous
		a.next, b.next = b.next, a.next
	}
	l.relink(a)
	l.relink(b)
}

// relink points n's neighbours (or head/tail) back at n.
func (l *NodeList) relink(n *Node) {
	if n.previous != nil {
		n.previous.next = n
	} else {
		l.head = n
	}
	if n.next != nil {
		n.next.previous = n
	} else {
		l.tail = n
	}
}

// InsertionSort sorts the list in place. cmp returns a negative number when a
// belongs before b, positive when after, and zero to keep the current order,
// so the sort is stable. Cost is O(n) per out-of-place node: fine for short or
// nearly sorted lists (render order, say), poor for large shuffled ones.
func (l *NodeList) InsertionSort(cmp func(a, b *Node) int) {
	if l.head == l.tail {
		return
	}
	remains := l.head.next
	for n := remains; n != nil; n = remains {
		remains = n.next
		other := n.previous
		for ; other != nil; other = other.previous {
			if cmp(n, other) >= 0 {
				// n belongs right after other
				if other.next != n {
					l.unlinkForSort(n)
					n.next = other.next
					n.previous = other
					n.next.previous = n
					other.next = n
				}
				break
			}
		}
		if other == nil {
			// n belongs at the head
			l.unlinkForSort(n)
			n.next = l.head
			l.head.previous = n
			n.previous = nil
			l.head = n
		}
	}
}

func (l *NodeList) unlinkForSort(n *Node) {
	if l.tail == n {
		l.tail = n.previous
	}
	if n.previous != nil {
		n.previous.next = n.next
	}
	if n.next != nil {
		n.next.previous = n.previous
	}
}

// All iterates head to tail. Nodes removed during the loop do not stop it.
func (l *NodeList) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n) {
				return
			}
		}
	}
}

// Slice copies the current nodes into a slice.
func (l *NodeList) Slice() []*Node {
	nodes := make([]*Node, 0, l.count)
	for n := l.head; n != nil; n = n.next {
		nodes = append(nodes, n)
	}
	return nodes
}
