package ecs

import "time"

// System is a unit of per-frame behaviour. Systems are compared by identity,
// so implement them on pointer types.
type System interface {
	// AddToEngine is called right after the system joins the engine, before
	// its first Update. This is where a system usually calls NodeList.
	AddToEngine(engine *Engine)
	// RemoveFromEngine is called right after the system leaves the engine.
	RemoveFromEngine(engine *Engine)
	// Update runs once per engine update with the elapsed frame time.
	Update(dt time.Duration)
}

// systemEntry carries the engine-owned priority and list links of a system.
type systemEntry struct {
	system   System
	priority int
	previous *systemEntry
	next     *systemEntry
	removed  bool
}

// systemList is ordered by ascending priority; equal priorities keep
// insertion order.
type systemList struct {
	head  *systemEntry
	tail  *systemEntry
	index map[System]*systemEntry
}

func newSystemList() systemList {
	return systemList{index: make(map[System]*systemEntry, 16)}
}

func (l *systemList) add(s System, priority int) *systemEntry {
	entry := &systemEntry{system: s, priority: priority}
	l.index[s] = entry

	// walk back from the tail to the last entry that runs no later
	node := l.tail
	for node != nil && node.priority > priority {
		node = node.previous
	}
	switch {
	case node == nil:
		entry.next = l.head
		if l.head != nil {
			l.head.previous = entry
		} else {
			l.tail = entry
		}
		l.head = entry
	case node == l.tail:
		node.next = entry
		entry.previous = node
		l.tail = entry
	default:
		entry.next = node.next
		entry.previous = node
		node.next.previous = entry
		node.next = entry
	}
	return entry
}

// remove unlinks the entry of s. The entry keeps its own links so an update
// loop standing on it can continue.
func (l *systemList) remove(s System) (*systemEntry, bool) {
	entry, ok := l.index[s]
	if !ok {
		return nil, false
	}
	delete(l.index, s)
	entry.removed = true
	if l.head == entry {
		l.head = entry.next
	}
	if l.tail == entry {
		l.tail = entry.previous
	}
	if entry.previous != nil {
		entry.previous.next = entry.next
	}
	if entry.next != nil {
		entry.next.previous = entry.previous
	}
	return entry, true
}

func (l *systemList) get(s System) (*systemEntry, bool) {
	entry, ok := l.index[s]
	return entry, ok
}

func (l *systemList) len() int { return len(l.index) }
