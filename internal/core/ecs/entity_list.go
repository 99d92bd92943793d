package ecs

// entityList is the engine's intrusive list of live entities in insertion order.
type entityList struct {
	head *Entity
	tail *Entity
	size int
}

func (l *entityList) add(e *Entity) {
	if l.head == nil {
		l.head = e
		l.tail = e
		e.previous = nil
		e.next = nil
	} else {
		l.tail.next = e
		e.previous = l.tail
		e.next = nil
		l.tail = e
	}
	l.size++
}

// remove unlinks e. e's own links are left alone so a loop standing on it can
// still step to next.
func (l *entityList) remove(e *Entity) {
	if l.head == e {
		l.head = e.next
	}
	if l.tail == e {
		l.tail = e.previous
	}
	if e.previous != nil {
		e.previous.next = e.next
	}
	if e.next != nil {
		e.next.previous = e.previous
	}
	l.size--
}
