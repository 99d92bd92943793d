package ecs

// These scans walk every live entity. Prefer a node list for anything that
// runs each frame.

// EntitiesWith returns the live entities carrying a component stored under
// name, in insertion order.
func (en *Engine) EntitiesWith(name ComponentName) []*Entity {
	var found []*Entity
	for e := en.entities.head; e != nil; e = e.next {
		if e.Has(name) {
			found = append(found, e)
		}
	}
	return found
}

// Components returns every live component of type T, in entity insertion order.
func Components[T Component](en *Engine) []T {
	name := NameOf[T]()
	var found []T
	for e := en.entities.head; e != nil; e = e.next {
		if c, ok := e.Get(name).(T); ok {
			found = append(found, c)
		}
	}
	return found
}
