package ecs

import "reflect"

// ComponentName is the stable type-name key of a component. Entities store at
// most one component per name and families match on sets of names.
type ComponentName string

// Component is a plain data holder identified by its name. Implement it on a
// pointer receiver that does not dereference, so NameOf can call it on a nil
// pointer:
//
//	type Position struct{ X, Y float64 }
//
//	func (*Position) ComponentName() ecs.ComponentName { return "Position" }
type Component interface {
	ComponentName() ComponentName
}

// NameOf returns the component name declared by T.
func NameOf[T Component]() ComponentName {
	var zero T
	return zero.ComponentName()
}

// componentSource is satisfied by both *Entity and *Node.
type componentSource interface {
	Get(name ComponentName) Component
}

// Get returns the component of type T held by an entity or node.
func Get[T Component](src componentSource) (T, bool) {
	c, ok := src.Get(NameOf[T]()).(T)
	return c, ok
}

// Has reports whether e carries a component of type T.
func Has[T Component](e *Entity) bool {
	return e.Has(NameOf[T]())
}

// RemoveComponent removes the component of type T from e and returns it.
func RemoveComponent[T Component](e *Entity) (T, bool) {
	c, ok := e.Remove(NameOf[T]()).(T)
	return c, ok
}

// sameComponent reports whether a and b are the same instance. Components of
// uncomparable value types are never considered the same.
func sameComponent(a, b Component) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
