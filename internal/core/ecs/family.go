package ecs

// Family keeps one NodeList in sync with the engine's entities. The engine is
// the only caller of these methods; families never talk to each other.
type Family interface {
	// NodeList returns the managed list. It must be the same list for the
	// life of the family.
	NodeList() *NodeList
	// EntityAdded is called when e joins the engine (or when the family is
	// created, once for every live entity).
	EntityAdded(e *Entity)
	// EntityRemoved is called when e leaves the engine.
	EntityRemoved(e *Entity)
	// ComponentAdded is called after e stored a component.
	ComponentAdded(e *Entity)
	// ComponentRemoved is called after e dropped the component stored under name.
	ComponentRemoved(e *Entity, name ComponentName)
	// CleanUp empties the list before the family is discarded.
	CleanUp()
}

// FamilyFactory builds the family that will manage nodes of nodeType.
type FamilyFactory func(nodeType NodeType, engine *Engine) Family

// DefaultFamilyFactory builds a ComponentMatchingFamily.
func DefaultFamilyFactory(nodeType NodeType, engine *Engine) Family {
	return NewComponentMatchingFamily(nodeType, engine)
}
