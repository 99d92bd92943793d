package ecs

import "slices"

// familyRegistry tracks the engine's families by node name and in
// registration order, which is the order lifecycle events are routed in.
type familyRegistry struct {
	byName map[NodeName]Family
	order  []Family
}

func newFamilyRegistry() *familyRegistry {
	return &familyRegistry{
		byName: make(map[NodeName]Family, 16),
		order:  make([]Family, 0, 16),
	}
}

func (r *familyRegistry) get(name NodeName) (Family, bool) {
	f, ok := r.byName[name]
	return f, ok
}

func (r *familyRegistry) register(name NodeName, f Family) {
	r.byName[name] = f
	r.order = append(r.order, f)
}

// remove never edits order in place: a lifecycle event may be ranging over
// the current slice when a family is released.
func (r *familyRegistry) remove(name NodeName) (Family, bool) {
	f, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	delete(r.byName, name)
	if i := slices.Index(r.order, f); i >= 0 {
		r.order = slices.Delete(slices.Clone(r.order), i, i+1)
	}
	return f, true
}

func (r *familyRegistry) len() int { return len(r.order) }

// all returns the families in registration order.
func (r *familyRegistry) all() []Family { return r.order }
