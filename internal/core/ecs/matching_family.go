package ecs

import "github.com/ashrt/ashrt/internal/core/event"

// ComponentMatchingFamily includes an entity in its list exactly when the
// entity carries every component the node type requires. Extra components
// are ignored.
type ComponentMatchingFamily struct {
	nodeType NodeType
	required []ComponentName
	nodes    *NodeList
	entities map[*Entity]*Node
	pool     *NodePool
	engine   *Engine

	releaseCache *event.Listener[func()]
}

// NewComponentMatchingFamily creates an empty family for nodeType. engine may
// be nil, in which case removed nodes are always disposed immediately.
func NewComponentMatchingFamily(nodeType NodeType, engine *Engine) *ComponentMatchingFamily {
	f := &ComponentMatchingFamily{
		nodeType: nodeType,
		required: nodeType.Components(),
		nodes:    NewNodeList(),
		entities: make(map[*Entity]*Node),
		pool:     NewNodePool(nodeType),
		engine:   engine,
	}
	f.releaseCache = event.NewListener(f.releasePoolCache)
	return f
}

func (f *ComponentMatchingFamily) NodeList() *NodeList { return f.nodes }

// Pool exposes the node pool, mostly for tests and diagnostics.
func (f *ComponentMatchingFamily) Pool() *NodePool { return f.pool }

func (f *ComponentMatchingFamily) String() string {
	return "ComponentMatchingFamily_" + string(f.nodeType.name)
}

func (f *ComponentMatchingFamily) EntityAdded(e *Entity) {
	f.addIfMatch(e)
}

// ComponentAdded adds e if it now matches. When e is already tracked the
// node's references are refreshed, since the add may have replaced one of
// the required components with a new instance.
func (f *ComponentMatchingFamily) ComponentAdded(e *Entity) {
	if n, ok := f.entities[e]; ok {
		n.bind(e)
		return
	}
	f.addIfMatch(e)
}

func (f *ComponentMatchingFamily) ComponentRemoved(e *Entity, name ComponentName) {
	if !f.requires(name) {
		return
	}
	f.removeIfMatch(e)
}

func (f *ComponentMatchingFamily) EntityRemoved(e *Entity) {
	f.removeIfMatch(e)
}

// CleanUp empties the list and forgets every entity. Nodes go back to the
// pool (via the cache when the engine is updating).
func (f *ComponentMatchingFamily) CleanUp() {
	nodes := f.nodes.Slice()
	clear(f.entities)
	f.nodes.RemoveAll()
	for _, n := range nodes {
		f.release(n)
	}
}

func (f *ComponentMatchingFamily) requires(name ComponentName) bool {
	for _, r := range f.required {
		if r == name {
			return true
		}
	}
	return false
}

func (f *ComponentMatchingFamily) addIfMatch(e *Entity) {
	if _, ok := f.entities[e]; ok {
		return
	}
	for _, name := range f.required {
		if !e.Has(name) {
			return
		}
	}
	n := f.pool.Acquire(e)
	f.entities[e] = n
	f.nodes.Add(n)
}

func (f *ComponentMatchingFamily) removeIfMatch(e *Entity) {
	n, ok := f.entities[e]
	if !ok {
		return
	}
	delete(f.entities, e)
	f.nodes.Remove(n)
	f.release(n)
}

// release returns a node that has left the list to the pool. Mid-update the
// node is cached so systems still iterating over it see intact fields.
func (f *ComponentMatchingFamily) release(n *Node) {
	if f.engine != nil && f.engine.Updating() {
		f.pool.Cache(n)
		f.engine.UpdateComplete().Add(f.releaseCache)
		return
	}
	f.pool.Dispose(n)
}

func (f *ComponentMatchingFamily) releasePoolCache() {
	f.engine.UpdateComplete().Remove(f.releaseCache)
	f.pool.ReleaseCache()
}
