package ecs

// NodePool recycles the nodes of one node type. The free stack and the
// cache are linked through the nodes' previous pointers.
//
// Nodes removed while the engine is updating are parked in the cache: a
// system may still be reading them, and Dispose clears their fields. The
// owning family releases the cache once the update completes.
type NodePool struct {
	required  []ComponentName
	tail      *Node
	cacheTail *Node
	created   int
}

// NewNodePool creates an empty pool for nodes of nodeType.
func NewNodePool(nodeType NodeType) *NodePool {
	return &NodePool{required: nodeType.Components()}
}

// Get pops a free node, or allocates one when the pool is empty.
func (p *NodePool) Get() *Node {
	if n := p.tail; n != nil {
		p.tail = n.previous
		n.previous = nil
		return n
	}
	p.created++
	return newNode(p.required)
}

// Acquire returns a node bound to e.
func (p *NodePool) Acquire(e *Entity) *Node {
	n := p.Get()
	n.bind(e)
	return n
}

// Dispose clears n's entity and component references and returns it to the
// free stack.
func (p *NodePool) Dispose(n *Node) {
	for name := range n.components {
		n.components[name] = nil
	}
	n.entity = nil
	n.next = nil
	n.list = nil
	n.previous = p.tail
	p.tail = n
}

// Cache defers disposal of n until ReleaseCache. n keeps its fields and its
// next pointer.
func (p *NodePool) Cache(n *Node) {
	n.previous = p.cacheTail
	p.cacheTail = n
}

// ReleaseCache disposes every cached node.
func (p *NodePool) ReleaseCache() {
	for n := p.cacheTail; n != nil; n = p.cacheTail {
		p.cacheTail = n.previous
		p.Dispose(n)
	}
}

// Created returns how many nodes the pool has allocated.
func (p *NodePool) Created() int { return p.created }
