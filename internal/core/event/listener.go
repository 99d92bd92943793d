package event

// Listener is a subscription handle wrapping a callback of type F.
// Go funcs are not comparable, so the handle pointer is what a Signal uses
// to deduplicate and remove subscriptions.
type Listener[F any] struct {
	fn F
}

// NewListener wraps fn in a handle that can be added to and removed from signals.
func NewListener[F any](fn F) *Listener[F] {
	return &Listener[F]{fn: fn}
}

// Func returns the wrapped callback.
func (l *Listener[F]) Func() F { return l.fn }

// listenerNode links one listener into a signal's dispatch list.
type listenerNode[F any] struct {
	previous *listenerNode[F]
	next     *listenerNode[F]
	listener *Listener[F]
	once     bool
}

// listenerNodePool recycles listener nodes. The free stack and the cache are
// both linked through previous.
//
// Nodes removed while a signal is dispatching go to the cache instead of the
// free stack: the dispatch loop may still be standing on them and needs their
// next pointer intact until the pass ends.
type listenerNodePool[F any] struct {
	tail      *listenerNode[F]
	cacheTail *listenerNode[F]
}

func (p *listenerNodePool[F]) get() *listenerNode[F] {
	if n := p.tail; n != nil {
		p.tail = n.previous
		n.previous = nil
		return n
	}
	return &listenerNode[F]{}
}

func (p *listenerNodePool[F]) dispose(n *listenerNode[F]) {
	n.listener = nil
	n.once = false
	n.next = nil
	n.previous = p.tail
	p.tail = n
}

func (p *listenerNodePool[F]) cache(n *listenerNode[F]) {
	n.listener = nil
	n.previous = p.cacheTail
	p.cacheTail = n
}

func (p *listenerNodePool[F]) releaseCache() {
	for n := p.cacheTail; n != nil; n = p.cacheTail {
		p.cacheTail = n.previous
		p.dispose(n)
	}
}
