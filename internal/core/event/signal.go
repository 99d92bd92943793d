// Package event provides the synchronous, reentrancy-safe signals used for
// every change notification in the runtime: entity component changes, node
// list membership, the engine's update-complete hook and tick sources.
//
// Dispatch is single-goroutine. A listener may add or remove listeners
// (including itself) while a dispatch is running:
//   - listeners added mid-dispatch are queued and first invoked by the next dispatch;
//   - listeners removed mid-dispatch are never invoked again, and the pass
//     continues with the listeners that follow them.
package event

// signaler is the listener list shared by Signal0, Signal1 and Signal2.
// The zero value is ready to use.
type signaler[F any] struct {
	head      *listenerNode[F]
	tail      *listenerNode[F]
	toAddHead *listenerNode[F]
	toAddTail *listenerNode[F]
	nodes     map[*Listener[F]]*listenerNode[F]
	pool      listenerNodePool[F]
	depth     int
	count     int
}

// Add registers l. Adding a listener that is already registered is a no-op.
func (s *signaler[F]) Add(l *Listener[F]) {
	s.add(l, false)
}

// AddOnce registers l to be removed right before its first invocation.
func (s *signaler[F]) AddOnce(l *Listener[F]) {
	s.add(l, true)
}

// AddFunc wraps fn in a new listener, registers it and returns the handle.
func (s *signaler[F]) AddFunc(fn F) *Listener[F] {
	l := NewListener(fn)
	s.add(l, false)
	return l
}

// Has reports whether l is registered.
func (s *signaler[F]) Has(l *Listener[F]) bool {
	_, ok := s.nodes[l]
	return ok
}

// NumListeners returns the number of registered listeners, including those
// queued during an in-progress dispatch.
func (s *signaler[F]) NumListeners() int { return s.count }

// Dispatching reports whether a dispatch is in progress.
func (s *signaler[F]) Dispatching() bool { return s.depth > 0 }

func (s *signaler[F]) add(l *Listener[F], once bool) {
	if l == nil {
		panic("event: nil listener")
	}
	if _, ok := s.nodes[l]; ok {
		return
	}
	if s.nodes == nil {
		s.nodes = make(map[*Listener[F]]*listenerNode[F])
	}
	n := s.pool.get()
	n.listener = l
	n.once = once
	s.nodes[l] = n

	if s.depth > 0 {
		if s.toAddHead == nil {
			s.toAddHead = n
			s.toAddTail = n
		} else {
			s.toAddTail.next = n
			n.previous = s.toAddTail
			s.toAddTail = n
		}
	} else {
		if s.head == nil {
			s.head = n
			s.tail = n
		} else {
			s.tail.next = n
			n.previous = s.tail
			s.tail = n
		}
	}
	s.count++
}

// Remove unregisters l. Removing an unknown listener is a no-op.
func (s *signaler[F]) Remove(l *Listener[F]) {
	n, ok := s.nodes[l]
	if !ok {
		return
	}
	if s.head == n {
		s.head = n.next
	}
	if s.tail == n {
		s.tail = n.previous
	}
	if s.toAddHead == n {
		s.toAddHead = n.next
	}
	if s.toAddTail == n {
		s.toAddTail = n.previous
	}
	if n.previous != nil {
		n.previous.next = n.next
	}
	if n.next != nil {
		n.next.previous = n.previous
	}
	delete(s.nodes, l)
	if s.depth > 0 {
		s.pool.cache(n)
	} else {
		s.pool.dispose(n)
	}
	s.count--
}

// RemoveAll unregisters every listener.
func (s *signaler[F]) RemoveAll() {
	for _, n := range s.nodes {
		if s.depth > 0 {
			s.pool.cache(n)
		} else {
			s.pool.dispose(n)
		}
	}
	clear(s.nodes)
	s.head = nil
	s.tail = nil
	s.toAddHead = nil
	s.toAddTail = nil
	s.count = 0
}

// dispatch walks the listener list calling call for every live listener.
func (s *signaler[F]) dispatch(call func(F)) {
	s.depth++
	defer s.endDispatch()
	for n := s.head; n != nil; n = n.next {
		l := n.listener
		if l == nil {
			// removed earlier in this pass
			continue
		}
		if n.once {
			s.Remove(l)
		}
		call(l.fn)
	}
}

func (s *signaler[F]) endDispatch() {
	s.depth--
	if s.depth > 0 {
		return
	}
	if s.toAddHead != nil {
		if s.head == nil {
			s.head = s.toAddHead
			s.tail = s.toAddTail
		} else {
			s.tail.next = s.toAddHead
			s.toAddHead.previous = s.tail
			s.tail = s.toAddTail
		}
		s.toAddHead = nil
		s.toAddTail = nil
	}
	s.pool.releaseCache()
}

// Signal0 dispatches with no arguments.
type Signal0 struct {
	signaler[func()]
}

// NewSignal0 returns an empty Signal0. The zero value is also usable.
func NewSignal0() *Signal0 { return &Signal0{} }

// Dispatch invokes every registered listener in registration order.
func (s *Signal0) Dispatch() {
	s.dispatch(func(fn func()) { fn() })
}

// Signal1 dispatches one argument.
type Signal1[T any] struct {
	signaler[func(T)]
}

// NewSignal1 returns an empty Signal1.
func NewSignal1[T any]() *Signal1[T] { return &Signal1[T]{} }

// Dispatch invokes every registered listener with v.
func (s *Signal1[T]) Dispatch(v T) {
	s.dispatch(func(fn func(T)) { fn(v) })
}

// Signal2 dispatches two arguments.
type Signal2[A, B any] struct {
	signaler[func(A, B)]
}

// NewSignal2 returns an empty Signal2.
func NewSignal2[A, B any]() *Signal2[A, B] { return &Signal2[A, B]{} }

// Dispatch invokes every registered listener with a and b.
func (s *Signal2[A, B]) Dispatch(a A, b B) {
	s.dispatch(func(fn func(A, B)) { fn(a, b) })
}
