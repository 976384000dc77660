package mobius

import "sync"

// QueuingConnection is a Connection that queues values until a delegate
// to consume them is bound. It exists to set up circular dependencies
// safely: two components that need each other at construction time can
// each hold a QueuingConnection immediately, and the real consumers are
// bound once both exist. Nothing sent in between is lost.
//
// The delegate slot is single-assignment. Bind may be called once;
// queued values are delivered to the delegate, in receipt order, before
// Bind returns. A second Bind panics with ErrDoubleBind. After Dispose,
// Bind is a silent no-op instead: disposal racing the wiring is an
// expected teardown pattern, not a defect.
//
// Bind, Accept, and Dispose are safe to call from different goroutines.
type QueuingConnection[I any] struct {
	mu       sync.Mutex
	delegate Connection[I]
	queue    []I
	disposed bool
}

// NewQueuingConnection creates a QueuingConnection with no delegate
// bound.
func NewQueuingConnection[I any]() *QueuingConnection[I] {
	return &QueuingConnection[I]{}
}

// Bind attaches the delegate and flushes every queued value to it, in
// the order received. The flush completes before Bind returns, so an
// Accept call sequenced after Bind is observably ordered after the
// queued values.
//
// Panics with ErrDoubleBind if a delegate is already bound, and on a
// nil delegate. No-ops if the connection was already disposed; the
// queue was discarded at disposal and delegate receives nothing.
func (q *QueuingConnection[I]) Bind(delegate Connection[I]) {
	if delegate == nil {
		panic("mobius: nil delegate connection")
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.disposed {
		return
	}
	if q.delegate != nil {
		panic(ErrDoubleBind)
	}

	q.delegate = delegate
	for _, value := range q.queue {
		delegate.Accept(value)
	}
	q.queue = nil
}

// Accept queues the value if no delegate is bound yet, or forwards it
// to the delegate. After Dispose it does nothing.
func (q *QueuingConnection[I]) Accept(value I) {
	q.mu.Lock()
	if q.disposed {
		q.mu.Unlock()
		return
	}
	if q.delegate == nil {
		q.queue = append(q.queue, value)
		q.mu.Unlock()
		return
	}
	delegate := q.delegate
	q.mu.Unlock()

	// Forward outside the lock so a slow delegate doesn't block
	// Dispose or other callers.
	delegate.Accept(value)
}

// Dispose marks the connection disposed, forwards disposal to the
// delegate if one is bound, and discards any queued values. The slot
// becomes permanently unbindable. Idempotent.
func (q *QueuingConnection[I]) Dispose() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.disposed {
		return
	}
	q.disposed = true
	q.queue = nil
	if q.delegate != nil {
		q.delegate.Dispose()
	}
}
