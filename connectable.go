package mobius

// Consumer accepts values of type V. It is the output side of a
// connection: handlers that produce derived events push them into the
// Consumer they were connected with.
//
// A Consumer must be safe to call from the goroutine that owns the
// connection; implementations that fan out to other goroutines are
// responsible for their own synchronization.
type Consumer[V any] func(value V)

// Connection is a live, disposable sink bound to one producer.
//
// Accept performs the side effect for a single input value. Dispose
// releases whatever resources the connection owns; it is idempotent,
// and Accept calls made after Dispose are not guaranteed to have any
// effect.
//
// Whoever obtained the Connection via Connectable.Connect owns it and
// is responsible for disposing it. Connections that wrap delegate
// Connections must forward Dispose to every delegate.
type Connection[I any] interface {
	// Accept processes one input value.
	Accept(value I)

	// Dispose releases resources held by the connection. Safe to call
	// more than once.
	Dispose()
}

// Connectable is a factory for Connections. Connect binds a fresh
// Connection to the given output consumer.
//
// Some implementations are single-use: connecting them a second time
// fails with ErrConnectionLimit. Implementations that support repeated
// Connect calls must return independent Connection instances.
//
// Example:
//
//	conn, err := router.Connect(func(e Event) {
//	    loop.dispatchEvent(e)
//	})
//	if err != nil {
//	    return err
//	}
//	defer conn.Dispose()
type Connectable[I, O any] interface {
	Connect(output Consumer[O]) (Connection[I], error)
}

// ConnectableFunc is a function adapter for Connectable. Use for simple
// handlers that don't need a struct:
//
//	handler := mobius.ConnectableFunc[SaveEffect, Event](func(output mobius.Consumer[Event]) (mobius.Connection[SaveEffect], error) {
//	    return mobius.NewConnection(func(eff SaveEffect) {
//	        output(Saved{ID: eff.ID})
//	    }, nil), nil
//	})
type ConnectableFunc[I, O any] func(output Consumer[O]) (Connection[I], error)

// Connect implements the Connectable interface.
func (f ConnectableFunc[I, O]) Connect(output Consumer[O]) (Connection[I], error) {
	return f(output)
}

// NewConnection builds a Connection from an accept function and an
// optional dispose function. A nil dispose means the connection owns no
// resources.
func NewConnection[I any](accept func(I), dispose func()) Connection[I] {
	return &funcConnection[I]{accept: accept, dispose: dispose}
}

type funcConnection[I any] struct {
	accept  func(I)
	dispose func()
}

func (c *funcConnection[I]) Accept(value I) {
	c.accept(value)
}

func (c *funcConnection[I]) Dispose() {
	if c.dispose != nil {
		c.dispose()
	}
}
