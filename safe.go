package mobius

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// safeConnectable is the defensive boundary Build wraps around the
// merged router. It enforces single use, and its connection tolerates
// the races inherent in teardown: Accept and Dispose calls made after
// disposal are discarded rather than corrupting state or failing.
type safeConnectable[I, O any] struct {
	delegate  Connectable[I, O]
	logger    *zap.Logger
	hooks     hooks
	connected atomic.Bool
}

func (s *safeConnectable[I, O]) Connect(output Consumer[O]) (Connection[I], error) {
	if !s.connected.CompareAndSwap(false, true) {
		return nil, ErrConnectionLimit
	}

	conn, err := s.delegate.Connect(output)
	if err != nil {
		// A failed attempt doesn't consume the single use.
		s.connected.Store(false)
		return nil, err
	}

	s.logger.Debug("effect router connected")
	return &safeConnection[I]{
		delegate:  conn,
		logger:    s.logger,
		onAccept:  s.hooks.onAccept,
		onDispose: s.hooks.onDispose,
	}, nil
}

// safeConnection guards the lifecycle state {active, disposed} of the
// router's connection. The mutex covers only the state check and
// transition, never handler execution, so concurrent Accept calls
// proceed in parallel and Dispose never waits for in-flight effects.
type safeConnection[I any] struct {
	mu        sync.Mutex
	disposed  bool
	delegate  Connection[I]
	logger    *zap.Logger
	onAccept  []OnAcceptFunc
	onDispose []OnDisposeFunc
}

func (c *safeConnection[I]) Accept(value I) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	delegate := c.delegate
	c.mu.Unlock()

	for _, fn := range c.onAccept {
		fn(value)
	}
	delegate.Accept(value)
}

func (c *safeConnection[I]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.mu.Unlock()

	c.delegate.Dispose()
	for _, fn := range c.onDispose {
		fn()
	}
	c.logger.Debug("effect router disposed")
}
