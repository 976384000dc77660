package mobius

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// config holds options shared by every RouterBuilder instantiation.
// Options are non-generic so they can be declared once and applied to
// builders of any event type.
type config struct {
	logger *zap.Logger
	hooks  hooks
}

// WithLogger sets the logger used for router lifecycle events
// (registration, build, connect, dispose, unroutable effects). The
// default is a no-op logger.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	b := mobius.NewRouterBuilder[Event](mobius.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// RouterBuilder accumulates (effect type, handler) registrations and
// assembles them into a single effect router.
//
// Usage:
//  1. Create a builder with NewRouterBuilder
//  2. Register handlers with AddConnectable, AddRunnable, AddConsumer,
//     or AddFunction
//  3. Call Build to obtain the router as a single Connectable
//  4. The owning loop calls Connect once on the result and feeds
//     effects into the returned Connection
//
// Registered effect types must be disjoint: no two may be assignable to
// each other, or dispatch would be ambiguous. Violations panic with
// *OverlapError at registration time.
//
// The builder is mutable only until Build; registration or a second
// Build afterwards panics with ErrRouterBuilt. A builder is not safe
// for concurrent use; configure it from one goroutine, then the built
// router is safe to use concurrently.
type RouterBuilder[E any] struct {
	id           string
	logger       *zap.Logger
	hooks        hooks
	connectables []Connectable[any, E]
	registered   []reflect.Type
	built        bool
}

// NewRouterBuilder creates a RouterBuilder for effect handlers that
// emit events of type E.
//
// Example:
//
//	b := mobius.NewRouterBuilder[Event](
//	    mobius.WithLogger(logger),
//	    mobius.WithOnAccept(func(effect any) {
//	        metrics.Incr("effects.accepted")
//	    }),
//	)
func NewRouterBuilder[E any](opts ...Option) *RouterBuilder[E] {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.NewString()
	return &RouterBuilder[E]{
		id:     id,
		logger: cfg.logger.With(zap.String("router", id)),
		hooks:  cfg.hooks,
	}
}

// AddConnectable registers handler for effects of type G. The handler
// only ever receives values of type G; everything else is filtered out
// before it.
//
// This is a package-level function (not a method) due to Go generics
// limitations: methods cannot have type parameters independent of the
// receiver. The effect type is given explicitly:
//
//	mobius.AddConnectable[SaveEffect](b, saveHandler)
//
// Panics with *OverlapError if G overlaps a previously registered
// effect type, and with ErrRouterBuilt after Build.
func AddConnectable[G any, E any](b *RouterBuilder[E], handler Connectable[G, E]) *RouterBuilder[E] {
	if handler == nil {
		panic("mobius: nil handler connectable")
	}

	effectType := effectTypeOf[G]()
	b.track(effectType)
	b.connectables = append(b.connectables, filteredConnectable[G, E]{delegate: handler})
	b.logger.Debug("registered effect handler", zap.Stringer("effect", effectType))
	return b
}

// AddRunnable registers an action to run for every effect of type G.
// The effect value itself is discarded. Use for effects that carry no
// data:
//
//	mobius.AddRunnable[RefreshEffect](b, cache.Invalidate)
func AddRunnable[G any, E any](b *RouterBuilder[E], action func()) *RouterBuilder[E] {
	if action == nil {
		panic("mobius: nil action")
	}

	return AddConnectable[G](b, ConnectableFunc[G, E](func(output Consumer[E]) (Connection[G], error) {
		return NewConnection(func(G) {
			action()
		}, nil), nil
	}))
}

// AddConsumer registers a function that consumes effects of type G
// without emitting events:
//
//	mobius.AddConsumer[LogEffect](b, func(eff LogEffect) {
//	    logger.Info(eff.Message)
//	})
func AddConsumer[G any, E any](b *RouterBuilder[E], consumer func(G)) *RouterBuilder[E] {
	if consumer == nil {
		panic("mobius: nil consumer")
	}

	return AddConnectable[G](b, ConnectableFunc[G, E](func(output Consumer[E]) (Connection[G], error) {
		return NewConnection(consumer, nil), nil
	}))
}

// AddFunction registers a function that transforms each effect of type
// G into exactly one event, delivered to the router's output:
//
//	mobius.AddFunction[LoadEffect](b, func(eff LoadEffect) Event {
//	    return Loaded{Data: store.Get(eff.Key)}
//	})
func AddFunction[G any, E any](b *RouterBuilder[E], fn func(G) E) *RouterBuilder[E] {
	if fn == nil {
		panic("mobius: nil function")
	}

	return AddConnectable[G](b, ConnectableFunc[G, E](func(output Consumer[E]) (Connection[G], error) {
		return NewConnection(func(value G) {
			output(fn(value))
		}, nil), nil
	}))
}

// track validates the builder state and the disjointness of effectType
// against all previous registrations, in both directions.
func (b *RouterBuilder[E]) track(effectType reflect.Type) {
	if b.built {
		panic(ErrRouterBuilt)
	}
	for _, existing := range b.registered {
		if effectType.AssignableTo(existing) || existing.AssignableTo(effectType) {
			panic(&OverlapError{Registered: effectType, Existing: existing})
		}
	}
	b.registered = append(b.registered, effectType)
}

// Build assembles the registered handlers into a single Connectable.
//
// A catch-all member is appended that fails with *UnknownEffectError
// for any effect no registration claims, so a routing gap surfaces at
// the offending Accept call instead of passing silently. The result is
// single-use: its Connect may be called once, and its Connection
// discards Accept and Dispose calls made after disposal.
//
// Build transitions the builder to its terminal state; calling it twice
// panics with ErrRouterBuilt.
func (b *RouterBuilder[E]) Build() Connectable[any, E] {
	if b.built {
		panic(ErrRouterBuilt)
	}
	b.built = true

	members := make([]Connectable[any, E], 0, len(b.connectables)+1)
	members = append(members, b.connectables...)
	members = append(members, &unknownEffectConnectable[E]{
		registered: slices.Clone(b.registered),
		hooks:      b.hooks.onUnknownEffect,
		logger:     b.logger,
	})

	b.logger.Debug("built effect router", zap.Int("handlers", len(b.connectables)))

	return &safeConnectable[any, E]{
		delegate: MergeConnectables(members...),
		logger:   b.logger,
		hooks:    b.hooks,
	}
}

// effectTypeOf returns the reflect.Type of G, including interface types.
func effectTypeOf[G any]() reflect.Type {
	return reflect.TypeOf((*G)(nil)).Elem()
}

// filteredConnectable narrows the router's heterogeneous effect stream
// down to one registered effect type. Values of other types pass by
// silently: effects are partitioned across many such filters, so a
// non-matching value is simply some other handler's business.
type filteredConnectable[G any, E any] struct {
	delegate Connectable[G, E]
}

func (f filteredConnectable[G, E]) Connect(output Consumer[E]) (Connection[any], error) {
	conn, err := f.delegate.Connect(output)
	if err != nil {
		return nil, err
	}

	return NewConnection(func(value any) {
		if narrowed, ok := value.(G); ok {
			conn.Accept(narrowed)
		}
	}, conn.Dispose), nil
}

// unknownEffectConnectable is the catch-all member appended by Build.
// It claims nothing itself; it only fails for effects that no
// registered type claims.
type unknownEffectConnectable[E any] struct {
	registered []reflect.Type
	hooks      []OnUnknownEffectFunc
	logger     *zap.Logger
}

func (u *unknownEffectConnectable[E]) Connect(output Consumer[E]) (Connection[any], error) {
	return NewConnection(func(value any) {
		if u.claimed(value) {
			return
		}
		for _, fn := range u.hooks {
			fn(value)
		}
		u.logger.Error("no handler registered for effect", zap.String("type", fmt.Sprintf("%T", value)))
		panic(&UnknownEffectError{Effect: value})
	}, nil), nil
}

// claimed reports whether some registered effect type would have
// routed value.
func (u *unknownEffectConnectable[E]) claimed(value any) bool {
	valueType := reflect.TypeOf(value)
	if valueType == nil {
		return false
	}
	for _, registered := range u.registered {
		if valueType.AssignableTo(registered) {
			return true
		}
	}
	return false
}
