// Package mobius provides type-based effect routing for state-machine
// loops.
//
// A loop produces heterogeneous "effect" values describing work to be
// performed. This package dispatches each effect to exactly one handler
// registered for its concrete type, and exposes the aggregate of all
// handlers as a single lifecycle-managed Connectable the loop can
// connect to — without knowing anything about handler internals.
//
// # Quick Start
//
// Declare effect and event types:
//
//	type SaveNote struct{ Text string }
//	type LoadNote struct{ ID int }
//
//	type NoteLoaded struct{ Text string }
//
// Register a handler per effect type, build, and connect:
//
//	b := mobius.NewRouterBuilder[Event]()
//
//	mobius.AddConsumer[SaveNote](b, func(eff SaveNote) {
//	    store.Save(eff.Text)
//	})
//	mobius.AddFunction[LoadNote](b, func(eff LoadNote) Event {
//	    return NoteLoaded{Text: store.Load(eff.ID)}
//	})
//
//	router := b.Build()
//
//	conn, err := router.Connect(func(e Event) {
//	    loop.dispatchEvent(e)
//	})
//	if err != nil {
//	    return err
//	}
//	defer conn.Dispose()
//
//	conn.Accept(SaveNote{Text: "hello"})
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Connections: live, disposable sinks that perform the actual work
//   - Connectables: factories binding fresh Connections to an output
//   - Router: filters, merges, and guards handler Connectables
//
// Handlers stay ignorant of each other and of the loop; the loop sees
// one opaque Connectable.
//
// # Routing Rules
//
// Registered effect types must be disjoint: no two may be assignable to
// each other (one interface containing another's implementations, for
// instance). Overlap is detected at registration time and panics with
// *OverlapError — ambiguous routing is a setup bug, not a runtime
// condition.
//
// At runtime each effect is offered to every handler's filter; exactly
// one matches and performs work. Non-matching values are dropped
// silently by each filter: effects are partitioned across handlers, so
// a value that isn't yours is someone else's.
//
// An effect matching no registration at all is a fatal defect. A
// catch-all member appended by Build panics with *UnknownEffectError at
// the offending Accept so the gap is caught at its source.
//
// # Queuing Connection
//
// QueuingConnection solves a bootstrapping problem: two components that
// must reference each other at construction time can each hold a
// QueuingConnection immediately, and the real consumer is bound later.
// Values accepted before binding are queued and flushed, in order, when
// Bind is called; the delegate slot binds exactly once.
//
//	q := mobius.NewQueuingConnection[Event]()
//	loop := newLoop(q) // loop can send events right away
//	q.Bind(newEventProcessor(loop))
//
// # Lifecycle
//
// The built router is single-use: a second Connect returns
// ErrConnectionLimit. Dispose is idempotent and propagates depth-first
// to every handler connection. Accept and Dispose calls after disposal
// are discarded, never errors — teardown races are expected and must
// not crash.
//
// # Hooks and Logging
//
// Hooks provide observability without coupling handlers to a logging or
// metrics system:
//
//	b := mobius.NewRouterBuilder[Event](
//	    mobius.WithLogger(logger),
//	    mobius.WithOnAccept(func(effect any) {
//	        metrics.Incr("effects.accepted")
//	    }),
//	    mobius.WithOnUnknownEffect(func(effect any) {
//	        logger.Error("unroutable effect", zap.Any("effect", effect))
//	    }),
//	)
//
// Available hooks:
//   - WithOnAccept: called for every effect entering the router
//   - WithOnUnknownEffect: called before the unknown-effect failure
//   - WithOnDispose: called once at first disposal
//
// Multiple hooks of the same type are called in order. With WithLogger
// the router also logs its own lifecycle at debug level, tagged with a
// per-router id.
//
// # Thread Safety
//
// A RouterBuilder is configured from a single goroutine. The built
// router's Connection is safe for concurrent use: Accept calls on
// different effect types proceed in parallel (the router does not
// serialize across handlers), and Accept racing Dispose either
// completes or no-ops. QueuingConnection's Bind, Accept, and Dispose
// are mutually safe from any goroutine.
package mobius
