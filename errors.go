package mobius

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrConnectionLimit is returned by Connect when a single-use
// Connectable is connected a second time. The router built by
// RouterBuilder.Build is single-use: its owning loop connects it exactly
// once.
var ErrConnectionLimit = errors.New("connection limit exceeded: connectable already connected")

// ErrDoubleBind is the panic value raised when Bind is called twice on
// a QueuingConnection. Circular-dependency wiring must resolve exactly
// once, so a second bind is a programming defect, not a recoverable
// condition.
var ErrDoubleBind = errors.New("queuing connection: delegate already bound")

// ErrRouterBuilt is the panic value raised when a registration function
// is called on a RouterBuilder after Build. The builder is mutable only
// while collecting registrations.
var ErrRouterBuilt = errors.New("router builder: already built")

// OverlapError is the panic value raised when two registered effect
// types are assignable to each other. Effects are partitioned across
// handlers by runtime type, so overlapping registrations would make
// dispatch ambiguous. This is detected at registration time, before the
// router is ever connected.
type OverlapError struct {
	// Registered is the type whose registration failed.
	Registered reflect.Type

	// Existing is the previously registered type it collides with.
	Existing reflect.Type
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("effect types must not be assignable to each other: %v collides with existing %v",
		e.Registered, e.Existing)
}

// UnknownEffectError is the panic value raised when the router receives
// an effect matching no registered type. The owning loop asked for
// handling of a value nobody declared a handler for; that is a fatal
// programming defect, never retried.
type UnknownEffectError struct {
	// Effect is the value that could not be routed.
	Effect any
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("no handler registered for effect %v (type %T)", e.Effect, e.Effect)
}
