package mobius

import (
	"fmt"
	"slices"
)

// MergeConnectables combines several Connectables into one. Connecting
// the merged Connectable connects every member to the same output, and
// the merged Connection fans each accepted value out to every member.
// Members that don't care about a given value are expected to ignore
// it, the way the router's per-type filters do.
//
// Dispose is fanned out to every member connection. If connecting any
// member fails, members connected so far are disposed and the error is
// returned.
//
// Panics if called with no members.
func MergeConnectables[I, O any](connectables ...Connectable[I, O]) Connectable[I, O] {
	if len(connectables) == 0 {
		panic("mobius: merge requires at least one connectable")
	}
	return mergedConnectable[I, O]{connectables: slices.Clone(connectables)}
}

type mergedConnectable[I, O any] struct {
	connectables []Connectable[I, O]
}

func (m mergedConnectable[I, O]) Connect(output Consumer[O]) (Connection[I], error) {
	connections := make([]Connection[I], 0, len(m.connectables))
	for _, connectable := range m.connectables {
		conn, err := connectable.Connect(output)
		if err != nil {
			for _, made := range connections {
				made.Dispose()
			}
			return nil, fmt.Errorf("connect merged member: %w", err)
		}
		connections = append(connections, conn)
	}

	return NewConnection(func(value I) {
		for _, conn := range connections {
			conn.Accept(value)
		}
	}, func() {
		for _, conn := range connections {
			conn.Dispose()
		}
	}), nil
}
