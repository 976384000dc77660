package mobius

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConnectables(t *testing.T) {
	t.Run("fans accepted values out to every member", func(t *testing.T) {
		first := &recordingHandler[string, testEvent]{}
		second := &recordingHandler[string, testEvent]{}

		merged := MergeConnectables[string, testEvent](first, second)
		conn, err := merged.Connect(func(testEvent) {})
		require.NoError(t, err)
		defer conn.Dispose()

		conn.Accept("x")

		assert.Equal(t, []string{"x"}, first.accepted)
		assert.Equal(t, []string{"x"}, second.accepted)
	})

	t.Run("fans dispose out to every member", func(t *testing.T) {
		first := &recordingHandler[string, testEvent]{}
		second := &recordingHandler[string, testEvent]{}

		merged := MergeConnectables[string, testEvent](first, second)
		conn, err := merged.Connect(func(testEvent) {})
		require.NoError(t, err)

		conn.Dispose()

		assert.Equal(t, 1, first.disposed)
		assert.Equal(t, 1, second.disposed)
	})

	t.Run("member failure unwinds earlier connections", func(t *testing.T) {
		memberErr := errors.New("member refused")
		first := &recordingHandler[string, testEvent]{}
		failing := &recordingHandler[string, testEvent]{connectErr: memberErr}
		never := &recordingHandler[string, testEvent]{}

		merged := MergeConnectables[string, testEvent](first, failing, never)
		_, err := merged.Connect(func(testEvent) {})

		require.ErrorIs(t, err, memberErr)
		assert.Equal(t, 1, first.disposed)
		assert.Equal(t, 0, never.connects)
	})

	t.Run("shares one output across members", func(t *testing.T) {
		echo := ConnectableFunc[string, testEvent](func(output Consumer[testEvent]) (Connection[string], error) {
			return NewConnection(func(value string) {
				output(testEvent{Name: value})
			}, nil), nil
		})

		var events []testEvent
		merged := MergeConnectables[string, testEvent](echo, echo)
		conn, err := merged.Connect(func(e testEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)
		defer conn.Dispose()

		conn.Accept("ping")

		assert.Len(t, events, 2)
	})

	t.Run("requires at least one member", func(t *testing.T) {
		assert.Panics(t, func() {
			MergeConnectables[string, testEvent]()
		})
	})
}
