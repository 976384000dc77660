package mobius

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

// recordingConnection is a Connection fixture safe for concurrent use.
type recordingConnection[I any] struct {
	mu       sync.Mutex
	accepted []I
	disposed int
}

func (c *recordingConnection[I]) Accept(value I) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accepted = append(c.accepted, value)
}

func (c *recordingConnection[I]) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed++
}

func (c *recordingConnection[I]) values() []I {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]I(nil), c.accepted...)
}

func (c *recordingConnection[I]) disposals() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

type QueuingConnectionSuite struct {
	suite.Suite
	q        *QueuingConnection[string]
	delegate *recordingConnection[string]
}

func (s *QueuingConnectionSuite) SetupTest() {
	s.q = NewQueuingConnection[string]()
	s.delegate = &recordingConnection[string]{}
}

func TestQueuingConnectionSuite(t *testing.T) {
	suite.Run(t, new(QueuingConnectionSuite))
}

func (s *QueuingConnectionSuite) TestFlushesQueuedValuesInOrderOnBind() {
	s.q.Accept("a")
	s.q.Accept("b")

	s.q.Bind(s.delegate)

	s.Assert().Equal([]string{"a", "b"}, s.delegate.values())
}

func (s *QueuingConnectionSuite) TestForwardsDirectlyOnceBound() {
	s.q.Bind(s.delegate)

	s.q.Accept("a")
	s.q.Accept("b")

	s.Assert().Equal([]string{"a", "b"}, s.delegate.values())
}

func (s *QueuingConnectionSuite) TestQueuedThenDirectValuesStayOrdered() {
	s.q.Accept("queued")
	s.q.Bind(s.delegate)
	s.q.Accept("direct")

	s.Assert().Equal([]string{"queued", "direct"}, s.delegate.values())
}

func (s *QueuingConnectionSuite) TestSecondBindPanics() {
	s.q.Bind(s.delegate)

	second := &recordingConnection[string]{}
	s.Assert().PanicsWithValue(ErrDoubleBind, func() {
		s.q.Bind(second)
	})
	s.Assert().Empty(second.values())
}

func (s *QueuingConnectionSuite) TestNilBindPanics() {
	s.Assert().Panics(func() {
		s.q.Bind(nil)
	})
}

func (s *QueuingConnectionSuite) TestDisposeBeforeBindDiscardsQueue() {
	s.q.Accept("a")
	s.q.Accept("b")

	s.q.Dispose()
	s.q.Bind(s.delegate)
	s.q.Accept("c")

	s.Assert().Empty(s.delegate.values())
	s.Assert().Zero(s.delegate.disposals())
}

func (s *QueuingConnectionSuite) TestDisposeAfterBindForwardsDisposal() {
	s.q.Bind(s.delegate)

	s.q.Dispose()
	s.q.Dispose()

	s.Assert().Equal(1, s.delegate.disposals())
}

func (s *QueuingConnectionSuite) TestAcceptAfterDisposeIsDiscarded() {
	s.q.Bind(s.delegate)
	s.q.Dispose()

	s.q.Accept("late")

	s.Assert().Empty(s.delegate.values())
}

func (s *QueuingConnectionSuite) TestConcurrentAcceptsAroundBindLoseNothing() {
	const senders = 8
	const perSender = 50

	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(sender int) {
			defer wg.Done()
			<-start
			for j := 0; j < perSender; j++ {
				s.q.Accept(fmt.Sprintf("%d/%d", sender, j))
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		s.q.Bind(s.delegate)
	}()

	close(start)
	wg.Wait()

	got := s.delegate.values()
	s.Require().Len(got, senders*perSender)

	// Per-sender order must survive even though the global interleaving
	// is unspecified.
	next := make(map[int]int)
	for _, value := range got {
		var sender, seq int
		_, err := fmt.Sscanf(value, "%d/%d", &sender, &seq)
		s.Require().NoError(err)
		s.Require().Equal(next[sender], seq, "sender %d out of order", sender)
		next[sender]++
	}
}

func (s *QueuingConnectionSuite) TestConcurrentDisposeIsSafe() {
	s.q.Bind(s.delegate)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.q.Accept(fmt.Sprintf("v%d", n))
			s.q.Dispose()
		}(i)
	}
	wg.Wait()

	s.Assert().Equal(1, s.delegate.disposals())
}
