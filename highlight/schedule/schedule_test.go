package schedule

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dhamidi/javahl/highlight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu        sync.Mutex
	published []highlight.Result
}

func (r *recorder) publish(result highlight.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, result)
}

func (r *recorder) lengths() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lengths []int
	for _, result := range r.published {
		lengths = append(lengths, result.Length)
	}
	return lengths
}

func lengthOnly(calls *atomic.Int32) RecomputeFunc {
	return func(text []byte) highlight.Result {
		calls.Add(1)
		return highlight.Result{Length: len(text)}
	}
}

func flush(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func TestBurstPublishesOnce(t *testing.T) {
	var calls atomic.Int32
	rec := &recorder{}
	s := New(lengthOnly(&calls), rec.publish, WithQuietPeriod(50*time.Millisecond))
	defer s.Close()

	for i := 1; i <= 10; i++ {
		s.Notify([]byte(strings.Repeat("x", i)))
	}
	assert.Equal(t, Pending, s.State())
	flush(t, s)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, s.Passes())
	assert.Equal(t, []int{10}, rec.lengths())
	assert.Equal(t, Idle, s.State())
}

func TestSettledEditsPublishInOrder(t *testing.T) {
	var calls atomic.Int32
	rec := &recorder{}
	s := New(lengthOnly(&calls), rec.publish, WithQuietPeriod(5*time.Millisecond))
	defer s.Close()

	s.Notify([]byte("a"))
	flush(t, s)
	s.Notify([]byte("bb"))
	flush(t, s)
	s.Notify([]byte("ccc"))
	flush(t, s)

	assert.Equal(t, []int{1, 2, 3}, rec.lengths())
	assert.Equal(t, 3, s.Passes())
}

func TestSupersededPassIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	blockFirst := RecomputeFunc(func(text []byte) highlight.Result {
		if calls.Add(1) == 1 {
			<-release
		}
		return highlight.Result{Length: len(text)}
	})
	rec := &recorder{}
	s := New(blockFirst, rec.publish, WithQuietPeriod(5*time.Millisecond))
	defer s.Close()

	s.Notify([]byte("a"))
	require.Eventually(t, func() bool { return s.State() == Computing }, 5*time.Second, time.Millisecond)

	s.Notify([]byte("bbb"))
	assert.Equal(t, ComputingWithPendingEdit, s.State())
	s.Notify([]byte("bbbbb"))
	assert.Equal(t, ComputingWithPendingEdit, s.State())

	close(release)
	flush(t, s)

	assert.Equal(t, []int{5}, rec.lengths())
	assert.Equal(t, 2, s.Passes())
}

func TestFlush(t *testing.T) {
	var calls atomic.Int32
	s := New(lengthOnly(&calls), nil, WithQuietPeriod(time.Hour))

	flush(t, s)

	s.Notify([]byte("x"))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Flush(ctx), context.DeadlineExceeded)

	s.Close()
	assert.ErrorIs(t, s.Flush(context.Background()), context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
	s.Close()
}

func TestSchedulerWithSession(t *testing.T) {
	src := `public class Test { public static void main(String[] args) { System.out.println("Hi"); } }`
	rec := &recorder{}
	s := New(highlight.NewSession(nil), rec.publish, WithQuietPeriod(time.Millisecond))
	defer s.Close()

	s.Notify([]byte(src))
	flush(t, s)

	require.Len(t, rec.published, 1)
	result := rec.published[0]
	assert.NoError(t, highlight.Validate(result.Spans, len(src)))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "computing", Computing.String())
	assert.Equal(t, "computing-with-pending-edit", ComputingWithPendingEdit.String())
	assert.Equal(t, "unknown", State(42).String())
}
