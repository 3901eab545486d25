// Package schedule runs highlighting passes in the background, debounced
// on edits to a buffer.
//
// A Scheduler is a small state machine:
//
//	Idle ──edit──▶ Pending ──quiet period──▶ Computing ──done──▶ Idle (publish)
//	                  ▲                          │
//	                  │                        edit
//	                  │                          ▼
//	                  └────────done──── ComputingWithPendingEdit (discard)
//
// Every edit in Pending restarts the quiet period. At most one pass runs at
// a time and the result of a pass that was overtaken by an edit is never
// published.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/dhamidi/javahl/highlight"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("javahl.schedule")

// DefaultQuietPeriod is how long the buffer must stay unchanged before a
// pass starts.
const DefaultQuietPeriod = 200 * time.Millisecond

type State int

const (
	Idle State = iota
	Pending
	Computing
	ComputingWithPendingEdit
)

var stateNames = map[State]string{
	Idle:                     "idle",
	Pending:                  "pending",
	Computing:                "computing",
	ComputingWithPendingEdit: "computing-with-pending-edit",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Recomputer runs one highlighting pass. *highlight.Session implements it.
type Recomputer interface {
	Recompute(text []byte) highlight.Result
}

// RecomputeFunc adapts a function to Recomputer.
type RecomputeFunc func(text []byte) highlight.Result

func (f RecomputeFunc) Recompute(text []byte) highlight.Result {
	return f(text)
}

// Publisher receives each published result. It is called from the
// scheduler's goroutine, one result at a time.
type Publisher func(highlight.Result)

type Option func(*Scheduler)

func WithQuietPeriod(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.quiet = d
		}
	}
}

type Scheduler struct {
	recomputer Recomputer
	publish    Publisher
	quiet      time.Duration

	mu     sync.Mutex
	state  State
	text   []byte
	idle   chan struct{}
	passes int

	edits   chan struct{}
	jobs    chan []byte
	results chan highlight.Result
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts a scheduler that runs passes with r and hands results to
// publish.
func New(r Recomputer, publish Publisher, opts ...Option) *Scheduler {
	s := &Scheduler{
		recomputer: r,
		publish:    publish,
		quiet:      DefaultQuietPeriod,
		idle:       make(chan struct{}),
		edits:      make(chan struct{}, 1),
		jobs:       make(chan []byte, 1),
		results:    make(chan highlight.Result, 1),
		quit:       make(chan struct{}),
	}
	close(s.idle)
	for _, opt := range opts {
		opt(s)
	}
	s.wg.Add(2)
	go s.run()
	go s.work()
	return s
}

// Notify records a new buffer text. It never blocks on a running pass.
func (s *Scheduler) Notify(text []byte) {
	s.mu.Lock()
	s.text = text
	switch s.state {
	case Idle, Pending:
		s.setState(Pending)
	case Computing:
		s.setState(ComputingWithPendingEdit)
	}
	s.mu.Unlock()

	select {
	case s.edits <- struct{}{}:
	default:
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Passes returns the number of passes started so far.
func (s *Scheduler) Passes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}

// Flush waits until every edit has been published or discarded in favour
// of a later one and the scheduler is Idle.
func (s *Scheduler) Flush(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.state == Idle {
			s.mu.Unlock()
			return nil
		}
		idle := s.idle
		s.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		case <-s.quit:
			return context.Canceled
		}
	}
}

// Close stops the scheduler. A pass in flight finishes but its result is
// dropped.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}

// setState must be called with s.mu held.
func (s *Scheduler) setState(state State) {
	if s.state == state {
		return
	}
	if s.state == Idle {
		s.idle = make(chan struct{})
	}
	if state == Idle {
		close(s.idle)
	}
	log.Debugf("%s -> %s", s.state, state)
	s.state = state
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	var timer *time.Timer
	var fired <-chan time.Time
	restart := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(s.quiet)
		fired = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-s.quit:
			return

		case <-s.edits:
			if s.State() == Pending {
				restart()
			}

		case <-fired:
			fired = nil
			s.mu.Lock()
			if s.state != Pending {
				s.mu.Unlock()
				continue
			}
			s.setState(Computing)
			s.passes++
			text := s.text
			s.mu.Unlock()
			s.jobs <- text

		case result := <-s.results:
			s.mu.Lock()
			superseded := s.state == ComputingWithPendingEdit
			s.mu.Unlock()
			if superseded {
				log.Debugf("discarding superseded pass over %d bytes", result.Length)
			} else if s.publish != nil {
				s.publish(result)
			}

			s.mu.Lock()
			if s.state == ComputingWithPendingEdit {
				s.setState(Pending)
				restart()
			} else {
				s.setState(Idle)
			}
			s.mu.Unlock()
		}
	}
}

// work is the single background worker. Passes are not interrupted.
func (s *Scheduler) work() {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case text := <-s.jobs:
			result := s.recomputer.Recompute(text)
			select {
			case s.results <- result:
			case <-s.quit:
				return
			}
		}
	}
}
