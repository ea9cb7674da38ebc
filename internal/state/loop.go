package state

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/flypad/internal/observability"
)

// Dispatcher starts the work a command describes. Dispatch must return
// without waiting for that work; results come back later as events.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command)
}

// Loop serializes every state change. Events are applied one at a time in
// arrival order; the live State is never shared.
type Loop struct {
	events   chan Event
	logger   *slog.Logger
	metrics  *observability.Metrics
	snapshot atomic.Pointer[State]
	applied  atomic.Bool
}

// NewLoop creates a loop whose inbound queue holds queueSize events.
func NewLoop(queueSize int, logger *slog.Logger, metrics *observability.Metrics) *Loop {
	l := &Loop{
		events:  make(chan Event, queueSize),
		logger:  logger,
		metrics: metrics,
	}
	l.snapshot.Store(&State{})
	return l
}

// Send enqueues ev, waiting for room in the queue or for ctx to end.
func (l *Loop) Send(ctx context.Context, ev Event) error {
	select {
	case l.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the state as of the last applied event.
func (l *Loop) Snapshot() State {
	return *l.snapshot.Load()
}

// CheckReadiness returns nil once the loop has applied at least one event.
func (l *Loop) CheckReadiness(_ context.Context) error {
	if !l.applied.Load() {
		return errors.New("event loop has not applied any events yet")
	}
	return nil
}

// Run applies events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context, d Dispatcher) error {
	l.logger.Info("event loop started", "queue_size", cap(l.events))
	l.metrics.LoopRunning.Set(1)
	defer l.metrics.LoopRunning.Set(0)

	s := l.Snapshot()
	for {
		select {
		case <-ctx.Done():
			n := l.drain(ctx, &s, d)
			l.logger.Info("event loop stopping", "reason", ctx.Err(), "drained", n)
			return nil
		case ev := <-l.events:
			l.metrics.QueueDepth.Set(float64(len(l.events)))
			l.apply(ctx, &s, ev, d)
		}
	}
}

// drain applies every event already queued when the loop was told to stop,
// so input accepted before shutdown is never lost. Commands dispatched here
// still see the cancelled context; writes that ignore it, like saving the
// user id, complete under the dispatcher's Wait.
func (l *Loop) drain(ctx context.Context, s *State, d Dispatcher) int {
	n := 0
	for {
		select {
		case ev := <-l.events:
			l.apply(ctx, s, ev, d)
			n++
		default:
			l.metrics.QueueDepth.Set(0)
			return n
		}
	}
}

// apply runs ev and any events it emits, then publishes one snapshot.
func (l *Loop) apply(ctx context.Context, s *State, inbound Event, d Dispatcher) {
	pending := []Event{inbound}
	for len(pending) > 0 {
		ev := pending[0]
		pending = pending[1:]

		l.logFailure(ev)
		cmds := Reduce(s, ev)
		l.metrics.EventsApplied.WithLabelValues(ev.Name()).Inc()
		l.logger.Debug("event applied", "event", ev.Name(), "commands", len(cmds))

		for _, cmd := range cmds {
			if e, ok := cmd.(Emit); ok {
				pending = append(pending, e.Event)
				continue
			}
			d.Dispatch(ctx, cmd)
		}
	}

	snap := *s
	l.snapshot.Store(&snap)
	l.applied.Store(true)
}

// logFailure notes outcomes that leave the state unchanged. Fetch failures
// are already warned about where they happen.
func (l *Loop) logFailure(ev Event) {
	switch ev := ev.(type) {
	case WeatherFetched:
		if ev.Err != nil {
			l.logger.Debug("weather not updated, keeping previous record",
				"slot", ev.Slot.String(), "station", ev.Station, "error", ev.Err)
		}
	case FlightPlanFetched:
		if ev.Err != nil {
			l.logger.Debug("no flight plan fetched", "error", ev.Err)
		}
	case UserIDSaved:
		if ev.Err != nil {
			l.logger.Warn("user id not saved", "error", ev.Err)
		}
	}
}
