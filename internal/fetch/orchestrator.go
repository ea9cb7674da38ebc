// Package fetch runs the side effects the reducer asks for. Every command
// becomes one goroutine that performs a single request and reports exactly
// one result event back to the loop.
package fetch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/couchcryptid/flypad/internal/domain"
	"github.com/couchcryptid/flypad/internal/observability"
	"github.com/couchcryptid/flypad/internal/state"
)

// WeatherFetcher retrieves the latest observation for a station.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, station string, includeTAF bool) (domain.Weather, error)
}

// FlightPlanFetcher retrieves the latest plan for a user.
type FlightPlanFetcher interface {
	FetchFlightPlan(ctx context.Context, userID string) (domain.FlightPlan, error)
}

// UserStore persists the user identifier between sessions.
type UserStore interface {
	Load() (string, bool)
	Save(id string) error
}

// RecordPublisher receives every successfully fetched record.
type RecordPublisher interface {
	PublishWeather(ctx context.Context, w domain.Weather) error
	PublishFlightPlan(ctx context.Context, p domain.FlightPlan) error
}

// EventSender delivers result events to the reducer loop.
type EventSender interface {
	Send(ctx context.Context, ev state.Event) error
}

// Orchestrator implements state.Dispatcher.
type Orchestrator struct {
	weather    WeatherFetcher
	plans      FlightPlanFetcher
	users      UserStore
	sender     EventSender
	publisher  RecordPublisher
	includeTAF bool
	metrics    *observability.Metrics
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPublisher forwards fetched records to p.
func WithPublisher(p RecordPublisher) Option {
	return func(o *Orchestrator) { o.publisher = p }
}

// WithTAF sets the forecast-inclusion flag sent with weather requests.
func WithTAF(include bool) Option {
	return func(o *Orchestrator) { o.includeTAF = include }
}

// New creates an orchestrator that reports results through sender.
func New(weather WeatherFetcher, plans FlightPlanFetcher, users UserStore, sender EventSender, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		weather:    weather,
		plans:      plans,
		users:      users,
		sender:     sender,
		includeTAF: true,
		metrics:    metrics,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Dispatch starts cmd in the background and returns immediately.
func (o *Orchestrator) Dispatch(ctx context.Context, cmd state.Command) {
	var run func(context.Context) state.Event

	switch cmd := cmd.(type) {
	case state.StartWeatherFetch:
		run = func(ctx context.Context) state.Event { return o.fetchWeather(ctx, cmd) }
	case state.StartFlightPlanFetch:
		run = func(ctx context.Context) state.Event { return o.fetchFlightPlan(ctx, cmd) }
	case state.ReadUserID:
		run = func(context.Context) state.Event {
			id, ok := o.users.Load()
			return state.UserIDLoaded{UserID: id, OK: ok}
		}
	case state.WriteUserID:
		run = func(context.Context) state.Event {
			return state.UserIDSaved{Err: o.users.Save(cmd.UserID)}
		}
	default:
		o.logger.Error("unsupported command", "command", cmd)
		return
	}

	o.wg.Add(1)
	o.metrics.FetchInFlight.Inc()
	go func() {
		defer o.wg.Done()
		defer o.metrics.FetchInFlight.Dec()

		ev := run(ctx)
		if err := o.sender.Send(ctx, ev); err != nil {
			o.logger.Debug("result dropped", "event", ev.Name(), "error", err)
			return
		}
		// Publish only after delivery; the broker may be slow or down.
		o.publish(ctx, ev)
	}()
}

// Wait blocks until every dispatched command has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) fetchWeather(ctx context.Context, cmd state.StartWeatherFetch) state.Event {
	w, err := o.weather.FetchWeather(ctx, cmd.Station, o.includeTAF)
	if err != nil {
		o.logger.Warn("weather fetch failed",
			"slot", cmd.Slot.String(), "station", cmd.Station, "kind", domain.KindOf(err), "error", err)
		return state.WeatherFetched{Slot: cmd.Slot, Station: cmd.Station, Err: err}
	}

	o.logger.Debug("weather fetched", "slot", cmd.Slot.String(), "station", cmd.Station)
	return state.WeatherFetched{Slot: cmd.Slot, Station: cmd.Station, Weather: w}
}

func (o *Orchestrator) fetchFlightPlan(ctx context.Context, cmd state.StartFlightPlanFetch) state.Event {
	p, err := o.plans.FetchFlightPlan(ctx, cmd.UserID)
	if err != nil {
		o.logger.Warn("flight plan fetch failed", "user_id", cmd.UserID, "kind", domain.KindOf(err), "error", err)
		return state.FlightPlanFetched{Err: err}
	}

	o.logger.Debug("flight plan fetched", "user_id", cmd.UserID,
		"origin", p.Origin.ICAO, "destination", p.Destination.ICAO)
	return state.FlightPlanFetched{Plan: p}
}

// publish forwards the record carried by a successful fetch result.
func (o *Orchestrator) publish(ctx context.Context, ev state.Event) {
	if o.publisher == nil {
		return
	}
	switch ev := ev.(type) {
	case state.WeatherFetched:
		if ev.Err != nil {
			return
		}
		if err := o.publisher.PublishWeather(ctx, ev.Weather); err != nil {
			o.logger.Warn("weather record not published", "station", ev.Station, "error", err)
		}
	case state.FlightPlanFetched:
		if ev.Err != nil {
			return
		}
		if err := o.publisher.PublishFlightPlan(ctx, ev.Plan); err != nil {
			o.logger.Warn("flight plan record not published", "user_id", ev.Plan.UserID, "error", err)
		}
	}
}
