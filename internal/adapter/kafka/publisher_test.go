package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flypad/internal/domain"
	"github.com/couchcryptid/flypad/internal/observability"
)

var testFetchedAt = time.Date(2025, 6, 15, 17, 55, 0, 0, time.UTC)

type fakeWriter struct {
	msgs     []kafkago.Message
	failures int
	calls    int
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("leader not available")
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(testFetchedAt))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func testWeather(t *testing.T) domain.Weather {
	t.Helper()
	w, err := domain.DecodeWeather("KJFK", []byte(`[{"temp":15,"visib":"10+","rawOb":"KJFK 151751Z 09010KT 10SM"}]`))
	require.NoError(t, err)
	return w
}

func TestSerializeWeather(t *testing.T) {
	freezeClock(t)

	msg, err := serializeWeather(testWeather(t))
	require.NoError(t, err)

	assert.Equal(t, []byte("KJFK"), msg.Key)
	assert.Contains(t, string(msg.Value), `"metar":"KJFK 151751Z 09010KT 10SM"`)
	assert.Contains(t, string(msg.Value), `"visibility":"10+"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "record_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(RecordWeather), msg.Headers[0].Value)
	assert.Equal(t, "fetched_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(testFetchedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeFlightPlan(t *testing.T) {
	freezeClock(t)
	plan, err := domain.DecodeFlightPlan("123", []byte(`{"origin":{"icao_code":"EGLL"},"destination":{"icao_code":"KJFK"},"general":{"costindex":{}},"fuel":{}}`))
	require.NoError(t, err)

	msg, err := serializeFlightPlan(plan)
	require.NoError(t, err)

	assert.Equal(t, []byte("123"), msg.Key)
	assert.Contains(t, string(msg.Value), `"costindex":"No Value"`)
	assert.Equal(t, []byte(RecordFlightPlan), msg.Headers[0].Value)
}

func TestPublisher_PublishWeather(t *testing.T) {
	w := &fakeWriter{}
	m := observability.NewMetricsForTesting()
	p := newPublisher(w, m, testLogger())

	require.NoError(t, p.PublishWeather(context.Background(), testWeather(t)))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("KJFK"), w.msgs[0].Key)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RecordsPublished.WithLabelValues(RecordWeather)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.PublishErrors), 0)
}

func TestPublisher_RetriesTransientFailure(t *testing.T) {
	w := &fakeWriter{failures: 1}
	m := observability.NewMetricsForTesting()
	p := newPublisher(w, m, testLogger())

	require.NoError(t, p.PublishWeather(context.Background(), testWeather(t)))
	assert.Equal(t, 2, w.calls)
	assert.Len(t, w.msgs, 1)
}

func TestPublisher_GivesUpAfterMaxAttempts(t *testing.T) {
	w := &fakeWriter{failures: maxAttempts}
	m := observability.NewMetricsForTesting()
	p := newPublisher(w, m, testLogger())

	err := p.PublishWeather(context.Background(), testWeather(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish weather record")
	assert.Equal(t, maxAttempts, w.calls)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PublishErrors), 0)
}

func TestPublisher_StopsRetryingOnCancel(t *testing.T) {
	w := &fakeWriter{failures: maxAttempts}
	p := newPublisher(w, observability.NewMetricsForTesting(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PublishWeather(ctx, testWeather(t))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, w.calls)
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, observability.NewMetricsForTesting(), testLogger())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
