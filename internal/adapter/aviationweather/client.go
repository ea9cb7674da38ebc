// Package aviationweather fetches METAR observations from the
// aviationweather.gov data API.
package aviationweather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/flypad/internal/domain"
	"github.com/couchcryptid/flypad/internal/observability"
)

const (
	source       = "weather"
	maxBodyBytes = 4 << 20
)

// Client implements fetch.WeatherFetcher against the METAR endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a weather client. A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchWeather requests the latest observation for one station. The request
// is made exactly once.
func (c *Client) FetchWeather(ctx context.Context, station string, includeTAF bool) (domain.Weather, error) {
	start := time.Now()
	w, err := c.fetch(ctx, station, includeTAF)
	c.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	c.metrics.FetchRequests.WithLabelValues(source, domain.KindOf(err)).Inc()
	return w, err
}

func (c *Client) fetch(ctx context.Context, station string, includeTAF bool) (domain.Weather, error) {
	op := "fetch weather " + station
	u := fmt.Sprintf("%s/metar?ids=%s&format=json&taf=%t", c.baseURL, url.QueryEscape(station), includeTAF)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Weather{}, domain.NetworkError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Weather{}, domain.NetworkError(op, err)
	}
	defer resp.Body.Close()

	// The API answers 204 instead of [] when nothing matched.
	if resp.StatusCode == http.StatusNoContent {
		return domain.Weather{}, domain.EmptyError(op)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Weather{}, domain.NetworkError(op, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Weather{}, domain.NetworkError(op, fmt.Errorf("read body: %w", err))
	}

	w, err := domain.DecodeWeather(station, body)
	if err != nil {
		c.logger.Debug("weather body rejected", "station", station, "bytes", len(body), "error", err)
		return domain.Weather{}, err
	}
	return w, nil
}
