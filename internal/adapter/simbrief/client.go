// Package simbrief fetches the latest dispatched flight plan for a pilot from
// the SimBrief fetcher endpoint.
package simbrief

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
	source       = "flightplan"
	maxBodyBytes = 16 << 20
)

// Client implements fetch.FlightPlanFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a flight-plan client. A zero timeout leaves requests unbounded.
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

// FetchFlightPlan requests the latest plan for userID in JSON form.
func (c *Client) FetchFlightPlan(ctx context.Context, userID string) (domain.FlightPlan, error) {
	start := time.Now()
	plan, err := c.fetch(ctx, userID)
	c.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	c.metrics.FetchRequests.WithLabelValues(source, domain.KindOf(err)).Inc()
	return plan, err
}

func (c *Client) fetch(ctx context.Context, userID string) (domain.FlightPlan, error) {
	op := "fetch flight plan " + userID
	u := fmt.Sprintf("%s/xml.fetcher.php?userid=%s&json=1", c.baseURL, url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.FlightPlan{}, domain.NetworkError(op, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FlightPlan{}, domain.NetworkError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FlightPlan{}, domain.NetworkError(op, fmt.Errorf("simbrief API error: status %d: %s", resp.StatusCode, body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.FlightPlan{}, domain.NetworkError(op, fmt.Errorf("read body: %w", err))
	}

	plan, err := domain.DecodeFlightPlan(userID, body)
	if err != nil {
		c.logger.Debug("flight plan body rejected", "user_id", userID, "bytes", len(body), "error", err)
		return domain.FlightPlan{}, err
	}
	return plan, nil
}
