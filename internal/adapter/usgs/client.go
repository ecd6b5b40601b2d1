package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

// Client fetches earthquake events from the USGS FDSN event service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a USGS catalog client.
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

// FetchEvents retrieves every event matching the query as a flattened
// record. A query matching nothing returns an empty, non-nil slice.
func (c *Client) FetchEvents(ctx context.Context, q domain.EventQuery) ([]domain.Record, error) {
	params := url.Values{
		"format":       {"geojson"},
		"starttime":    {q.StartTime},
		"endtime":      {q.EndTime},
		"minmagnitude": {strconv.FormatFloat(q.MinMagnitude, 'f', -1, 64)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.CatalogDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	records, err := domain.ParseFeatureCollection(body)
	if err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	outcome := "success"
	if len(records) == 0 {
		outcome = "empty"
	}
	c.metrics.CatalogRequests.WithLabelValues(outcome).Inc()
	c.metrics.EventsFetched.Observe(float64(len(records)))

	c.logger.Debug("catalog query complete",
		"starttime", q.StartTime,
		"endtime", q.EndTime,
		"min_magnitude", q.MinMagnitude,
		"events", len(records))

	return records, nil
}
