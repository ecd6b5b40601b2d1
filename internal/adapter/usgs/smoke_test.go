//go:build usgs

package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

// These tests hit the real USGS fdsnws endpoint and need network access.
// Run with: go test -tags=usgs ./internal/adapter/usgs/ -v -count=1

func smokeClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://earthquake.usgs.gov/fdsnws/event/1/query",
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_FetchEvents(t *testing.T) {
	c := smokeClient()

	// January 2013 had several magnitude 6+ events, including the
	// M7.5 Craig, Alaska quake on the 5th.
	records, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-02-01",
		MinMagnitude: 6.0,
	})
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, rec := range records {
		assert.Contains(t, rec, domain.ColPosition)
		mag, ok := rec.Float(domain.ColMagnitude)
		require.True(t, ok)
		assert.GreaterOrEqual(t, mag, 6.0)
	}
}

func TestSmoke_FetchEvents_NoMatches(t *testing.T) {
	c := smokeClient()

	records, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-01-02",
		MinMagnitude: 11.0,
	})
	require.NoError(t, err)
	assert.Empty(t, records)
}
