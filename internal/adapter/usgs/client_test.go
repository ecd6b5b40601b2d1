package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"

	twoFeatureBody = `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"id": "usp000jv5f",
				"properties": {"mag": 6.8, "place": "off the coast of Oregon", "time": 1357374000000},
				"geometry": {"type": "Point", "coordinates": [-125.0, 44.5, 10.0]}
			},
			{
				"type": "Feature",
				"id": "usp000jv8q",
				"properties": {"mag": 7.5, "place": "southeastern Alaska", "time": 1357382000000},
				"geometry": {"type": "Point", "coordinates": [-134.9, 55.2, 8.7]}
			}
		]
	}`
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_FetchEvents_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "geojson", r.URL.Query().Get("format"))
		assert.Equal(t, "2013-01-01", r.URL.Query().Get("starttime"))
		assert.Equal(t, "2013-02-01", r.URL.Query().Get("endtime"))
		assert.Equal(t, "6.5", r.URL.Query().Get("minmagnitude"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, err := w.Write([]byte(twoFeatureBody))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	records, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-02-01",
		MinMagnitude: 6.5,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "usp000jv5f", records[0].String(domain.ColID))
	mag, ok := records[0].Float(domain.ColMagnitude)
	require.True(t, ok)
	assert.Equal(t, 6.8, mag)
	assert.Contains(t, records[1], domain.ColPosition)
}

func TestClient_FetchEvents_WholeMagnitudeFormatting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 6.0 must serialize without a trailing decimal.
		assert.Equal(t, "6", r.URL.Query().Get("minmagnitude"))
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-02-01",
		MinMagnitude: 6.0,
	})
	require.NoError(t, err)
}

func TestClient_FetchEvents_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	records, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-01-02",
		MinMagnitude: 9.9,
	})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_FetchEvents_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Bad Request: starttime must be before endtime"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-02-01",
		EndTime:      "2013-01-01",
		MinMagnitude: 6.0,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_FetchEvents_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-02-01",
		MinMagnitude: 6.0,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_FetchEvents_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		baseURL:    srv.URL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.FetchEvents(context.Background(), domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-02-01",
		MinMagnitude: 6.0,
	})
	require.Error(t, err)
}

func TestClient_FetchEvents_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient(srv.URL)
	_, err := c.FetchEvents(ctx, domain.EventQuery{
		StartTime:    "2013-01-01",
		EndTime:      "2013-02-01",
		MinMagnitude: 6.0,
	})
	require.Error(t, err)
}
