package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

func TestSerializeToMessage(t *testing.T) {
	fetched := time.Date(2023, 1, 31, 12, 0, 0, 0, time.UTC)
	rec := domain.Record{
		"id":               "usp000jv5f",
		"properties.mag":   6.8,
		"properties.place": "off the coast of Oregon",
		"longitude":        -125.0,
		"latitude":         44.5,
		"depth":            10.0,
	}

	msg, err := serializeToMessage(rec, fetched)
	require.NoError(t, err)

	assert.Equal(t, []byte("usp000jv5f"), msg.Key)
	assert.Contains(t, string(msg.Value), `"properties.mag":6.8`)
	assert.Contains(t, string(msg.Value), `"latitude":44.5`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("earthquake"), msg.Headers[0].Value)
	assert.Equal(t, "fetched_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2023-01-31T12:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_MissingID(t *testing.T) {
	msg, err := serializeToMessage(domain.Record{"properties.mag": 6.8}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, msg.Key)
}

func TestPublishBatch_EmptyIsNoOp(t *testing.T) {
	p := &Publisher{
		metrics: observability.NewMetricsForTesting(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// No writer is configured; an empty batch must not touch it.
	require.NoError(t, p.PublishBatch(context.Background(), nil))
	require.NoError(t, p.PublishBatch(context.Background(), []domain.Record{}))
}
