package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/tremorlab/quake-map-service/internal/config"
	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

// Publisher produces normalized earthquake records to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, metrics: metrics, logger: logger}
}

// PublishBatch serializes and publishes multiple records to the sink
// topic in a single WriteMessages call for efficiency.
func (p *Publisher) PublishBatch(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	fetchedAt := domain.Now()
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], fetchedAt)
		if err != nil {
			p.metrics.PublishErrors.Inc()
			return err
		}
		msgs[i] = msg
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish records: %w", err)
	}

	p.metrics.EventsPublished.Add(float64(len(records)))
	p.logger.Debug("records published", "count", len(records))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a record into a Kafka message keyed by
// event id.
func serializeToMessage(rec domain.Record, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.String(domain.ColID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("earthquake")},
			{Key: "fetched_at", Value: []byte(fetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
