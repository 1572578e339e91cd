package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/omarhimada/loginsynth/internal/event"
)

// Publisher pushes a finished event set onto a Kafka topic, one enveloped
// record per event, keyed by user id so per-user ordering survives
// partitioning.
type Publisher struct {
	client *kgo.Client
	topic  string
	source string
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic, source string, logger *zap.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	return &Publisher{client: client, topic: topic, source: source, logger: logger}, nil
}

func (p *Publisher) PublishAll(ctx context.Context, runID string, events []event.LoginEvent) error {
	for i, e := range events {
		envelope, err := WrapEvent(e, p.source, runID)
		if err != nil {
			return fmt.Errorf("wrap event %d: %w", i, err)
		}

		data, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("marshal envelope: %w", err)
		}

		record := &kgo.Record{
			Topic:     p.topic,
			Key:       []byte(e.UserID),
			Value:     data,
			Timestamp: e.Timestamp,
		}

		if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
			return fmt.Errorf("kafka publish: %w", err)
		}
	}

	p.logger.Info("published events to kafka",
		zap.Int("events", len(events)),
		zap.String("topic", p.topic),
	)
	return nil
}

func (p *Publisher) Close() {
	p.client.Close()
}
