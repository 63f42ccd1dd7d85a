package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Options struct {
	Brokers []string
	Topic   string
}

type Producer struct {
	w     *kafka.Writer
	topic string
}

func NewProducer(opts Options) (*Producer, error) {
	if len(opts.Brokers) == 0 {
		return nil, fmt.Errorf("missing KAFKA_BROKERS")
	}
	if opts.Topic == "" {
		return nil, fmt.Errorf("missing kafka topic")
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(opts.Brokers...),
			Topic:        opts.Topic,
			Balancer:     &kafka.Hash{}, // partition by message key
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		topic: opts.Topic,
	}, nil
}

func (p *Producer) Close() error { return p.w.Close() }

// Envelope is the schema of every event this service publishes.
type Envelope struct {
	EventType    string      `json:"eventType"`
	EventVersion string      `json:"eventVersion"`
	OccurredAt   time.Time   `json:"occurredAt"`
	AggregateID  string      `json:"aggregateId"`
	Data         interface{} `json:"data"`
}

// Publish writes one event keyed by key, so events for one aggregate stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, evt Envelope) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	val, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: val,
	})
}
