package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"lumera/internal/domain/service"
	"lumera/internal/errors"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a Kafka topic keyed by order number
type kafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a Kafka publisher writing to topic
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	return &kafkaPublisher{writer: writer, logger: logger}
}

func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attributes := eventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for key, value := range attributes {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	msg := kafka.Message{
		Key:     []byte(event.OrderNumber),
		Value:   data,
		Headers: headers,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to write kafka message")
	}

	p.logger.Info("[Kafka] Event published",
		slog.String("type", event.Type),
		slog.String("order_number", event.OrderNumber),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
