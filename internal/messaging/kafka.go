package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes shipping notifications to a Kafka topic, keyed by
// the derived message id so consumers can deduplicate redeliveries.
type KafkaPublisher struct {
	logger *zap.Logger
	writer *kafka.Writer
	topic  string
}

func NewKafkaPublisher(logger *zap.Logger, brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaPublisher{
		logger: logger,
		writer: writer,
		topic:  topic,
	}
}

func (p *KafkaPublisher) PublishShippingNotification(ctx context.Context, n ShippingNotification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal shipping notification: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(n.MessageID()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "message_id", Value: []byte(n.MessageID())},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.logger.Error("failed to publish shipping notification",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.Int64("order_id", n.OrderID),
		)
		return fmt.Errorf("publish shipping notification: %w", err)
	}

	p.logger.Info("shipping notification published",
		zap.String("topic", p.topic),
		zap.Int64("order_id", n.OrderID),
	)

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
