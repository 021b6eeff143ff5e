package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	orderTopic        = "order-events"
	compensationTopic = "compensation-events"
)

type Producer struct {
	orderWriter        *kafka.Writer
	compensationWriter *kafka.Writer
	logger             *zap.Logger
}

func NewProducer(brokers string, logger *zap.Logger) *Producer {
	return &Producer{
		orderWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    orderTopic,
			Balancer: &kafka.LeastBytes{},
		},
		compensationWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    compensationTopic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

func (p *Producer) PublishOrderPlaced(event OrderPlacedEvent) error {
	if err := p.publish(p.orderWriter, event.EventID, event); err != nil {
		p.logger.Error("Failed to publish order placed event",
			zap.String("event_id", event.EventID),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Order placed event published",
		zap.String("event_id", event.EventID),
		zap.String("order_id", event.OrderID))
	return nil
}

func (p *Producer) PublishCompensation(event CompensationEvent) error {
	if err := p.publish(p.compensationWriter, event.EventID, event); err != nil {
		p.logger.Error("Failed to publish compensation event",
			zap.String("event_id", event.EventID),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Compensation event published",
		zap.String("event_id", event.EventID),
		zap.String("order_id", event.OrderID),
		zap.String("reason", event.Reason))
	return nil
}

func (p *Producer) publish(w *kafka.Writer, key string, event any) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: eventBytes,
	})
}

func (p *Producer) Close() error {
	if err := p.orderWriter.Close(); err != nil {
		return err
	}
	return p.compensationWriter.Close()
}
