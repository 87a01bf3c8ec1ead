package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/storecore/catalog-service/internal/domain"
	"go.uber.org/zap"
)

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaProducer builds a producer for the given comma-separated
// broker list.
func NewKafkaProducer(brokers, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaProducer{
		writer: writer,
		logger: logger,
	}
}

func (p *KafkaProducer) ProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TypeProductCreated, product)
}

func (p *KafkaProducer) ProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TypeProductUpdated, product)
}

func (p *KafkaProducer) ProductDeleted(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TypeProductDeleted, product)
}

func (p *KafkaProducer) publish(ctx context.Context, eventType string, product *domain.Product) error {
	event := NewProductEvent(eventType, product)

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	// Keyed by product id so events for one product stay ordered within
	// a partition.
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(product.ID, 10)),
		Value: eventBytes,
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", event.EventID),
			zap.String("type", eventType),
			zap.Error(err))
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_id", event.EventID),
		zap.String("type", eventType),
		zap.Int64("product_id", product.ID))

	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
