// Package orderevents publishes committed order status changes to Kafka.
package orderevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType is the value of the "type" header and payload field.
const EventType = "OrderStatusChanged"

// OrderStatusChanged is the JSON payload of a status change event.
type OrderStatusChanged struct {
	EventID    string         `json:"eventId"`
	Type       string         `json:"type"`
	OrderID    string         `json:"orderId"`
	Status     string         `json:"status"`
	OccurredAt time.Time      `json:"occurredAt"`
	ChangedBy  string         `json:"changedBy"`
	Note       string         `json:"note,omitempty"`
	Version    int            `json:"version"`
	Products   []ProductState `json:"products"`
}

type ProductState struct {
	ProductID  string `json:"productId"`
	SKU        string `json:"sku"`
	Status     string `json:"status"`
	Quantity   int    `json:"quantity"`
	Allocated  int    `json:"allocated"`
	Dispatched int    `json:"dispatched"`
	Delivered  int    `json:"delivered"`
}

// KafkaPublisher implements ports.OrderEventPublisher with a sarama SyncProducer.
// Messages are keyed by order id so events of one order stay in one partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewSyncProducer creates a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 10
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// PublishStatusChanged sends one OrderStatusChanged event for the aggregate's current state.
func (p *KafkaPublisher) PublishStatusChanged(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := NewOrderStatusChanged(aggregate)
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", EventType, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(EventType)},
			{Key: []byte("event-id"), Value: []byte(event.EventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	p.logger.Debug("order event sent",
		zap.String("topic", p.topic),
		zap.String("order_id", event.OrderID),
		zap.String("status", event.Status),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NewOrderStatusChanged builds the event payload from the aggregate.
func NewOrderStatusChanged(aggregate *order.Order) OrderStatusChanged {
	event := OrderStatusChanged{
		EventID: uuid.NewString(),
		Type:    EventType,
		OrderID: aggregate.ID().String(),
		Status:  aggregate.Status().String(),
		Version: aggregate.Version(),
	}

	if entry, ok := aggregate.LatestHistoryEntry(); ok {
		event.OccurredAt = entry.At()
		event.ChangedBy = entry.User()
		event.Note = entry.Note()
	}

	for _, p := range aggregate.Products() {
		event.Products = append(event.Products, ProductState{
			ProductID:  p.ID().String(),
			SKU:        p.SKU(),
			Status:     p.Status().String(),
			Quantity:   p.Quantity(),
			Allocated:  p.AllocatedQuantity(),
			Dispatched: p.DispatchedQuantity(),
			Delivered:  p.DeliveredQuantity(),
		})
	}

	return event
}
