package orderevents_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/kafka/orderevents"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func approvedOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	p, err := order.NewProduct(kernel.NewUUID(), "Widget", "W-1", 3)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		Customer:  "ACME",
		OrderDate: now,
		Priority:  order.PriorityHigh,
	}, []order.Product{p}, "creator", now)
	require.NoError(t, err)

	o, err = o.Approve("bob", now.Add(time.Minute))
	require.NoError(t, err)
	return o
}

func TestKafkaPublisher_PublishStatusChanged(t *testing.T) {
	o := approvedOrder(t)
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != o.ID().String() {
			return errors.New("message must be keyed by order id")
		}
		if msg.Topic != "orders.status-changed" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})

	publisher := orderevents.NewKafkaPublisher(producer, "orders.status-changed", zap.NewNop())

	require.NoError(t, publisher.PublishStatusChanged(context.Background(), o))
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_Payload(t *testing.T) {
	o := approvedOrder(t)
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event orderevents.OrderStatusChanged
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.Status != "approved" || event.ChangedBy != "bob" || event.Note != "Order approved" {
			return errors.New("unexpected payload")
		}
		if len(event.Products) != 1 || event.Products[0].Status != "pending" {
			return errors.New("unexpected products")
		}
		return nil
	})

	publisher := orderevents.NewKafkaPublisher(producer, "orders", zap.NewNop())

	require.NoError(t, publisher.PublishStatusChanged(context.Background(), o))
	require.NoError(t, producer.Close())
}

func TestKafkaPublisher_SendFails(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := orderevents.NewKafkaPublisher(producer, "orders", zap.NewNop())

	err := publisher.PublishStatusChanged(context.Background(), approvedOrder(t))

	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestKafkaPublisher_InvalidOrder(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	publisher := orderevents.NewKafkaPublisher(producer, "orders", zap.NewNop())

	err := publisher.PublishStatusChanged(context.Background(), &order.Order{})

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	require.NoError(t, producer.Close())
}

func TestNewOrderStatusChanged(t *testing.T) {
	o := approvedOrder(t)

	event := orderevents.NewOrderStatusChanged(o)

	assert.Equal(t, orderevents.EventType, event.Type)
	assert.Equal(t, o.ID().String(), event.OrderID)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "W-1", event.Products[0].SKU)
	assert.Equal(t, 3, event.Products[0].Quantity)
}
