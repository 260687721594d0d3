// Package kafka publishes order status changes to a Kafka topic, one JSON
// message per change, keyed by order id so a consumer sees an order's
// changes in order.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mealdelivery/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// ErrNoBrokers is returned by NewWriter for an empty broker list.
var ErrNoBrokers = errors.New("kafka: no brokers configured")

// Writer is the part of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublishObserver is told how every publish attempt ended.
type PublishObserver interface {
	ObservePublish(topic string, err error)
}

// StatusChangedMessage is the wire format of order.StatusChanged.
type StatusChangedMessage struct {
	OrderID     string    `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	UserID      string    `json:"userId"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	At          time.Time `json:"at"`
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter creates a writer that hashes keys onto partitions and waits for
// the leader's acknowledgement.
func NewWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}, nil
}

// StatusChangedPublisher implements ports.EventPublisher.
type StatusChangedPublisher struct {
	writer   Writer
	topic    string
	observer PublishObserver
}

func NewStatusChangedPublisher(writer Writer, topic string, observer PublishObserver) *StatusChangedPublisher {
	return &StatusChangedPublisher{writer: writer, topic: topic, observer: observer}
}

// PublishStatusChanged writes all events in one batch.
func (p *StatusChangedPublisher) PublishStatusChanged(ctx context.Context, events ...order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(StatusChangedMessage{
			OrderID:     e.OrderID.String(),
			OrderNumber: e.OrderNumber,
			UserID:      e.UserID.String(),
			From:        e.From.String(),
			To:          e.To.String(),
			At:          e.At.UTC(),
		})
		if err != nil {
			return fmt.Errorf("marshal status change of order #%d: %w", e.OrderNumber, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.OrderID.String()),
			Value: value,
			Time:  e.At.UTC(),
		})
	}

	err := p.writer.WriteMessages(ctx, msgs...)
	if p.observer != nil {
		p.observer.ObservePublish(p.topic, err)
	}
	return err
}

func (p *StatusChangedPublisher) Close() error {
	return p.writer.Close()
}
