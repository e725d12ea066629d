package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Envelope wraps every published lifecycle event.
type Envelope struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Producer publishes lifecycle events. A nil Producer is valid and drops
// every publish, so callers can run without a broker.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, eventType, entityID string, payload any) error {
	if p == nil {
		return nil
	}

	data, err := json.Marshal(Envelope{
		ID:        uuid.New().String(),
		EventType: eventType,
		EntityID:  entityID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entityID),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
