// Package events publishes task lifecycle events to Kafka. The producer is
// fire-and-forget: a broker failure is logged and never fails the request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Event actions.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// Event is the payload written to the topic.
type Event struct {
	Action string    `json:"action"`
	TaskID string    `json:"task_id"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Producer writes task events to a Kafka topic. A nil Producer is valid and
// drops every event, which is how the service runs without a broker.
type Producer struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

func NewProducer(broker, topic string, log *logrus.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		log: log,
	}
}

// Emit publishes one event. Errors are logged, not returned.
func (p *Producer) Emit(ctx context.Context, action, taskID, userID string) {
	if p == nil {
		return
	}
	value, err := json.Marshal(Event{Action: action, TaskID: taskID, UserID: userID, At: time.Now()})
	if err != nil {
		p.log.Error("failed to encode task event: ", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(taskID),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to write kafka message: ", err)
	}
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
