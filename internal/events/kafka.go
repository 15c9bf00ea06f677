package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/buildsense/energy-backend/internal/observability"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publishing runs inside design mutations, so an unreachable broker must fail fast.
const (
	publishTimeout     = 3 * time.Second
	writerMaxAttempts  = 2
	writerWriteTimeout = 2 * time.Second
	writerBatchTimeout = 10 * time.Millisecond
	writerDialTimeout  = 2 * time.Second
)

// KafkaPublisher writes events to a single topic, partitioned by building.
type KafkaPublisher struct {
	writer  messageWriter
	metrics *observability.Metrics
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string, metrics *observability.Metrics) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		MaxAttempts:            writerMaxAttempts,
		WriteTimeout:           writerWriteTimeout,
		BatchTimeout:           writerBatchTimeout,
		Transport:              &kafka.Transport{DialTimeout: writerDialTimeout},
	}, metrics)
}

func newKafkaPublisher(w messageWriter, metrics *observability.Metrics) *KafkaPublisher {
	return &KafkaPublisher{writer: w, metrics: metrics, timeout: publishTimeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.Key()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.count("error")
		return fmt.Errorf("failed to write message: %w", err)
	}
	p.count("success")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) count(outcome string) {
	if p.metrics != nil {
		p.metrics.EventsPublished.WithLabelValues(outcome).Inc()
	}
}

// Consumer tails the design event topic.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			Topic:       topic,
			GroupID:     groupID,
			MinBytes:    1,
			MaxBytes:    1e6,
			StartOffset: kafka.FirstOffset,
		}),
	}
}

// Next blocks until an event arrives or ctx is done.
func (c *Consumer) Next(ctx context.Context) (Event, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to fetch message: %w", err)
	}
	return Decode(msg)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Decode parses a message written by KafkaPublisher.
func Decode(msg kafka.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return Event{}, fmt.Errorf("decode event at offset %d: %w", msg.Offset, err)
	}
	return e, nil
}
