// Package kafka publishes mission events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/researchpilot/pkg/eventstream"
)

// DefaultTopic is used when Config.Topic is empty.
const DefaultTopic = "pilot.missions"

// Config holds configuration for the Kafka publisher.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per event, keyed by mission ID so a
// mission's events land on one partition.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// ParseBrokers splits a comma-separated broker list.
func ParseBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// NewPublisher creates a Kafka-backed publisher.
func NewPublisher(c Config, logger *slog.Logger) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	topic := c.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	timeout := c.WriteTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(c.Brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		WriteTimeout:           timeout,
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("kafka mission publisher initialized", "brokers", c.Brokers, "topic", topic)
	return newPublisher(w, topic, logger), nil
}

func newPublisher(w messageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{writer: w, topic: topic, logger: logger}
}

// PublishMission serializes and writes event.
func (p *Publisher) PublishMission(ctx context.Context, event *eventstream.MissionFinishedEvent) error {
	if event == nil {
		return eventstream.ErrNilMissionEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling mission event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.Mission.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("published mission event", "mission_id", event.Mission.ID, "topic", p.topic)
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ eventstream.Publisher = (*Publisher)(nil)
