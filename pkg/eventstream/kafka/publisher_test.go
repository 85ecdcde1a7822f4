package kafka

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/researchpilot/pkg/eventstream"
	"github.com/papercomputeco/researchpilot/pkg/logger"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var _ = Describe("Publisher", func() {
	var (
		w *fakeWriter
		p *Publisher
	)

	BeforeEach(func() {
		w = &fakeWriter{}
		p = newPublisher(w, "missions", logger.Nop())
	})

	It("requires brokers", func() {
		_, err := NewPublisher(Config{}, logger.Nop())
		Expect(err).To(HaveOccurred())
	})

	It("builds a writer for the configured brokers", func() {
		pub, err := NewPublisher(Config{Brokers: []string{"localhost:9092"}}, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(pub.topic).To(Equal(DefaultTopic))
		Expect(pub.Close()).To(Succeed())
	})

	It("parses broker lists", func() {
		Expect(ParseBrokers(" a:9092, ,b:9092 ")).To(Equal([]string{"a:9092", "b:9092"}))
		Expect(ParseBrokers("")).To(BeEmpty())
	})

	It("rejects nil events", func() {
		Expect(p.PublishMission(context.Background(), nil)).To(MatchError(eventstream.ErrNilMissionEvent))
	})

	It("writes the event keyed by mission id", func() {
		event := &eventstream.MissionFinishedEvent{
			EventType: eventstream.EventTypeMissionFinished,
			Mission:   eventstream.MissionMeta{ID: "m-1", Topic: "fusion", Outcome: eventstream.OutcomeComplete},
		}
		Expect(p.PublishMission(context.Background(), event)).To(Succeed())

		Expect(w.messages).To(HaveLen(1))
		msg := w.messages[0]
		Expect(string(msg.Key)).To(Equal("m-1"))
		Expect(msg.Headers).To(ContainElement(kafkago.Header{Key: "event_type", Value: []byte("pilot.mission.finished")}))

		var decoded eventstream.MissionFinishedEvent
		Expect(json.Unmarshal(msg.Value, &decoded)).To(Succeed())
		Expect(decoded.Mission.Topic).To(Equal("fusion"))
	})

	It("wraps write failures", func() {
		w.err = errors.New("leader not available")
		err := p.PublishMission(context.Background(), &eventstream.MissionFinishedEvent{})
		Expect(err).To(MatchError(w.err))
		Expect(err.Error()).To(ContainSubstring("missions"))
	})

	It("closes the writer", func() {
		Expect(p.Close()).To(Succeed())
		Expect(w.closed).To(BeTrue())
	})
})
