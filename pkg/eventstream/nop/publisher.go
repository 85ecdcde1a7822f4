package nop

import (
	"context"

	"github.com/papercomputeco/researchpilot/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishMission validates input and otherwise does nothing.
func (p *Publisher) PublishMission(_ context.Context, event *eventstream.MissionFinishedEvent) error {
	if event == nil {
		return eventstream.ErrNilMissionEvent
	}
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
