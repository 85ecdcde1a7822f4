package testutils

import (
	"context"
	"sync"

	"github.com/papercomputeco/researchpilot/pkg/eventstream"
)

// MockPublisher records published mission events.
type MockPublisher struct {
	// Err, when set, fails every publish after recording the event.
	Err error

	mu     sync.Mutex
	events []*eventstream.MissionFinishedEvent
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishMission(_ context.Context, event *eventstream.MissionFinishedEvent) error {
	if event == nil {
		return eventstream.ErrNilMissionEvent
	}
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	return m.Err
}

// Events returns the recorded events.
func (m *MockPublisher) Events() []*eventstream.MissionFinishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*eventstream.MissionFinishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockPublisher) Close() error {
	return nil
}
