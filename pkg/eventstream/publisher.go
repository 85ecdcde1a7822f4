package eventstream

import "context"

// Publisher publishes mission events to an event stream backend.
type Publisher interface {
	PublishMission(ctx context.Context, event *MissionFinishedEvent) error
	Close() error
}
