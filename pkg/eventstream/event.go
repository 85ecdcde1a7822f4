// Package eventstream carries mission lifecycle events to external
// consumers. Publication is best effort: a failed publish is logged by the
// caller and never changes a mission's outcome.
package eventstream

import "time"

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeMissionFinished is emitted once a mission reaches a terminal state.
	EventTypeMissionFinished = "pilot.mission.finished"

	OutcomeComplete = "complete"
	OutcomeFailed   = "failed"

	// OutcomeAbandoned means the reader stopped before a terminal event.
	OutcomeAbandoned = "abandoned"
)

// MissionFinishedEvent is a transport-neutral payload for a finished mission.
type MissionFinishedEvent struct {
	SchemaVersion int          `json:"schema_version"`
	EventType     string       `json:"event_type"`
	EventID       string       `json:"event_id"`
	EmittedAt     time.Time    `json:"emitted_at"`
	Source        EventSource  `json:"source"`
	Mission       MissionMeta  `json:"mission"`
	Timing        MissionTimes `json:"timing"`
}

// EventSource identifies the emitting process.
type EventSource struct {
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

// MissionMeta describes what the mission did.
type MissionMeta struct {
	ID      string   `json:"id"`
	Topic   string   `json:"topic"`
	Plan    []string `json:"plan,omitempty"`
	Outcome string   `json:"outcome"`
	Error   string   `json:"error,omitempty"`

	// LastStage is the last pipeline state entered: the failing stage for
	// failures, "synthesis" for completed missions.
	LastStage   string `json:"last_stage"`
	ReportChars int    `json:"report_chars"`
}

// MissionTimes captures mission lifecycle timing.
type MissionTimes struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMs  int64     `json:"duration_ms"`
}
