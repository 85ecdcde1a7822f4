package mission

import (
	"time"

	"github.com/google/uuid"
)

// Mission is the working state of one run. It belongs to the goroutine
// ranging over the run's events; read it only after the loop ends.
type Mission struct {
	ID    string
	Topic string

	Plan []string

	// Results holds one analysis per sub-query, in plan order.
	Results    []string
	Hypotheses string
	Report     string

	State State

	// Err is set when State is StateFailed.
	Err error

	StartedAt  time.Time
	FinishedAt time.Time
}

func newMission(topic string) *Mission {
	return &Mission{
		ID:    uuid.NewString(),
		Topic: topic,
		State: StatePending,
	}
}
