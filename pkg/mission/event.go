package mission

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Agent names a pipeline stage in a StageUpdate.
type Agent string

const (
	AgentPlanner    Agent = "Planner"
	AgentSearch     Agent = "Search"
	AgentAnalysis   Agent = "Analysis"
	AgentHypothesis Agent = "Hypothesis"
	AgentSynthesis  Agent = "Synthesis"
)

// StatusActive is the only stage status emitted.
const StatusActive = "active"

// Wire discriminators.
const (
	TypeStage    = "stage"
	TypeComplete = "complete"
	TypeError    = "error"
)

// ErrUnknownEvent is returned by DecodeEvent for unrecognized payloads.
var ErrUnknownEvent = errors.New("unknown event type")

// Event is one element of a mission's progress stream. The set of
// implementations is closed: StageUpdate, Completion and Failure.
type Event interface {
	isEvent()
}

// StageUpdate reports that a stage has started.
type StageUpdate struct {
	Agent   Agent
	Status  string
	Message string
}

// Completion is the terminal event of a successful mission.
type Completion struct {
	Report string
}

// Failure is the terminal event of a failed mission.
type Failure struct {
	Message string
}

func (StageUpdate) isEvent() {}
func (Completion) isEvent()  {}
func (Failure) isEvent()     {}

// IsTerminal reports whether e ends a stream.
func IsTerminal(e Event) bool {
	switch e.(type) {
	case Completion, *Completion, Failure, *Failure:
		return true
	default:
		return false
	}
}

type wireEvent struct {
	Type    string `json:"type"`
	Agent   Agent  `json:"agent,omitempty"`
	Status  string `json:"status,omitempty"`
	Msg     string `json:"msg,omitempty"`
	Content string `json:"content,omitempty"`
}

func (e StageUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Agent  Agent  `json:"agent"`
		Status string `json:"status"`
		Msg    string `json:"msg"`
	}{TypeStage, e.Agent, e.Status, e.Message})
}

func (e Completion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}{TypeComplete, e.Report})
}

func (e Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Msg  string `json:"msg"`
	}{TypeError, e.Message})
}

// DecodeEvent parses one wire payload. A payload with no type but an agent
// is read as a stage update.
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}

	switch {
	case w.Type == TypeStage, w.Type == "" && w.Agent != "":
		return StageUpdate{Agent: w.Agent, Status: w.Status, Message: w.Msg}, nil
	case w.Type == TypeComplete:
		return Completion{Report: w.Content}, nil
	case w.Type == TypeError:
		return Failure{Message: w.Msg}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, w.Type)
	}
}
