package mission

// State is a mission's position in the pipeline. States only move forward;
// Failed is reachable from any non-terminal state and absorbs.
type State string

const (
	StatePending            State = "pending"
	StatePlanning           State = "planning"
	StateSearchAnalysisLoop State = "search_analysis_loop"
	StateHypothesis         State = "hypothesis"
	StateSynthesis          State = "synthesis"
	StateComplete           State = "complete"
	StateFailed             State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateFailed
}
