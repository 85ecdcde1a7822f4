package agents

import (
	"log/slog"

	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/logger"
	"github.com/papercomputeco/researchpilot/pkg/search"
)

// Suite is one instance of every agent sharing a completer.
type Suite struct {
	Planner    *Planner
	Search     *Search
	Analysis   *Analysis
	Hypothesis *Hypothesis
	Synthesis  *Synthesis
}

// NewSuite builds all five agents. A nil logger discards.
func NewSuite(completer llm.Completer, searcher search.Searcher, l *slog.Logger) *Suite {
	l = orNop(l)
	return &Suite{
		Planner:    NewPlanner(completer, l),
		Search:     NewSearch(searcher, l),
		Analysis:   NewAnalysis(completer),
		Hypothesis: NewHypothesis(completer),
		Synthesis:  NewSynthesis(completer, l),
	}
}

func orNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logger.Nop()
	}
	return l
}
