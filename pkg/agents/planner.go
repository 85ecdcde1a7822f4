// Package agents holds the five stage agents of a research mission. Each is
// a stateless adapter that builds a prompt, calls its collaborator, and
// returns text.
package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/researchpilot/pkg/llm"
)

// Planner splits a topic into search sub-queries.
type Planner struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewPlanner creates a Planner. A nil logger discards.
func NewPlanner(completer llm.Completer, l *slog.Logger) *Planner {
	return &Planner{completer: completer, logger: orNop(l)}
}

// GeneratePlan asks the model for sub-queries. Completion errors propagate;
// unparseable output yields FallbackPlan(topic).
func (p *Planner) GeneratePlan(ctx context.Context, topic string) ([]string, error) {
	p.logger.Debug("planning", "topic", topic)

	out, err := p.completer.Complete(ctx, plannerPrompt(topic), PlannerSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	plan, err := ParsePlan(out)
	if err != nil {
		p.logger.Debug("using fallback plan", "topic", topic, "error", err)
		return FallbackPlan(topic), nil
	}
	return plan, nil
}
