package agents

import (
	"context"
	"fmt"

	"github.com/papercomputeco/researchpilot/pkg/llm"
)

// Hypothesis proposes hypotheses from context recalled out of memory.
type Hypothesis struct {
	completer llm.Completer
}

func NewHypothesis(completer llm.Completer) *Hypothesis {
	return &Hypothesis{completer: completer}
}

func (h *Hypothesis) GenerateHypotheses(ctx context.Context, topic, recalled string) (string, error) {
	out, err := h.completer.Complete(ctx, hypothesisPrompt(topic, recalled), HypothesisSystemPrompt)
	if err != nil {
		return "", fmt.Errorf("hypothesis: %w", err)
	}
	return out, nil
}
