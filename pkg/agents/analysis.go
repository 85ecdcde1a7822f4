package agents

import (
	"context"
	"fmt"

	"github.com/papercomputeco/researchpilot/pkg/llm"
)

// Analysis turns raw findings into analysis text.
type Analysis struct {
	completer llm.Completer
}

func NewAnalysis(completer llm.Completer) *Analysis {
	return &Analysis{completer: completer}
}

func (a *Analysis) AnalyzeResults(ctx context.Context, query, findings string) (string, error) {
	out, err := a.completer.Complete(ctx, analysisPrompt(query, findings), AnalysisSystemPrompt)
	if err != nil {
		return "", fmt.Errorf("analysis: %w", err)
	}
	return out, nil
}
