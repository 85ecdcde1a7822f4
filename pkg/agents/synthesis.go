package agents

import (
	"context"
	"log/slog"
	"strings"

	"github.com/papercomputeco/researchpilot/pkg/llm"
)

// SynthesisErrorPrefix starts the report returned when synthesis fails.
const SynthesisErrorPrefix = "Error during synthesis: "

// Synthesis merges analyses into the final report.
type Synthesis struct {
	completer llm.Completer
	logger    *slog.Logger
}

func NewSynthesis(completer llm.Completer, l *slog.Logger) *Synthesis {
	return &Synthesis{completer: completer, logger: orNop(l)}
}

// Synthesize joins analyses with blank lines and asks for one report. A
// failed completion does not fail the mission: the error text becomes the
// report and the returned error is nil.
func (s *Synthesis) Synthesize(ctx context.Context, topic string, analyses []string) (string, error) {
	combined := strings.Join(analyses, "\n\n")

	out, err := s.completer.Complete(ctx, synthesisPrompt(topic, combined), SynthesisSystemPrompt)
	if err != nil {
		s.logger.Warn("synthesis failed, returning error report", "topic", topic, "error", err)
		return SynthesisErrorPrefix + err.Error(), nil
	}
	return out, nil
}
