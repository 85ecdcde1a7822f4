// Package llm defines the completion contract every stage agent talks to.
//
// A Completer is a stateless bridge to a language-model completion endpoint:
// one prompt and one system instruction in, the full completion text out.
// There is no retry and no token streaming; callers bound the call with the
// context they pass in.
package llm

import "context"

// Completer sends a single prompt to a completion service.
type Completer interface {
	// Complete returns the full completion for prompt, using systemMessage
	// as the system-role instruction.
	Complete(ctx context.Context, prompt, systemMessage string) (string, error)
}

// CompleterFunc adapts an ordinary function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt, systemMessage string) (string, error)

// Complete calls f(ctx, prompt, systemMessage).
func (f CompleterFunc) Complete(ctx context.Context, prompt, systemMessage string) (string, error) {
	return f(ctx, prompt, systemMessage)
}

// DefaultSystemMessage is used when a caller passes an empty system message.
const DefaultSystemMessage = "You are ResearchPilot AI."
