package testutils

import (
	"context"
	"sync"
)

// CompletionCall records one Complete invocation.
type CompletionCall struct {
	Prompt string
	System string
}

// MockCompleter answers completions by system message, so one mock can stand
// in for every agent at once.
type MockCompleter struct {
	// Responses maps a system message to its reply.
	Responses map[string]string

	// Errors maps a system message to a failure.
	Errors map[string]error

	// Func, when set, handles every call not matched by Errors.
	Func func(prompt, system string) (string, error)

	// Default is returned when nothing else matches.
	Default string

	mu    sync.Mutex
	calls []CompletionCall
}

func NewMockCompleter() *MockCompleter {
	return &MockCompleter{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

func (m *MockCompleter) Complete(_ context.Context, prompt, system string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CompletionCall{Prompt: prompt, System: system})
	m.mu.Unlock()

	if err, ok := m.Errors[system]; ok {
		return "", err
	}
	if m.Func != nil {
		return m.Func(prompt, system)
	}
	if resp, ok := m.Responses[system]; ok {
		return resp, nil
	}
	return m.Default, nil
}

// Calls returns the recorded calls in order.
func (m *MockCompleter) Calls() []CompletionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the prompts sent with the given system message.
func (m *MockCompleter) CallsFor(system string) []string {
	var out []string
	for _, c := range m.Calls() {
		if c.System == system {
			out = append(out, c.Prompt)
		}
	}
	return out
}
