package agents

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoPlan is returned by ParsePlan when the text holds no usable list.
var ErrNoPlan = errors.New("no plan list found")

// FallbackPlan is the plan used when the planner's output cannot be parsed.
func FallbackPlan(topic string) []string {
	return []string{
		topic + " overview",
		topic + " latest developments",
		topic + " future outlook",
	}
}

// ParsePlan extracts the list of sub-queries from planner output. It takes
// the text between the first '[' and the last ']' and decodes it as a JSON
// string array, or failing that as a list of single- or double-quoted string
// literals. The text is only ever tokenized, never evaluated. Blank entries
// are dropped; a list with no entries left is an error.
func ParsePlan(text string) ([]string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, ErrNoPlan
	}
	body := text[start : end+1]

	var items []string
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		items, err = parseLiteralList(body[1 : len(body)-1])
		if err != nil {
			return nil, err
		}
	}

	plan := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			plan = append(plan, it)
		}
	}
	if len(plan) == 0 {
		return nil, ErrNoPlan
	}
	return plan, nil
}

// parseLiteralList reads comma-separated quoted strings, allowing a trailing
// comma.
func parseLiteralList(s string) ([]string, error) {
	var (
		out []string
		i   int
	)
	skipSpace := func() {
		for i < len(s) && strings.ContainsRune(" \t\r\n", rune(s[i])) {
			i++
		}
	}

	for {
		skipSpace()
		if i == len(s) {
			return out, nil
		}

		lit, n, err := readQuoted(s[i:])
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
		i += n

		skipSpace()
		if i == len(s) {
			return out, nil
		}
		if s[i] != ',' {
			return nil, fmt.Errorf("%w: expected ',' at offset %d", ErrNoPlan, i)
		}
		i++
	}
}

// readQuoted decodes one quoted literal at the start of s and returns it with
// the number of bytes consumed.
func readQuoted(s string) (string, int, error) {
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return "", 0, fmt.Errorf("%w: expected a quoted string", ErrNoPlan)
	}
	quote := s[0]

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		case c == '\n':
			return "", 0, fmt.Errorf("%w: unterminated string", ErrNoPlan)
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated string", ErrNoPlan)
}
