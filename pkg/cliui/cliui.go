// Package cliui provides terminal UI helpers (spinners, stage lines,
// markdown rendering) for pilot CLI commands.
package cliui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	agentWidth   = len("Hypothesis")
)

var spinnerFrames = trimFrames(spinner.Dot.Frames)

func trimFrames(frames []string) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ mark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	p := StartProgress(w, msg)
	err := fn()
	p.Stop(err)
	return err
}

// Progress is a single spinner line whose message can change while it runs.
type Progress struct {
	w     io.Writer
	start time.Time
	done  chan struct{}
	wg    sync.WaitGroup

	mu  sync.Mutex
	msg string
}

// StartProgress starts animating msg on w.
func StartProgress(w io.Writer, msg string) *Progress {
	p := &Progress{w: w, msg: msg, start: time.Now(), done: make(chan struct{})}
	p.wg.Add(1)
	go p.animate()
	return p
}

func (p *Progress) animate() {
	defer p.wg.Done()
	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		p.mu.Lock()
		fmt.Fprintf(p.w, "\r\033[K  %s %s",
			spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]),
			p.msg,
		)
		p.mu.Unlock()

		select {
		case <-p.done:
			return
		case <-ticker.C:
		}
	}
}

// Update replaces the message shown next to the spinner.
func (p *Progress) Update(msg string) {
	p.mu.Lock()
	p.msg = msg
	p.mu.Unlock()
}

// Stop ends the animation and prints the final line with a mark for err.
func (p *Progress) Stop(err error) {
	close(p.done)
	p.wg.Wait()

	fmt.Fprintf(p.w, "\r\033[K  %s %s %s\n",
		Mark(err),
		p.msg,
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(time.Since(p.start)))),
	)
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// StageLine renders one mission stage as "[Agent] message" with the agent
// name padded so consecutive lines align.
func StageLine(agent, message string) string {
	label := fmt.Sprintf("%-*s", agentWidth, agent)
	return KeyStyle.Render(label) + "  " + ValueStyle.Render(message)
}

// RenderMarkdown renders markdown content for terminal display using glamour.
// On failure the content is returned unchanged with the error.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}
	return rendered, nil
}
