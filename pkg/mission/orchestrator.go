// Package mission runs research missions.
//
// An Orchestrator drives one mission per Run through a fixed pipeline:
// planning, a strictly sequential search and analysis loop over the plan,
// hypothesis generation from recalled memory, and synthesis. Progress is
// exposed as an iter.Seq[Event] with pull semantics: the pipeline advances
// only while the caller keeps ranging, and stops at the next emission point
// once the caller breaks out.
//
// Every stream ends with exactly one terminal event, a Completion or a
// Failure, unless the reader stops early. Any stage error or panic becomes
// the Failure; nothing is retried.
package mission

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/papercomputeco/researchpilot/pkg/agents"
	"github.com/papercomputeco/researchpilot/pkg/eventstream"
	"github.com/papercomputeco/researchpilot/pkg/logger"
	"github.com/papercomputeco/researchpilot/pkg/utils"
)

const (
	// DefaultPace is the pause after planning.
	DefaultPace = 500 * time.Millisecond

	// DefaultRecallK is how many facts the hypothesis stage recalls.
	DefaultRecallK = 3

	publishTimeout = 10 * time.Second
	tracerName     = "github.com/papercomputeco/researchpilot/pkg/mission"
)

// Stage messages.
const (
	MsgPlanning   = "Strategic planning initiated..."
	MsgSearching  = "Searching: "
	MsgAnalyzing  = "Extracting insights..."
	MsgRecalling  = "Querying vector memory..."
	MsgSynthesize = "Polishing final report..."
)

// ErrInvalidConfig is returned by New when a required dependency is missing.
var ErrInvalidConfig = errors.New("invalid mission config")

// errStopped signals that the reader stopped pulling events.
var errStopped = errors.New("event reader stopped")

type Planner interface {
	GeneratePlan(ctx context.Context, topic string) ([]string, error)
}

type Searcher interface {
	ExecuteSearch(ctx context.Context, query string) (string, error)
}

type Analyzer interface {
	AnalyzeResults(ctx context.Context, query, findings string) (string, error)
}

type Hypothesizer interface {
	GenerateHypotheses(ctx context.Context, topic, recalled string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, topic string, analyses []string) (string, error)
}

// Memory is the semantic store missions write findings to and recall from.
type Memory interface {
	AddFact(ctx context.Context, text string) error
	RetrieveRelevant(ctx context.Context, query string, k int) ([]string, error)
}

// Config wires an Orchestrator.
type Config struct {
	Planner      Planner
	Searcher     Searcher
	Analyzer     Analyzer
	Hypothesizer Hypothesizer
	Synthesizer  Synthesizer
	Memory       Memory

	// Publisher receives a MissionFinishedEvent per run. Optional.
	Publisher eventstream.Publisher

	Logger *slog.Logger

	// Pace is the pause after planning. Zero means DefaultPace; negative
	// disables the pause.
	Pace time.Duration

	// RecallK defaults to DefaultRecallK.
	RecallK int

	// Tracer defaults to the global otel provider's tracer.
	Tracer trace.Tracer
}

// WithAgents fills the stage dependencies from an agents.Suite. Agents the
// suite lacks are left for New to report.
func (c Config) WithAgents(s *agents.Suite) Config {
	if s == nil {
		return c
	}
	c.Planner = s.Planner
	c.Searcher = s.Search
	c.Analyzer = s.Analysis
	c.Hypothesizer = s.Hypothesis
	c.Synthesizer = s.Synthesis
	return c
}

// Orchestrator runs missions. It holds no per-mission state, so one value
// may run any number of missions concurrently; they share its Memory.
type Orchestrator struct {
	planner      Planner
	searcher     Searcher
	analyzer     Analyzer
	hypothesizer Hypothesizer
	synthesizer  Synthesizer
	memory       Memory
	publisher    eventstream.Publisher

	logger  *slog.Logger
	tracer  trace.Tracer
	pace    time.Duration
	recallK int

	publishing sync.WaitGroup
}

// New validates c and builds an Orchestrator.
func New(c Config) (*Orchestrator, error) {
	var missing []string
	for name, dep := range map[string]any{
		"planner":      c.Planner,
		"searcher":     c.Searcher,
		"analyzer":     c.Analyzer,
		"hypothesizer": c.Hypothesizer,
		"synthesizer":  c.Synthesizer,
		"memory":       c.Memory,
	} {
		if isNil(dep) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	o := &Orchestrator{
		planner:      c.Planner,
		searcher:     c.Searcher,
		analyzer:     c.Analyzer,
		hypothesizer: c.Hypothesizer,
		synthesizer:  c.Synthesizer,
		memory:       c.Memory,
		publisher:    c.Publisher,
		logger:       c.Logger,
		tracer:       c.Tracer,
		pace:         c.Pace,
		recallK:      c.RecallK,
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.pace == 0 {
		o.pace = DefaultPace
	}
	if o.recallK <= 0 {
		o.recallK = DefaultRecallK
	}
	return o, nil
}

// isNil also catches a nil pointer stored in an interface, such as the
// agents of a zero agents.Suite.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Run starts a mission for topic and returns its event stream. The stream
// is single-use: ranging over it a second time yields nothing.
func (o *Orchestrator) Run(ctx context.Context, topic string) iter.Seq[Event] {
	_, events := o.Start(ctx, topic)
	return events
}

// Start is Run that also returns the Mission the stream fills in.
func (o *Orchestrator) Start(ctx context.Context, topic string) (*Mission, iter.Seq[Event]) {
	m := newMission(topic)
	var used atomic.Bool

	return m, func(yield func(Event) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}
		o.run(ctx, m, yield)
	}
}

// Wait blocks until in-flight event publications finish.
func (o *Orchestrator) Wait() {
	o.publishing.Wait()
}

func (o *Orchestrator) run(ctx context.Context, m *Mission, yield func(Event) bool) {
	log := o.logger.With("mission_id", m.ID)
	m.StartedAt = time.Now()

	ctx, span := o.tracer.Start(ctx, "mission.run", trace.WithAttributes(
		attribute.String("mission.id", m.ID),
		attribute.String("mission.topic", m.Topic),
	))
	defer span.End()

	log.Info("mission started", "topic", m.Topic)
	err := o.execute(ctx, m, yield)
	m.FinishedAt = time.Now()
	lastStage := m.State

	var final Event
	switch {
	case errors.Is(err, errStopped):
		log.Info("mission abandoned by reader", "state", lastStage)
		span.SetStatus(codes.Error, "abandoned")
		o.publish(ctx, m, eventstream.OutcomeAbandoned, lastStage)

	case err != nil:
		m.State = StateFailed
		m.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("mission failed", "state", lastStage, "error", err)
		o.publish(ctx, m, eventstream.OutcomeFailed, lastStage)
		final = Failure{Message: err.Error()}

	default:
		m.State = StateComplete
		log.Info("mission complete",
			"sub_queries", len(m.Plan),
			"duration", m.FinishedAt.Sub(m.StartedAt),
		)
		o.publish(ctx, m, eventstream.OutcomeComplete, lastStage)
		final = Completion{Report: m.Report}
	}

	// An abandoned mission stays in the state it stopped in and emits
	// nothing more.
	if m.State.Terminal() {
		yield(final)
	}
}

func (o *Orchestrator) execute(ctx context.Context, m *Mission, yield func(Event) bool) error {
	emit := func(agent Agent, msg string) error {
		if !yield(StageUpdate{Agent: agent, Status: StatusActive, Message: msg}) {
			return errStopped
		}
		return nil
	}

	m.State = StatePlanning
	if err := emit(AgentPlanner, MsgPlanning); err != nil {
		return err
	}
	plan, err := stage(ctx, o, "plan", func(ctx context.Context) ([]string, error) {
		return o.planner.GeneratePlan(ctx, m.Topic)
	})
	if err != nil {
		return err
	}
	m.Plan = plan
	if err := o.pause(ctx); err != nil {
		return err
	}

	m.State = StateSearchAnalysisLoop
	for _, query := range m.Plan {
		if err := emit(AgentSearch, MsgSearching+query); err != nil {
			return err
		}
		findings, err := stage(ctx, o, "search", func(ctx context.Context) (string, error) {
			findings, err := o.searcher.ExecuteSearch(ctx, query)
			if err != nil {
				return "", err
			}
			return findings, o.memory.AddFact(ctx, findings)
		})
		if err != nil {
			return err
		}

		if err := emit(AgentAnalysis, MsgAnalyzing); err != nil {
			return err
		}
		analysis, err := stage(ctx, o, "analysis", func(ctx context.Context) (string, error) {
			return o.analyzer.AnalyzeResults(ctx, query, findings)
		})
		if err != nil {
			return err
		}
		m.Results = append(m.Results, analysis)
	}

	m.State = StateHypothesis
	if err := emit(AgentHypothesis, MsgRecalling); err != nil {
		return err
	}
	hypotheses, err := stage(ctx, o, "hypothesis", func(ctx context.Context) (string, error) {
		facts, err := o.memory.RetrieveRelevant(ctx, m.Topic, o.recallK)
		if err != nil {
			return "", err
		}
		return o.hypothesizer.GenerateHypotheses(ctx, m.Topic, strings.Join(facts, "\n"))
	})
	if err != nil {
		return err
	}
	m.Hypotheses = hypotheses

	m.State = StateSynthesis
	if err := emit(AgentSynthesis, MsgSynthesize); err != nil {
		return err
	}
	analyses := make([]string, 0, len(m.Results)+1)
	analyses = append(analyses, m.Results...)
	analyses = append(analyses, m.Hypotheses)
	report, err := stage(ctx, o, "synthesis", func(ctx context.Context) (string, error) {
		return o.synthesizer.Synthesize(ctx, m.Topic, analyses)
	})
	if err != nil {
		return err
	}
	m.Report = report
	return nil
}

// stage runs fn in its own span and turns a panic into an error. Panics
// raised by the reader's loop body never pass through here.
func stage[T any](ctx context.Context, o *Orchestrator, name string, fn func(context.Context) (T, error)) (out T, err error) {
	ctx, span := o.tracer.Start(ctx, "mission."+name)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s stage panicked: %v", name, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	return fn(ctx)
}

func (o *Orchestrator) pause(ctx context.Context) error {
	if o.pace < 0 {
		return nil
	}
	t := time.NewTimer(o.pace)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// publish sends the finished event in the background; a failure is logged
// and never reaches the stream.
func (o *Orchestrator) publish(ctx context.Context, m *Mission, outcome string, lastStage State) {
	if o.publisher == nil {
		return
	}

	event := &eventstream.MissionFinishedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeMissionFinished,
		EventID:       "evt_" + m.ID,
		EmittedAt:     time.Now().UTC(),
		Source:        eventstream.EventSource{Service: "pilot", Version: utils.Version},
		Mission: eventstream.MissionMeta{
			ID:          m.ID,
			Topic:       m.Topic,
			Plan:        append([]string(nil), m.Plan...),
			Outcome:     outcome,
			LastStage:   string(lastStage),
			ReportChars: len(m.Report),
		},
		Timing: eventstream.MissionTimes{
			StartedAt:   m.StartedAt.UTC(),
			CompletedAt: m.FinishedAt.UTC(),
			DurationMs:  m.FinishedAt.Sub(m.StartedAt).Milliseconds(),
		},
	}
	if m.Err != nil {
		event.Mission.Error = m.Err.Error()
	}

	o.publishing.Add(1)
	go func() {
		defer o.publishing.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := o.publisher.PublishMission(ctx, event); err != nil {
			o.logger.Warn("publishing mission event", "mission_id", m.ID, "error", err)
		}
	}()
}
