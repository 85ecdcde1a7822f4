// Package engine assembles a mission orchestrator and its collaborators from
// a resolved configuration. Commands that run missions in-process build one
// Engine and close it on exit.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/papercomputeco/researchpilot/pkg/agents"
	"github.com/papercomputeco/researchpilot/pkg/config"
	embeddingutils "github.com/papercomputeco/researchpilot/pkg/embeddings/utils"
	"github.com/papercomputeco/researchpilot/pkg/eventstream"
	"github.com/papercomputeco/researchpilot/pkg/eventstream/kafka"
	"github.com/papercomputeco/researchpilot/pkg/eventstream/nop"
	llmutils "github.com/papercomputeco/researchpilot/pkg/llm/utils"
	"github.com/papercomputeco/researchpilot/pkg/memory"
	"github.com/papercomputeco/researchpilot/pkg/mission"
	searchutils "github.com/papercomputeco/researchpilot/pkg/search/utils"
	vectorutils "github.com/papercomputeco/researchpilot/pkg/vector/utils"
)

const (
	EventsNop   = "nop"
	EventsKafka = "kafka"
)

// Engine owns an orchestrator and everything it was built from.
type Engine struct {
	Orchestrator *mission.Orchestrator
	Memory       *memory.Store

	closers []io.Closer
	logger  *slog.Logger
}

// New builds every collaborator named by cfg. On error, anything already
// opened is closed before returning.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *Engine, err error) {
	e := &Engine{logger: logger}
	defer func() {
		if err != nil {
			_ = e.closeAll()
		}
	}()

	pace, err := parseDuration("mission.pace", cfg.Mission.Pace)
	if err != nil {
		return nil, err
	}
	ttl, err := parseDuration("search_cache.ttl", cfg.SearchCache.TTL)
	if err != nil {
		return nil, err
	}

	completer, err := llmutils.NewCompleter(&llmutils.NewCompleterOpts{
		ProviderType: cfg.LLM.Provider,
		Model:        cfg.LLM.Model,
		BaseURL:      cfg.LLM.BaseURL,
		APIKey:       cfg.LLM.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating completer: %w", err)
	}

	searcher, err := searchutils.NewSearcher(&searchutils.NewSearcherOpts{
		ProviderType: cfg.Search.Provider,
		APIKey:       cfg.Search.APIKey,
		Depth:        cfg.Search.Depth,
		MaxResults:   cfg.Search.MaxResults,
		Completer:    completer,
		CacheTarget:  cfg.SearchCache.Target,
		CacheTTL:     ttl,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating searcher: %w", err)
	}
	if c, ok := searcher.(io.Closer); ok {
		e.closers = append(e.closers, c)
	}

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Dimensions:   cfg.Embedding.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	e.closers = append(e.closers, embedder)

	driver, err := vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: cfg.VectorStore.Provider,
		TargetURL:    cfg.VectorStore.Target,
		APIKey:       cfg.VectorStore.APIKey,
		Collection:   cfg.VectorStore.Collection,
		Dimensions:   cfg.Embedding.Dimensions,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}
	e.closers = append(e.closers, driver)

	e.Memory, err = memory.NewStore(memory.Config{
		Embedder: embedder,
		Index:    driver,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating memory: %w", err)
	}

	publisher, err := newPublisher(cfg.Events, logger)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, publisher)

	mc := mission.Config{
		Memory:    e.Memory,
		Publisher: publisher,
		Logger:    logger,
		Pace:      pace,
		RecallK:   cfg.Mission.RecallK,
	}
	e.Orchestrator, err = mission.New(mc.WithAgents(agents.NewSuite(completer, searcher, logger)))
	if err != nil {
		return nil, err
	}

	logger.Debug("engine ready",
		"llm", cfg.LLM.Provider,
		"search", cfg.Search.Provider,
		"embedding", cfg.Embedding.Provider,
		"vector_store", cfg.VectorStore.Provider,
		"events", cfg.Events.Provider,
	)
	return e, nil
}

// Close waits for pending event publications, removes this process's facts
// from the vector index and releases every collaborator.
func (e *Engine) Close(ctx context.Context) error {
	var errs []error
	if e.Orchestrator != nil {
		e.Orchestrator.Wait()
	}
	if e.Memory != nil {
		if err := e.Memory.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, e.closeAll())
	return errors.Join(errs...)
}

func (e *Engine) closeAll() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

func newPublisher(c config.EventsConfig, logger *slog.Logger) (eventstream.Publisher, error) {
	switch c.Provider {
	case "", EventsNop:
		return nop.NewPublisher(), nil
	case EventsKafka:
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: kafka.ParseBrokers(c.Brokers),
			Topic:   c.Topic,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("creating kafka publisher: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported events provider: %s", c.Provider)
	}
}

// parseDuration treats an empty value as zero, which downstream means the
// component default.
func parseDuration(key, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
