package engine_test

import (
	"context"
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/config"
	"github.com/papercomputeco/researchpilot/pkg/engine"
	"github.com/papercomputeco/researchpilot/pkg/llm"
	"github.com/papercomputeco/researchpilot/pkg/logger"
)

var _ = Describe("New", func() {
	var (
		ctx context.Context
		cfg *config.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = config.NewDefaultConfig()
		// ollama needs no credential.
		cfg.LLM.Provider = "ollama"
	})

	It("builds an orchestrator over the default stack", func() {
		e, err := engine.New(ctx, cfg, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Orchestrator).NotTo(BeNil())
		Expect(e.Memory).NotTo(BeNil())
		Expect(e.Memory.Len()).To(Equal(0))
		Expect(e.Close(ctx)).To(Succeed())
	})

	It("clears memory on close", func() {
		e, err := engine.New(ctx, cfg, logger.Nop())
		Expect(err).NotTo(HaveOccurred())

		Expect(e.Memory.AddFact(ctx, "fact")).To(Succeed())
		Expect(e.Close(ctx)).To(Succeed())
		Expect(e.Memory.Len()).To(Equal(0))
	})

	It("fails without a credential for a hosted provider", func() {
		orig, had := os.LookupEnv("GROQ_API_KEY")
		Expect(os.Unsetenv("GROQ_API_KEY")).To(Succeed())
		DeferCleanup(func() {
			if had {
				_ = os.Setenv("GROQ_API_KEY", orig)
			}
		})
		cfg.LLM.Provider = "groq"

		_, err := engine.New(ctx, cfg, logger.Nop())
		Expect(errors.Is(err, llm.ErrMissingCredential)).To(BeTrue())
	})

	It("rejects an invalid pace", func() {
		cfg.Mission.Pace = "soon"
		_, err := engine.New(ctx, cfg, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("mission.pace")))
	})

	It("rejects unknown providers", func() {
		cfg.Search.Provider = "altavista"
		_, err := engine.New(ctx, cfg, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("unsupported search provider")))

		cfg = config.NewDefaultConfig()
		cfg.LLM.Provider = "ollama"
		cfg.Events.Provider = "carrier-pigeon"
		_, err = engine.New(ctx, cfg, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("unsupported events provider")))
	})

	It("requires brokers for kafka", func() {
		cfg.Events.Provider = engine.EventsKafka
		_, err := engine.New(ctx, cfg, logger.Nop())
		Expect(err).To(MatchError(ContainSubstring("at least one broker")))
	})
})
