package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/researchpilot/pkg/config"
)

var _ = Describe("Configer config", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	writeConfig := func(data string) {
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("LoadConfig", func() {
		It("returns default config when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.NewDefaultConfig()))
		})

		It("loads a valid config file and fills the rest from defaults", func() {
			writeConfig(`version = 0

[llm]
provider = "anthropic"
model = "claude-sonnet-4-5"

[vector_store]
provider = "qdrant"
target = "localhost:6334"

[mission]
pace = "2s"
`)
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.LLM.Provider).To(Equal("anthropic"))
			Expect(cfg.LLM.Model).To(Equal("claude-sonnet-4-5"))
			Expect(cfg.VectorStore.Provider).To(Equal("qdrant"))
			Expect(cfg.VectorStore.Target).To(Equal("localhost:6334"))
			Expect(cfg.VectorStore.Collection).To(Equal("pilot_facts"))
			Expect(cfg.Mission.Pace).To(Equal("2s"))
			Expect(cfg.Mission.RecallK).To(Equal(3))
			Expect(cfg.Search.Provider).To(Equal("duckduckgo"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(256)))
		})

		It("returns error for malformed TOML", func() {
			writeConfig("[llm\nprovider = ")
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.LoadConfig()
			Expect(err).To(MatchError(ContainSubstring("parsing config TOML")))
		})

		It("returns error for unsupported config version", func() {
			writeConfig("version = 7\n")
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.LoadConfig()
			Expect(err).To(MatchError(ContainSubstring("unsupported config version 7")))
		})
	})

	Describe("SaveConfig", func() {
		It("persists config to disk", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg := config.NewDefaultConfig()
			cfg.Events.Provider = "kafka"
			cfg.Events.Brokers = "localhost:9092"
			Expect(c.SaveConfig(cfg)).To(Succeed())

			data, err := os.ReadFile(filepath.Join(tmpDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("[events]"))
			Expect(string(data)).To(ContainSubstring(`brokers = "localhost:9092"`))
		})

		It("returns error for nil config", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SaveConfig(nil)).To(MatchError("cannot save nil config"))
		})

		It("round-trips every field", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg := &config.Config{
				LLM:         config.LLMConfig{Provider: "openai", Model: "gpt-4o", BaseURL: "https://llm.local", APIKey: "sk-1"},
				Search:      config.SearchConfig{Provider: "tavily", APIKey: "tv-1", Depth: "advanced", MaxResults: 8},
				SearchCache: config.SearchCacheConfig{Target: "redis://localhost:6379/0", TTL: "30m"},
				Embedding:   config.EmbeddingConfig{Provider: "ollama", Target: "http://localhost:11434", Model: "nomic-embed-text", Dimensions: 768},
				VectorStore: config.VectorStoreConfig{Provider: "pgvector", Target: "postgres://localhost/pilot", APIKey: "k", Collection: "facts"},
				Mission:     config.MissionConfig{Pace: "1s", RecallK: 5},
				API:         config.APIConfig{Listen: ":9000"},
				Client:      config.ClientConfig{APITarget: "http://pilot:9000"},
				Events:      config.EventsConfig{Provider: "kafka", Brokers: "a:9092,b:9092", Topic: "missions"},
			}
			Expect(c.SaveConfig(cfg)).To(Succeed())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})
	})

	Describe("SetConfigValue", func() {
		It("sets a string config key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetConfigValue("search.provider", "brave")).To(Succeed())

			val, err := c.GetConfigValue("search.provider")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal("brave"))
		})

		It("sets numeric and duration keys", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetConfigValue("mission.recall_k", "6")).To(Succeed())
			Expect(c.SetConfigValue("search_cache.ttl", "15m")).To(Succeed())
			Expect(c.SetConfigValue("embedding.dimensions", "512")).To(Succeed())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Mission.RecallK).To(Equal(6))
			Expect(cfg.SearchCache.TTL).To(Equal("15m"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(512)))
		})

		It("returns error for unknown key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SetConfigValue("proxy.upstream", "x")).To(MatchError(ContainSubstring("unknown config key")))
		})

		It("rejects invalid values", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetConfigValue("mission.recall_k", "many")).NotTo(Succeed())
			Expect(c.SetConfigValue("mission.recall_k", "-1")).NotTo(Succeed())
			Expect(c.SetConfigValue("mission.pace", "soon")).NotTo(Succeed())
			Expect(c.SetConfigValue("embedding.dimensions", "wide")).NotTo(Succeed())
		})

		It("preserves existing values when setting a new key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetConfigValue("llm.provider", "ollama")).To(Succeed())
			Expect(c.SetConfigValue("api.listen", ":7000")).To(Succeed())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.LLM.Provider).To(Equal("ollama"))
			Expect(cfg.API.Listen).To(Equal(":7000"))
		})
	})

	Describe("GetConfigValue", func() {
		It("returns default value when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("client.api_target")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal("http://localhost:8081"))
		})

		It("returns empty string for key with no default", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("llm.api_key")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(BeEmpty())
		})

		It("returns error for unknown key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.GetConfigValue("nope")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("config keys", func() {
	It("lists every key in section order", func() {
		keys := config.ValidConfigKeys()
		Expect(keys[0]).To(Equal("llm.provider"))
		Expect(keys[len(keys)-1]).To(Equal("events.topic"))
		Expect(keys).To(ContainElements("search_cache.target", "vector_store.collection", "mission.pace"))
		for _, k := range keys {
			Expect(config.IsValidConfigKey(k)).To(BeTrue(), k)
		}
	})

	It("returns a copy", func() {
		keys := config.ValidConfigKeys()
		keys[0] = "mutated"
		Expect(config.ValidConfigKeys()[0]).To(Equal("llm.provider"))
	})

	It("rejects keys from other sections", func() {
		Expect(config.IsValidConfigKey("storage.sqlite_path")).To(BeFalse())
		Expect(config.IsValidConfigKey("llm")).To(BeFalse())
	})

	It("marks credentials as secret", func() {
		Expect(config.IsSecretKey("llm.api_key")).To(BeTrue())
		Expect(config.IsSecretKey("search.api_key")).To(BeTrue())
		Expect(config.IsSecretKey("llm.provider")).To(BeFalse())
	})
})

var _ = Describe("PresetConfig", func() {
	It("switches the completion provider", func() {
		cfg, err := config.PresetConfig("anthropic")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.Provider).To(Equal("anthropic"))
		Expect(cfg.Search.Provider).To(Equal("duckduckgo"))
	})

	It("points ollama at local embeddings too", func() {
		cfg, err := config.PresetConfig("ollama")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.BaseURL).To(Equal("http://localhost:11434"))
		Expect(cfg.Embedding.Provider).To(Equal("ollama"))
		Expect(cfg.Embedding.Dimensions).To(Equal(uint(768)))
	})

	It("is case-insensitive", func() {
		cfg, err := config.PresetConfig("GROQ")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LLM.Provider).To(Equal("groq"))
	})

	It("returns error for unknown preset", func() {
		_, err := config.PresetConfig("mystery")
		Expect(err).To(MatchError(ContainSubstring("unknown preset")))
	})
})

var _ = Describe("ParseConfigTOML", func() {
	It("returns empty config for empty input", func() {
		cfg, err := config.ParseConfigTOML([]byte(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(*cfg).To(Equal(config.Config{}))
	})

	It("parses sections", func() {
		cfg, err := config.ParseConfigTOML([]byte("[events]\nprovider = \"kafka\"\ntopic = \"t\"\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Events).To(Equal(config.EventsConfig{Provider: "kafka", Topic: "t"}))
	})
})

var _ = Describe("NewDefaultConfig", func() {
	It("returns fully-populated defaults", func() {
		cfg := config.NewDefaultConfig()
		Expect(cfg.LLM.Provider).To(Equal("groq"))
		Expect(cfg.Search).To(Equal(config.SearchConfig{Provider: "duckduckgo", Depth: "basic", MaxResults: 5}))
		Expect(cfg.SearchCache.TTL).To(Equal("1h"))
		Expect(cfg.Embedding.Provider).To(Equal("hash"))
		Expect(cfg.VectorStore.Provider).To(Equal("memory"))
		Expect(cfg.Mission).To(Equal(config.MissionConfig{Pace: "500ms", RecallK: 3}))
		Expect(cfg.API.Listen).To(Equal(":8081"))
		Expect(cfg.Events).To(Equal(config.EventsConfig{Provider: "nop", Topic: "pilot.missions"}))
	})
})
