package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline, so the same logical flag
// stays identical on "pilot serve" and "pilot research".
type Flag struct {
	// Name is the long flag name (e.g. "llm-provider").
	Name string

	// Shorthand is the one-letter short flag (e.g. "l"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "llm.provider").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
const (
	FlagLLMProvider     = "llm-provider"
	FlagLLMModel        = "llm-model"
	FlagLLMBaseURL      = "llm-base-url"
	FlagSearchProvider  = "search-provider"
	FlagSearchMax       = "search-max-results"
	FlagSearchCache     = "search-cache"
	FlagEmbeddingProv   = "embedding-provider"
	FlagEmbeddingTgt    = "embedding-target"
	FlagEmbeddingModel  = "embedding-model"
	FlagEmbeddingDims   = "embedding-dimensions"
	FlagVectorStoreProv = "vector-store-provider"
	FlagVectorStoreTgt  = "vector-store-target"
	FlagPace            = "pace"
	FlagRecallK         = "recall-k"
	FlagAPIListen       = "listen"
	FlagAPITarget       = "api-target"
	FlagEventsProvider  = "events-provider"
	FlagEventsBrokers   = "events-brokers"
)

// Flags is the registry shared by every command.
var Flags = FlagSet{
	FlagLLMProvider:     {Name: "llm-provider", ViperKey: "llm.provider", Description: "Completion provider (groq, openai, anthropic, ollama)"},
	FlagLLMModel:        {Name: "llm-model", ViperKey: "llm.model", Description: "Completion model; empty uses the provider default"},
	FlagLLMBaseURL:      {Name: "llm-base-url", ViperKey: "llm.base_url", Description: "Completion API base URL"},
	FlagSearchProvider:  {Name: "search-provider", ViperKey: "search.provider", Description: "Search provider (duckduckgo, tavily, brave, llm)"},
	FlagSearchMax:       {Name: "search-max-results", ViperKey: "search.max_results", Description: "Results requested per sub-query"},
	FlagSearchCache:     {Name: "search-cache", ViperKey: "search_cache.target", Description: "Redis URL for search result caching"},
	FlagEmbeddingProv:   {Name: "embedding-provider", ViperKey: "embedding.provider", Description: "Embedding provider (hash, ollama)"},
	FlagEmbeddingTgt:    {Name: "embedding-target", ViperKey: "embedding.target", Description: "Embedding provider URL"},
	FlagEmbeddingModel:  {Name: "embedding-model", ViperKey: "embedding.model", Description: "Embedding model"},
	FlagEmbeddingDims:   {Name: "embedding-dimensions", ViperKey: "embedding.dimensions", Description: "Embedding dimensions"},
	FlagVectorStoreProv: {Name: "vector-store-provider", ViperKey: "vector_store.provider", Description: "Vector index (memory, sqlite, qdrant, pgvector)"},
	FlagVectorStoreTgt:  {Name: "vector-store-target", ViperKey: "vector_store.target", Description: "Vector index path, address or DSN"},
	FlagPace:            {Name: "pace", ViperKey: "mission.pace", Description: "Pause after planning"},
	FlagRecallK:         {Name: "recall-k", ViperKey: "mission.recall_k", Description: "Facts recalled for hypotheses"},
	FlagAPIListen:       {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for the API server to listen on"},
	FlagAPITarget:       {Name: "api-target", ViperKey: "client.api_target", Description: "Pilot API server URL"},
	FlagEventsProvider:  {Name: "events-provider", ViperKey: "events.provider", Description: "Mission event publisher (nop, kafka)"},
	FlagEventsBrokers:   {Name: "events-brokers", ViperKey: "events.brokers", Description: "Comma-separated Kafka brokers"},
}

// MissionFlags are registered by every command that runs missions in-process.
var MissionFlags = []string{
	FlagLLMProvider,
	FlagLLMModel,
	FlagLLMBaseURL,
	FlagSearchProvider,
	FlagSearchMax,
	FlagSearchCache,
	FlagEmbeddingProv,
	FlagEmbeddingTgt,
	FlagEmbeddingModel,
	FlagEmbeddingDims,
	FlagVectorStoreProv,
	FlagVectorStoreTgt,
	FlagPace,
	FlagRecallK,
	FlagEventsProvider,
	FlagEventsBrokers,
}

// AddFlags registers the given registry keys on cmd as string flags. Values
// stay strings on the command line; viper converts them on read.
func AddFlags(cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, key := range registryKeys {
		var target string
		AddStringFlag(cmd, fs, key, &target)
	}
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}
