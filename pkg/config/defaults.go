package config

const (
	defaultLLMProvider = "groq"

	defaultSearchProvider   = "duckduckgo"
	defaultSearchDepth      = "basic"
	defaultSearchMaxResults = 5
	defaultSearchCacheTTL   = "1h"

	defaultEmbeddingProvider   = "hash"
	defaultEmbeddingDimensions = 256

	defaultVectorProvider   = "memory"
	defaultVectorCollection = "pilot_facts"

	defaultMissionPace    = "500ms"
	defaultMissionRecallK = 3

	defaultAPIListen       = ":8081"
	defaultClientAPITarget = "http://localhost:8081"

	defaultEventsProvider = "nop"
	defaultEventsTopic    = "pilot.missions"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		LLM: LLMConfig{
			Provider: defaultLLMProvider,
		},
		Search: SearchConfig{
			Provider:   defaultSearchProvider,
			Depth:      defaultSearchDepth,
			MaxResults: defaultSearchMaxResults,
		},
		SearchCache: SearchCacheConfig{
			TTL: defaultSearchCacheTTL,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Dimensions: defaultEmbeddingDimensions,
		},
		VectorStore: VectorStoreConfig{
			Provider:   defaultVectorProvider,
			Collection: defaultVectorCollection,
		},
		Mission: MissionConfig{
			Pace:    defaultMissionPace,
			RecallK: defaultMissionRecallK,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
	}
}
