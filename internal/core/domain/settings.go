package domain

// AppSettings holds the resolved application configuration.
type AppSettings struct {
	// OpenAIAPIKey authenticates generation requests.
	OpenAIAPIKey string

	// DatabaseURL is the storage location string for the embedded store.
	DatabaseURL string

	LLM   LLMSettings
	Inbox InboxSettings
}

// LLMSettings configures the generation client.
type LLMSettings struct {
	// Model is the chat model name.
	Model string

	// BaseURL is the API base URL; empty means the provider default.
	BaseURL string

	// Temperature is sent with every request.
	Temperature float64

	// TimeoutSeconds bounds a single generation request.
	TimeoutSeconds int

	// RequestsPerSecond paces outbound requests.
	RequestsPerSecond float64
}

// InboxSettings configures the file-drop watcher.
type InboxSettings struct {
	// Dir is the directory watched for new note files.
	Dir string
}

// Default setting values.
const (
	DefaultLLMModel          = "gpt-4o-mini"
	DefaultLLMTemperature    = 0.5
	DefaultLLMTimeoutSeconds = 120
	DefaultRequestsPerSecond = 2.0
)

// DefaultAppSettings returns settings with defaults applied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Model:             DefaultLLMModel,
			Temperature:       DefaultLLMTemperature,
			TimeoutSeconds:    DefaultLLMTimeoutSeconds,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
	}
}

// Validate checks the settings needed to run the enrichment pipeline.
func (s *AppSettings) Validate() error {
	if s.OpenAIAPIKey == "" {
		return ErrAPIKeyRequired
	}
	return nil
}
