package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port              string
	BaseUrl           string
	GuidelinesFile    string
	WorkerCount       int
	ReconcileInterval int
	APIAccessKey      string

	// Generation providers
	OpenAIAPIKey    string
	OpenAIAPIURL    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicAPIURL string
	AnthropicModel  string

	// Publish provider
	PublisherBaseUrl string
	PublisherAPIKey  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
