package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./draftdeck.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://content.example.com)"`
	GuidelinesFile    string `long:"guidelines-file" env:"GUIDELINES_FILE" default:"./guidelines.yml" description:"Path to the brand guidelines YAML file"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for publish reconciliation"`
	ReconcileInterval int    `long:"reconcile-interval" env:"RECONCILE_INTERVAL" default:"60" description:"Publish queue reconciliation interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Generation providers
	OpenAIAPIKey    string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (default content generator)"`
	OpenAIAPIURL    string `long:"openai-api-url" env:"OPENAI_API_URL" description:"OpenAI-compatible API base URL (optional)"`
	OpenAIModel     string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o" description:"OpenAI model for content generation"`
	AnthropicAPIKey string `long:"anthropic-api-key" env:"ANTHROPIC_API_KEY" description:"Anthropic API key (alternate copywriter)"`
	AnthropicAPIURL string `long:"anthropic-api-url" env:"ANTHROPIC_API_URL" description:"Anthropic API base URL (optional)"`
	AnthropicModel  string `long:"anthropic-model" env:"ANTHROPIC_MODEL" default:"claude-sonnet-4-20250514" description:"Anthropic model for content generation"`

	// Publish provider
	PublisherBaseUrl string `long:"publisher-base-url" env:"PUBLISHER_BASE_URL" default:"https://backend.blotato.com/v2" description:"Publishing provider API base URL"`
	PublisherAPIKey  string `long:"publisher-api-key" env:"PUBLISHER_API_KEY" description:"Publishing provider API key"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"DraftDeck/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		GuidelinesFile:    raw.GuidelinesFile,
		WorkerCount:       raw.WorkerCount,
		ReconcileInterval: raw.ReconcileInterval,
		APIAccessKey:      raw.APIAccessKey,
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		OpenAIAPIURL:      raw.OpenAIAPIURL,
		OpenAIModel:       raw.OpenAIModel,
		AnthropicAPIKey:   raw.AnthropicAPIKey,
		AnthropicAPIURL:   raw.AnthropicAPIURL,
		AnthropicModel:    raw.AnthropicModel,
		PublisherBaseUrl:  raw.PublisherBaseUrl,
		PublisherAPIKey:   raw.PublisherAPIKey,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
