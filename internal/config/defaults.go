package config

import "time"

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden by the config file,
// then by environment variables (or a .env file), then by command-line flags.
// Missing keys are left at their default values.
type Config struct {
	Provider     ProviderConfig     `koanf:"provider"`
	Orchestrator OrchestratorConfig `koanf:"orchestrator"`
	Tools        ToolsConfig        `koanf:"tools"`
	UI           UIConfig           `koanf:"ui"`
	Log          LogConfig          `koanf:"log"`
}

type ProviderConfig struct {
	Name    string        `koanf:"name"`     // Default: "openai"
	Model   string        `koanf:"model"`    // Default: per provider, see DefaultModel
	BaseURL string        `koanf:"base_url"` // Default: "https://api.openai.com/v1" for openai
	Timeout time.Duration `koanf:"timeout"`  // Default: 5m

	// APIKey only ever comes from the environment or .env.
	APIKey string `koanf:"-"`
}

type OrchestratorConfig struct {
	MaxConsecutiveRecoveries int `koanf:"max_consecutive_recoveries"` // Default: 2
	ToolConcurrency          int `koanf:"tool_concurrency"`           // Default: 4
}

type ToolsConfig struct {
	MaxFileSize int64 `koanf:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)
}

type UIConfig struct {
	Markdown bool `koanf:"markdown"` // Default: true
}

type LogConfig struct {
	Level string `koanf:"level"` // Default: "warn"
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// DefaultModel returns the model used when none is configured for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "gpt-4o"
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:    ProviderOpenAI,
			Timeout: 5 * time.Minute,
		},
		Orchestrator: OrchestratorConfig{
			MaxConsecutiveRecoveries: 2,
			ToolConcurrency:          4,
		},
		Tools: ToolsConfig{
			MaxFileSize: 20 * 1024 * 1024,
		},
		UI: UIConfig{
			Markdown: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
