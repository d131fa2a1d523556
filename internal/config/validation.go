package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Provider validation
	switch c.Provider.Name {
	case ProviderOpenAI, ProviderGemini:
	default:
		errs = append(errs, fmt.Sprintf("provider.name must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.Provider.Name))
	}
	if c.Provider.Timeout <= 0 {
		errs = append(errs, "provider.timeout must be > 0")
	}

	// Orchestrator validation
	if c.Orchestrator.MaxConsecutiveRecoveries < 1 {
		errs = append(errs, "orchestrator.max_consecutive_recoveries must be >= 1")
	}
	if c.Orchestrator.ToolConcurrency < 1 {
		errs = append(errs, "orchestrator.tool_concurrency must be >= 1")
	}

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}

	// Log validation
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
