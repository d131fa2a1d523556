package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "well"
	// ConfigFile is the config file name
	ConfigFile = "config.yaml"
	// DotenvFile is read from the working directory when present.
	DotenvFile = ".env"
)

// Variable names consulted in order; the first non-empty value wins.
var (
	OpenAISecretVars  = []string{"WELL_OPENAI_SECRET", "WELL_OPENAI_API_KEY", "OPENAI_SECRET", "OPENAI_API_KEY"}
	OpenAIBaseURLVars = []string{"WELL_OPENAI_API_BASE", "OPENAI_API_BASE"}
	OpenAIModelVars   = []string{"WELL_OPENAI_MODEL", "OPENAI_MODEL"}
	GeminiSecretVars  = []string{"WELL_GEMINI_API_KEY", "GEMINI_API_KEY"}
	GeminiModelVars   = []string{"WELL_GEMINI_MODEL", "GEMINI_MODEL"}
	ProviderVars      = []string{"WELL_PROVIDER"}
)

// MissingCredentialError is returned when no API key is configured for the
// selected provider.
type MissingCredentialError struct {
	Provider string
	Vars     []string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing %s credential: set %s in the environment or in %s",
		e.Provider, strings.Join(e.Vars, ", "), DotenvFile)
}

// ParseError is returned when a configuration source cannot be parsed.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Cause)
}
func (e *ParseError) Unwrap() error { return e.Cause }

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Overrides carries command-line values that take precedence over every other source.
// Empty fields are ignored.
type Overrides struct {
	Provider string
	Model    string
	BaseURL  string
	LogLevel string
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load builds the configuration from defaults, ~/.config/well/config.yaml,
// the .env file in the working directory, the process environment and the
// given overrides, then resolves the credential for the selected provider.
//
// Environment lookups consult every candidate variable in the process
// environment before falling back to .env, so a real environment variable
// always beats the file.
func (l *Loader) Load(o Overrides) (*Config, error) {
	cfg := DefaultConfig()

	if err := l.loadFile(cfg); err != nil {
		return nil, err
	}

	vars, err := l.loadVars()
	if err != nil {
		return nil, err
	}

	if v := vars.lookup(ProviderVars); v != "" {
		cfg.Provider.Name = v
	}
	if o.Provider != "" {
		cfg.Provider.Name = o.Provider
	}

	var secretVars []string
	switch cfg.Provider.Name {
	case ProviderGemini:
		secretVars = GeminiSecretVars
		if v := vars.lookup(GeminiModelVars); v != "" {
			cfg.Provider.Model = v
		}
	default:
		secretVars = OpenAISecretVars
		if v := vars.lookup(OpenAIBaseURLVars); v != "" {
			cfg.Provider.BaseURL = v
		}
		if v := vars.lookup(OpenAIModelVars); v != "" {
			cfg.Provider.Model = v
		}
		if cfg.Provider.BaseURL == "" {
			cfg.Provider.BaseURL = DefaultOpenAIBaseURL
		}
	}

	if o.Model != "" {
		cfg.Provider.Model = o.Model
	}
	if o.BaseURL != "" {
		cfg.Provider.BaseURL = o.BaseURL
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = DefaultModel(cfg.Provider.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Provider.APIKey = vars.lookup(secretVars)
	if cfg.Provider.APIKey == "" {
		return nil, &MissingCredentialError{Provider: cfg.Provider.Name, Vars: secretVars}
	}

	return cfg, nil
}

// loadFile merges ~/.config/well/config.yaml over cfg.
// A missing home directory or file leaves cfg untouched.
func (l *Loader) loadFile(cfg *Config) error {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return nil
	}

	configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return &ParseError{Path: configPath, Cause: err}
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return &ParseError{Path: configPath, Cause: err}
	}
	return nil
}

// variables holds the process environment and the .env file as separate layers.
type variables struct {
	process *koanf.Koanf
	dotenv  *koanf.Koanf
}

func (l *Loader) loadVars() (*variables, error) {
	process := koanf.New(".")
	if err := process.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	dot := koanf.New(".")
	data, err := l.fs.ReadFile(DotenvFile)
	switch {
	case err == nil:
		if err := dot.Load(rawbytes.Provider(data), dotenv.Parser()); err != nil {
			return nil, &ParseError{Path: DotenvFile, Cause: err}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	return &variables{process: process, dotenv: dot}, nil
}

// lookup returns the first non-empty value among names, checking the whole
// process environment before the .env file.
func (v *variables) lookup(names []string) string {
	for _, layer := range []*koanf.Koanf{v.process, v.dotenv} {
		for _, name := range names {
			if s := strings.TrimSpace(layer.String(name)); s != "" {
				return s
			}
		}
	}
	return ""
}
