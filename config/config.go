package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM           LLMConfig             `yaml:"llm"`
	Docs          DocsConfig            `yaml:"docs"`
	Specs         map[string]SpecSource `yaml:"specs"`
	CacheTTLHours int                   `yaml:"cache_ttl_hours"`
}

type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type DocsConfig struct {
	OutputDir       string `yaml:"output_dir"`
	InputDir        string `yaml:"input_dir"`
	Language        string `yaml:"language"` // "ru" or "en"
	IncludeSchemas  bool   `yaml:"include_schemas"`
	IncludeSecurity bool   `yaml:"include_security"`
	IncludeExamples bool   `yaml:"include_examples"`
}

// SpecSource points at an OpenAPI document, either on disk or remote.
type SpecSource struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "swagger-to-docs", "config.yaml")
}

// Load reads the YAML config, overlays environment variables, and fills
// defaults. A missing file at the default path is not an error; a missing
// file at an explicitly given path is.
func Load(path string) (*Config, error) {
	// Pick up a local .env first so the overlay below sees it.
	godotenv.Load()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath()
	}

	// Temperature starts below zero so an explicit `temperature: 0` in the
	// file survives defaulting.
	cfg := &Config{
		LLM:   LLMConfig{Temperature: -1},
		Specs: make(map[string]SpecSource),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SWAGGER_DOCS_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("SWAGGER_DOCS_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("SWAGGER_DOCS_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SWAGGER_DOCS_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("SWAGGER_DOCS_LANGUAGE"); v != "" {
		c.Docs.Language = v
	}
	if v := os.Getenv("SWAGGER_DOCS_OUTPUT_DIR"); v != "" {
		c.Docs.OutputDir = v
	}
	if v := os.Getenv("SWAGGER_DOCS_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LLM.MaxTokens = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.Model == "" {
		if m, ok := DefaultModels[c.LLM.Provider]; ok {
			c.LLM.Model = m
		}
	}
	if c.LLM.BaseURL == "" {
		if u, ok := DefaultBaseURLs[c.LLM.Provider]; ok {
			c.LLM.BaseURL = u
		}
	}
	if c.LLM.APIKey == "" {
		if env, ok := APIKeyEnvVars[c.LLM.Provider]; ok {
			c.LLM.APIKey = os.Getenv(env)
		}
	}
	if c.LLM.Temperature < 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.Docs.OutputDir == "" {
		c.Docs.OutputDir = "docs"
	}
	if c.Docs.InputDir == "" {
		c.Docs.InputDir = "examples"
	}
	if c.Docs.Language == "" {
		c.Docs.Language = "ru"
	}
	if c.CacheTTLHours <= 0 {
		c.CacheTTLHours = 24
	}
}
