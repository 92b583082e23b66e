package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for PromptForge
type Config struct {
	Database     DatabaseConfig            `json:"database"`
	Server       ServerConfig              `json:"server"`
	Generation   GenerationConfig          `json:"generation"`
	Testing      TestingConfig             `json:"testing"`
	Learning     LearningConfig            `json:"learning"`
	Providers    map[string]ProviderConfig `json:"providers"`
	TraceEnabled bool                      `json:"trace_enabled"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	PostgresURL string `json:"postgres_url"`
}

// ServerConfig holds API server configuration
type ServerConfig struct {
	Host        string   `json:"host"`
	Port        int      `json:"port"`
	CORSOrigins []string `json:"cors_origins"`
}

// GenerationConfig selects the provider used for meta-prompting and its
// sampling parameters.
type GenerationConfig struct {
	Provider    string  `json:"provider"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// TestingConfig bounds the multi-provider fan-out and weighs the
// recommendation.
type TestingConfig struct {
	TimeoutSeconds int     `json:"timeout_seconds"`
	MaxTokens      int     `json:"max_tokens"`
	Temperature    float64 `json:"temperature"`
	LatencyWeight  float64 `json:"latency_weight"`
	CostWeight     float64 `json:"cost_weight"`
	QualityWeight  float64 `json:"quality_weight"`
}

// LearningConfig tunes the rating feedback loop.
type LearningConfig struct {
	Alpha float64 `json:"alpha"`
}

// ProviderConfig configures one LLM provider. The API key is a secret:
// it is read from config or environment and never logged or persisted.
type ProviderConfig struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	providers := map[string]ProviderConfig{
		"anthropic": {},
		"openai":    {},
		"deepseek":  {},
		"groq":      {},
		"gemini":    {},
		"local":     {Enabled: true},
	}

	return &Config{
		Database: DatabaseConfig{
			PostgresURL: "postgres://localhost:5432/promptforge",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Generation: GenerationConfig{
			Provider:    "local",
			MaxTokens:   2048,
			Temperature: 0.7,
		},
		Testing: TestingConfig{
			TimeoutSeconds: 60,
			MaxTokens:      1024,
			Temperature:    0.7,
			LatencyWeight:  1.0,
			CostWeight:     1.0,
			QualityWeight:  1.0,
		},
		Learning: LearningConfig{
			Alpha: 0.2,
		},
		Providers: providers,
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

// envBool loads a boolean environment variable into the target pointer if set and valid
func envBool(key string, target *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}

// envStringSlice loads a comma-separated environment variable into a string slice
func envStringSlice(key string, target *[]string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			*target = result
		}
	}
}

func getConfigPath() string {
	if p := os.Getenv("PROMPTFORGE_CONFIG"); p != "" {
		return p
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".promptforge", "config.json")
}

// Load loads configuration from the config file and environment variables
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	envString("PROMPTFORGE_POSTGRES_URL", &cfg.Database.PostgresURL)

	envString("PROMPTFORGE_SERVER_HOST", &cfg.Server.Host)
	envInt("PROMPTFORGE_SERVER_PORT", &cfg.Server.Port)
	envStringSlice("PROMPTFORGE_CORS_ORIGINS", &cfg.Server.CORSOrigins)

	envString("PROMPTFORGE_GENERATION_PROVIDER", &cfg.Generation.Provider)
	envInt("PROMPTFORGE_GENERATION_MAX_TOKENS", &cfg.Generation.MaxTokens)
	envFloat("PROMPTFORGE_GENERATION_TEMPERATURE", &cfg.Generation.Temperature)

	envInt("PROMPTFORGE_TEST_TIMEOUT_SECONDS", &cfg.Testing.TimeoutSeconds)
	envInt("PROMPTFORGE_TEST_MAX_TOKENS", &cfg.Testing.MaxTokens)
	envFloat("PROMPTFORGE_TEST_TEMPERATURE", &cfg.Testing.Temperature)
	envFloat("PROMPTFORGE_TEST_LATENCY_WEIGHT", &cfg.Testing.LatencyWeight)
	envFloat("PROMPTFORGE_TEST_COST_WEIGHT", &cfg.Testing.CostWeight)
	envFloat("PROMPTFORGE_TEST_QUALITY_WEIGHT", &cfg.Testing.QualityWeight)

	envFloat("PROMPTFORGE_LEARNING_ALPHA", &cfg.Learning.Alpha)

	envBool("PROMPTFORGE_TRACE", &cfg.TraceEnabled)

	// Provider keys follow the conventional <PROVIDER>_API_KEY names so
	// existing shell setups keep working.
	for name, keyVar := range map[string]string{
		"anthropic": "ANTHROPIC_API_KEY",
		"openai":    "OPENAI_API_KEY",
		"deepseek":  "DEEPSEEK_API_KEY",
		"groq":      "GROQ_API_KEY",
		"gemini":    "GEMINI_API_KEY",
	} {
		p := cfg.Providers[name]
		envString(keyVar, &p.APIKey)
		envString("PROMPTFORGE_"+strings.ToUpper(name)+"_BASE_URL", &p.BaseURL)
		envString("PROMPTFORGE_"+strings.ToUpper(name)+"_MODEL", &p.Model)
		if p.APIKey != "" {
			p.Enabled = true
		}
		cfg.Providers[name] = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isValidURL validates that a URL has proper format
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server port must be between 1 and 65535")
	}

	if c.Database.PostgresURL == "" {
		errs = append(errs, "PostgreSQL URL is required")
	} else if !isValidURL(c.Database.PostgresURL) {
		errs = append(errs, "PostgreSQL URL must be a valid URL")
	}

	if c.Generation.Provider == "" {
		errs = append(errs, "generation provider is required")
	}
	if c.Generation.MaxTokens < 1 {
		errs = append(errs, "generation max_tokens must be positive")
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, "generation temperature must be between 0 and 2")
	}

	if c.Testing.TimeoutSeconds < 1 {
		errs = append(errs, "test timeout must be positive")
	}
	if c.Testing.LatencyWeight < 0 || c.Testing.CostWeight < 0 || c.Testing.QualityWeight < 0 {
		errs = append(errs, "recommendation weights must be non-negative")
	}

	if c.Learning.Alpha <= 0 || c.Learning.Alpha > 1 {
		errs = append(errs, "learning alpha must be in (0, 1]")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
