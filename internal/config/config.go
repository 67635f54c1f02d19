// Package config provides configuration management for the stock evaluation application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	UI          UIConfig       `mapstructure:"ui"`
	Analysis    AnalysisConfig `mapstructure:"analysis"`
	Chart       ChartConfig    `mapstructure:"chart"`
	Credentials Credentials    `mapstructure:"-"` // Loaded separately
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// AnalysisConfig holds AI analysis configuration.
type AnalysisConfig struct {
	Model          string        `mapstructure:"model"`
	ImageModel     string        `mapstructure:"image_model"`
	Temperature    float32       `mapstructure:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	GenerateImage  bool          `mapstructure:"generate_image"`
	GenerateReport bool          `mapstructure:"generate_report"`
	Defaults       ParseDefaults `mapstructure:"defaults"`
}

// ParseDefaults holds the fallback values substituted for template
// fields missing from an analysis response. These are arbitrary
// placeholders carried as configuration, not domain truth.
type ParseDefaults struct {
	Price  float64 `mapstructure:"price"`
	Score  int     `mapstructure:"score"`
	Signal string  `mapstructure:"signal"`
	Risk   string  `mapstructure:"risk"`
}

// ChartConfig holds simulated chart configuration.
type ChartConfig struct {
	Days int `mapstructure:"days"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stock-evaluator"
	}
	return filepath.Join(home, ".config", "stock-evaluator")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found: create a template and continue
			// with defaults, the application works without a file.
			_ = createTemplateConfig(configDir)
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "01-02")
	v.SetDefault("analysis.model", "gpt-4o")
	v.SetDefault("analysis.image_model", "dall-e-3")
	v.SetDefault("analysis.temperature", 0.5)
	v.SetDefault("analysis.max_tokens", 2048)
	v.SetDefault("analysis.generate_image", true)
	v.SetDefault("analysis.generate_report", true)
	v.SetDefault("analysis.defaults.price", 100.0)
	v.SetDefault("analysis.defaults.score", 80)
	v.SetDefault("analysis.defaults.signal", "Hold")
	v.SetDefault("analysis.defaults.risk", "Medium")
	v.SetDefault("chart.days", 30)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing credentials are not fatal: AI-dependent
			// operations degrade to unavailable instead.
			_ = createTemplateCredentials(configDir)
			return nil
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("STOCKEVAL_MODEL"); v != "" {
		cfg.Analysis.Model = v
	}
	if v := os.Getenv("STOCKEVAL_IMAGE_MODEL"); v != "" {
		cfg.Analysis.ImageModel = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analysis.Temperature < 0 || c.Analysis.Temperature > 2 {
		return fmt.Errorf("analysis temperature must be between 0 and 2")
	}
	if c.Analysis.MaxTokens < 0 {
		return fmt.Errorf("analysis max_tokens must be non-negative")
	}
	if c.Analysis.Defaults.Score < 0 || c.Analysis.Defaults.Score > 100 {
		return fmt.Errorf("defaults.score must be between 0 and 100")
	}
	if c.Chart.Days < 0 {
		return fmt.Errorf("chart.days must be non-negative")
	}
	return nil
}

// HasAPIKey reports whether an OpenAI API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.Credentials.OpenAI.APIKey != ""
}
