// Package config handles configuration loading and management for taskcrew.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultModel is the model used when nothing else is configured. The small
// model keeps analysis and execution cheap; TASKCREW_MODEL overrides it.
const DefaultModel = "claude-3-5-haiku-20241022"

// Config holds all configuration for taskcrew.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Sampling  SamplingConfig  `mapstructure:"sampling"`
	Runner    RunnerConfig    `mapstructure:"runner"`
	Output    OutputConfig    `mapstructure:"output"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	// APIKey is the Anthropic API key. ANTHROPIC_API_KEY overrides it.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier. TASKCREW_MODEL overrides it.
	Model string `mapstructure:"model"`
	// UseBedrock routes requests through AWS Bedrock instead of the API.
	UseBedrock bool `mapstructure:"use_bedrock"`
	// AWSRegion is the AWS region for Bedrock (e.g., "us-west-2").
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name to use.
	AWSProfile string `mapstructure:"aws_profile"`
}

// SamplingConfig holds model sampling settings.
type SamplingConfig struct {
	// AnalysisTemperature is used for the project-analysis call.
	AnalysisTemperature float64 `mapstructure:"analysis_temperature"`
	// ExecutionTemperature is used for task-execution calls.
	ExecutionTemperature float64 `mapstructure:"execution_temperature"`
	// MaxTokens caps each model response.
	MaxTokens int `mapstructure:"max_tokens"`
}

// RunnerConfig holds the sequential execution pacing settings.
type RunnerConfig struct {
	// TaskDelay is the fixed pause between consecutive tasks.
	TaskDelay time.Duration `mapstructure:"task_delay"`
	// RateLimitDelay is the extra cooldown after a rate-limited failure.
	RateLimitDelay time.Duration `mapstructure:"rate_limit_delay"`
	// ChunkTokenLimit triggers a warning when a task's estimate exceeds it.
	ChunkTokenLimit int `mapstructure:"chunk_token_limit"`
	// RateLimitMarkers are substrings that classify an error as throttling.
	RateLimitMarkers []string `mapstructure:"rate_limit_markers"`
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	// Dir is the directory where run artifacts are written.
	Dir string `mapstructure:"dir"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, TASKCREW_MODEL)
// 2. Project config (.taskcrew.yaml in current directory or parent)
// 3. User config (~/.config/taskcrew/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.model", "TASKCREW_MODEL")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("sampling.analysis_temperature", cfg.Sampling.AnalysisTemperature)
	v.Set("sampling.execution_temperature", cfg.Sampling.ExecutionTemperature)
	v.Set("sampling.max_tokens", cfg.Sampling.MaxTokens)
	v.Set("runner.task_delay", cfg.Runner.TaskDelay.String())
	v.Set("runner.rate_limit_delay", cfg.Runner.RateLimitDelay.String())
	v.Set("runner.chunk_token_limit", cfg.Runner.ChunkTokenLimit)
	v.Set("runner.rate_limit_markers", cfg.Runner.RateLimitMarkers)
	v.Set("output.dir", cfg.Output.Dir)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", DefaultModel)
	v.SetDefault("anthropic.use_bedrock", false)
	v.SetDefault("anthropic.aws_region", "")
	v.SetDefault("anthropic.aws_profile", "")

	v.SetDefault("sampling.analysis_temperature", 0.1)
	v.SetDefault("sampling.execution_temperature", 0.3)
	v.SetDefault("sampling.max_tokens", 8192)

	v.SetDefault("runner.task_delay", "65s")
	v.SetDefault("runner.rate_limit_delay", "120s")
	v.SetDefault("runner.chunk_token_limit", 180000)
	v.SetDefault("runner.rate_limit_markers", defaultRateLimitMarkers())

	v.SetDefault("output.dir", ".")
}

// defaultRateLimitMarkers returns the substrings that classify an error as
// API throttling. Covers anthropic's rate_limit_error type, raw HTTP 429
// responses, and overload shedding.
func defaultRateLimitMarkers() []string {
	return []string{"rate limit", "rate_limit", "429", "overloaded"}
}

// getUserConfigDir returns the XDG config directory for taskcrew.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "taskcrew")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "taskcrew")
	}
	return filepath.Join(home, ".config", "taskcrew")
}

// findProjectConfig searches for .taskcrew.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".taskcrew.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			Model: DefaultModel,
		},
		Sampling: SamplingConfig{
			AnalysisTemperature:  0.1,
			ExecutionTemperature: 0.3,
			MaxTokens:            8192,
		},
		Runner: RunnerConfig{
			TaskDelay:        65 * time.Second,
			RateLimitDelay:   120 * time.Second,
			ChunkTokenLimit:  180000,
			RateLimitMarkers: defaultRateLimitMarkers(),
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}
