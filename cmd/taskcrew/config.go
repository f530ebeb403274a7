package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bstark/taskcrew/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify taskcrew configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/taskcrew/config.yaml
Project-specific overrides can be placed in .taskcrew.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask API key if set
	apiKeyDisplay := "(not set)"
	if cfg.Anthropic.APIKey != "" {
		apiKeyDisplay = "****"
	}

	fmt.Printf("anthropic.api_key: %s\n", apiKeyDisplay)
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_bedrock: %t\n", cfg.Anthropic.UseBedrock)
	fmt.Printf("anthropic.aws_region: %s\n", cfg.Anthropic.AWSRegion)
	fmt.Printf("anthropic.aws_profile: %s\n", cfg.Anthropic.AWSProfile)
	fmt.Printf("sampling.analysis_temperature: %g\n", cfg.Sampling.AnalysisTemperature)
	fmt.Printf("sampling.execution_temperature: %g\n", cfg.Sampling.ExecutionTemperature)
	fmt.Printf("sampling.max_tokens: %d\n", cfg.Sampling.MaxTokens)
	fmt.Printf("runner.task_delay: %s\n", cfg.Runner.TaskDelay)
	fmt.Printf("runner.rate_limit_delay: %s\n", cfg.Runner.RateLimitDelay)
	fmt.Printf("runner.chunk_token_limit: %d\n", cfg.Runner.ChunkTokenLimit)
	fmt.Printf("runner.rate_limit_markers: %s\n", strings.Join(cfg.Runner.RateLimitMarkers, ", "))
	fmt.Printf("output.dir: %s\n", cfg.Output.Dir)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if cfg.Anthropic.APIKey == "" {
			return "(not set)", nil
		}
		return "****", nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "anthropic.use_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return cfg.Anthropic.AWSProfile, nil
	case "sampling.analysis_temperature":
		return strconv.FormatFloat(cfg.Sampling.AnalysisTemperature, 'g', -1, 64), nil
	case "sampling.execution_temperature":
		return strconv.FormatFloat(cfg.Sampling.ExecutionTemperature, 'g', -1, 64), nil
	case "sampling.max_tokens":
		return strconv.Itoa(cfg.Sampling.MaxTokens), nil
	case "runner.task_delay":
		return cfg.Runner.TaskDelay.String(), nil
	case "runner.rate_limit_delay":
		return cfg.Runner.RateLimitDelay.String(), nil
	case "runner.chunk_token_limit":
		return strconv.Itoa(cfg.Runner.ChunkTokenLimit), nil
	case "runner.rate_limit_markers":
		return strings.Join(cfg.Runner.RateLimitMarkers, ", "), nil
	case "output.dir":
		return cfg.Output.Dir, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.use_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for use_bedrock: %w", err)
		}
		cfg.Anthropic.UseBedrock = b
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "sampling.analysis_temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for analysis_temperature: %w", err)
		}
		cfg.Sampling.AnalysisTemperature = f
	case "sampling.execution_temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for execution_temperature: %w", err)
		}
		cfg.Sampling.ExecutionTemperature = f
	case "sampling.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_tokens: %w", err)
		}
		cfg.Sampling.MaxTokens = n
	case "runner.task_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for task_delay: %w", err)
		}
		cfg.Runner.TaskDelay = d
	case "runner.rate_limit_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for rate_limit_delay: %w", err)
		}
		cfg.Runner.RateLimitDelay = d
	case "runner.chunk_token_limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for chunk_token_limit: %w", err)
		}
		cfg.Runner.ChunkTokenLimit = n
	case "output.dir":
		cfg.Output.Dir = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
