package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/medetshatayev/offshore/internal/oracle"
)

// createOracleClient builds the classification client from configuration.
func createOracleClient() (oracle.Client, error) {
	provider := viper.GetString("oracle.provider")
	if provider == "" {
		provider = "openai"
	}

	config := oracle.Config{
		Provider:    provider,
		Model:       viper.GetString("oracle.model"),
		BaseURL:     viper.GetString("oracle.base_url"),
		Timeout:     viper.GetDuration("oracle.timeout"),
		Temperature: viper.GetFloat64("oracle.temperature"),
		MaxTokens:   viper.GetInt("oracle.max_tokens"),
		RateLimit:   viper.GetInt("oracle.rate_limit"),
	}

	switch provider {
	case "openai":
		apiKey := viper.GetString("oracle.openai_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
		config.APIKey = apiKey

	case "anthropic":
		apiKey := viper.GetString("oracle.anthropic_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
		config.APIKey = apiKey

	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", provider)
	}

	client, err := oracle.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle client: %w", err)
	}

	return client, nil
}
