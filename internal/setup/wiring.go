package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/excusegen/excuse-agent/internal/config"
	"github.com/excusegen/excuse-agent/internal/excuse"
	"github.com/excusegen/excuse-agent/internal/llm"
	"github.com/excusegen/excuse-agent/internal/llm/bedrock"
	"github.com/excusegen/excuse-agent/internal/llm/databricks"
	"github.com/excusegen/excuse-agent/internal/llm/gpt"
	"github.com/excusegen/excuse-agent/internal/metrics"
	"github.com/rs/zerolog"
)

const defaultEndpointURL = "https://dbc-32cf6ae7-cf82.staging.cloud.databricks.com/serving-endpoints/databricks-gpt-oss-120b/invocations"

type Config struct {
	APIToken      string
	EndpointURL   string
	Host          string
	Port          string
	Provider      string
	Timeout       time.Duration
	AWSRegion     string
	ClaudeModelID string
	OpenAIKey     string
	OpenAIModelID string
	Environment   string
}

type Dependencies struct {
	Generator    *excuse.Generator
	PromptConfig *config.PromptConfig
	Registry     *metrics.Registry
	Logger       *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		APIToken:      getEnv("DATABRICKS_API_TOKEN", ""),
		EndpointURL:   getEnv("DATABRICKS_ENDPOINT_URL", defaultEndpointURL),
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "8000"),
		Provider:      getEnv("LLM_PROVIDER", "databricks"),
		Timeout:       getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:     getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID: getEnv("OPEN_AI_MODEL_ID", ""),
		Environment:   getEnv("ENVIRONMENT", "development"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.Provider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	promptConfig, err := config.LoadPromptsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts config: %w", err)
	}

	generator, err := excuse.NewGenerator(promptConfig, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create excuse generator: %w", err)
	}

	return &Dependencies{
		Generator:    generator,
		PromptConfig: promptConfig,
		Registry:     metrics.NewRegistry(),
		Logger:       logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}

// createLLMClient picks the provider. Databricks is the default and tolerates
// a missing token at startup, the other providers fail fast on bad config.
func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "databricks":
		return databricks.NewClient(cfg.EndpointURL, cfg.APIToken, cfg.Timeout)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
