package config

// PromptConfig is the prompt and model configuration for excuse generation
type PromptConfig struct {
	Prompt     string      `yaml:"prompt"`
	Model      ModelConfig `yaml:"model"`
	Categories []string    `yaml:"categories"`
	Tones      []string    `yaml:"tones"`
}

// ModelConfig contains sampling parameters sent to the model
type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}
