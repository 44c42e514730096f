package config

import (
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPrompt = `Generate a professional excuse email based on the following parameters:

Category: {{.Category}}
Tone: {{.Tone}}
Seriousness Level: {{.Seriousness}}/5
Recipient: {{.RecipientName}}
Sender: {{.SenderName}}
ETA/When: {{.EtaWhen}}

Please generate a JSON response with the following format:
{
    "subject": "Email subject line",
    "body": "Dear {{.RecipientName}},\n\n[Email body content]\n\nBest regards,\n{{.SenderName}}"
}

The email should:
- Match the specified tone ({{.Tone}})
- Be appropriate for the seriousness level ({{.Seriousness}}/5)
- Include a professional greeting and sign-off
- Be concise but complete
- Sound natural and believable

Respond with ONLY the JSON object, no additional text.
`

var defaultCategories = []string{
	"running-late",
	"sick-day",
	"missed-deadline",
	"missed-meeting",
	"work-from-home",
	"leaving-early",
}

var defaultTones = []string{
	"formal",
	"casual",
	"apologetic",
}

// LoadPromptsConfig reads the prompt configuration from PROMPTS_CONFIG_PATH
// (default configs/prompts.yaml). A missing file is not an error: the service
// falls back to the built-in prompt, categories and tones.
func LoadPromptsConfig() (*PromptConfig, error) {

	path := os.Getenv("PROMPTS_CONFIG_PATH")
	if path == "" {
		path = "configs/prompts.yaml"
	}

	var cfg PromptConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *PromptConfig) {
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = 500
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = 0.7
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultCategories
	}
	if len(cfg.Tones) == 0 {
		cfg.Tones = defaultTones
	}
}

func (c *PromptConfig) Validate() error {
	if _, err := template.New("excuse").Parse(c.Prompt); err != nil {
		return fmt.Errorf("prompt is not a valid template: %w", err)
	}

	if c.Model.MaxTokens < 0 {
		return fmt.Errorf("model max_tokens must be positive")
	}

	if c.Model.Temperature < 0.0 || c.Model.Temperature > 2.0 {
		return fmt.Errorf("model temperature %f out of range [0.0, 2.0]", c.Model.Temperature)
	}

	return nil
}
