package excuse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/excusegen/excuse-agent/internal/config"
	"github.com/excusegen/excuse-agent/internal/llm"
	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/rs/zerolog"
)

// Generator renders the excuse prompt, performs one model call and
// normalizes whatever came back into an ExcuseResponse.
type Generator struct {
	promptTemplate *template.Template
	modelConfig    config.ModelConfig
	llmClient      llm.LLMClient
	logger         *zerolog.Logger
}

// draft is the JSON shape the model is instructed to answer with.
type draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewGenerator(cfg *config.PromptConfig, llmClient llm.LLMClient, logger *zerolog.Logger) (*Generator, error) {
	tmpl, err := template.New("excuse").Parse(cfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse excuse prompt template: %w", err)
	}

	return &Generator{
		promptTemplate: tmpl,
		modelConfig:    cfg.Model,
		llmClient:      llmClient,
		logger:         logger,
	}, nil
}

// Generate never returns a Go error: upstream failures become a response
// with success=false and a human-readable message.
func (g *Generator) Generate(ctx context.Context, request models.ExcuseRequest) models.ExcuseResponse {
	now := time.Now()

	prompt, err := g.buildPrompt(request)
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("category", request.Category).
			Msg("failed to build prompt from template")
		return models.FailureResponse(fmt.Sprintf("Failed to build prompt: %v", err))
	}

	resp, err := g.llmClient.InvokeModel(ctx, llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   g.modelConfig.MaxTokens,
		Temperature: g.modelConfig.Temperature,
	})

	if err != nil {
		g.logger.Error().
			Err(err).
			Str("category", request.Category).
			Str("tone", request.Tone).
			Msg("LLM call failed")

		if errors.Is(err, context.DeadlineExceeded) {
			return models.FailureResponse("Request to the model serving endpoint timed out")
		}
		return models.FailureResponse(err.Error())
	}

	response := g.parseDraft(resp.Content, request)

	g.logger.Info().
		Str("category", request.Category).
		Str("tone", request.Tone).
		Int("seriousness", request.Seriousness).
		Dur("duration", time.Since(now)).
		Msg("excuse generated")

	return response
}

// buildPrompt executes the template with the request parameters
func (g *Generator) buildPrompt(request models.ExcuseRequest) (string, error) {
	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, request); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// parseDraft turns model output into subject/body. The model is asked for a
// JSON object but does not always comply, so plain text falls back to
// first-line-as-subject with a greeting and sign-off wrapped around the rest.
func (g *Generator) parseDraft(content string, request models.ExcuseRequest) models.ExcuseResponse {
	content = stripMarkdownCodeBlock(content)

	var parsed draft
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		if parsed.Subject == "" {
			parsed.Subject = "Re: " + request.Category
		}
		if parsed.Body == "" {
			parsed.Body = "Email content could not be generated."
		}
		return models.SuccessResponse(parsed.Subject, parsed.Body)
	}

	g.logger.Warn().
		Str("category", request.Category).
		Msg("model answered with plain text instead of JSON")

	lines := strings.Split(strings.TrimSpace(content), "\n")
	subject := "Re: " + request.Category
	body := content
	if len(lines) > 0 && lines[0] != "" {
		subject = lines[0]
	}
	if len(lines) > 1 {
		body = strings.Join(lines[1:], "\n")
	}

	body = fmt.Sprintf("Dear %s,\n\n%s\n\nBest regards,\n%s",
		request.RecipientName, strings.TrimSpace(body), request.SenderName)

	return models.SuccessResponse(subject, body)
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	// Check for markdown code blocks (```json ... ``` or ``` ... ```)
	if strings.HasPrefix(content, "```") {
		// Find the first newline (after the opening ```)
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		// Find the closing ```
		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		// Extract the content between the code blocks
		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
