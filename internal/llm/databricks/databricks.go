package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/excusegen/excuse-agent/internal/llm"
)

// ErrMissingToken is returned when the client was built without an API token.
var ErrMissingToken = errors.New("Databricks API token not configured")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invocationRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// Serving endpoints answer in one of a few envelope shapes depending on how
// the model is hosted: chat models return choices[0].message.content (a plain
// string or a list of typed blocks), classic serving returns predictions[0].
type invocationResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Predictions []string `json:"predictions"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	if c.Token == "" {
		return nil, ErrMissingToken
	}

	payload := invocationRequest{
		Messages: []chatMessage{
			{
				Role:    "user",
				Content: request.Prompt,
			},
		},
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize invocation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to build invocation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("request to model serving endpoint timed out: %w", context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("unable to reach model serving endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read model serving response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model serving endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	return parseInvocationResponse(respBody)
}

func parseInvocationResponse(body []byte) (*llm.LLMResponse, error) {
	var envelope invocationResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model serving response: %w", err)
	}

	if len(envelope.Choices) > 0 {
		choice := envelope.Choices[0]

		var content string
		if err := json.Unmarshal(choice.Message.Content, &content); err == nil {
			return &llm.LLMResponse{Content: content, StopReason: choice.FinishReason}, nil
		}

		var blocks []contentBlock
		if err := json.Unmarshal(choice.Message.Content, &blocks); err == nil {
			for _, block := range blocks {
				if block.Type == "text" {
					return &llm.LLMResponse{Content: block.Text, StopReason: choice.FinishReason}, nil
				}
			}
		}

		return nil, fmt.Errorf("unsupported content format in choices")
	}

	if len(envelope.Predictions) > 0 {
		return &llm.LLMResponse{Content: envelope.Predictions[0]}, nil
	}

	return nil, fmt.Errorf("unrecognized response envelope from model serving endpoint")
}
