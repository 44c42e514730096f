package mcpadapter

import (
	"context"

	"github.com/excusegen/excuse-agent/internal/excuse"
	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenerateExcuseInput is the MCP tool input schema (matches HTTP API field names).
type GenerateExcuseInput struct {
	Category      string `json:"category" jsonschema:"excuse category: running-late, sick-day, missed-deadline, missed-meeting, work-from-home, or leaving-early"`
	Tone          string `json:"tone" jsonschema:"email tone: formal, casual, or apologetic"`
	Seriousness   int    `json:"seriousness" jsonschema:"seriousness level from 1 to 5"`
	RecipientName string `json:"recipient_name" jsonschema:"name of the recipient"`
	SenderName    string `json:"sender_name" jsonschema:"name of the sender"`
	EtaWhen       string `json:"eta_when" jsonschema:"ETA or timing information"`
}

// NewGenerateHandler returns a tool handler that uses the given generator.
// Pass the returned function to mcp.AddTool.
func NewGenerateHandler(generator *excuse.Generator) func(context.Context, *mcp.CallToolRequest, GenerateExcuseInput) (*mcp.CallToolResult, models.ExcuseResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GenerateExcuseInput) (*mcp.CallToolResult, models.ExcuseResponse, error) {
		return GenerateExcuse(ctx, generator, req, input)
	}
}

// GenerateExcuse performs one generation call and returns the draft.
func GenerateExcuse(
	ctx context.Context,
	generator *excuse.Generator,
	req *mcp.CallToolRequest,
	input GenerateExcuseInput,
) (*mcp.CallToolResult, models.ExcuseResponse, error) {
	excuseRequest := models.ExcuseRequest{
		Category:      input.Category,
		Tone:          input.Tone,
		Seriousness:   input.Seriousness,
		RecipientName: input.RecipientName,
		SenderName:    input.SenderName,
		EtaWhen:       input.EtaWhen,
	}

	result := generator.Generate(ctx, excuseRequest)
	return nil, result, nil
}
