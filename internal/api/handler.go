package api

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/excusegen/excuse-agent/internal/config"
	"github.com/excusegen/excuse-agent/internal/excuse"
	"github.com/excusegen/excuse-agent/internal/metrics"
	"github.com/excusegen/excuse-agent/internal/middleware"
	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/excusegen/excuse-agent/internal/web"
	"github.com/rs/zerolog"
)

type Handler struct {
	generator    *excuse.Generator
	promptConfig *config.PromptConfig
	registry     *metrics.Registry
	debugInfo    DebugInfo
	webServer    *web.Server
	logger       *zerolog.Logger
}

func NewHandler(
	generator *excuse.Generator,
	promptConfig *config.PromptConfig,
	registry *metrics.Registry,
	debugInfo DebugInfo,
	webServer *web.Server,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		generator:    generator,
		promptConfig: promptConfig,
		registry:     registry,
		debugInfo:    debugInfo,
		webServer:    webServer,
		logger:       logger,
	}
}

// POST /api/generate-excuse
// Body: ExcuseRequest
// Returns: ExcuseResponse
func (h *Handler) GenerateExcuse(req *restful.Request, resp *restful.Response) {
	var excuseRequest models.ExcuseRequest
	if err := req.ReadEntity(&excuseRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if err := excuseRequest.Validate(h.promptConfig.Categories, h.promptConfig.Tones); err != nil {
		h.logger.Warn().Err(err).Msg("Invalid excuse request")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("category", excuseRequest.Category).
		Str("tone", excuseRequest.Tone).
		Int("seriousness", excuseRequest.Seriousness).
		Msg("Start excuse generation")

	h.registry.IncRequests()

	ctx := req.Request.Context()
	result := h.generator.Generate(ctx, excuseRequest)

	if result.Success {
		h.registry.IncSuccesses()
	} else {
		h.registry.IncFailures()
	}

	h.logger.Info().
		Bool("success", result.Success).
		Str("subject", result.Subject).
		Msg("Excuse generation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler for GET /health, /healthz, /ready and /ping
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "healthy",
		Service: "excuse-email-draft-tool",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

// Metrics handler GET /metrics
func (h *Handler) Metrics(req *restful.Request, resp *restful.Response) {
	resp.AddHeader("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	resp.WriteHeader(http.StatusOK)
	_, _ = resp.Write([]byte(h.registry.Render()))
}

// Debug handler GET /debug echoes the startup configuration
func (h *Handler) Debug(req *restful.Request, resp *restful.Response) {
	debugResponse := DebugResponse{
		TokenConfigured: h.debugInfo.TokenConfigured,
		Endpoint:        h.debugInfo.Endpoint,
		Provider:        h.debugInfo.Provider,
		Host:            h.debugInfo.Host,
		Port:            h.debugInfo.Port,
		Environment:     h.debugInfo.Environment,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, debugResponse)
}

// Index handler GET / serves the form UI
func (h *Handler) Index(req *restful.Request, resp *restful.Response) {
	h.webServer.Index(resp.ResponseWriter)
}
