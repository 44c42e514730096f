package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/excusegen/excuse-agent/internal/api"
	"github.com/excusegen/excuse-agent/internal/config"
	"github.com/excusegen/excuse-agent/internal/excuse"
	"github.com/excusegen/excuse-agent/internal/llm"
	"github.com/excusegen/excuse-agent/internal/metrics"
	"github.com/excusegen/excuse-agent/internal/middleware"
	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/excusegen/excuse-agent/internal/web"
	"github.com/rs/zerolog"
)

func validExcuseRequest() models.ExcuseRequest {
	return models.ExcuseRequest{
		Category:      "running-late",
		Tone:          "formal",
		Seriousness:   3,
		RecipientName: "Ms. Harper",
		SenderName:    "Alex",
		EtaWhen:       "30 minutes",
	}
}

/*
TEST 1: Health Check
Purpose: Verify all health aliases respond with the service status
*/
func TestAPI_Health(t *testing.T) {
	container, _ := setupTestAPI(t, &MockLLMClient{})

	for _, path := range []string{"/health", "/healthz", "/ready", "/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		recorder := httptest.NewRecorder()

		container.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, recorder.Code)
			continue
		}

		var response api.HealthResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
			t.Fatalf("%s: failed to parse response: %v", path, err)
		}

		if response.Status != "healthy" {
			t.Errorf("%s: expected status 'healthy', got '%s'", path, response.Status)
		}
		if response.Service != "excuse-email-draft-tool" {
			t.Errorf("%s: expected service name, got '%s'", path, response.Service)
		}
	}
}

/*
TEST 2: Generate Excuse - Happy Path
Purpose: Valid request with all fields produces success=true and non-empty subject/body
*/
func TestAPI_GenerateExcuse_Success(t *testing.T) {
	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{
			Content: `{"subject": "Running late this morning", "body": "Dear Ms. Harper,\n\nI will be in within 30 minutes.\n\nBest regards,\nAlex"}`,
		},
	}
	container, _ := setupTestAPI(t, mockClient)

	body, _ := json.Marshal(validExcuseRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/generate-excuse", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.ExcuseResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if !result.Success {
		t.Errorf("Expected success=true, got error '%s'", result.Error)
	}
	if result.Subject == "" {
		t.Error("Expected non-empty subject")
	}
	if result.Body == "" {
		t.Error("Expected non-empty body")
	}
	if !mockClient.WasCalled {
		t.Error("Expected the LLM client to be called")
	}
}

/*
TEST 3: Validation
Purpose: Missing or invalid fields return a 400 validation error before any model call
*/
func TestAPI_GenerateExcuse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.ExcuseRequest)
	}{
		{"missing recipient", func(r *models.ExcuseRequest) { r.RecipientName = "" }},
		{"missing sender", func(r *models.ExcuseRequest) { r.SenderName = "" }},
		{"missing eta", func(r *models.ExcuseRequest) { r.EtaWhen = "" }},
		{"unknown category", func(r *models.ExcuseRequest) { r.Category = "alien-abduction" }},
		{"unknown tone", func(r *models.ExcuseRequest) { r.Tone = "menacing" }},
		{"seriousness out of range", func(r *models.ExcuseRequest) { r.Seriousness = 9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockLLMClient{}
			container, _ := setupTestAPI(t, mockClient)

			excuseRequest := validExcuseRequest()
			tt.mutate(&excuseRequest)

			body, _ := json.Marshal(excuseRequest)
			req := httptest.NewRequest(http.MethodPost, "/api/generate-excuse", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			container.ServeHTTP(recorder, req)

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d. Body: %s", recorder.Code, recorder.Body.String())
			}

			var errorResponse middleware.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &errorResponse); err != nil {
				t.Fatalf("Failed to parse error response: %v", err)
			}
			if errorResponse.Code != http.StatusBadRequest {
				t.Errorf("Expected code 400 in body, got %d", errorResponse.Code)
			}
			if errorResponse.Details == "" {
				t.Error("Expected validation details in error response")
			}

			if mockClient.WasCalled {
				t.Error("Expected no model call for invalid request")
			}
		})
	}
}

/*
TEST 4: Upstream Timeout
Purpose: Simulated upstream timeout yields success=false with a timeout-specific message
*/
func TestAPI_GenerateExcuse_UpstreamTimeout(t *testing.T) {
	mockClient := &MockLLMClient{
		ErrorToReturn: context.DeadlineExceeded,
	}
	container, _ := setupTestAPI(t, mockClient)

	body, _ := json.Marshal(validExcuseRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/generate-excuse", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	container.ServeHTTP(recorder, req)

	// Upstream failures still answer 200 with a structured error for the form UI
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.ExcuseResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if result.Success {
		t.Error("Expected success=false for upstream timeout")
	}
	if !strings.Contains(result.Error, "timed out") {
		t.Errorf("Expected timeout-specific message, got '%s'", result.Error)
	}
}

/*
TEST 5: Metrics
Purpose: Counters reflect handled generation requests
*/
func TestAPI_Metrics(t *testing.T) {
	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{Content: `{"subject": "s", "body": "b"}`},
	}
	container, _ := setupTestAPI(t, mockClient)

	body, _ := json.Marshal(validExcuseRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/generate-excuse", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	container.ServeHTTP(httptest.NewRecorder(), req)

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, metricsReq)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	text := recorder.Body.String()
	if !strings.Contains(text, "excuse_tool_requests_total 1") {
		t.Errorf("Expected request counter at 1, got:\n%s", text)
	}
	if !strings.Contains(text, "excuse_tool_successes_total 1") {
		t.Errorf("Expected success counter at 1, got:\n%s", text)
	}
	if !strings.Contains(text, "# TYPE excuse_tool_requests_total counter") {
		t.Errorf("Expected Prometheus TYPE line, got:\n%s", text)
	}
}

/*
TEST 6: Debug
Purpose: Debug endpoint echoes the startup configuration
*/
func TestAPI_Debug(t *testing.T) {
	container, _ := setupTestAPI(t, &MockLLMClient{})

	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response api.DebugResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if !response.TokenConfigured {
		t.Error("Expected token_configured=true")
	}
	if response.Provider != "databricks" {
		t.Errorf("Expected provider 'databricks', got '%s'", response.Provider)
	}
	if response.Environment != "test" {
		t.Errorf("Expected environment 'test', got '%s'", response.Environment)
	}
}

/*
TEST 7: Form UI
Purpose: Root path serves HTML even without a public directory
*/
func TestAPI_Index_Fallback(t *testing.T) {
	container, _ := setupTestAPI(t, &MockLLMClient{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Excuse Email Draft Tool") {
		t.Errorf("Expected fallback page, got:\n%s", recorder.Body.String())
	}
}

// MockLLMClient for testing
type MockLLMClient struct {
	ResponseToReturn *llm.LLMResponse
	ErrorToReturn    error
	WasCalled        bool
	LastRequest      llm.LLMRequest
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.WasCalled = true
	m.LastRequest = request
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	if m.ResponseToReturn != nil {
		return m.ResponseToReturn, nil
	}
	return &llm.LLMResponse{Content: "{}"}, nil
}

// setupTestAPI builds the real API wired to a mock LLM client.
func setupTestAPI(t *testing.T, mockClient llm.LLMClient) (*restful.Container, *metrics.Registry) {
	t.Helper()

	logger := zerolog.Nop()

	// No prompts file in the test working directory, built-in defaults apply
	promptConfig, err := config.LoadPromptsConfig()
	if err != nil {
		t.Fatalf("Failed to load prompts config: %v", err)
	}

	generator, err := excuse.NewGenerator(promptConfig, mockClient, &logger)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	registry := metrics.NewRegistry()

	handler := api.NewHandler(
		generator,
		promptConfig,
		registry,
		api.DebugInfo{
			TokenConfigured: true,
			Endpoint:        "https://example.com/serving-endpoints/test/invocations",
			Provider:        "databricks",
			Host:            "127.0.0.1",
			Port:            "8000",
			Environment:     "test",
		},
		&web.Server{},
		&logger,
	)

	container := restful.NewContainer()
	api.RegisterRoutes(container, handler)

	return container, registry
}
