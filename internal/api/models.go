package api

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Service string `json:"service" description:"Service name"`
}

type DebugResponse struct {
	TokenConfigured bool   `json:"databricks_token_configured" description:"Whether the API token is set"`
	Endpoint        string `json:"databricks_endpoint" description:"Configured model serving endpoint URL"`
	Provider        string `json:"provider" description:"Active LLM provider"`
	Host            string `json:"host" description:"Bind host"`
	Port            string `json:"port" description:"Bind port"`
	Environment     string `json:"environment" description:"Deployment environment"`
}

// DebugInfo carries the startup configuration echoed by the /debug endpoint.
type DebugInfo struct {
	TokenConfigured bool
	Endpoint        string
	Provider        string
	Host            string
	Port            string
	Environment     string
}
