package databricks

import (
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	EndpointURL string
	Token       string
	HTTPClient  *http.Client
}

// NewClient builds a client for a Databricks model serving endpoint.
// A missing token is not an error here: the service must still boot so
// that health and debug endpoints work, the token is checked per call.
func NewClient(endpointURL string, token string, timeout time.Duration) (*Client, error) {
	if endpointURL == "" {
		return nil, fmt.Errorf("Databricks endpoint URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		EndpointURL: endpointURL,
		Token:       token,
		HTTPClient:  &http.Client{Timeout: timeout},
	}, nil
}
