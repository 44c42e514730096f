package models

import (
	"github.com/excusegen/excuse-agent/internal/middleware"
)

// Input message

type ExcuseRequest struct {
	Category      string `json:"category" description:"Category of excuse"`
	Tone          string `json:"tone" description:"Tone of the email"`
	Seriousness   int    `json:"seriousness" description:"Seriousness level (1-5)"`
	RecipientName string `json:"recipient_name" description:"Name of the recipient"`
	SenderName    string `json:"sender_name" description:"Name of the sender"`
	EtaWhen       string `json:"eta_when" description:"ETA or when information"`
}

// Final output returned to the form UI
type ExcuseResponse struct {
	Subject string `json:"subject" description:"Generated email subject line"`
	Body    string `json:"body" description:"Generated email body"`
	Success bool   `json:"success" description:"Whether generation succeeded"`
	Error   string `json:"error,omitempty" description:"Human-readable error when success is false"`
}

// Validate checks the request against the configured category and tone sets.
func (r *ExcuseRequest) Validate(categories []string, tones []string) error {
	if r.Category == "" {
		return middleware.ErrMissingCategory
	}
	if !contains(categories, r.Category) {
		return middleware.ErrInvalidCategory
	}

	if r.Tone == "" {
		return middleware.ErrMissingTone
	}
	if !contains(tones, r.Tone) {
		return middleware.ErrInvalidTone
	}

	if r.Seriousness < 1 || r.Seriousness > 5 {
		return middleware.ErrInvalidSeriousness
	}

	if r.RecipientName == "" {
		return middleware.ErrMissingRecipientName
	}
	if r.SenderName == "" {
		return middleware.ErrMissingSenderName
	}
	if r.EtaWhen == "" {
		return middleware.ErrMissingEtaWhen
	}

	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func SuccessResponse(subject string, body string) ExcuseResponse {
	return ExcuseResponse{
		Subject: subject,
		Body:    body,
		Success: true,
	}
}

func FailureResponse(message string) ExcuseResponse {
	return ExcuseResponse{
		Subject: "Error",
		Body:    "Sorry, there was an error generating your email. Please try again.",
		Success: false,
		Error:   message,
	}
}
