package middleware

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// Validation errors surfaced as 400s by the handlers
var (
	ErrMissingCategory      = errors.New("category is required")
	ErrInvalidCategory      = errors.New("category is not one of the allowed values")
	ErrMissingTone          = errors.New("tone is required")
	ErrInvalidTone          = errors.New("tone is not one of the allowed values")
	ErrInvalidSeriousness   = errors.New("seriousness must be between 1 and 5")
	ErrMissingRecipientName = errors.New("recipient_name is required")
	ErrMissingSenderName    = errors.New("sender_name is required")
	ErrMissingEtaWhen       = errors.New("eta_when is required")
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

func HandleError(resp *restful.Response, err error, code int) {
	errorResponse := ErrorResponse{
		Error: http.StatusText(code),
		Code:  code,
	}
	if err != nil {
		errorResponse.Details = err.Error()
	}

	if writeErr := resp.WriteHeaderAndEntity(code, errorResponse); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
