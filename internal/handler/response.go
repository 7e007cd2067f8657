package handler

import (
	"encoding/json"
	"net/http"

	"ott-admin/pkg/errors"
	"ott-admin/pkg/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// APIResponse is the standard response envelope
type APIResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// sendJSONResponse sends a success envelope
func sendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{Success: true, Data: data}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, statusCode int, errorType, message string, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := APIResponse{
		Success: false,
		Error:   &ErrorResponse{Type: errorType, Message: message},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode error response")
	}
}

// sendServiceError maps service errors onto HTTP responses. AppErrors keep
// their type and status; anything else is a generic internal error.
func sendServiceError(w http.ResponseWriter, err error, log *logger.Logger) {
	if appErr, ok := err.(*errors.AppError); ok {
		sendErrorResponse(w, appErr.StatusCode, string(appErr.Type), appErr.Message, log)
		return
	}
	log.WithError(err).Error("Unhandled service error")
	sendErrorResponse(w, http.StatusInternalServerError, "internal", "Internal server error", log)
}
