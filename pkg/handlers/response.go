package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/apperrors"
	"github.com/justresults/hirepay-console/pkg/logging"
)

// ApiResponse is the envelope for mutations that have no view-model of their own.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationErrorResponse is the body of a 400 caused by local validation.
type ValidationErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// writeJSON writes data and logs an encoding failure.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, statusCode int, data any) {
	if err := WriteJSON(w, statusCode, data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError writes a JSON error and logs an encoding failure.
func writeError(w http.ResponseWriter, logger *zap.Logger, statusCode int, errorCode, message string) {
	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}

// WriteServiceError maps a service error onto the console error contract:
//
//	*apperrors.ValidationError        400 validation_failed
//	apperrors.ErrNoSession            401 unauthorized
//	*apperrors.RequestError 4xx       same status, upstream message
//	*apperrors.RequestError 5xx/none  502 upstream_error
//	anything else                     500 internal_error
func WriteServiceError(w http.ResponseWriter, logger *zap.Logger, action string, err error) {
	if valErr, ok := apperrors.AsValidationError(err); ok {
		if err := WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "validation_failed",
			Message: valErr.Message,
			Field:   valErr.Field,
		}); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if errors.Is(err, apperrors.ErrNoSession) {
		writeError(w, logger, http.StatusUnauthorized, "unauthorized", "Not logged in")
		return
	}

	if reqErr, ok := apperrors.AsRequestError(err); ok {
		if reqErr.IsTransport() || reqErr.StatusCode >= 500 {
			logger.Error("Upstream call failed",
				zap.String("action", action),
				zap.Int("status", reqErr.StatusCode),
				zap.String("error", logging.SanitizeError(err)))
			writeError(w, logger, http.StatusBadGateway, "upstream_error", reqErr.Message)
			return
		}
		if reqErr.StatusCode < 400 {
			logger.Error("Upstream returned an unusable response",
				zap.String("action", action),
				zap.Int("status", reqErr.StatusCode),
				zap.String("error", logging.SanitizeError(err)))
			writeError(w, logger, http.StatusBadGateway, "upstream_error", reqErr.Message)
			return
		}
		writeError(w, logger, reqErr.StatusCode, upstreamErrorCode(reqErr), reqErr.Message)
		return
	}

	logger.Error("Request failed",
		zap.String("action", action),
		zap.String("error", logging.SanitizeError(err)))
	writeError(w, logger, http.StatusInternalServerError, "internal_error", "Internal server error")
}

// upstreamErrorCode lowercases the upstream code, or derives one from the status text.
func upstreamErrorCode(reqErr *apperrors.RequestError) string {
	code := reqErr.Code
	if code == "" {
		code = http.StatusText(reqErr.StatusCode)
	}
	if code == "" {
		return "request_failed"
	}
	return strings.ToLower(strings.ReplaceAll(code, " ", "_"))
}
