package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"quickbite/internal/middleware"
	"quickbite/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code. The status line
// is already sent when encoding fails, so the error is only logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Int("status", status).
			Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	level := zerolog.WarnLevel
	if status >= http.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}
	logger.WithLevel(level).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("error", message).
		Int("status", status).
		Msg("handler error")
	writeJSON(w, r, status, ErrorResponse{Error: message}, logger)
}

// writeServiceError maps a service error onto a response. Domain errors carry
// their own client message; anything else becomes a 500 with fallback.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg(fallback)
		writeError(w, r, http.StatusInternalServerError, fallback, logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON:
		status = http.StatusBadRequest
	case model.ErrCodeRecipeNotFound, model.ErrCodeMealPlanNotFound:
		status = http.StatusNotFound
	}

	writeError(w, r, status, domainErr.Message, logger)
}

// decodeBody decodes a JSON request body into v. An empty body decodes as {}.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.ErrInvalidJSON
	}
	return nil
}

// pathID parses a numeric path wildcard.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, false
	}
	return id, true
}
