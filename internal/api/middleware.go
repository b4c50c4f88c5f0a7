package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/sajjad-MoBe/slotstore/internal/errors"
)

// RequestIDHeader carries the request ID in requests and responses
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// RequestIDFromContext returns the ID assigned to the request, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDMiddleware propagates the caller's request ID or assigns a new one
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecoveryMiddleware is a middleware that recovers panics and writes JSON errors
func RecoveryMiddleware(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := errors.RecoverError(rec)
					logger.Error(err, "recovered from panic",
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", RequestIDFromContext(r.Context()))
					handleError(w, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs every request
func LoggingMiddleware(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)
			logger.Info("request",
				"duration", fmt.Sprintf("%dms", m.Duration.Milliseconds()),
				"status", m.Code,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestIDFromContext(r.Context()))
		})
	}
}

// statusFor maps an error to its HTTP status code and error type
func statusFor(err error) (int, errors.ErrorType) {
	switch {
	case errors.IsInvalidInput(err):
		return http.StatusBadRequest, errors.ErrorTypeInvalidInput
	case errors.IsValidation(err):
		return http.StatusUnprocessableEntity, errors.ErrorTypeValidation
	default:
		return http.StatusInternalServerError, errors.ErrorTypeInternal
	}
}

// handleError writes an error response to the client
func handleError(w http.ResponseWriter, err error) {
	statusCode, errType := statusFor(err)

	response := ErrorResponse{}
	response.Error.Type = string(errType)
	response.Error.Message = err.Error()

	writeJSON(w, statusCode, response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
