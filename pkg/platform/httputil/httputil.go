// Package httputil holds the JSON response and request helpers shared by handlers.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "nestegg/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a JSON error envelope. Errors without a domain
// code, and internal errors, never leak their message to the client.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	msg := ""
	if de, ok := dErrors.As(err); ok {
		code = de.Code
		msg = de.Message
	}

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal && msg != "" {
		body["error_description"] = msg
	}
	WriteJSON(w, StatusFor(code), body)
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Preparable is a request body that can validate itself after decoding.
type Preparable[T any] interface {
	*T
	Validate() error
}

type normalizer interface {
	Normalize()
}

// DecodeAndPrepare decodes the JSON body into T, normalizes and validates it.
// On failure it writes the error response and returns false.
func DecodeAndPrepare[T any, PT Preparable[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}

	if n, ok := any(req).(normalizer); ok {
		n.Normalize()
	}
	if err := PT(req).Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
