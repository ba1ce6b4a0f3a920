package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rburris/roster-api/internal/redact"
)

// ErrorResponse is the error envelope every failed request carries: the HTTP
// status repeated as an integer plus a human-readable description. Nothing
// else is ever added to it.
type ErrorResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// fallbackEnvelope is written verbatim when the envelope itself cannot be
// serialized. Error responses never fail visibly.
const fallbackEnvelope = `{"code":500,"description":"Serialization error"}`

// ResponseOption customizes error response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel raises 4xx error logging to WARN instead of the
// default DEBUG. Use for operational concerns like repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"path", r.URL.Path)
	}
}

// RespondWithError writes the error envelope with the given status and
// description. The envelope is marshaled before any bytes hit the wire so a
// marshal failure degrades to the fixed fallback envelope instead of a
// half-written body.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, description string) {
	payload, err := json.Marshal(ErrorResponse{Code: status, Description: description})
	if err != nil {
		slog.Error("failed to marshal error envelope",
			"error", err,
			"status_code", status)
		payload = []byte(fallbackEnvelope)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		slog.Warn("failed to write error response",
			"error", err,
			"trace_id", GetTraceID(r.Context()))
	}
}

// RespondWithErrorAndLog writes the error envelope and logs the underlying
// error. The raw error never reaches the client; it is redacted and logged
// server-side. 5xx responses log at ERROR, 4xx at DEBUG unless elevated.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	description string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("description", description),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithError(w, r, status, description)
}
