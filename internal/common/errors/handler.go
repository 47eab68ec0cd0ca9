// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"

	"business-canvas/internal/models"
)

const retryAfterSeconds = "1"

// ErrorHandler turns errors into logged envelope responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleHTTPError answers with the transport status of err's code and an
// envelope carrying the same status.
func (h *ErrorHandler) HandleHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := AsStandardError(err)
	status := GetHTTPStatus(stdErr.Code)
	h.logError(r, stdErr, status)
	if IsRetryableErrorCode(stdErr.Code) {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	WriteEnvelope(w, status, models.NewErrorResponse(stdErr.Message, status))
}

// HandleEnvelopeError keeps the transport status at 200 and reports the
// failure only inside the envelope (statusCode 500, message = failure text).
// Generate and List report unexpected failures this way.
func (h *ErrorHandler) HandleEnvelopeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := AsStandardError(err)
	h.logError(r, stdErr, http.StatusInternalServerError)
	WriteEnvelope(w, http.StatusOK, models.NewErrorResponse(stdErr.Details, http.StatusInternalServerError))
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"status":        status,
	}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
		return
	}
	h.logger.Warn("request rejected", fields)
}

// WriteEnvelope writes resp as JSON with the given transport status.
func WriteEnvelope(w http.ResponseWriter, status int, resp *models.ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
