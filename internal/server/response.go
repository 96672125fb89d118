package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// ResponseHandler writes JSON envelopes.
type ResponseHandler interface {
	WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any)
	WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// SuccessEnvelope wraps every successful response.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed response. Widget names the
// offending widget when the error is about one.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Widget  string `json:"widget,omitempty"`
}

type responseHandler struct {
	Log *log.Logger
}

// NewResponseHandler creates the JSON response handler.
func NewResponseHandler(logger *log.Logger) ResponseHandler {
	return &responseHandler{Log: logger}
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(SuccessEnvelope{Success: true, Data: data}); err != nil {
		requestLogger(r, h.Log).Error("failed to encode success response", "err", err)
	}
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeError(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		requestLogger(r, h.Log).Error("failed to encode error response", "err", err, "status", status, "code", body.Code)
	}
}

func (h *responseHandler) writeCoded(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.writeError(w, r, status, ErrorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
		Widget:  errors.WidgetID(err),
	})
}

// HandleError maps err to a status code. Structural input errors are the
// caller's fault and logged at warn level; anything else is an internal
// error whose details stay in the log.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := requestLogger(r, h.Log)
	code := errors.GetCode(err)

	switch {
	case code == errors.ErrCodeDuplicateID:
		logger.Warn("duplicate id", "err", err)
		h.writeCoded(w, r, http.StatusConflict, err)

	case code == errors.ErrCodeNotFound:
		logger.Warn("not found", "err", err)
		h.writeCoded(w, r, http.StatusNotFound, err)

	case errors.IsStructural(err):
		logger.Warn("invalid request", "code", code, "err", err)
		h.writeCoded(w, r, http.StatusBadRequest, err)

	default:
		logger.Error("unexpected error", "err", err)
		h.WriteError(w, r, http.StatusInternalServerError, string(errors.ErrCodeInternal), "An unexpected error occurred")
	}
}
