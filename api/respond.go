package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ideahub/ideahub-backend/errs"
)

// envelope is the uniform response shape shared by every endpoint.
type envelope struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// Write sends the envelope with the given status code, message and payload.
// A nil data renders as an empty object, never as null.
func (r Responder) Write(w http.ResponseWriter, statusCode int, message string, data any) {
	if data == nil {
		data = struct{}{}
	}

	body := envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError converts err into an envelope. Expected failures carry their own
// status code and user-safe message; everything else collapses to a generic
// 500 with no internals leaked.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.Write(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
		r.Write(w, apiErr.StatusCode, "Internal server error", nil)
		return
	}

	r.Write(w, apiErr.StatusCode, apiErr.Error(), nil)
}
