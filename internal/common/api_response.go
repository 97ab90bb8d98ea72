package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/constants"
	"infinite-experiment/gamecache/internal/logging"
	"infinite-experiment/gamecache/internal/models/dtos"
)

// ErrBodyTooLarge is returned when a request body exceeds the handler's limit
var ErrBodyTooLarge = errors.New("request body too large")

// StatusForError maps cache, request and context errors onto HTTP status codes
func StatusForError(err error) int {
	switch {
	case errors.Is(err, cache.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, cache.ErrNoRecordToUpdate):
		return http.StatusNotFound
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// RespondSuccess sends an ok envelope, 200 unless a status is given
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}
	respond(w, code, initTime, constants.APIStatusOk, message, data)
}

// RespondMessage sends an error envelope with a fixed message
func RespondMessage(w http.ResponseWriter, initTime time.Time, code int, message string) {
	respond(w, code, initTime, constants.APIStatusError, message, nil)
}

// RespondCacheError sends err with the status StatusForError picks. Server
// side failures are reported with the generic cache failure message.
func RespondCacheError(w http.ResponseWriter, initTime time.Time, err error) {
	code := StatusForError(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logging.Error("Cache request failed", "error", err)
		msg = constants.MsgCacheFailure
	}
	respond(w, code, initTime, constants.APIStatusError, msg, nil)
}

func respond(w http.ResponseWriter, code int, initTime time.Time, status constants.APIStatus, message string, data any) {
	body := dtos.APIResponse{
		Status:       string(status),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}
