package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/constants"
	"infinite-experiment/gamecache/internal/models/dtos"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: key cannot be empty", cache.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w with key: x", cache.ErrNoRecordToUpdate), http.StatusNotFound},
		{fmt.Errorf("%w: limit is 10 bytes", ErrBodyTooLarge), http.StatusRequestEntityTooLarge},
		{fmt.Errorf("cache: get %q: %w", "x", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusForError(tc.err); got != tc.want {
			t.Errorf("StatusForError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRespondCacheError_HidesStoreDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondCacheError(rec, time.Now(), errors.New("dial tcp 10.0.0.5:6379: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rec.Code)
	}

	var body dtos.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %v", err)
	}
	if body.Status != string(constants.APIStatusError) {
		t.Errorf("Expected status error, got %s", body.Status)
	}
	if body.Message != constants.MsgCacheFailure {
		t.Errorf("Expected %q, got %q", constants.MsgCacheFailure, body.Message)
	}
}

func TestRespondCacheError_ClientErrorKeepsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondCacheError(rec, time.Now(), fmt.Errorf("%w with key: games", cache.ErrNoRecordToUpdate))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}

	var body dtos.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %v", err)
	}
	if body.Message != "cache: no record to update with key: games" {
		t.Errorf("Unexpected message %q", body.Message)
	}
}
