package response

import (
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medialog/medialog-server/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestJSON_WritesEnvelopeAndContentType(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"id": "it_1"}, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "it_1", data["id"])
	assert.Empty(t, env.Error)
}

func TestJSON_SuccessFlagTracksStatus(t *testing.T) {
	for _, tt := range []struct {
		status  int
		success bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusPermanentRedirect, true},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, false},
		{http.StatusInternalServerError, false},
	} {
		w := httptest.NewRecorder()
		JSON(w, tt.status, nil, discardLogger())
		assert.Equal(t, tt.success, decodeEnvelope(t, w).Success, "status %d", tt.status)
	}
}

func TestJSON_NilLoggerIsSafe(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, "ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w).Success)
}

func TestStatusHelpers(t *testing.T) {
	for _, tt := range []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		errMsg string
	}{
		{"success", func(w http.ResponseWriter) { Success(w, "v", discardLogger()) }, http.StatusOK, ""},
		{"created", func(w http.ResponseWriter) { Created(w, "v", discardLogger()) }, http.StatusCreated, ""},
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "invalid input", discardLogger()) }, http.StatusBadRequest, "invalid input"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "token required", discardLogger()) }, http.StatusUnauthorized, "token required"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "access denied", discardLogger()) }, http.StatusForbidden, "access denied"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no such entry", discardLogger()) }, http.StatusNotFound, "no such entry"},
		{"too many requests", func(w http.ResponseWriter) { TooManyRequests(w, "rate limit exceeded", discardLogger()) }, http.StatusTooManyRequests, "rate limit exceeded"},
		{"internal", func(w http.ResponseWriter) { InternalError(w, "storage failure", discardLogger()) }, http.StatusInternalServerError, "storage failure"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.status < 400, env.Success)
			assert.Equal(t, tt.errMsg, env.Error)
		})
	}
}

func TestNoContent_EmptyBody(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleError_MapsStoreErrors(t *testing.T) {
	for _, tt := range []struct {
		name   string
		err    error
		status int
		errMsg string
	}{
		{"not found sentinel", store.ErrNotFound, http.StatusNotFound, "resource not found"},
		{"custom message", store.ErrNotFound.WithMessage("list entry for item it_9 not found"), http.StatusNotFound, "list entry for item it_9 not found"},
		{"conflict", store.ErrConflict, http.StatusConflict, "concurrent modification, please retry"},
		{"wrapped store error", store.ErrInvalidInput.WithCause(errors.New("bad key")), http.StatusBadRequest, "invalid input"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, discardLogger())

			assert.Equal(t, tt.status, w.Code)
			env := decodeEnvelope(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.errMsg, env.Error)
		})
	}
}

func TestHandleError_UnknownErrorBecomes500(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, errors.New("disk on fire"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	// The original message stays out of the response body.
	assert.Equal(t, "internal server error", env.Error)
}

func TestEnvelope_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Envelope{Success: true, Data: "v"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
	assert.NotContains(t, string(data), `"message"`)

	data, err = json.Marshal(Envelope{Success: false, Error: "boom"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"data"`)
	assert.Contains(t, string(data), `"error":"boom"`)
}
