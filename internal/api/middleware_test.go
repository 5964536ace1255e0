package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(srv.Handler(), http.MethodGet, "/api/streams")
	id := rec.Header().Get(requestIDHeader)
	require.NotEmpty(t, id)

	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated request id should be a UUID")
}

func TestRequestIDPreserved(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/streams", nil)
	req.Header.Set(requestIDHeader, "caller-chosen-id")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "caller-chosen-id", rec.Header().Get(requestIDHeader))
}

func TestRequestIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, requestIDFrom(req.Context()))
}

func TestStatusRecorderDefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	_, err := sr.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, sr.status)
}

func TestStatusRecorderCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	sr.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, sr.status)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
