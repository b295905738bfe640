package httpclient

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, observed := observer.New(zapcore.DebugLevel)
	return zap.New(core), observed
}

func TestLoggingHooks_NotFound(t *testing.T) {
	srv := newHeaderServer(t, http.StatusNotFound, "no such job")
	logger, observed := newObservedLogger()
	c := NewClient(nil, LoggingHooks(logger))

	resp := get(t, c, t.Context(), srv.URL+"/api/v1/jobs/7")

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Sending GET "+srv.URL+"/api/v1/jobs/7", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Contains(t, entries[1].Message, "Received GET 404")
	assert.Contains(t, entries[1].Message, ": no such job")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "no such job", string(body), "body must stay readable")
}

func TestLoggingHooks_OK(t *testing.T) {
	srv := newHeaderServer(t, http.StatusOK, "secret payload")
	logger, observed := newObservedLogger()
	c := NewClient(nil, LoggingHooks(logger))

	get(t, c, t.Context(), srv.URL)

	entries := observed.FilterMessageSnippet("Received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Received GET 200 "+srv.URL, entries[0].Message)
	assert.NotContains(t, entries[0].Message, "secret payload")
}

func TestLoggingHooks_Exception(t *testing.T) {
	logger, observed := newObservedLogger()
	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	})
	req, err := http.NewRequest(http.MethodGet, "http://example.test/x", nil)
	require.NoError(t, err)

	_, err = NewTransport(base, LoggingHooks(logger)).RoundTrip(req)
	require.Error(t, err)

	assert.Equal(t, 1, observed.FilterMessageSnippet("Failed GET http://example.test/x").Len())
	assert.Equal(t, 0, observed.FilterMessageSnippet("Received").Len())
}
