// Package testutil provides common test utilities for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the response body every endpoint returns.
type Envelope struct {
	Result  any    `json:"result"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
}

// NewJSONRequest creates an HTTP request with a JSON body.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequestWithBody creates an HTTP request with a raw string body.
func NewRequestWithBody(t *testing.T, method, path string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeEnvelope unmarshals the response body into the standard envelope.
func DecodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "failed to unmarshal response envelope")
	return env
}

// AssertEnvelope asserts the status code plus the envelope's success flag and
// symbolic code in one shot.
func AssertEnvelope(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantSuccess bool, wantCode string) {
	t.Helper()
	assert.Equal(t, wantStatus, rr.Code, "unexpected status code")
	env := DecodeEnvelope(t, rr)
	assert.Equal(t, wantSuccess, env.Success, "unexpected success flag")
	assert.Equal(t, wantCode, env.Code, "unexpected symbolic code")
}
