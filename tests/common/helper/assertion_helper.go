//go:build unit || e2e

package helper

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the decoded error body returned by every failing endpoint.
type Envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Field   string          `json:"field"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// AssertEnvelope checks status and error code and returns the decoded body.
func AssertEnvelope(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) Envelope {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Failed to decode error envelope: %s", w.Body.String())
	assert.False(t, env.Success)
	if expectedCode != "" {
		assert.Equal(t, expectedCode, env.Error.Code)
	}
	return env
}
