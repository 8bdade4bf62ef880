//go:build unit || e2e

package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status code and, for 2xx responses,
// decodes the body into targetStruct.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct),
			"decoding response body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status code and that the flat error payload
// mentions expectedErrorMsg when one is given.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status")

	var payload map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload),
		"decoding error body: %s", w.Body.String())
	if expectedErrorMsg != "" {
		assert.Contains(t, payload["error"], expectedErrorMsg)
	}
}

func DecodeResponseBody(t *testing.T, body io.Reader, target any) error {
	t.Helper()

	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "decoding response body")
	return err
}
