package testkit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEq deep-compares two JSON payloads after normalising both through
// json.Unmarshal, so key order and whitespace never matter.
func AssertJSONEq(t *testing.T, expected, actual []byte) {
	t.Helper()

	var expVal, actVal interface{}
	require.NoError(t, json.Unmarshal(expected, &expVal), "expected payload is not valid JSON")
	require.NoError(t, json.Unmarshal(actual, &actVal),
		"actual payload is not valid JSON\nbody: %s", string(actual))
	assert.Equal(t, expVal, actVal)
}

// DecodeBody unmarshals a recorded response body into dest, failing the test
// on malformed JSON.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest),
		"response body is not valid JSON\nbody: %s", rec.Body.String())
}

// Envelope mirrors the response package's wire format for test decoding.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// DecodeEnvelope unmarshals a recorded response into the standard envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	DecodeBody(t, rec, &env)
	return env
}
