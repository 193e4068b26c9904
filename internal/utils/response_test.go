package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()

	ErrorDetail(rr, http.StatusBadRequest, MsgEnterCorrectInput, []FieldError{{Field: "page", Message: "is required"}})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["status"])
	assert.Equal(t, MsgEnterCorrectInput, body["message"])
	assert.Nil(t, body["data"])
	assert.NotNil(t, body["error"])
}
