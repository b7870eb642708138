package problems

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType(t *testing.T) {
	t.Setenv("CORPLINK_PROBLEM_BASE_URL", "")
	assert.Equal(t, "https://corplink.invalid/problems/unknown-operation", Type("unknown-operation"))

	t.Setenv("CORPLINK_PROBLEM_BASE_URL", "https://docs.example.com/errors/")
	assert.Equal(t, "https://docs.example.com/errors/unknown-operation", Type("unknown-operation"))
}

func TestWrite(t *testing.T) {
	t.Setenv("CORPLINK_PROBLEM_BASE_URL", "")
	rec := httptest.NewRecorder()
	Write(rec, http.StatusConflict, "tunnel-server-unset", "Tunnel server not selected", "set one first")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var p Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, Problem{
		Type:   "https://corplink.invalid/problems/tunnel-server-unset",
		Title:  "Tunnel server not selected",
		Status: http.StatusConflict,
		Detail: "set one first",
	}, p)
}
