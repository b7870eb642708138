package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Operation{
		ID: "getOperation", Method: "GET", Path: "/v1/operations/{name}", Summary: "Render one",
		Parameters: []Parameter{{Name: "name", In: "path", Enum: []string{"login-method", "list-tunnels"}}},
		Responses:  map[string]any{"200": map[string]any{"description": "OK"}},
	})
	reg.Register(Operation{Method: "POST", Path: "/v1/operations/{name}", Summary: "Other verb", Responses: map[string]any{}})

	doc := reg.Build("url-service", "v1")
	assert.Equal(t, "3.1.0", doc["openapi"])

	item := doc["paths"].(map[string]any)["/v1/operations/{name}"].(map[string]any)
	require.Contains(t, item, "get")
	require.Contains(t, item, "post")

	get := item["get"].(map[string]any)
	assert.Equal(t, "getOperation", get["operationId"])
	params := get["parameters"].([]map[string]any)
	require.Len(t, params, 1)
	assert.Equal(t, true, params[0]["required"])
	assert.Equal(t, []string{"login-method", "list-tunnels"}, params[0]["schema"].(map[string]any)["enum"])

	assert.NotContains(t, item["post"].(map[string]any), "operationId")
}

func TestServeHandler(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Operation{Method: "get", Path: "/healthz", Summary: "Health", Responses: map[string]any{}})

	rec := httptest.NewRecorder()
	reg.ServeHandler("svc", "v1")(rec, httptest.NewRequest(http.MethodGet, "/.well-known/openapi.json", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, map[string]any{"title": "svc", "version": "v1"}, doc["info"])
}
