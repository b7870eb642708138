// Package preview exposes an apiurl.Registry over HTTP so developers can
// inspect the URLs the client would call. Nothing here talks to the corplink
// service itself.
package preview

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"corplink/internal/apiurl"
	"corplink/pkg/middleware"
	"corplink/pkg/openapi"
	"corplink/pkg/problems"
)

const serviceName = "corplink-url-service"

type operationView struct {
	Name  apiurl.Operation `json:"name"`
	Kind  apiurl.Kind      `json:"kind"`
	Path  string           `json:"path"`
	URL   string           `json:"url,omitempty"`
	Error string           `json:"error,omitempty"`
}

type tunnelServerBody struct {
	URL string `json:"url"`
}

type handler struct {
	reg     *apiurl.Registry
	log     *zap.SugaredLogger
	metrics *Metrics
}

// RegisterRoutes mounts the preview API on r. metrics may be nil.
func RegisterRoutes(r chi.Router, reg *apiurl.Registry, log *zap.SugaredLogger, metrics *Metrics) {
	h := &handler{reg: reg, log: log, metrics: metrics}
	r.Get("/.well-known/openapi.json", Document().ServeHandler(serviceName, "v1"))
	r.Route("/v1", func(r chi.Router) {
		r.Get("/operations", h.listOperations)
		r.Get("/operations/{name}", h.getOperation)
		r.Post("/challenge/refresh", h.refreshChallenge)
		r.Get("/tunnel/server", h.getTunnelServer)
		r.Put("/tunnel/server", h.putTunnelServer)
	})
}

func (h *handler) render(op apiurl.Operation) (operationView, error) {
	v := operationView{Name: op, Kind: op.Kind(), Path: op.Path()}
	u, err := h.reg.URL(op)
	h.metrics.observeRender(op.String(), err)
	if err != nil {
		v.Error = err.Error()
		return v, err
	}
	v.URL = u
	return v, nil
}

func (h *handler) listOperations(w http.ResponseWriter, _ *http.Request) {
	ops := apiurl.Operations()
	out := make([]operationView, 0, len(ops))
	for _, op := range ops {
		v, _ := h.render(op)
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getOperation(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	op, err := apiurl.ParseOperation(name)
	if err != nil {
		problems.Write(w, http.StatusNotFound, "unknown-operation", "Unknown operation", err.Error())
		return
	}
	v, err := h.render(op)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, v)
	case errors.Is(err, apiurl.ErrTunnelServerUnset):
		problems.Write(w, http.StatusConflict, "tunnel-server-unset", "Tunnel server not selected",
			"PUT /v1/tunnel/server before rendering tunnel operations")
	default:
		h.log.Errorw("render failed", "operation", name, "err", err, "request_id", middleware.RequestIDFrom(req.Context()))
		problems.Write(w, http.StatusInternalServerError, "render-failed", "URL render failed", v.Error)
	}
}

func (h *handler) refreshChallenge(w http.ResponseWriter, req *http.Request) {
	if err := h.reg.RefreshCodeChallenge(); err != nil {
		h.log.Errorw("refresh code challenge", "err", err, "request_id", middleware.RequestIDFrom(req.Context()))
		problems.Write(w, http.StatusInternalServerError, "challenge-failed", "Code challenge refresh failed", err.Error())
		return
	}
	h.metrics.observeRefresh()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getTunnelServer(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, tunnelServerBody{URL: h.reg.TunnelServer()})
}

func (h *handler) putTunnelServer(w http.ResponseWriter, req *http.Request) {
	var body tunnelServerBody
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 4<<10)).Decode(&body); err != nil {
		problems.Write(w, http.StatusBadRequest, "invalid-body", "Invalid request body", err.Error())
		return
	}
	if err := h.reg.SetTunnelServer(body.URL); err != nil {
		problems.Write(w, http.StatusBadRequest, "invalid-tunnel-server", "Invalid tunnel server", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Document describes the preview routes.
func Document() *openapi.Registry {
	names := make([]string, 0, len(apiurl.Operations()))
	for _, op := range apiurl.Operations() {
		names = append(names, op.String())
	}
	ok := map[string]any{"200": map[string]any{"description": "OK"}}
	noContent := map[string]any{"204": map[string]any{"description": "No Content"}}
	rendered := map[string]any{
		"200": map[string]any{"description": "OK"},
		"404": map[string]any{"description": "Unknown operation"},
		"409": map[string]any{"description": "Tunnel server not selected"},
	}
	nameParam := []openapi.Parameter{{Name: "name", In: "path", Enum: names}}
	urlBody := map[string]any{"content": map[string]any{"application/json": map[string]any{
		"schema": map[string]any{"type": "object", "properties": map[string]any{"url": map[string]any{"type": "string"}}},
	}}}

	doc := openapi.NewRegistry()
	doc.Register(openapi.Operation{ID: "listOperations", Method: "GET", Path: "/v1/operations", Summary: "Render every catalogue operation", Tags: []string{"operations"}, Responses: ok})
	doc.Register(openapi.Operation{ID: "getOperation", Method: "GET", Path: "/v1/operations/{name}", Summary: "Render one operation", Tags: []string{"operations"}, Parameters: nameParam, Responses: rendered})
	doc.Register(openapi.Operation{ID: "refreshChallenge", Method: "POST", Path: "/v1/challenge/refresh", Summary: "Regenerate the login code challenge", Tags: []string{"session"}, Responses: noContent})
	doc.Register(openapi.Operation{ID: "getTunnelServer", Method: "GET", Path: "/v1/tunnel/server", Summary: "Current tunnel host", Tags: []string{"session"}, Responses: ok})
	doc.Register(openapi.Operation{ID: "setTunnelServer", Method: "PUT", Path: "/v1/tunnel/server", Summary: "Select the tunnel host", Tags: []string{"session"}, RequestBody: urlBody, Responses: noContent})
	return doc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
