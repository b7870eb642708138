// Package apiurl maps corplink API operations to fully resolved request URLs.
//
// A Registry owns the operation catalogue, the client fingerprint and two
// parameter sets: the user context (configured server plus the rotating login
// challenge) and the tunnel context (the tunnel host picked after server
// selection). Only the challenge and the tunnel host change after New; both
// are guarded so a Registry may be shared between goroutines.
package apiurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"corplink/pkg/challenge"
	"corplink/pkg/config"
	"corplink/pkg/template"
)

var (
	ErrUnknownOperation = errors.New("apiurl: unknown operation")
	// ErrTunnelServerUnset is returned for tunnel operations before SetTunnelServer.
	ErrTunnelServerUnset = errors.New("apiurl: tunnel server not selected")
	ErrInvalidBaseURL    = errors.New("apiurl: invalid base url")
)

type Registry struct {
	log    *zap.SugaredLogger
	fp     Fingerprint
	server string

	mu           sync.RWMutex
	challenge    string
	tunnelServer string
}

// New builds a Registry for cfg.Server with a fresh code challenge. It fails
// with config.ErrMissingServer when no server is configured.
func New(cfg config.Config, log *zap.SugaredLogger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	server, err := normalizeBaseURL(cfg.Server)
	if err != nil {
		return nil, err
	}
	code, err := challenge.Generate()
	if err != nil {
		return nil, fmt.Errorf("apiurl: code challenge: %w", err)
	}
	r := &Registry{
		log:       log,
		fp:        DefaultFingerprint().withOverrides(cfg.Fingerprint),
		server:    server,
		challenge: code,
	}
	if err := r.checkCatalog(); err != nil {
		return nil, err
	}
	if cfg.VPNServer != "" {
		if err := r.SetTunnelServer(cfg.VPNServer); err != nil {
			return nil, err
		}
	}
	log.Debugw("api url registry ready", "server", server, "operations", int(numOperations))
	return r, nil
}

// checkCatalog verifies every template is fully covered by its parameter set.
func (r *Registry) checkCatalog() error {
	for _, op := range Operations() {
		var src template.Source
		switch op.Kind() {
		case KindUser:
			src = UserParams{}
		case KindTunnel:
			src = TunnelParams{}
		default:
			return fmt.Errorf("%w: %s has no parameter set", ErrUnknownOperation, op)
		}
		if missing := catalog[op].tmpl.Missing(src); len(missing) > 0 {
			return fmt.Errorf("apiurl: %s: %w", op, &template.MissingPlaceholderError{Name: missing[0]})
		}
	}
	return nil
}

// URL renders op against the current parameter set for its kind.
func (r *Registry) URL(op Operation) (string, error) {
	if !op.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	var src template.Source
	switch op.Kind() {
	case KindUser:
		src = r.UserParams()
	case KindTunnel:
		p := r.TunnelParams()
		if p.URL == "" {
			return "", fmt.Errorf("%w: %s", ErrTunnelServerUnset, op)
		}
		src = p
	}
	u, err := catalog[op].tmpl.Render(src)
	if err != nil {
		return "", fmt.Errorf("apiurl: render %s: %w", op, err)
	}
	return u, nil
}

// MustURL is like URL but panics on error.
func (r *Registry) MustURL(op Operation) string {
	u, err := r.URL(op)
	if err != nil {
		panic(err)
	}
	return u
}

// URLs renders the whole catalogue, stopping at the first failure.
func (r *Registry) URLs() (map[Operation]string, error) {
	out := make(map[Operation]string, numOperations)
	for _, op := range Operations() {
		u, err := r.URL(op)
		if err != nil {
			return nil, err
		}
		out[op] = u
	}
	return out, nil
}

// RefreshCodeChallenge replaces the login challenge. The previous value is
// discarded; tunnel URLs are unaffected.
func (r *Registry) RefreshCodeChallenge() error {
	code, err := challenge.Generate()
	if err != nil {
		return fmt.Errorf("apiurl: code challenge: %w", err)
	}
	r.mu.Lock()
	r.challenge = code
	r.mu.Unlock()
	r.log.Debugw("code challenge refreshed")
	return nil
}

func (r *Registry) CodeChallenge() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.challenge
}

// SetTunnelServer records the tunnel host chosen by server discovery.
func (r *Registry) SetTunnelServer(raw string) error {
	u, err := normalizeBaseURL(raw)
	if err != nil {
		return err
	}
	r.mu.Lock()
	prev := r.tunnelServer
	r.tunnelServer = u
	r.mu.Unlock()
	if prev != u {
		r.log.Infow("tunnel server selected", "url", u, "previous", prev)
	}
	return nil
}

func (r *Registry) TunnelServer() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tunnelServer
}

// Server is the configured API base URL.
func (r *Registry) Server() string { return r.server }

func (r *Registry) Fingerprint() Fingerprint { return r.fp }

// UserParams returns a snapshot of the user parameter set.
func (r *Registry) UserParams() UserParams {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return UserParams{URL: r.server, Fingerprint: r.fp, CodeChallenge: r.challenge}
}

// TunnelParams returns a snapshot of the tunnel parameter set.
func (r *Registry) TunnelParams() TunnelParams {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return TunnelParams{URL: r.tunnelServer, Fingerprint: r.fp}
}

// normalizeBaseURL requires an absolute http(s) URL and drops trailing slashes
// so templates can append paths directly.
func normalizeBaseURL(raw string) (string, error) {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: %q has a query or fragment", ErrInvalidBaseURL, raw)
	}
	return s, nil
}
