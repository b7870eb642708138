package apiurl

import (
	"fmt"
	"strings"

	"corplink/pkg/template"
)

// CompanyMatchURL resolves a company code to its corplink server before any
// server address is known.
const CompanyMatchURL = "https://corplink.volcengine.cn/api/match"

// Query strings share one field order; os_version is fed by {{version}}.
const (
	clientQuery = "app_version={{app_version}}&brand={{brand}}&build_number={{build_number}}&client_source={{client_source}}" +
		"&language={{language}}&model={{model}}&os={{os}}&os_version={{version}}"
	challengeQuery = "app_version={{app_version}}&brand={{brand}}&build_number={{build_number}}&client_source={{client_source}}" +
		"&code_challenge={{code_challenge}}&language={{language}}&model={{model}}&os={{os}}&os_version={{version}}"
)

const (
	urlLoginMethod         = "{{url}}/api/login/setting?" + clientQuery
	urlTPSLoginMethod      = "{{url}}/api/tpslogin/link?" + challengeQuery
	urlTPSTokenCheck       = "{{url}}/api/tpslogin/token/check?" + challengeQuery
	urlCorplinkLoginMethod = "{{url}}/api/lookup?" + clientQuery
	urlRequestCode         = "{{url}}/api/login/code/send?" + clientQuery
	urlVerifyCode          = "{{url}}/api/login/code/verify?" + clientQuery
	urlLoginPassword       = "{{url}}/api/v1/login?" + clientQuery
	urlLoginMFAVerify      = "{{url}}/api/v1/login/mfa/verify?" + clientQuery
	urlListVPN             = "{{url}}/api/vpn/list?" + clientQuery
	urlOTP                 = "{{url}}/api/v2/p/otp?" + clientQuery

	urlPingVPNHost = "{{url}}/vpn/ping?" + clientQuery
	urlFetchPeer   = "{{url}}/vpn/conn?" + clientQuery
	urlOperateVPN  = "{{url}}/vpn/report?" + clientQuery
)

// Kind selects the parameter set an operation renders with.
type Kind int

const (
	// KindUser operations target the configured server and carry the challenge.
	KindUser Kind = iota
	// KindTunnel operations target the selected tunnel host.
	KindTunnel
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindTunnel:
		return "tunnel"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Operation is one logical corplink API call.
type Operation int

const (
	LoginMethod Operation = iota
	ThirdPartyLoginMethod
	ThirdPartyTokenCheck
	CorplinkLoginMethod
	RequestEmailCode
	VerifyEmailCode
	PasswordLogin
	MFAVerify
	ListTunnels
	OneTimePassword

	PingTunnelHost
	ConnectTunnel
	KeepAliveTunnel
	DisconnectTunnel

	numOperations
)

type operationSpec struct {
	name string
	kind Kind
	tmpl *template.Template
}

// keep-alive and disconnect hit the same endpoint; the caller picks the payload.
var operateVPN = template.MustParse(urlOperateVPN)

var catalog = [numOperations]operationSpec{
	LoginMethod:           {"login-method", KindUser, template.MustParse(urlLoginMethod)},
	ThirdPartyLoginMethod: {"third-party-login-method", KindUser, template.MustParse(urlTPSLoginMethod)},
	ThirdPartyTokenCheck:  {"third-party-token-check", KindUser, template.MustParse(urlTPSTokenCheck)},
	CorplinkLoginMethod:   {"corplink-login-method", KindUser, template.MustParse(urlCorplinkLoginMethod)},
	RequestEmailCode:      {"request-email-code", KindUser, template.MustParse(urlRequestCode)},
	VerifyEmailCode:       {"verify-email-code", KindUser, template.MustParse(urlVerifyCode)},
	PasswordLogin:         {"password-login", KindUser, template.MustParse(urlLoginPassword)},
	MFAVerify:             {"mfa-verify", KindUser, template.MustParse(urlLoginMFAVerify)},
	ListTunnels:           {"list-tunnels", KindUser, template.MustParse(urlListVPN)},
	OneTimePassword:       {"one-time-password", KindUser, template.MustParse(urlOTP)},

	PingTunnelHost:   {"ping-tunnel-host", KindTunnel, template.MustParse(urlPingVPNHost)},
	ConnectTunnel:    {"connect-tunnel", KindTunnel, template.MustParse(urlFetchPeer)},
	KeepAliveTunnel:  {"keep-alive-tunnel", KindTunnel, operateVPN},
	DisconnectTunnel: {"disconnect-tunnel", KindTunnel, operateVPN},
}

// Operations lists the whole catalogue in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, numOperations)
	for op := Operation(0); op < numOperations; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ParseOperation maps a canonical name such as "list-tunnels" to its Operation.
func ParseOperation(name string) (Operation, error) {
	for op := Operation(0); op < numOperations; op++ {
		if catalog[op].name == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Valid reports whether op is part of the catalogue.
func (op Operation) Valid() bool { return op >= 0 && op < numOperations }

func (op Operation) String() string {
	if !op.Valid() {
		return fmt.Sprintf("operation(%d)", int(op))
	}
	return catalog[op].name
}

// Kind returns the parameter set op renders with.
func (op Operation) Kind() Kind {
	if !op.Valid() {
		return Kind(-1)
	}
	return catalog[op].kind
}

// Template returns the raw template text, or "" for an invalid op.
func (op Operation) Template() string {
	if !op.Valid() {
		return ""
	}
	return catalog[op].tmpl.String()
}

// Path is the endpoint path without base URL or query, e.g. "/api/vpn/list".
func (op Operation) Path() string {
	p := strings.TrimPrefix(op.Template(), "{{url}}")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

func (op Operation) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}
	return []byte(op.String()), nil
}

func (op *Operation) UnmarshalText(b []byte) error {
	parsed, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}
