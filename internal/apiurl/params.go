package apiurl

import "corplink/pkg/config"

// Fingerprint describes the emulated mobile client. Values are inserted into
// URLs verbatim, so Model carries its comma already percent-encoded.
type Fingerprint struct {
	OS           string `json:"os"`
	Version      string `json:"version"`
	AppVersion   string `json:"app_version"`
	Brand        string `json:"brand"`
	BuildNumber  string `json:"build_number"`
	ClientSource string `json:"client_source"`
	Language     string `json:"language"`
	Model        string `json:"model"`
}

// DefaultFingerprint is the FeiLian iOS client the service expects.
func DefaultFingerprint() Fingerprint {
	return Fingerprint{
		OS:           "iOS",
		Version:      "18.6.2",
		AppVersion:   "3.1.17",
		Brand:        "Apple",
		BuildNumber:  "500",
		ClientSource: "FeiLian",
		Language:     "zh",
		Model:        "iPhone14%2C2",
	}
}

// withOverrides replaces every field that o sets.
func (f Fingerprint) withOverrides(o config.Fingerprint) Fingerprint {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&f.OS, o.OS)
	set(&f.Version, o.OSVersion)
	set(&f.AppVersion, o.AppVersion)
	set(&f.Brand, o.Brand)
	set(&f.BuildNumber, o.BuildNumber)
	set(&f.ClientSource, o.ClientSource)
	set(&f.Language, o.Language)
	set(&f.Model, o.Model)
	return f
}

func (f Fingerprint) lookup(url, name string) (string, bool) {
	switch name {
	case "url":
		return url, true
	case "os":
		return f.OS, true
	case "version":
		return f.Version, true
	case "app_version":
		return f.AppVersion, true
	case "brand":
		return f.Brand, true
	case "build_number":
		return f.BuildNumber, true
	case "client_source":
		return f.ClientSource, true
	case "language":
		return f.Language, true
	case "model":
		return f.Model, true
	}
	return "", false
}

// UserParams feed authentication and session operations.
type UserParams struct {
	URL string `json:"url"`
	Fingerprint
	CodeChallenge string `json:"code_challenge"`
}

func (p UserParams) Lookup(name string) (string, bool) {
	if name == "code_challenge" {
		return p.CodeChallenge, true
	}
	return p.Fingerprint.lookup(p.URL, name)
}

// TunnelParams feed tunnel operations. URL is the selected tunnel host.
type TunnelParams struct {
	URL string `json:"url"`
	Fingerprint
}

func (p TunnelParams) Lookup(name string) (string, bool) {
	return p.Fingerprint.lookup(p.URL, name)
}
