// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingServer is returned when no server base URL is configured.
var ErrMissingServer = errors.New("config: server address is required")

// Fingerprint overrides the emulated client's identity. Empty fields keep the
// built-in defaults.
type Fingerprint struct {
	OS           string `yaml:"os"`
	OSVersion    string `yaml:"os_version"`
	AppVersion   string `yaml:"app_version"`
	Brand        string `yaml:"brand"`
	BuildNumber  string `yaml:"build_number"`
	ClientSource string `yaml:"client_source"`
	Language     string `yaml:"language"`
	Model        string `yaml:"model"`
}

type Config struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	HTTPAddr string `yaml:"http_addr"` // url-service

	// Server is the base URL of the corplink API, e.g. https://vpn.example.com.
	Server string `yaml:"server"`
	// VPNServer optionally presets the tunnel host; normally it is chosen at runtime.
	VPNServer string `yaml:"vpn_server"`

	Fingerprint Fingerprint `yaml:"fingerprint"`
}

func defaults() Config {
	return Config{Env: "dev", HTTPAddr: ":8090"}
}

// Load reads .env (if present), then the YAML file named by CORPLINK_CONFIG
// (if set), then environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv("CORPLINK_CONFIG"))
}

// LoadFile is like Load with an explicit YAML path.
func LoadFile(path string) (Config, error) {
	_ = godotenv.Load()
	return load(path)
}

func load(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if cfg.Server == "" {
		log.Println("[WARN] CORPLINK_SERVER not set; registry construction will fail")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Env = env("CORPLINK_ENV", c.Env)
	c.LogLevel = env("CORPLINK_LOG_LEVEL", c.LogLevel)
	c.HTTPAddr = env("CORPLINK_HTTP_ADDR", c.HTTPAddr)
	c.Server = strings.TrimSpace(env("CORPLINK_SERVER", c.Server))
	c.VPNServer = strings.TrimSpace(env("CORPLINK_VPN_SERVER", c.VPNServer))

	fp := &c.Fingerprint
	fp.OS = env("CORPLINK_OS", fp.OS)
	fp.OSVersion = env("CORPLINK_OS_VERSION", fp.OSVersion)
	fp.AppVersion = env("CORPLINK_APP_VERSION", fp.AppVersion)
	fp.Brand = env("CORPLINK_BRAND", fp.Brand)
	fp.BuildNumber = env("CORPLINK_BUILD_NUMBER", fp.BuildNumber)
	fp.ClientSource = env("CORPLINK_CLIENT_SOURCE", fp.ClientSource)
	fp.Language = env("CORPLINK_LANGUAGE", fp.Language)
	fp.Model = env("CORPLINK_MODEL", fp.Model)
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server) == "" {
		return ErrMissingServer
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
