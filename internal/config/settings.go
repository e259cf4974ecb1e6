package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultServiceBaseURL = "http://127.0.0.1:8000"
const defaultHTTPTimeoutSeconds = 30

type Config struct {
	Service ServiceConfig `toml:"service"`
	Auth    AuthConfig    `toml:"auth"`
	HTTP    HTTPConfig    `toml:"http"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type ServiceConfig struct {
	BaseURL string `toml:"base_url"`
}

type AuthConfig struct {
	CSRFTokenPath string `toml:"csrf_token_path"`
}

type HTTPConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	DarkBackground *bool `toml:"dark_background"`
}

func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			BaseURL: defaultServiceBaseURL,
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: defaultHTTPTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadConfigFromPath(path)
}

// ServiceBaseURL returns the landing service origin without a trailing
// slash.
func (c Config) ServiceBaseURL() string {
	base := strings.TrimSpace(c.Service.BaseURL)
	if base == "" {
		base = defaultServiceBaseURL
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		return defaultServiceBaseURL
	}
	return base
}

// HTTPTimeout bounds every request so a stalled service turns into a
// reported failure instead of a hung view.
func (c Config) HTTPTimeout() time.Duration {
	seconds := c.HTTP.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultHTTPTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) DarkBackground() bool {
	if c.UI.DarkBackground == nil {
		return true
	}
	return *c.UI.DarkBackground
}

// ResolveCSRFTokenPath returns the configured token file location,
// falling back to the default under the data dir.
func (c Config) ResolveCSRFTokenPath() (string, error) {
	path := strings.TrimSpace(c.Auth.CSRFTokenPath)
	if path == "" {
		return TokenPath()
	}
	return resolveConfigPath(path)
}

func loadConfigFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
