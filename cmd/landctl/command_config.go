package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"landctl/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

// configOutput is the effective configuration after defaults, with the
// paths the tool will actually touch.
type configOutput struct {
	ConfigPath string                 `json:"config_path" toml:"config_path"`
	Service    effectiveServiceConfig `json:"service" toml:"service"`
	Auth       effectiveAuthConfig    `json:"auth" toml:"auth"`
	HTTP       effectiveHTTPConfig    `json:"http" toml:"http"`
	Logging    effectiveLoggingConfig `json:"logging" toml:"logging"`
	UI         effectiveUIConfig      `json:"ui" toml:"ui"`
	Paths      effectivePathsConfig   `json:"paths" toml:"paths"`
}

type effectiveServiceConfig struct {
	BaseURL string `json:"base_url" toml:"base_url"`
}

type effectiveAuthConfig struct {
	CSRFTokenPath string `json:"csrf_token_path" toml:"csrf_token_path"`
}

type effectiveHTTPConfig struct {
	TimeoutSeconds int `json:"timeout_seconds" toml:"timeout_seconds"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveUIConfig struct {
	DarkBackground bool `json:"dark_background" toml:"dark_background"`
}

type effectivePathsConfig struct {
	HistoryDB string `json:"history_db" toml:"history_db"`
	UILog     string `json:"ui_log" toml:"ui_log"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		stdout: stdout,
		stderr: stderr,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("defaults", false, "print default config values")
	format := fs.String("format", configFormatJSON, "output format: json|toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	payload, err := buildConfigOutput(*defaults)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(defaults bool) (configOutput, error) {
	configPath, err := config.ConfigPath()
	if err != nil {
		return configOutput{}, err
	}

	var cfg config.Config
	if defaults {
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig()
		if err != nil {
			return configOutput{}, err
		}
	}

	tokenPath, err := cfg.ResolveCSRFTokenPath()
	if err != nil {
		return configOutput{}, err
	}
	historyPath, err := config.HistoryDBPath()
	if err != nil {
		return configOutput{}, err
	}
	uiLogPath, err := config.UILogPath()
	if err != nil {
		return configOutput{}, err
	}

	return configOutput{
		ConfigPath: configPath,
		Service: effectiveServiceConfig{
			BaseURL: cfg.ServiceBaseURL(),
		},
		Auth: effectiveAuthConfig{
			CSRFTokenPath: tokenPath,
		},
		HTTP: effectiveHTTPConfig{
			TimeoutSeconds: int(cfg.HTTPTimeout().Seconds()),
		},
		Logging: effectiveLoggingConfig{
			Level: cfg.LogLevel(),
		},
		UI: effectiveUIConfig{
			DarkBackground: cfg.DarkBackground(),
		},
		Paths: effectivePathsConfig{
			HistoryDB: historyPath,
			UILog:     uiLogPath,
		},
	}, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}
