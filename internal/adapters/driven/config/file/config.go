// Package file loads application configuration from a TOML file with
// environment overrides, layered on top of the connector defaults.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/raksonibs/waffle/internal/connectors/office"
)

// AppConfig is the on-disk configuration shape (~/.waffle/config.toml).
// Zero values mean "keep the default".
type AppConfig struct {
	OAuth struct {
		ClientID     string   `toml:"client_id"`
		ClientSecret string   `toml:"client_secret"`
		BaseURL      string   `toml:"base_url"`
		RedirectURI  string   `toml:"redirect_uri"`
		Scopes       []string `toml:"scopes"`
	} `toml:"oauth"`

	API struct {
		BaseURL     string `toml:"base_url"`
		MaxPageSize int    `toml:"max_page_size"`
	} `toml:"api"`

	Browser struct {
		ExecPath string `toml:"exec_path"`
	} `toml:"browser"`
}

// DefaultPath returns ~/.waffle/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".waffle", "config.toml"), nil
}

// Load reads the configuration file at path (DefaultPath when empty).
// A missing file is not an error; the zero config is returned.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	var cfg AppConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration back to path (DefaultPath when empty),
// creating the directory if needed.
func Save(path string, cfg *AppConfig) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	// 0600: may contain the OAuth client secret.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays WAFFLE_* environment variables onto the file config.
// Environment values win over file values.
func ApplyEnv(cfg *AppConfig) {
	if v := os.Getenv("WAFFLE_CLIENT_ID"); v != "" {
		cfg.OAuth.ClientID = v
	}
	if v := os.Getenv("WAFFLE_CLIENT_SECRET"); v != "" {
		cfg.OAuth.ClientSecret = v
	}
	if v := os.Getenv("WAFFLE_REDIRECT_URI"); v != "" {
		cfg.OAuth.RedirectURI = v
	}
	if v := os.Getenv("WAFFLE_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("WAFFLE_MAX_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.MaxPageSize = n
		}
	}
	if v := os.Getenv("WAFFLE_BROWSER_PATH"); v != "" {
		cfg.Browser.ExecPath = v
	}
}

// Merge overlays the non-zero file/env values onto the connector defaults,
// producing the immutable config injected into the service.
func Merge(base *office.Config, cfg *AppConfig) *office.Config {
	merged := *base

	if cfg.OAuth.ClientID != "" {
		merged.OAuth.ClientID = cfg.OAuth.ClientID
	}
	if cfg.OAuth.ClientSecret != "" {
		merged.OAuth.ClientSecret = cfg.OAuth.ClientSecret
	}
	if cfg.OAuth.BaseURL != "" {
		merged.OAuth.BaseURL = cfg.OAuth.BaseURL
	}
	if cfg.OAuth.RedirectURI != "" {
		merged.OAuth.RedirectURI = cfg.OAuth.RedirectURI
	}
	if len(cfg.OAuth.Scopes) > 0 {
		merged.OAuth.Scopes = cfg.OAuth.Scopes
	}
	if cfg.API.BaseURL != "" {
		merged.API.BaseURL = cfg.API.BaseURL
	}
	if cfg.API.MaxPageSize > 0 {
		merged.API.MaxPageSize = cfg.API.MaxPageSize
	}

	return &merged
}
