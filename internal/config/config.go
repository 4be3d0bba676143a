package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/zhubert/parley/internal/errors"
)

// Defaults applied when the config file is absent or partial.
const (
	DefaultBackendURL   = "http://localhost:8000"
	DefaultModel        = "groq-llama"
	DefaultWorkspaceURL = "/workspace/"
	DefaultTheme        = "dark-purple"

	defaultPingIntervalSeconds = 20
	defaultPingTimeoutSeconds  = 5
)

// DefaultModels are the model identifiers offered by the picker, in backend
// priority order.
var DefaultModels = []string{
	"groq-llama",
	"gemini-flash",
	"together-llama",
	"deepseek-chat",
}

// Config holds the application configuration
type Config struct {
	BackendURL           string   `json:"backend_url,omitempty"`
	Model                string   `json:"model,omitempty"`
	Models               []string `json:"models,omitempty"`
	WorkspaceURL         string   `json:"workspace_url,omitempty"`
	Theme                string   `json:"theme,omitempty"`
	NotificationsEnabled bool     `json:"notifications_enabled,omitempty"`
	PingIntervalSeconds  int      `json:"ping_interval_seconds,omitempty"`
	PingTimeoutSeconds   int      `json:"ping_timeout_seconds,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one with defaults if it
// doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}

	// Fill defaults before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills zero-valued fields with defaults.
//
// Thread-safety: NOT thread-safe; only called during single-threaded
// initialization, before the Config is shared across goroutines.
func (c *Config) ensureInitialized() {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if len(c.Models) == 0 {
		c.Models = append([]string{}, DefaultModels...)
	}
	if c.WorkspaceURL == "" {
		c.WorkspaceURL = DefaultWorkspaceURL
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.PingIntervalSeconds == 0 {
		c.PingIntervalSeconds = defaultPingIntervalSeconds
	}
	if c.PingTimeoutSeconds == 0 {
		c.PingTimeoutSeconds = defaultPingTimeoutSeconds
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q has no host", c.BackendURL)
	}

	if c.Model == "" {
		return apperrors.ConfigInvalid("model must not be empty")
	}
	if c.PingIntervalSeconds < 0 {
		return apperrors.ConfigInvalid("ping interval must not be negative")
	}
	if c.PingTimeoutSeconds < 0 {
		return apperrors.ConfigInvalid("ping timeout must not be negative")
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return apperrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return apperrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return apperrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetBackendURL returns the backend base URL
func (c *Config) GetBackendURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackendURL
}

// SetBackendURL overrides the backend base URL
func (c *Config) SetBackendURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BackendURL = u
}

// GetModel returns the active model identifier
func (c *Config) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel sets the active model identifier
func (c *Config) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
}

// GetModels returns a copy of the model picker choices
func (c *Config) GetModels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	models := make([]string, len(c.Models))
	copy(models, c.Models)
	return models
}

// GetWorkspaceURL returns the workspace file URL prefix
func (c *Config) GetWorkspaceURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WorkspaceURL
}

// GetTheme returns the UI theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the UI theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are on
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// PingInterval returns the health probe interval
func (c *Config) PingInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.PingIntervalSeconds) * time.Second
}

// PingTimeout returns the per-probe timeout
func (c *Config) PingTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.PingTimeoutSeconds) * time.Second
}
