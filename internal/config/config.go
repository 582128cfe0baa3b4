// Package config loads and persists the session configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shaunwen/myprs/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the Bitbucket API v2 endpoint used when none is configured.
const DefaultBaseURL = "https://api.bitbucket.org/2.0"

const (
	defaultDirPerms  = 0o750
	defaultFilePerms = 0o600
)

// SessionConfig holds the persisted session settings: credentials, the API
// base URL, the default status filter and the ordered repository list. The
// repo order is the display/group order.
type SessionConfig struct {
	BaseURL       string           `yaml:"base_url"`
	Email         string           `yaml:"email"`
	APIToken      string           `yaml:"api_token"`
	DefaultStatus models.Status    `yaml:"default_status"`
	Repos         []models.RepoRef `yaml:"repos"`

	path string
}

// Default returns a configuration with default values and the standard
// config path.
func Default() *SessionConfig {
	return &SessionConfig{
		BaseURL: DefaultBaseURL,
		path:    defaultConfigPath(),
	}
}

// Load reads the configuration from configPath, or from the standard
// location when configPath is empty. A missing file yields defaults; an
// unreadable or unparseable file is an error so a broken config is never
// silently overwritten on save.
func Load(configPath string) (*SessionConfig, error) {
	cfg := Default()
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return cfg, err
		}
		cfg.path = expanded
	}

	data, err := os.ReadFile(cfg.path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config at %s: %w", cfg.path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config at %s: %w", cfg.path, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// Save writes the configuration back to its path, creating the parent
// directory as needed.
func (c *SessionConfig) Save() error {
	if c.path == "" {
		c.path = defaultConfigPath()
	}
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, defaultDirPerms); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(c.path, data, defaultFilePerms); err != nil {
		return fmt.Errorf("failed to write config at %s: %w", c.path, err)
	}
	return nil
}

// Path returns the file the configuration was loaded from and saves to.
func (c *SessionConfig) Path() string {
	return c.path
}

// SetPath overrides the config file location. Used by tests.
func (c *SessionConfig) SetPath(path string) {
	c.path = path
}

// Credentials returns the configured email/token pair, or ok=false when
// either half is missing.
func (c *SessionConfig) Credentials() (email, token string, ok bool) {
	if c.Email == "" || c.APIToken == "" {
		return "", "", false
	}
	return c.Email, c.APIToken, true
}

// AddRepo appends a repository. Duplicates are rejected; the return value
// reports whether the list changed.
func (c *SessionConfig) AddRepo(ref models.RepoRef) bool {
	for _, existing := range c.Repos {
		if existing == ref {
			return false
		}
	}
	c.Repos = append(c.Repos, ref)
	return true
}

// RemoveRepo removes a repository, reporting whether it was present.
func (c *SessionConfig) RemoveRepo(ref models.RepoRef) bool {
	kept := c.Repos[:0]
	for _, existing := range c.Repos {
		if existing != ref {
			kept = append(kept, existing)
		}
	}
	changed := len(kept) != len(c.Repos)
	c.Repos = kept
	return changed
}

// HasRepo reports whether the repository is configured.
func (c *SessionConfig) HasRepo(ref models.RepoRef) bool {
	for _, existing := range c.Repos {
		if existing == ref {
			return true
		}
	}
	return false
}

// SetStatus updates the default status filter, reporting whether it changed.
func (c *SessionConfig) SetStatus(status models.Status) bool {
	if c.DefaultStatus == status {
		return false
	}
	c.DefaultStatus = status
	return true
}

// Overrides carries the CLI flag values applied on top of file and
// environment configuration.
type Overrides struct {
	Repos    []string
	Email    string
	APIToken string
	Status   string
	BaseURL  string
}

// ApplyEnvAndFlags layers environment variables then CLI flags over the
// loaded configuration. Precedence: file < env < flags. The config is saved
// when anything changed.
func (c *SessionConfig) ApplyEnvAndFlags(o Overrides) error {
	changed := false

	if value := readEnv("BITBUCKET_EMAIL"); value != "" {
		c.Email = value
		changed = true
	}
	if value := readEnv("BITBUCKET_API_TOKEN"); value != "" {
		c.APIToken = value
		changed = true
	}
	if value := readEnv("BITBUCKET_BASE_URL"); value != "" {
		c.BaseURL = value
		changed = true
	}
	if value := readEnv("BITBUCKET_PR_STATUS"); value != "" {
		status, err := models.ParseStatus(value)
		if err != nil {
			return fmt.Errorf("BITBUCKET_PR_STATUS: %w", err)
		}
		changed = c.SetStatus(status) || changed
	}
	if value := readEnv("BITBUCKET_REPOS"); value != "" {
		for _, item := range strings.Split(value, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			ref, err := models.ParseRepoRef(item)
			if err != nil {
				return fmt.Errorf("BITBUCKET_REPOS: %w", err)
			}
			changed = c.AddRepo(ref) || changed
		}
	}
	if workspace, repo := readEnv("BITBUCKET_WORKSPACE"), readEnv("BITBUCKET_REPO"); workspace != "" && repo != "" {
		changed = c.AddRepo(models.RepoRef{Workspace: workspace, Repo: repo}) || changed
	}

	if o.Email != "" {
		c.Email = o.Email
		changed = true
	}
	if o.APIToken != "" {
		c.APIToken = o.APIToken
		changed = true
	}
	if o.BaseURL != "" && o.BaseURL != c.BaseURL {
		c.BaseURL = o.BaseURL
		changed = true
	}
	if o.Status != "" {
		status, err := models.ParseStatus(o.Status)
		if err != nil {
			return err
		}
		changed = c.SetStatus(status) || changed
	}
	for _, raw := range o.Repos {
		ref, err := models.ParseRepoRef(raw)
		if err != nil {
			return err
		}
		changed = c.AddRepo(ref) || changed
	}

	if changed {
		return c.Save()
	}
	return nil
}

func readEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func defaultConfigPath() string {
	return filepath.Join(getConfigDir(), "myprs", "config.yaml")
}

// ExpandPath expands a leading ~ and environment variables in a path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
