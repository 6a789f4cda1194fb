// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for flowchat.
//
// Supports TOML, JSON and YAML configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.flowchat/config.toml
//   - ~/.flowchat/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/flowchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete flowchat configuration.
//
// A Config is built once at startup and passed by pointer to every component
// that needs it. Nothing mutates it after Load returns.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	// Access gate configuration
	Access AccessConfig `toml:"access" json:"access" yaml:"access"`

	// Workflows is the fixed set of workflow endpoints (exactly three).
	Workflows []WorkflowConfig `toml:"workflows" json:"workflows" yaml:"workflows"`

	// Auth holds the optional static Basic credentials sent to every workflow.
	Auth AuthConfig `toml:"auth" json:"auth" yaml:"auth"`

	// Request holds settings for outgoing workflow requests.
	Request RequestConfig `toml:"request" json:"request" yaml:"request"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log" yaml:"log"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`
}

// AccessConfig contains the IP allow-list configuration.
type AccessConfig struct {
	// AllowList is a comma-separated list of caller addresses allowed to chat.
	// Empty means nobody is allowed.
	AllowList string `toml:"allow_list" json:"allow_list" yaml:"allow_list"`
	// LookupURL is the public IP lookup service. It must answer {"ip": "..."}.
	LookupURL string `toml:"lookup_url" json:"lookup_url" yaml:"lookup_url"`
	// LookupTimeout bounds the single lookup request.
	LookupTimeout Duration `toml:"lookup_timeout" json:"lookup_timeout" yaml:"lookup_timeout"`
}

// WorkflowConfig describes one workflow endpoint.
type WorkflowConfig struct {
	ID   string `toml:"id" json:"id" yaml:"id"`
	Name string `toml:"name" json:"name" yaml:"name"`
	URL  string `toml:"url" json:"url" yaml:"url"`
}

// AuthConfig contains the static Basic credentials.
// Both fields must be set for the Authorization header to be sent.
type AuthConfig struct {
	Username string `toml:"username" json:"username" yaml:"username"`
	Password string `toml:"password" json:"password" yaml:"password"`
}

// HasCredentials reports whether both username and password are set.
func (a AuthConfig) HasCredentials() bool {
	return a.Username != "" && a.Password != ""
}

// RequestConfig contains workflow request settings.
type RequestConfig struct {
	// Timeout bounds each workflow POST, including reading the reply.
	Timeout Duration `toml:"timeout" json:"timeout" yaml:"timeout"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled.
	Level string `toml:"level" json:"level" yaml:"level"`
	// File is the log destination. "stderr" logs to stderr, "off" disables logging.
	// Empty means ~/.flowchat/flowchat.log.
	File string `toml:"file" json:"file" yaml:"file"`
	// Pretty enables human-readable console formatting.
	Pretty bool `toml:"pretty" json:"pretty" yaml:"pretty"`
}

// UIConfig contains user interface preferences.
type UIConfig struct {
	// Markdown renders assistant replies as markdown.
	Markdown bool `toml:"markdown" json:"markdown" yaml:"markdown"`
	// AltScreen runs the TUI in the terminal's alternate screen buffer.
	AltScreen bool `toml:"alt_screen" json:"alt_screen" yaml:"alt_screen"`
	// TimeFormat is the Go layout used for message timestamps.
	TimeFormat string `toml:"time_format" json:"time_format" yaml:"time_format"`
}

// =============================================================================
// DURATION
// =============================================================================

// Duration is a time.Duration that reads and writes as a string like "10s"
// in every supported file format.
type Duration struct {
	time.Duration
}

// NewDuration wraps d.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default lookup and request settings.
const (
	DefaultLookupURL     = "https://api.ipify.org?format=json"
	DefaultLookupTimeout = 10 * time.Second
	DefaultTimeout       = 60 * time.Second
	DefaultTimeFormat    = "15:04"
)

// Workflow identifiers shipped by default.
const (
	WorkflowJobOffer        = "job-offer"
	WorkflowSocialContent   = "social-content"
	WorkflowIdeaImprovement = "idea-improvement"
)

// WorkflowCount is the number of workflow endpoints a config must define.
const WorkflowCount = 3

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Access: AccessConfig{
			AllowList:     "",
			LookupURL:     DefaultLookupURL,
			LookupTimeout: NewDuration(DefaultLookupTimeout),
		},

		Workflows: []WorkflowConfig{
			{ID: WorkflowJobOffer, Name: "Job offer"},
			{ID: WorkflowSocialContent, Name: "Social content"},
			{ID: WorkflowIdeaImprovement, Name: "Idea improvement"},
		},

		Request: RequestConfig{
			Timeout: NewDuration(DefaultTimeout),
		},

		Log: LogConfig{
			Level:  "info",
			File:   "",
			Pretty: false,
		},

		UI: UIConfig{
			Markdown:   true,
			AltScreen:  true,
			TimeFormat: DefaultTimeFormat,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the flowchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".flowchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flowchat.log"), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files hold the Basic credentials and should be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	return finish(cfg)
}

// LoadFromPath loads configuration from an explicit file. The format is
// chosen by extension: .json, .yaml/.yml, anything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	case ".yaml", ".yml":
		err = LoadYAML(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return finish(cfg)
}

// finish applies environment overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	// Replace rather than merge the workflow list.
	cfg.Workflows = nil
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	cfg.Workflows = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file into cfg.
func LoadYAML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	cfg.Workflows = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	err := util.WriteFileAtomic(path, 0o600, func(w io.Writer) error {
		if _, err := io.WriteString(w, configFileHeader); err != nil {
			return err
		}
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const configFileHeader = `# flowchat configuration file
# Credentials below are sent as HTTP Basic auth (base64, not encrypted).

`

// =============================================================================
// DEFAULTS & ENVIRONMENT
// =============================================================================

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Access.LookupURL == "" {
		c.Access.LookupURL = defaults.Access.LookupURL
	}
	if c.Access.LookupTimeout.Duration == 0 {
		c.Access.LookupTimeout = defaults.Access.LookupTimeout
	}
	if len(c.Workflows) == 0 {
		c.Workflows = defaults.Workflows
	}
	if c.Request.Timeout.Duration == 0 {
		c.Request.Timeout = defaults.Request.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.UI.TimeFormat == "" {
		c.UI.TimeFormat = defaults.UI.TimeFormat
	}
}

// workflowEnv maps workflow IDs to the environment variable holding their URL.
var workflowEnv = map[string]string{
	WorkflowJobOffer:        "N8N_WEBHOOK_JOB_OFFER",
	WorkflowSocialContent:   "N8N_WEBHOOK_SOCIAL_CONTENT",
	WorkflowIdeaImprovement: "N8N_WEBHOOK_IDEA_IMPROVEMENT",
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	// N8N_WEBHOOK_IP_APPROUV
	if allow, ok := os.LookupEnv("N8N_WEBHOOK_IP_APPROUV"); ok {
		c.Access.AllowList = allow
	}

	// FLOWCHAT_LOOKUP_URL
	if lookup := os.Getenv("FLOWCHAT_LOOKUP_URL"); lookup != "" {
		c.Access.LookupURL = lookup
	}

	// N8N_WEBHOOK_JOB_OFFER, N8N_WEBHOOK_SOCIAL_CONTENT, N8N_WEBHOOK_IDEA_IMPROVEMENT
	if len(c.Workflows) == 0 {
		c.Workflows = Default().Workflows
	}
	for i := range c.Workflows {
		env, ok := workflowEnv[c.Workflows[i].ID]
		if !ok {
			continue
		}
		if u := os.Getenv(env); u != "" {
			c.Workflows[i].URL = u
		}
	}

	// N8N_AUTH_USERNAME / N8N_AUTH_PASSWORD
	if user := os.Getenv("N8N_AUTH_USERNAME"); user != "" {
		c.Auth.Username = user
	}
	if pass := os.Getenv("N8N_AUTH_PASSWORD"); pass != "" {
		c.Auth.Password = pass
	}

	// FLOWCHAT_LOG_LEVEL
	if level := os.Getenv("FLOWCHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ErrInvalidURL is returned by ValidateURL for malformed endpoint URLs.
var ErrInvalidURL = errors.New("invalid URL")

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate validates the configuration and returns any errors.
//
// Empty workflow URLs and an empty allow-list are accepted: the first makes
// submissions to that workflow fail, the second denies every caller. Both
// are reported by Warnings instead.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := ValidateURL(c.Access.LookupURL); err != nil {
		errs = append(errs, ValidationError{Field: "access.lookup_url", Message: err.Error()})
	}
	if c.Access.LookupTimeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "access.lookup_timeout", Message: "must be positive"})
	}

	if len(c.Workflows) != WorkflowCount {
		errs = append(errs, ValidationError{
			Field:   "workflows",
			Message: fmt.Sprintf("expected exactly %d workflows, got %d", WorkflowCount, len(c.Workflows)),
		})
	}
	seen := make(map[string]bool, len(c.Workflows))
	for i, w := range c.Workflows {
		field := fmt.Sprintf("workflows[%d]", i)
		switch {
		case strings.TrimSpace(w.ID) == "":
			errs = append(errs, ValidationError{Field: field + ".id", Message: "must not be empty"})
		case seen[w.ID]:
			errs = append(errs, ValidationError{Field: field + ".id", Message: fmt.Sprintf("duplicate id '%s'", w.ID)})
		}
		seen[w.ID] = true
		if strings.TrimSpace(w.Name) == "" {
			errs = append(errs, ValidationError{Field: field + ".name", Message: "must not be empty"})
		}
		if w.URL != "" {
			if err := ValidateURL(w.URL); err != nil {
				errs = append(errs, ValidationError{Field: field + ".url", Message: err.Error()})
			}
		}
	}

	if c.Request.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{Field: "request.timeout", Message: "must be positive"})
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateURL checks that raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

// Warnings returns non-fatal configuration problems worth showing to an operator.
func (c *Config) Warnings() []string {
	var warnings []string

	if strings.TrimSpace(c.Access.AllowList) == "" {
		warnings = append(warnings, "access.allow_list is empty: every caller will be denied")
	}
	for _, w := range c.Workflows {
		if w.URL == "" {
			warnings = append(warnings, fmt.Sprintf("workflow %q has no URL: submissions to it will fail", w.ID))
			continue
		}
		if strings.HasPrefix(strings.ToLower(w.URL), "http://") {
			warnings = append(warnings, fmt.Sprintf("workflow %q uses plain HTTP", w.ID))
		}
	}
	switch {
	case c.Auth.HasCredentials():
		warnings = append(warnings, "auth credentials are sent as HTTP Basic auth (base64 encoded, not encrypted)")
	case c.Auth.Username != "" || c.Auth.Password != "":
		warnings = append(warnings, "only one of auth.username / auth.password is set: no Authorization header will be sent")
	}
	return warnings
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Workflows = append([]WorkflowConfig(nil), c.Workflows...)
	return &clone
}

// String returns a string representation of the config for debugging.
// The password is redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Auth.Password != "" {
		safe.Auth.Password = "[REDACTED]"
	}

	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
