package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultJIRABaseURL is the designated default remote. Authentication is
// mandatory for this endpoint regardless of the --no-auth flag.
const DefaultJIRABaseURL = "https://ephocks.atlassian.net"

// Config represents the application configuration. It is constructed once
// at process start and passed explicitly into each component; there is no
// ambient global state.
type Config struct {
	// JIRA configuration
	JIRABaseURL string `env:"JIRA_BASE_URL" yaml:"jira_url"`
	Username    string `env:"JIRA_USERNAME" yaml:"username"`

	// Credential record location
	ConfigDir string `env:"JIRA_BRANCH_CHECKER_CONFIG_DIR" yaml:"config_dir"`
	TokenFile string `env:"JIRA_BRANCH_CHECKER_TOKEN_FILE" yaml:"token_file"`

	// HTTP behavior
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" default:"30s"`
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" default:"10s"`
	RequestDelay time.Duration `env:"REQUEST_DELAY" default:"0s"`

	// Authentication retry bound
	MaxAuthAttempts int `env:"MAX_AUTH_ATTEMPTS" default:"3"`

	// Output configuration
	SortOrder    string `env:"SORT_ORDER" yaml:"sort" default:"status"`
	OutputFormat string `env:"OUTPUT_FORMAT" yaml:"format" default:"table"`

	// Application configuration
	LogLevel  string `env:"LOG_LEVEL" yaml:"log_level" default:"info"`
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format" default:"text"`
}

// Provider defines the interface for configuration management
// This enables dependency injection and easy testing
type Provider interface {
	Load() (*Config, error)
	Validate(*Config) error
	LoadFromEnv() (*Config, error)
}

// Loader implements the Provider interface
type Loader struct {
	envLoader EnvLoader
}

// EnvLoader defines interface for environment variable loading
// This allows for testing with mock environment variables
type EnvLoader interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
}

// OSEnvLoader implements EnvLoader using os package
type OSEnvLoader struct{}

func (o *OSEnvLoader) Getenv(key string) string {
	return os.Getenv(key)
}

func (o *OSEnvLoader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// NewLoader creates a new configuration loader
func NewLoader() Provider {
	return &Loader{
		envLoader: &OSEnvLoader{},
	}
}

// NewLoaderWithEnv creates a loader with custom environment loader (for testing)
func NewLoaderWithEnv(envLoader EnvLoader) Provider {
	return &Loader{
		envLoader: envLoader,
	}
}

// Load loads configuration from environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables, applying
// defaults for anything unset, and validates the result.
func (l *Loader) LoadFromEnv() (*Config, error) {
	config := &Config{}

	config.JIRABaseURL = NormalizeBaseURL(l.getEnvWithDefault("JIRA_BASE_URL", DefaultJIRABaseURL))
	config.Username = l.envLoader.Getenv("JIRA_USERNAME")

	config.ConfigDir = l.getEnvWithDefault("JIRA_BRANCH_CHECKER_CONFIG_DIR", defaultConfigDir())
	config.TokenFile = l.getEnvWithDefault("JIRA_BRANCH_CHECKER_TOKEN_FILE",
		filepath.Join(config.ConfigDir, "tokens.ini"))

	config.HTTPTimeout = l.getDurationWithDefault("HTTP_TIMEOUT", 30*time.Second)
	config.ProbeTimeout = l.getDurationWithDefault("PROBE_TIMEOUT", 10*time.Second)
	config.RequestDelay = l.getDurationWithDefault("REQUEST_DELAY", 0)
	config.MaxAuthAttempts = l.getIntWithDefault("MAX_AUTH_ATTEMPTS", 3)

	config.SortOrder = l.getEnvWithDefault("SORT_ORDER", SortByStatus)
	config.OutputFormat = l.getEnvWithDefault("OUTPUT_FORMAT", FormatTable)

	config.LogLevel = l.getEnvWithDefault("LOG_LEVEL", "info")
	config.LogFormat = l.getEnvWithDefault("LOG_FORMAT", "text")

	if err := l.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// NormalizeBaseURL strips trailing slashes from an endpoint so that URLs
// built from it never carry a double slash and stored-token lookups match
// regardless of how the endpoint was written.
func NormalizeBaseURL(url string) string {
	return strings.TrimRight(url, "/")
}

// Sort order values for the final report.
const (
	SortByStatus = "status"
	SortByTicket = "ticket"
)

// Output format values for the final report.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

// Validate validates the configuration
func (l *Loader) Validate(config *Config) error {
	var errors []string

	if config.JIRABaseURL == "" {
		errors = append(errors, "JIRA base URL is required")
	} else if err := l.validateURL(config.JIRABaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("JIRA base URL is invalid: %v", err))
	}

	if config.TokenFile == "" {
		errors = append(errors, "token file path is required")
	}

	if config.HTTPTimeout <= 0 {
		errors = append(errors, "HTTP_TIMEOUT must be positive")
	}
	if config.ProbeTimeout <= 0 {
		errors = append(errors, "PROBE_TIMEOUT must be positive")
	}
	if config.RequestDelay < 0 {
		errors = append(errors, "REQUEST_DELAY must be non-negative")
	}
	if config.MaxAuthAttempts < 1 {
		errors = append(errors, "MAX_AUTH_ATTEMPTS must be at least 1")
	}

	if err := validateOneOf("sort order", config.SortOrder, SortByStatus, SortByTicket); err != nil {
		errors = append(errors, err.Error())
	}
	if err := validateOneOf("output format", config.OutputFormat, FormatTable, FormatCSV); err != nil {
		errors = append(errors, err.Error())
	}
	if err := validateOneOf("log level", config.LogLevel, "debug", "info", "warn", "error"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := validateOneOf("log format", config.LogFormat, "text", "json"); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return &ValidationError{Errors: errors}
	}

	return nil
}

// ValidationError represents configuration validation errors
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Helper methods

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".jira-branch-checker")
	}
	return filepath.Join(home, ".config", "jira-branch-checker")
}

func (l *Loader) getEnvWithDefault(key, defaultValue string) string {
	if value := l.envLoader.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (l *Loader) validateURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

func validateOneOf(what, value string, valid ...string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("%s is invalid: must be one of: %s", what, strings.Join(valid, ", "))
}

// getDurationWithDefault gets a duration from environment with fallback to default
func (l *Loader) getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr := l.envLoader.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}

// getIntWithDefault gets an integer from environment with fallback to default
func (l *Loader) getIntWithDefault(key string, defaultValue int) int {
	valueStr := l.envLoader.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}

	return defaultValue
}
