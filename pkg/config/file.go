package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of the optional YAML config file at
// <config dir>/config.yaml. It supplies defaults for values the user
// would otherwise pass on every run; environment variables and flags
// take precedence over it.
type fileConfig struct {
	JIRAURL   string `yaml:"jira_url"`
	Username  string `yaml:"username"`
	Sort      string `yaml:"sort"`
	Format    string `yaml:"format"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// FileLoader implements Provider with YAML config file support layered
// under environment variables: env wins where set, the file fills in the
// rest, built-in defaults cover the remainder.
type FileLoader struct {
	*Loader
	path string
}

// NewFileLoader creates a configuration loader reading the YAML file at
// path (typically <config dir>/config.yaml). A missing file is not an
// error; a malformed one is.
func NewFileLoader(path string) Provider {
	return &FileLoader{
		Loader: &Loader{envLoader: &OSEnvLoader{}},
		path:   path,
	}
}

// NewFileLoaderWithEnv creates a file loader with a custom environment
// loader (for testing).
func NewFileLoaderWithEnv(envLoader EnvLoader, path string) Provider {
	return &FileLoader{
		Loader: &Loader{envLoader: envLoader},
		path:   path,
	}
}

// Load loads configuration from the YAML file and environment variables.
func (f *FileLoader) Load() (*Config, error) {
	config, err := f.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, NewConfigFileError(f.path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, NewConfigFileError(f.path, err)
	}

	// The file only applies where the corresponding env var is unset.
	f.applyUnlessEnv(&config.JIRABaseURL, NormalizeBaseURL(fc.JIRAURL), "JIRA_BASE_URL")
	f.applyUnlessEnv(&config.Username, fc.Username, "JIRA_USERNAME")
	f.applyUnlessEnv(&config.SortOrder, fc.Sort, "SORT_ORDER")
	f.applyUnlessEnv(&config.OutputFormat, fc.Format, "OUTPUT_FORMAT")
	f.applyUnlessEnv(&config.LogLevel, fc.LogLevel, "LOG_LEVEL")
	f.applyUnlessEnv(&config.LogFormat, fc.LogFormat, "LOG_FORMAT")

	if err := f.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (f *FileLoader) applyUnlessEnv(target *string, fileValue, envKey string) {
	if fileValue == "" {
		return
	}
	if _, set := f.envLoader.LookupEnv(envKey); set {
		return
	}
	*target = fileValue
}

// ConfigFileError represents an error loading the YAML config file
type ConfigFileError struct {
	FilePath string
	Err      error
}

func NewConfigFileError(filePath string, err error) *ConfigFileError {
	return &ConfigFileError{
		FilePath: filePath,
		Err:      err,
	}
}

func (e *ConfigFileError) Error() string {
	return "failed to load config file '" + e.FilePath + "': " + e.Err.Error()
}

func (e *ConfigFileError) Unwrap() error {
	return e.Err
}
