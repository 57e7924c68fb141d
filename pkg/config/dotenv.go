package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DotEnvLoader implements Provider with a .env overlay: values from the
// listed files are pushed into the process environment before the normal
// environment load runs, so everything downstream sees one consistent
// environment.
type DotEnvLoader struct {
	*Loader
	paths []string
}

// NewDotEnvLoader creates a configuration loader that overlays the given
// .env files, defaulting to ./.env when none are named. Missing files are
// skipped; malformed ones are errors.
func NewDotEnvLoader(paths ...string) Provider {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	return &DotEnvLoader{
		Loader: &Loader{envLoader: &OSEnvLoader{}},
		paths:  paths,
	}
}

// Load applies each existing .env file in order, later files winning, then
// loads configuration from the resulting environment.
func (d *DotEnvLoader) Load() (*Config, error) {
	for _, path := range d.paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Overload(path); err != nil {
			return nil, NewConfigFileError(path, err)
		}
	}

	return d.LoadFromEnv()
}
