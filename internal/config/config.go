// Package config loads process settings from a .env file and ADMINKIT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every environment variable, e.g. ADMINKIT_ADDR.
const Prefix = "ADMINKIT"

// Config holds the settings shared by the adminkit commands.
type Config struct {
	Addr         string `envconfig:"ADDR" default:":8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty       bool   `envconfig:"PRETTY" default:"false"`
	TemplatesDir string `envconfig:"TEMPLATES_DIR"`
	Theme        string `envconfig:"THEME" default:"default"`
	ThemeVariant string `envconfig:"THEME_VARIANT"`
	// ClientDownloads reports whether clients may download exports.
	ClientDownloads bool   `envconfig:"CLIENT_DOWNLOADS" default:"true"`
	SchemasDir      string `envconfig:"SCHEMAS_DIR"`
	CSRFSecure      bool   `envconfig:"CSRF_SECURE" default:"false"`
}

// Load reads the given .env files, when present, and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// DefaultEnvFiles lists the .env files Load reads from the command line tools.
func DefaultEnvFiles() []string {
	files := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, home+string(os.PathSeparator)+".adminkit.env")
	}
	return files
}
