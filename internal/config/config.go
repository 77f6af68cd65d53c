package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envFile = ".env"

type Config struct {
	Karbon struct {
		BaseURL     string `envconfig:"KARBON_BASE_URL" default:"https://api.karbonhq.com"`
		AppURL      string `envconfig:"KARBON_APP_URL" default:"https://app2.karbonhq.com/YtfB1S5FYHG"`
		BearerToken string `envconfig:"BEARER_TOKEN" required:"true"`
		AccessKey   string `envconfig:"ACCESS_KEY" required:"true"`
	}

	Output struct {
		Dir          string `envconfig:"OUTPUT_DIR" default:"."`
		InvoicesFile string `envconfig:"INVOICES_FILE" default:"invoices.csv"`
		LogFile      string `envconfig:"LOG_FILE" default:"karbon-invoices.log"`
	}

	CustomFields struct {
		OrganizationsFile string `envconfig:"ORGANIZATIONS_FILE" default:"organizations.csv"`
	}
}

// InvoicesPath is where the base invoice list is written and read back from.
func (c *Config) InvoicesPath() string {
	return filepath.Join(c.Output.Dir, c.Output.InvoicesFile)
}

func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, c.Output.LogFile)
}

// Load reads the .env file that sits next to the running executable (or in
// the working directory when there is none there) and processes the
// environment into a Config. It returns the .env path that was used, or an
// empty string when no file was found.
func Load() (*Config, string, error) {
	path, err := loadEnvFile(envCandidates())
	if err != nil {
		return nil, "", err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, path, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, path, nil
}

func envCandidates() []string {
	var paths []string

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), envFile))
	}

	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, envFile))
	}

	return paths
}

// loadEnvFile exports the first existing candidate. Keys are upper-cased so
// files written with lowercase names (bearer_token=...) still resolve.
// Variables already present in the environment win.
func loadEnvFile(candidates []string) (string, error) {
	for _, path := range candidates {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}

		for key, value := range values {
			key = strings.ToUpper(key)
			if _, set := os.LookupEnv(key); set {
				continue
			}

			if err := os.Setenv(key, value); err != nil {
				return "", fmt.Errorf("setting %s: %w", key, err)
			}
		}

		return path, nil
	}

	return "", nil
}
