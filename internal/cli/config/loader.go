// Package config defines the CLI configuration structure.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/hashrest-go/internal/cli/output"
	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/infra/confloader"
	"github.com/yndnr/hashrest-go/internal/telemetry/logger"
)

// EnvPrefix prefixes environment variables that override the config file.
const EnvPrefix = "HASHREST_"

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".hashrest", "cli.yaml")
}

// Load loads CLI configuration.
//
// An empty path reads DefaultConfigPath if it exists. An explicit path
// must exist. HASHREST_* environment variables override file values.
func Load(path string) (*CLIConfig, error) {
	opt := confloader.WithConfigFile(path)
	if path == "" {
		opt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}

	loader := confloader.NewLoader(opt,
		confloader.WithDefaults(defaultValues()),
		confloader.WithEnvPrefix(EnvPrefix),
	)

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrInvalidConfig.WithDetails(err.Error()).WithCause(err)
	}
	return cfg, nil
}

// Save writes CLI configuration as YAML with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// NormalizeServer adds a missing http:// scheme and trims trailing slashes.
func NormalizeServer(server string) (string, error) {
	s := strings.TrimSpace(server)
	if s == "" {
		return "", errors.New("server is empty")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse server: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server %q has no host", server)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// Validate checks the configuration and returns ErrInvalidConfig
// describing every problem found.
func (c *CLIConfig) Validate() error {
	var errs []error

	if _, err := NormalizeServer(c.Server); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if c.HTTP.Header == "" {
		errs = append(errs, errors.New("http.header: empty"))
	} else if strings.ContainsAny(c.HTTP.Header, " \t\r\n:") {
		errs = append(errs, fmt.Errorf("http.header: invalid name %q", c.HTTP.Header))
	}
	if n, err := c.HTTP.MaxBodyBytes(); err != nil {
		errs = append(errs, fmt.Errorf("http.maxbody: %w", err))
	} else if n <= 0 {
		errs = append(errs, fmt.Errorf("http.maxbody: must be positive, got %q", c.HTTP.MaxBody))
	}
	if (c.HTTP.TLS.Cert == "") != (c.HTTP.TLS.Key == "") {
		errs = append(errs, errors.New("http.tls: cert and key must be set together"))
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http.timeout: negative duration %s", c.HTTP.Timeout))
	}

	if _, err := output.ParseFormat(c.Output); err != nil {
		errs = append(errs, fmt.Errorf("output: %w", err))
	}

	if c.Zone != "" {
		if _, err := time.LoadLocation(c.Zone); err != nil {
			errs = append(errs, fmt.Errorf("zone: %w", err))
		}
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported format %q", c.Log.Format))
	}

	if _, err := c.Catalog(); err != nil {
		errs = append(errs, fmt.Errorf("endpoints: %w", err))
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return domain.ErrInvalidConfig.WithDetails(strings.Join(msgs, "; ")).WithCause(errors.Join(errs...))
	}
	return nil
}
