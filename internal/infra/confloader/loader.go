// Package confloader provides the configuration loading mechanism.
package confloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Loader loads configuration from multiple sources.
type Loader struct {
	k            *koanf.Koanf
	envPrefix    string
	filePath     string
	fileOptional bool
	defaults     map[string]any
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix enables environment variables with the given prefix.
// Without it, Load ignores the environment.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path. Load fails if it is missing.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
		l.fileOptional = false
	}
}

// WithOptionalConfigFile sets a configuration file path that may not exist.
func WithOptionalConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
		l.fileOptional = true
	}
}

// WithDefaults sets values loaded before any other source.
// Keys may use dotted paths ("log.level").
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k: koanf.New("."),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads defaults, the configuration file and environment variables,
// then unmarshals into target.
func (l *Loader) Load(target any) error {
	if l.defaults != nil {
		if err := l.k.Load(mapProvider(l.defaults), nil); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}

	if l.filePath != "" {
		err := l.loadFile(l.filePath)
		switch {
		case err == nil:
		case l.fileOptional && errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if l.envPrefix != "" {
		if err := l.loadEnv(); err != nil {
			return err
		}
	}

	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func (l *Loader) loadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// loadEnv maps PREFIX_LOG_LEVEL=debug to log.level, so keys never
// contain underscores.
func (l *Loader) loadEnv() error {
	transform := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "_", ".")
	}

	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}
