// Package config defines the CLI configuration structure.
package config

import (
	"time"

	units "github.com/docker/go-units"

	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/infra/tlsroots"
	"github.com/yndnr/hashrest-go/pkg/pow"
)

// Defaults.
const (
	DefaultServer  = "http://localhost:4710"
	DefaultHeader  = "HashREST"
	DefaultOutput  = "table"
	DefaultTimeout = 30 * time.Second
	DefaultMaxBody = "1MiB"
)

// CLIConfig is the configuration for hashrest-cli.
type CLIConfig struct {
	Server string `koanf:"server" yaml:"server" json:"server"`
	Output string `koanf:"output" yaml:"output" json:"output"` // table, json, yaml
	// Zone names the time zone used when displaying token timestamps.
	Zone string `koanf:"zone" yaml:"zone" json:"zone"`

	HTTP    HTTPConfig    `koanf:"http" yaml:"http" json:"http"`
	Log     LogConfig     `koanf:"log" yaml:"log" json:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics" json:"metrics"`

	// Endpoints extend or override the built-in greet/list/upload catalog.
	Endpoints []domain.Endpoint `koanf:"endpoints" yaml:"endpoints,omitempty" json:"endpoints,omitempty"`
}

// HTTPConfig controls requests sent to the HashREST server.
type HTTPConfig struct {
	Header  string        `koanf:"header" yaml:"header" json:"header"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" json:"timeout"`
	// MaxBody caps how much of a response body is kept ("512KiB", "2MB").
	MaxBody string `koanf:"maxbody" yaml:"maxbody" json:"maxbody"`

	TLS TLSConfig `koanf:"tls" yaml:"tls,omitempty" json:"tls,omitempty"`
}

// TLSConfig applies to https servers only.
type TLSConfig struct {
	CACert   string `koanf:"cacert" yaml:"cacert,omitempty" json:"cacert,omitempty"` // file or directory
	Cert     string `koanf:"cert" yaml:"cert,omitempty" json:"cert,omitempty"`
	Key      string `koanf:"key" yaml:"key,omitempty" json:"key,omitempty"`
	Insecure bool   `koanf:"insecure" yaml:"insecure,omitempty" json:"insecure,omitempty"`
}

// MaxBodyBytes parses MaxBody.
func (h HTTPConfig) MaxBodyBytes() (int64, error) {
	if h.MaxBody == "" {
		return units.RAMInBytes(DefaultMaxBody)
	}
	return units.RAMInBytes(h.MaxBody)
}

// Options converts t for tlsroots.ClientConfig.
func (t TLSConfig) Options() tlsroots.Options {
	return tlsroots.Options{
		CAFile:   t.CACert,
		CertFile: t.Cert,
		KeyFile:  t.Key,
		Insecure: t.Insecure,
	}
}

// LogConfig controls diagnostic logging to stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// MetricsConfig controls the Prometheus text file written on exit.
type MetricsConfig struct {
	File string `koanf:"file" yaml:"file,omitempty" json:"file,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: DefaultServer,
		Output: DefaultOutput,
		Zone:   pow.DefaultZone,
		HTTP: HTTPConfig{
			Header:  DefaultHeader,
			Timeout: DefaultTimeout,
			MaxBody: DefaultMaxBody,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// defaultValues mirrors Default as dotted koanf keys.
func defaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"server":       d.Server,
		"output":       d.Output,
		"zone":         d.Zone,
		"http.header":  d.HTTP.Header,
		"http.timeout": d.HTTP.Timeout.String(),
		"http.maxbody": d.HTTP.MaxBody,
		"log.level":    d.Log.Level,
		"log.format":   d.Log.Format,
	}
}

// Catalog returns the built-in endpoints merged with configured ones.
func (c *CLIConfig) Catalog() (*domain.Catalog, error) {
	endpoints := append(domain.DefaultEndpoints(), c.Endpoints...)
	return domain.NewCatalog(endpoints)
}
