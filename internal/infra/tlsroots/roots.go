package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoCertsFound is returned when a PEM input holds no certificate.
	ErrNoCertsFound = errors.New("tlsroots: no certificates found")

	// ErrKeyPairIncomplete is returned when only one of cert and key is set.
	ErrKeyPairIncomplete = errors.New("tlsroots: client certificate and key must be set together")
)

// Pool collects trusted CA certificates for verifying a HashREST server.
type Pool struct {
	pool *x509.CertPool
}

// NewPool returns a pool seeded with the system roots. If the system pool
// is unavailable an empty pool is returned.
func NewPool() *Pool {
	sys, err := x509.SystemCertPool()
	if err != nil || sys == nil {
		return NewEmptyPool()
	}
	return &Pool{pool: sys}
}

// NewEmptyPool returns a pool that trusts nothing until certificates are added.
func NewEmptyPool() *Pool {
	return &Pool{pool: x509.NewCertPool()}
}

// AddPEM adds every certificate in data.
func (p *Pool) AddPEM(data []byte) error {
	if !p.pool.AppendCertsFromPEM(data) {
		return ErrNoCertsFound
	}
	return nil
}

// AddFile adds the certificates in a PEM file.
func (p *Pool) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tlsroots: read %s: %w", path, err)
	}
	if err := p.AddPEM(data); err != nil {
		return fmt.Errorf("%w in %s", err, path)
	}
	return nil
}

// AddDir adds every .pem and .crt file in dir. Files without
// certificates are skipped; at least one must be found.
func (p *Pool) AddDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("tlsroots: read dir %s: %w", dir, err)
	}
	added := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pem", ".crt":
		default:
			continue
		}
		if err := p.AddFile(filepath.Join(dir, e.Name())); err == nil {
			added++
		}
	}
	if added == 0 {
		return fmt.Errorf("%w in %s", ErrNoCertsFound, dir)
	}
	return nil
}

// CertPool returns the underlying pool.
func (p *Pool) CertPool() *x509.CertPool {
	return p.pool
}

// Options describe the client TLS setup for one server.
type Options struct {
	CAFile   string // PEM file or directory of extra trusted roots
	CertFile string // Client certificate for mutual TLS
	KeyFile  string
	Insecure bool // Skip server certificate verification
}

// IsZero reports whether o leaves TLS at Go's defaults.
func (o Options) IsZero() bool {
	return o == Options{}
}

// ClientConfig builds a TLS client configuration from o. A nil config and
// nil error mean the defaults apply.
func ClientConfig(o Options) (*tls.Config, error) {
	if o.IsZero() {
		return nil, nil
	}
	if (o.CertFile == "") != (o.KeyFile == "") {
		return nil, ErrKeyPairIncomplete
	}

	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: o.Insecure, //nolint:gosec // opt-in via --insecure
	}

	if o.CAFile != "" {
		pool := NewPool()
		info, err := os.Stat(o.CAFile)
		if err != nil {
			return nil, fmt.Errorf("tlsroots: %w", err)
		}
		if info.IsDir() {
			err = pool.AddDir(o.CAFile)
		} else {
			err = pool.AddFile(o.CAFile)
		}
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool.CertPool()
	}

	if o.CertFile != "" {
		pair, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tlsroots: load client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}
	return cfg, nil
}
