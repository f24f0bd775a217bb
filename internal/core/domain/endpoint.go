// Package domain defines the core domain models for HashREST.
package domain

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/yndnr/hashrest-go/pkg/pow"
)

// Endpoint is a remote operation guarded by proof of work.
type Endpoint struct {
	Name       string `json:"name" yaml:"name" koanf:"name"`
	Method     string `json:"method" yaml:"method" koanf:"method"`
	Path       string `json:"path" yaml:"path" koanf:"path"`
	Difficulty int    `json:"difficulty" yaml:"difficulty" koanf:"difficulty"`
}

// DefaultEndpoints returns the endpoints a stock HashREST server exposes.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Name: "greet", Method: http.MethodGet, Path: "/greet", Difficulty: 1},
		{Name: "list", Method: http.MethodGet, Path: "/list", Difficulty: 3},
		{Name: "upload", Method: http.MethodPost, Path: "/upload", Difficulty: 5},
	}
}

// Validate checks the endpoint definition.
func (e Endpoint) Validate() error {
	if e.Name == "" {
		return ErrEndpointInvalid.WithDetails("name is required")
	}
	switch e.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return ErrEndpointInvalid.WithDetails(fmt.Sprintf("%s: unsupported method %q", e.Name, e.Method))
	}
	if !strings.HasPrefix(e.Path, "/") {
		return ErrEndpointInvalid.WithDetails(fmt.Sprintf("%s: path %q must start with /", e.Name, e.Path))
	}
	if err := pow.ValidateDifficulty(e.Difficulty); err != nil {
		return ErrInvalidDifficulty.WithDetails(e.Name).WithCause(err)
	}
	return nil
}

// URL resolves the endpoint against a server base URL.
// The result is the target identifier the token is bound to.
func (e Endpoint) URL(baseURL string) (string, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", ErrEndpointInvalid.WithDetails("bad server url").WithCause(err)
	}
	ref, err := url.Parse(e.Path)
	if err != nil {
		return "", ErrEndpointInvalid.WithDetails(e.Name).WithCause(err)
	}
	return base.JoinPath(ref.Path).String() + queryOf(ref), nil
}

func queryOf(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}

// Catalog indexes endpoints by name.
type Catalog struct {
	endpoints map[string]Endpoint
}

// NewCatalog builds a catalog, validating every endpoint.
// Later definitions replace earlier ones with the same name.
func NewCatalog(endpoints []Endpoint) (*Catalog, error) {
	c := &Catalog{endpoints: make(map[string]Endpoint, len(endpoints))}
	for _, e := range endpoints {
		e.Method = strings.ToUpper(e.Method)
		if e.Method == "" {
			e.Method = http.MethodGet
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		c.endpoints[e.Name] = e
	}
	return c, nil
}

// Lookup returns the endpoint with the given name.
func (c *Catalog) Lookup(name string) (Endpoint, error) {
	e, ok := c.endpoints[name]
	if !ok {
		return Endpoint{}, ErrEndpointNotFound.WithDetails(name)
	}
	return e, nil
}

// List returns all endpoints ordered by difficulty, then name.
func (c *Catalog) List() []Endpoint {
	out := make([]Endpoint, 0, len(c.endpoints))
	for _, e := range c.endpoints {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Difficulty != out[j].Difficulty {
			return out[i].Difficulty < out[j].Difficulty
		}
		return out[i].Name < out[j].Name
	})
	return out
}
