package command

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/pkg/pow"
)

// runApp runs the CLI with args and returns stdout and stderr.
// HOME points at an empty directory so no user config is read.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"hashrest-cli"}, args...))
	return stdout.String(), stderr.String(), err
}

// verifierServer accepts requests whose HashREST header satisfies the
// difficulty registered for the path, like a stock HashREST server.
type verifierServer struct {
	*httptest.Server

	mu     sync.Mutex
	tokens []string
}

func newVerifierServer(t *testing.T, difficulties map[string]int) *verifierServer {
	t.Helper()
	v := &verifierServer{}
	v.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, ok := difficulties[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		token := r.Header.Get("HashREST")
		if token == "" {
			http.Error(w, "HashREST is missing.", http.StatusBadRequest)
			return
		}

		v.mu.Lock()
		v.tokens = append(v.tokens, token)
		v.mu.Unlock()

		// The token must be bound to this exact URL.
		tok, err := pow.Parse(token)
		if err != nil || tok.Target != v.URL+r.URL.Path {
			http.Error(w, "wrong target", http.StatusBadRequest)
			return
		}
		if !pow.Check(token, d) {
			http.Error(w, fmt.Sprintf("Proof of work not satisfied. (difficulty: %d)", d), http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, "Hi from %s", r.URL.Path)
	}))
	t.Cleanup(v.Close)
	return v
}

func (v *verifierServer) received() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.tokens...)
}
