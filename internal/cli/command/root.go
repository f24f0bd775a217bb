// Package command provides CLI command definitions for hashrest-cli.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/cli/config"
	"github.com/yndnr/hashrest-go/internal/cli/connection"
	"github.com/yndnr/hashrest-go/internal/cli/output"
	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/core/service"
	"github.com/yndnr/hashrest-go/internal/infra/buildinfo"
	"github.com/yndnr/hashrest-go/internal/infra/shutdown"
	"github.com/yndnr/hashrest-go/internal/infra/tlsroots"
	"github.com/yndnr/hashrest-go/internal/telemetry/logger"
	"github.com/yndnr/hashrest-go/internal/telemetry/metric"
	"github.com/yndnr/hashrest-go/pkg/pow"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "hashrest-cli",
		Usage:   "Call HashREST endpoints with proof-of-work tokens",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			CallCommand(),
			EndpointShortcut("greet"),
			EndpointShortcut("list"),
			EndpointShortcut("upload"),
			GenerateCommand(),
			InspectCommand(),
			BenchCommand(),
			EndpointsCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: setup,
		After:  teardown,
	}
}

// globalFlags returns the global CLI flags.
// Flags override HASHREST_* environment variables and the config file.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file (default ~/.hashrest/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "HashREST server base URL",
			Value:   config.DefaultServer,
		},
		&cli.StringFlag{
			Name:  "header",
			Usage: "Name of the proof-of-work request header",
			Value: config.DefaultHeader,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request HTTP timeout",
			Value: config.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:  "cacert",
			Usage: "PEM file or directory of extra CAs trusted for https servers",
		},
		&cli.StringFlag{
			Name:  "cert",
			Usage: "Client certificate for mutual TLS",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "Client private key for mutual TLS",
		},
		&cli.BoolFlag{
			Name:    "insecure",
			Aliases: []string{"k"},
			Usage:   "Skip server certificate verification",
		},
		&cli.DurationFlag{
			Name:  "deadline",
			Usage: "Abort the whole command after this long (0 = no limit)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   config.DefaultOutput,
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "zone",
			Usage: "Time zone for displayed timestamps",
			Value: pow.DefaultZone,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: "warn",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
			Value: "text",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics to this file on exit",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// Env is the state shared by all commands of one invocation.
type Env struct {
	Config   *config.CLIConfig
	Catalog  *domain.Catalog
	Proofs   *service.ProofService
	Metrics  *metric.Registry
	Log      logger.Logger
	Shutdown *shutdown.Handler

	Out  io.Writer
	Err  io.Writer
	Wide bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the invocation context. It is canceled on SIGINT,
// SIGTERM or when --deadline expires.
func (e *Env) Context() context.Context {
	return e.ctx
}

// Print writes data in the configured output format.
func (e *Env) Print(data any) error {
	return output.NewFormatter(output.Format(e.Config.Output), e.Wide).Format(e.Out, data)
}

// Client creates a transport for the configured server.
func (e *Env) Client() (*connection.HTTPClient, error) {
	maxBody, err := e.Config.HTTP.MaxBodyBytes()
	if err != nil {
		return nil, domain.ErrInvalidConfig.WithDetails(err.Error())
	}
	tlsCfg, err := tlsroots.ClientConfig(e.Config.HTTP.TLS.Options())
	if err != nil {
		return nil, domain.ErrInvalidConfig.WithDetails(err.Error()).WithCause(err)
	}
	return connection.NewHTTPClient(e.Config.Server,
		connection.WithHeader(e.Config.HTTP.Header),
		connection.WithTimeout(e.Config.HTTP.Timeout),
		connection.WithTLSConfig(tlsCfg),
		connection.WithMaxBodySize(maxBody),
	)
}

// Interactive reports whether progress indicators should be drawn.
func (e *Env) Interactive() bool {
	f, ok := e.Err.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// searchSpinner shows search progress on stderr when interactive. It
// returns the options feeding the spinner and a func reporting the outcome.
func (e *Env) searchSpinner(message string) ([]pow.SearchOption, func(*domain.Proof, error)) {
	if !e.Interactive() {
		return nil, func(*domain.Proof, error) {}
	}
	return newSearchSpinner(e.Err, message)
}

func newSearchSpinner(w io.Writer, message string) ([]pow.SearchOption, func(*domain.Proof, error)) {
	s := output.NewSpinner(w, message)
	s.Start()
	done := func(p *domain.Proof, err error) {
		if err != nil {
			s.Fail(err.Error())
			return
		}
		s.Success(fmt.Sprintf("found after %d attempts in %s (%.0f H/s)", p.Attempts, p.Elapsed.Round(time.Microsecond), p.HashRate()))
	}
	return []pow.SearchOption{pow.WithProgress(s.Progress, 0)}, done
}

// GetEnv retrieves the environment prepared before the command ran.
func GetEnv(c *cli.Context) (*Env, error) {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env, nil
	}
	return nil, errors.New("command environment not initialized")
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(c *cli.Context) (*config.CLIConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("server") {
		cfg.Server = c.String("server")
	}
	if c.IsSet("header") {
		cfg.HTTP.Header = c.String("header")
	}
	if c.IsSet("cacert") {
		cfg.HTTP.TLS.CACert = c.String("cacert")
	}
	if c.IsSet("cert") {
		cfg.HTTP.TLS.Cert = c.String("cert")
	}
	if c.IsSet("key") {
		cfg.HTTP.TLS.Key = c.String("key")
	}
	if c.IsSet("insecure") {
		cfg.HTTP.TLS.Insecure = c.Bool("insecure")
	}
	if c.IsSet("timeout") {
		cfg.HTTP.Timeout = c.Duration("timeout")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("zone") {
		cfg.Zone = c.String("zone")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("metrics-file") {
		cfg.Metrics.File = c.String("metrics-file")
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(c *cli.Context) error {
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: errOut,
	})
	if err != nil {
		return domain.ErrInvalidConfig.WithDetails(err.Error())
	}
	logger.SetDefault(log)

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	reg := metric.NewRegistry()
	gen := pow.New(pow.WithLocation(pow.LoadZone(cfg.Zone)))

	handler := shutdown.NewHandler(5 * time.Second)
	ctx, stop := handler.NotifyContext(logger.WithLogger(c.Context, log))
	cancel := stop
	if d := c.Duration("deadline"); d > 0 {
		var cancelDeadline context.CancelFunc
		ctx, cancelDeadline = context.WithTimeout(ctx, d)
		cancel = func() {
			cancelDeadline()
			stop()
		}
	}

	if path := cfg.Metrics.File; path != "" {
		handler.OnShutdown(func(context.Context) error {
			if err := reg.WriteFile(path); err != nil {
				return fmt.Errorf("write metrics file: %w", err)
			}
			log.Debug("metrics written", "path", path)
			return nil
		})
	}

	c.App.Metadata[envKey] = &Env{
		Config:  cfg,
		Catalog: catalog,
		Proofs: service.NewProofService(
			service.WithGenerator(gen),
			service.WithRecorder(reg),
			service.WithConcurrency(runtime.NumCPU()),
		),
		Metrics:  reg,
		Log:      log,
		Shutdown: handler,
		Out:      out,
		Err:      errOut,
		Wide:     c.Bool("wide"),
		ctx:      ctx,
		cancel:   cancel,
	}
	return nil
}

func teardown(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return nil
	}
	env.cancel()
	return env.Shutdown.Run()
}
