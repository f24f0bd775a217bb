package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/cli/connection"
	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/telemetry/logger"
)

// CallResult is the printed outcome of one HashREST call.
type CallResult struct {
	Endpoint   string        `json:"endpoint" yaml:"endpoint"`
	Method     string        `json:"method" yaml:"method"`
	URL        string        `json:"url" yaml:"url"`
	Difficulty int           `json:"difficulty" yaml:"difficulty"`
	Token      string        `json:"token" yaml:"token"`
	Digest     string        `json:"digest" yaml:"digest" table:"wide"`
	Attempts   uint64        `json:"attempts" yaml:"attempts"`
	SearchTime time.Duration `json:"search_time" yaml:"search_time"`
	Status     int           `json:"status" yaml:"status"`
	Body       string        `json:"body" yaml:"body"`
	RequestID  string        `json:"request_id" yaml:"request_id" table:"wide"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed" table:"wide"`

	rejected error
}

func callFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "repeat",
			Aliases: []string{"n"},
			Usage:   "Send the request N times, each with a fresh token",
			Value:   1,
		},
		&cli.Float64Flag{
			Name:  "rate",
			Usage: "Maximum requests per second when repeating (0 = unlimited)",
		},
		&cli.BoolFlag{
			Name:  "fail",
			Usage: "Exit with an error when the server rejects a request",
		},
		&cli.StringFlag{
			Name:  "data",
			Usage: "Request body",
		},
		&cli.StringFlag{
			Name:  "content-type",
			Usage: "Content-Type of --data",
			Value: "application/json",
		},
	}
}

// CallCommand returns the call command.
func CallCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Generate a token for an endpoint and send the request",
		ArgsUsage: "ENDPOINT",
		Flags:     callFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one ENDPOINT argument")
			}
			return runCall(c, c.Args().First())
		},
	}
}

// EndpointShortcut returns a command calling the named endpoint.
func EndpointShortcut(name string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: fmt.Sprintf("Call the %s endpoint", name),
		Flags: callFlags(),
		Action: func(c *cli.Context) error {
			return runCall(c, name)
		},
	}
}

func runCall(c *cli.Context, name string) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	ep, err := env.Catalog.Lookup(name)
	if err != nil {
		return err
	}

	client, err := env.Client()
	if err != nil {
		return err
	}

	repeat := c.Int("repeat")
	if repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
	}

	var opts []connection.CallOption
	if c.IsSet("data") {
		opts = append(opts, connection.WithBody([]byte(c.String("data")), c.String("content-type")))
	}

	pacer := connection.NewPacer(c.Float64("rate"))
	ctx := env.Context()

	results := make([]*CallResult, 0, repeat)
	var rejected []error
	for i := 0; i < repeat; i++ {
		if err := pacer.Wait(ctx); err != nil {
			return domain.ErrSearchCanceled.WithCause(err)
		}

		res, err := callOnce(env, client, ep, opts)
		if err != nil {
			return err
		}
		results = append(results, res)
		if res.rejected != nil {
			env.Log.Warn("request rejected", "endpoint", ep.Name, "status", res.Status)
			rejected = append(rejected, res.rejected)
		}
	}

	if repeat == 1 {
		err = env.Print(results[0])
	} else {
		err = env.Print(results)
	}
	if err != nil {
		return err
	}

	if c.Bool("fail") && len(rejected) > 0 {
		return errors.Join(rejected...)
	}
	return nil
}

func callOnce(env *Env, client *connection.HTTPClient, ep domain.Endpoint, opts []connection.CallOption) (*CallResult, error) {
	// One ID tags the search and the request in logs and on the wire.
	ctx := logger.WithRequestID(env.Context(), connection.NewRequestID())

	searchOpts, done := env.searchSpinner(fmt.Sprintf("searching %s (difficulty %d)", ep.Name, ep.Difficulty))
	proof, err := env.Proofs.ProveEndpoint(ctx, ep, client.BaseURL(), searchOpts...)
	done(proof, err)
	if err != nil {
		return nil, err
	}

	resp, err := client.Call(ctx, ep, proof.Token, opts...)
	if err != nil {
		env.Metrics.ObserveRequest(ep.Name, 0, 0)
		return nil, err
	}
	env.Metrics.ObserveRequest(ep.Name, resp.Status, resp.Elapsed)

	return &CallResult{
		Endpoint:   ep.Name,
		Method:     resp.Method,
		URL:        resp.URL,
		Difficulty: ep.Difficulty,
		Token:      proof.Token,
		Digest:     proof.Digest,
		Attempts:   proof.Attempts,
		SearchTime: proof.Elapsed,
		Status:     resp.Status,
		Body:       resp.Body,
		RequestID:  resp.RequestID,
		Elapsed:    resp.Elapsed,
		rejected:   resp.Err(),
	}, nil
}
