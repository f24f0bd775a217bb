package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/core/service"
)

// GenerateCommand returns the generate command.
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate proof-of-work tokens without sending a request",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "difficulty",
				Aliases:  []string{"d"},
				Usage:    "Required number of leading zero hex digits (0-64)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Target identifier the token is bound to, usually the request URL",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of independent tokens to generate",
				Value:   1,
			},
			&cli.BoolFlag{
				Name:  "token-only",
				Usage: "Print only the token text",
			},
		},
		Action: generate,
	}
}

func generate(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	difficulty := c.Int("difficulty")
	target := c.String("target")
	count := c.Int("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	if count == 1 {
		opts, done := env.searchSpinner(fmt.Sprintf("searching (difficulty %d)", difficulty))
		proof, err := env.Proofs.Prove(env.Context(), difficulty, target, opts...)
		done(proof, err)
		if err != nil {
			return err
		}

		if c.Bool("token-only") {
			_, err := fmt.Fprintln(env.Out, proof.Token)
			return err
		}
		return env.Print(proof)
	}

	reqs := make([]service.ProofRequest, count)
	for i := range reqs {
		reqs[i] = service.ProofRequest{Difficulty: difficulty, Target: target}
	}
	proofs, err := env.Proofs.ProveAll(env.Context(), reqs)
	if err != nil {
		return err
	}

	if c.Bool("token-only") {
		for _, p := range proofs {
			if _, err := fmt.Fprintln(env.Out, p.Token); err != nil {
				return err
			}
		}
		return nil
	}
	return env.Print(proofs)
}
