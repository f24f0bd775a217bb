package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/pkg/pow"
)

// Inspection describes a parsed token and its digest.
type Inspection struct {
	Token        string    `json:"token" yaml:"token"`
	IssuedAt     time.Time `json:"issued_at" yaml:"issued_at"`
	Target       string    `json:"target" yaml:"target"`
	Nonce        string    `json:"nonce" yaml:"nonce"`
	Counter      uint64    `json:"counter" yaml:"counter"`
	Digest       string    `json:"digest" yaml:"digest"`
	LeadingZeros int       `json:"leading_zeros" yaml:"leading_zeros"`
	Difficulty   *int      `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Valid        *bool     `json:"valid,omitempty" yaml:"valid,omitempty"`
}

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Parse a token and check it against a difficulty",
		ArgsUsage: "TOKEN",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "difficulty",
				Aliases: []string{"d"},
				Usage:   "Check the token against this difficulty",
			},
		},
		Action: inspect,
	}
}

func inspect(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one TOKEN argument")
	}

	text := c.Args().First()
	tok, err := pow.Parse(text)
	if err != nil {
		return domain.ErrMalformedToken.WithDetails(err.Error()).WithCause(err)
	}

	digest := pow.Digest(text)
	res := &Inspection{
		Token:        text,
		IssuedAt:     tok.Time().In(pow.LoadZone(env.Config.Zone)),
		Target:       tok.Target,
		Nonce:        tok.Nonce,
		Counter:      tok.Counter,
		Digest:       digest,
		LeadingZeros: pow.LeadingZeros(digest),
	}

	if !c.IsSet("difficulty") {
		return env.Print(res)
	}

	d := c.Int("difficulty")
	if err := pow.ValidateDifficulty(d); err != nil {
		return domain.ErrInvalidDifficulty.WithDetails(fmt.Sprint(d)).WithCause(err)
	}
	valid := pow.Satisfies(digest, d)
	res.Difficulty = &d
	res.Valid = &valid

	if err := env.Print(res); err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("token has %d leading zeros, difficulty %d not satisfied", res.LeadingZeros, d)
	}
	return nil
}
