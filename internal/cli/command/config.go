package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/cli/config"
	"github.com/yndnr/hashrest-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration",
				Action: configValidate,
			},
			{
				Name:      "init",
				Usage:     "Write the effective configuration to a file",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	// Nested sections read better as YAML than as a field table.
	if output.Format(env.Config.Output) == output.FormatTable {
		return (&output.YAMLFormatter{}).Format(env.Out, env.Config)
	}
	return env.Print(env.Config)
}

func configValidate(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	// setup has already validated; report what was checked.
	source := c.String("config")
	if source == "" {
		source = config.DefaultConfigPath()
		if _, err := os.Stat(source); errors.Is(err, fs.ErrNotExist) {
			source = "defaults"
		}
	}
	_, err = fmt.Fprintf(env.Out, "configuration is valid (%s, %d endpoints)\n", source, len(env.Catalog.List()))
	return err
}

func configInit(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := config.Save(env.Config, path); err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "wrote %s\n", path)
	return err
}
