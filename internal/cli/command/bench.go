package command

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/cli/output"
	"github.com/yndnr/hashrest-go/internal/core/service"
)

// BenchCommand returns the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Measure average search cost per difficulty",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-difficulty",
				Usage: "Highest difficulty to measure",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "trials",
				Usage: "Searches per difficulty",
				Value: 20,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Searches run in parallel",
				Value: runtime.NumCPU(),
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Target identifier used for the searches",
				Value: service.BenchTarget,
			},
		},
		Action: bench,
	}
}

func bench(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	opts := service.BenchOptions{
		MaxDifficulty: c.Int("max-difficulty"),
		Trials:        c.Int("trials"),
		Workers:       c.Int("workers"),
		Target:        c.String("target"),
	}

	var bar *output.ProgressBar
	if env.Interactive() && opts.MaxDifficulty >= 0 && opts.Trials > 0 {
		bar = output.NewProgressBar(env.Err, "bench", (opts.MaxDifficulty+1)*opts.Trials)
		opts.OnTrial = bar.Increment
	}

	results, err := env.Proofs.Bench(env.Context(), opts)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}
	return env.Print(results)
}
