package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/hashrest-go/internal/cli/config"
)

// EndpointView is one catalog entry resolved against the server.
type EndpointView struct {
	Name       string `json:"name" yaml:"name"`
	Method     string `json:"method" yaml:"method"`
	Path       string `json:"path" yaml:"path"`
	Difficulty int    `json:"difficulty" yaml:"difficulty"`
	URL        string `json:"url" yaml:"url"`
}

// EndpointsCommand returns the endpoints command.
func EndpointsCommand() *cli.Command {
	return &cli.Command{
		Name:    "endpoints",
		Aliases: []string{"ep"},
		Usage:   "List known endpoints and their difficulties",
		Action:  listEndpoints,
	}
}

func listEndpoints(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	base, err := config.NormalizeServer(env.Config.Server)
	if err != nil {
		return err
	}

	var views []EndpointView
	for _, ep := range env.Catalog.List() {
		url, err := ep.URL(base)
		if err != nil {
			return err
		}
		views = append(views, EndpointView{
			Name:       ep.Name,
			Method:     ep.Method,
			Path:       ep.Path,
			Difficulty: ep.Difficulty,
			URL:        url,
		})
	}
	return env.Print(views)
}
