package corpus

import (
	"github.com/mitchellh/cli"

	"github.com/namd/pypln-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Create, inspect and upload to corpora"
}

func (c *Command) Help() string {
	return `Usage: pypln corpus <subcommand> [options] [args]

  This command groups subcommands for working with a single corpus.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
