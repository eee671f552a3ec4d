package version

import (
	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/internal/version"
	"github.com/namd/pypln-go/pkg/pypln"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: pypln version

  Prints the version of the client and the User-Agent it sends.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("pypln " + version.Version)
	c.UI.Output("User-Agent: " + pypln.UserAgent)
	return 0
}
