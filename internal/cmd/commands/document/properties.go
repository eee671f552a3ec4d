package document

import (
	"github.com/namd/pypln-go/internal/cmd/base"
)

type PropertiesCommand struct {
	*base.Command
}

func (c *PropertiesCommand) Synopsis() string {
	return "List the properties computed for a document"
}

func (c *PropertiesCommand) Help() string {
	return `Usage: pypln document properties <document-url>

  Lists the names of the properties the server has computed so far.` + c.Flags().Help()
}

func (c *PropertiesCommand) Flags() *base.FlagSet {
	return newFlagSet(c.Command, "document properties")
}

func (c *PropertiesCommand) Run(args []string) int {
	ctx, cancel := c.Context()
	defer cancel()

	doc, output, code := fetch(ctx, c.Command, c.Flags(), args, 0)
	if doc == nil {
		return code
	}

	names, err := doc.Properties(ctx)
	if err != nil {
		return c.Error("error listing properties: %v", err)
	}

	if err := c.PrintNames(output, "PROPERTY", names); err != nil {
		return c.Error("error printing properties: %v", err)
	}
	return 0
}
