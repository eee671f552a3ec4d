package document

import (
	"github.com/namd/pypln-go/internal/cmd/base"
)

type PropertyCommand struct {
	*base.Command
}

func (c *PropertyCommand) Synopsis() string {
	return "Print one property of a document"
}

func (c *PropertyCommand) Help() string {
	return `Usage: pypln document property <document-url> <name>

  Fetches the named property, e.g. "language" or "tokens", and prints its
  value.` + c.Flags().Help()
}

func (c *PropertyCommand) Flags() *base.FlagSet {
	return newFlagSet(c.Command, "document property")
}

func (c *PropertyCommand) Run(args []string) int {
	ctx, cancel := c.Context()
	defer cancel()

	flags := c.Flags()
	doc, output, code := fetch(ctx, c.Command, flags, args, 1)
	if doc == nil {
		return code
	}

	value, err := doc.GetProperty(ctx, flags.Arg(1))
	if err != nil {
		return c.Error("error fetching property: %v", err)
	}

	if err := c.PrintValue(output, value); err != nil {
		return c.Error("error printing property: %v", err)
	}
	return 0
}
