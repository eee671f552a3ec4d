package document

import (
	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/pkg/pypln"
)

type ShowCommand struct {
	*base.Command
}

func (c *ShowCommand) Synopsis() string {
	return "Show a document by URL"
}

func (c *ShowCommand) Help() string {
	return `Usage: pypln document show <document-url>

  Fetches and prints the document at the given URL.` + c.Flags().Help()
}

func (c *ShowCommand) Flags() *base.FlagSet {
	return newFlagSet(c.Command, "document show")
}

func (c *ShowCommand) Run(args []string) int {
	ctx, cancel := c.Context()
	defer cancel()

	doc, output, code := fetch(ctx, c.Command, c.Flags(), args, 0)
	if doc == nil {
		return code
	}

	if err := c.PrintDocuments(output, []*pypln.Document{doc}); err != nil {
		return c.Error("error printing document: %v", err)
	}
	return 0
}
