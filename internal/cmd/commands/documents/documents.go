package documents

import (
	"flag"

	"github.com/namd/pypln-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagFull bool
}

func (c *Command) Synopsis() string {
	return "List your documents"
}

func (c *Command) Help() string {
	return `Usage: pypln documents [options]

  Lists the documents owned by the configured user, across all corpora.
  Only the first page of results is shown unless -full is given.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.BoolVar(
		&c.flagFull, "full", false,
		"Follow pagination and list every document.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return c.Error("error parsing flags: %v", err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, cfg, err := c.Client()
	if err != nil {
		return c.Error("error creating client: %v", err)
	}

	docs, err := client.Documents(ctx, c.flagFull)
	if err != nil {
		return c.Error("error listing documents: %v", err)
	}

	if err := c.PrintDocuments(cfg.Output, docs); err != nil {
		return c.Error("error printing documents: %v", err)
	}
	return 0
}
