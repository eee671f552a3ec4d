package corpus

import (
	"flag"

	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/pkg/pypln"
)

type ShowCommand struct {
	*base.Command
}

func (c *ShowCommand) Synopsis() string {
	return "Show a corpus by URL"
}

func (c *ShowCommand) Help() string {
	return `Usage: pypln corpus show <corpus-url>

  Fetches and prints the corpus at the given URL.` + c.Flags().Help()
}

func (c *ShowCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("corpus show", flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}

func (c *ShowCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return c.Error("error parsing flags: %v", err)
	}
	if flags.NArg() != 1 {
		c.UI.Error("expected exactly one corpus URL")
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	creds, opts, cfg, err := c.ResourceAccess()
	if err != nil {
		return c.Error("error loading config: %v", err)
	}

	corpus, err := pypln.CorpusFromURL(ctx, flags.Arg(0), creds, opts...)
	if err != nil {
		return c.Error("error fetching corpus: %v", err)
	}

	if err := c.PrintCorpora(cfg.Output, []*pypln.Corpus{corpus}); err != nil {
		return c.Error("error printing corpus: %v", err)
	}
	return 0
}
