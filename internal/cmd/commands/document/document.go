package document

import (
	"context"
	"flag"

	"github.com/mitchellh/cli"

	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/pkg/pypln"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect a document and its properties"
}

func (c *Command) Help() string {
	return `Usage: pypln document <subcommand> [options] [args]

  This command groups subcommands for working with a single document.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// fetch parses flags, expecting the document URL followed by nargs more
// arguments, and fetches the document.
func fetch(ctx context.Context, c *base.Command, flags *base.FlagSet, args []string, nargs int) (*pypln.Document, string, int) {
	if err := flags.Parse(args); err != nil {
		return nil, "", c.Error("error parsing flags: %v", err)
	}
	if flags.NArg() != nargs+1 {
		c.UI.Error("wrong number of arguments")
		return nil, "", 1
	}

	creds, opts, cfg, err := c.ResourceAccess()
	if err != nil {
		return nil, "", c.Error("error loading config: %v", err)
	}

	doc, err := pypln.DocumentFromURL(ctx, flags.Arg(0), creds, opts...)
	if err != nil {
		return nil, "", c.Error("error fetching document: %v", err)
	}
	return doc, cfg.Output, 0
}

func newFlagSet(c *base.Command, name string) *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}
