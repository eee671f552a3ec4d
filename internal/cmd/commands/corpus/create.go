package corpus

import (
	"flag"

	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/pkg/pypln"
)

type CreateCommand struct {
	*base.Command

	flagName        string
	flagDescription string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a corpus"
}

func (c *CreateCommand) Help() string {
	return `Usage: pypln corpus create -name <name> [-description <text>]

  Creates a corpus owned by the configured user and prints it.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("corpus create", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.StringVar(
		&c.flagName, "name", "", "(Required) Name of the new corpus.",
	)
	f.StringVar(
		&c.flagDescription, "description", "", "Description of the new corpus.",
	)

	return f
}

func (c *CreateCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return c.Error("error parsing flags: %v", err)
	}
	if c.flagName == "" {
		c.UI.Error("name flag is required")
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, cfg, err := c.Client()
	if err != nil {
		return c.Error("error creating client: %v", err)
	}

	corpus, err := client.AddCorpus(ctx, c.flagName, c.flagDescription)
	if err != nil {
		return c.Error("error creating corpus: %v", err)
	}

	if err := c.PrintCorpora(cfg.Output, []*pypln.Corpus{corpus}); err != nil {
		return c.Error("error printing corpus: %v", err)
	}
	return 0
}
