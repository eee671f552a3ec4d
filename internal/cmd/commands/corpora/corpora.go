package corpora

import (
	"flag"
	"fmt"

	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/pkg/pypln"
	"github.com/namd/pypln-go/pkg/pypln/legacy"
)

type Command struct {
	*base.Command

	flagFull bool
	flagHTML bool
}

func (c *Command) Synopsis() string {
	return "List your corpora"
}

func (c *Command) Help() string {
	return `Usage: pypln corpora [options]

  Lists the corpora owned by the configured user. Only the first page of
  results is shown unless -full is given.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("corpora", flag.ContinueOnError))
	c.AddClientFlags(f)

	f.BoolVar(
		&c.flagFull, "full", false,
		"Follow pagination and list every corpus.",
	)
	f.BoolVar(
		&c.flagHTML, "html", false,
		"Scrape the web interface instead of using the REST API. Requires username and password.",
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

	if c.flagHTML {
		cfg, err := c.LoadConfig()
		if err != nil {
			return c.Error("error loading config: %v", err)
		}
		if cfg.Client.Username == "" {
			c.UI.Error("-html requires username and password in the config")
			return 1
		}

		web, err := legacy.Login(ctx, cfg.Client.BaseURL, cfg.Client.Username, cfg.Client.Password,
			legacy.WithHTTPClient(cfg.Client.NewHTTPClient()), legacy.WithLogger(c.Log))
		if err != nil {
			return c.Error("error logging in: %v", err)
		}
		corpora, err := web.Corpora(ctx)
		if err != nil {
			return c.Error("error listing corpora: %v", err)
		}
		return c.print(cfg.Output, corpora)
	}

	client, cfg, err := c.Client()
	if err != nil {
		return c.Error("error creating client: %v", err)
	}

	corpora, err := client.Corpora(ctx, c.flagFull)
	if err != nil {
		return c.Error("error listing corpora: %v", err)
	}
	return c.print(cfg.Output, corpora)
}

func (c *Command) print(format string, corpora []*pypln.Corpus) int {
	if err := c.PrintCorpora(format, corpora); err != nil {
		c.UI.Error(fmt.Sprintf("error printing corpora: %v", err))
		return 1
	}
	return 0
}
