package open

import (
	"flag"
	"fmt"
	"net/url"

	"github.com/pkg/browser"

	"github.com/namd/pypln-go/internal/cmd/base"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Open a corpus, a document or the server in a browser"
}

func (c *Command) Help() string {
	return `Usage: pypln open [options] [url]

  Opens the given corpus or document URL in the default browser. Without
  an argument, opens the configured server.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("open", flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return c.Error("error parsing flags: %v", err)
	}

	var target string
	switch flags.NArg() {
	case 0:
		cfg, err := c.LoadConfig()
		if err != nil {
			return c.Error("error loading config: %v", err)
		}
		if cfg.Client.BaseURL == "" {
			c.UI.Error("no url given and no base_url configured")
			return 1
		}
		target = cfg.Client.BaseURL
	case 1:
		target = flags.Arg(0)
	default:
		c.UI.Error("wrong number of arguments")
		return 1
	}

	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		c.UI.Error(fmt.Sprintf("not an http(s) URL: %q", target))
		return 1
	}

	c.Log.Debug("opening browser", "url", target)
	if err := openURL(target); err != nil {
		return c.Error("error opening browser: %v", err)
	}
	return 0
}
