package document

import (
	"fmt"

	"github.com/namd/pypln-go/internal/cmd/base"
)

type WordcloudCommand struct {
	*base.Command
}

func (c *WordcloudCommand) Synopsis() string {
	return "Save a document's word cloud image"
}

func (c *WordcloudCommand) Help() string {
	return `Usage: pypln document wordcloud <document-url> <output.png>

  Downloads the word cloud computed for the document and writes it as a
  PNG file.` + c.Flags().Help()
}

func (c *WordcloudCommand) Flags() *base.FlagSet {
	return newFlagSet(c.Command, "document wordcloud")
}

func (c *WordcloudCommand) Run(args []string) int {
	ctx, cancel := c.Context()
	defer cancel()

	flags := c.Flags()
	doc, _, code := fetch(ctx, c.Command, flags, args, 1)
	if doc == nil {
		return code
	}

	filename := flags.Arg(1)
	if err := doc.DownloadWordcloud(ctx, c.Fs, filename); err != nil {
		return c.Error("error downloading wordcloud: %v", err)
	}

	c.UI.Info(fmt.Sprintf("Wrote %s", filename))
	return 0
}
