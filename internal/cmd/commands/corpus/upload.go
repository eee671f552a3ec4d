package corpus

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/pkg/pypln"
)

type UploadCommand struct {
	*base.Command
}

func (c *UploadCommand) Synopsis() string {
	return "Upload files into a corpus"
}

func (c *UploadCommand) Help() string {
	return `Usage: pypln corpus upload <corpus-url> <file>...

  Uploads each file, in order, into the corpus at the given URL. A failed
  upload is reported and the remaining files are still uploaded; the exit
  code is 1 if any upload failed.` + c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("corpus upload", flag.ContinueOnError))
	c.AddClientFlags(f)
	return f
}

func (c *UploadCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return c.Error("error parsing flags: %v", err)
	}
	if flags.NArg() < 2 {
		c.UI.Error("expected a corpus URL and at least one file")
		return 1
	}
	corpusURL, paths := flags.Arg(0), flags.Args()[1:]

	contents := make([]pypln.Content, 0, len(paths))
	for _, p := range paths {
		data, err := afero.ReadFile(c.Fs, p)
		if err != nil {
			return c.Error("error reading file: %v", err)
		}
		contents = append(contents, pypln.File(filepath.Base(p), data))
	}

	ctx, cancel := c.Context()
	defer cancel()

	creds, opts, cfg, err := c.ResourceAccess()
	if err != nil {
		return c.Error("error loading config: %v", err)
	}

	corpus, err := pypln.CorpusFromURL(ctx, corpusURL, creds, opts...)
	if err != nil {
		return c.Error("error fetching corpus: %v", err)
	}

	docs, failures := corpus.AddDocuments(ctx, contents)
	for _, failure := range failures {
		c.UI.Error(fmt.Sprintf("failed to upload %s: %v", failure.Content, failure.Err))
	}

	if len(docs) > 0 {
		if err := c.PrintDocuments(cfg.Output, docs); err != nil {
			return c.Error("error printing documents: %v", err)
		}
	}

	if len(failures) > 0 {
		c.UI.Warn(fmt.Sprintf("%d of %d uploads failed", len(failures), len(contents)))
		return 1
	}
	return 0
}
