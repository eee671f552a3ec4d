package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/namd/pypln-go/internal/cmd/base"
	"github.com/namd/pypln-go/internal/cmd/commands/corpora"
	"github.com/namd/pypln-go/internal/cmd/commands/corpus"
	"github.com/namd/pypln-go/internal/cmd/commands/document"
	"github.com/namd/pypln-go/internal/cmd/commands/documents"
	"github.com/namd/pypln-go/internal/cmd/commands/open"
	"github.com/namd/pypln-go/internal/cmd/commands/version"
)

// Commands is the mapping of all available pypln commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"corpora": func() (cli.Command, error) {
			return &corpora.Command{Command: b}, nil
		},
		"corpus": func() (cli.Command, error) {
			return &corpus.Command{Command: b}, nil
		},
		"corpus create": func() (cli.Command, error) {
			return &corpus.CreateCommand{Command: b}, nil
		},
		"corpus show": func() (cli.Command, error) {
			return &corpus.ShowCommand{Command: b}, nil
		},
		"corpus upload": func() (cli.Command, error) {
			return &corpus.UploadCommand{Command: b}, nil
		},
		"document": func() (cli.Command, error) {
			return &document.Command{Command: b}, nil
		},
		"document properties": func() (cli.Command, error) {
			return &document.PropertiesCommand{Command: b}, nil
		},
		"document property": func() (cli.Command, error) {
			return &document.PropertyCommand{Command: b}, nil
		},
		"document show": func() (cli.Command, error) {
			return &document.ShowCommand{Command: b}, nil
		},
		"document wordcloud": func() (cli.Command, error) {
			return &document.WordcloudCommand{Command: b}, nil
		},
		"documents": func() (cli.Command, error) {
			return &documents.Command{Command: b}, nil
		},
		"open": func() (cli.Command, error) {
			return &open.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
