package base

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/namd/pypln-go/pkg/pypln"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	return tw
}

// render writes v as JSON or YAML, or calls fillTable for table output.
func (c *Command) render(format string, v any, fillTable func(tw table.Writer)) error {
	switch format {
	case "", OutputTable:
		tw := newTable()
		fillTable(tw)
		c.UI.Output(tw.Render())
	case OutputJSON:
		jsonOutput, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		c.UI.Output(string(jsonOutput))
	case OutputYAML:
		yamlOutput, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		c.UI.Output(strings.TrimRight(string(yamlOutput), "\n"))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// PrintCorpora renders corpora in the given format.
func (c *Command) PrintCorpora(format string, corpora []*pypln.Corpus) error {
	return c.render(format, corpora, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"NAME", "DESCRIPTION", "OWNER", "DOCUMENTS", "CREATED", "URL"})
		for _, corpus := range corpora {
			tw.AppendRow(table.Row{
				corpus.Name,
				corpus.Description,
				corpus.Owner,
				len(corpus.Documents),
				ago(corpus.CreatedAt),
				corpus.URL,
			})
		}
	})
}

// PrintDocuments renders documents in the given format.
func (c *Command) PrintDocuments(format string, docs []*pypln.Document) error {
	return c.render(format, docs, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"BLOB", "SIZE", "OWNER", "UPLOADED", "URL"})
		for _, doc := range docs {
			tw.AppendRow(table.Row{
				doc.Blob,
				humanize.Bytes(uint64(doc.Size)),
				doc.Owner,
				ago(doc.UploadedAt),
				doc.URL,
			})
		}
	})
}

// PrintNames renders a list of names, one per row.
func (c *Command) PrintNames(format, header string, names []string) error {
	return c.render(format, names, func(tw table.Writer) {
		tw.AppendHeader(table.Row{header})
		for _, name := range names {
			tw.AppendRow(table.Row{name})
		}
	})
}

// PrintValue renders a single decoded value. Table output prints strings
// as-is and anything else as indented JSON.
func (c *Command) PrintValue(format string, v any) error {
	if format == "" || format == OutputTable {
		if s, ok := v.(string); ok {
			c.UI.Output(s)
			return nil
		}
		format = OutputJSON
	}
	return c.render(format, v, nil)
}
