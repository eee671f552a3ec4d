// Package base holds the plumbing shared by every pypln command: logger, UI,
// flags, configuration and client construction.
package base

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/namd/pypln-go/internal/config"
	"github.com/namd/pypln-go/pkg/pypln"
)

// EnvConfig names the config file when -config is not given.
const EnvConfig = "PYPLN_CONFIG"

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
	Fs  afero.Fs

	flagConfig string
	flagOutput string
}

// NewCommand returns a Command using the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned instead of printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(nopWriter{})
	return &FlagSet{FlagSet: f}
}

// Help renders the flags for a command's help text.
func (f *FlagSet) Help() string {
	var flags []*flag.Flag
	f.VisitAll(func(fl *flag.Flag) {
		flags = append(flags, fl)
	})
	if len(flags) == 0 {
		return ""
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })

	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	for _, fl := range flags {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	}
	return b.String()
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// AddClientFlags registers the flags shared by commands that talk to the
// server.
func (c *Command) AddClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"[PYPLN_CONFIG] Path to the HCL configuration file",
	)
	f.StringVar(
		&c.flagOutput, "output", "",
		"Output format: table, json or yaml (default from config, else table)",
	)
}

// LoadConfig reads the configuration selected by -config or PYPLN_CONFIG
// and applies its log level to c.Log.
func (c *Command) LoadConfig() (*config.Config, error) {
	path := c.flagConfig
	if val, ok := os.LookupEnv(EnvConfig); ok && path == "" {
		path = val
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if c.flagOutput != "" {
		cfg.Output = c.flagOutput
	}

	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	return cfg, nil
}

// Client loads the configuration and builds a client from it.
func (c *Command) Client() (*pypln.Client, *config.Config, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := pypln.NewClientFromConfig(cfg.Client, pypln.WithLogger(c.Log))
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// ResourceAccess returns the credentials and session options for fetching a
// resource by URL.
func (c *Command) ResourceAccess() (pypln.Credentials, []pypln.Option, *config.Config, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	creds, err := cfg.Client.Credentials()
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []pypln.Option{
		pypln.WithHTTPClient(cfg.Client.NewHTTPClient()),
		pypln.WithLogger(c.Log),
	}
	return creds, opts, cfg, nil
}

// Context returns a context cancelled on interrupt or SIGTERM.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Error reports err on the UI and returns exit code 1.
func (c *Command) Error(format string, err error) int {
	c.UI.Error(fmt.Sprintf(format, err))
	return 1
}
