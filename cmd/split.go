package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/split"
	"github.com/google/subcommands"
)

// splitCmd allocates the amounts of detail reports to payees.
type splitCmd struct {
	mode      string
	writer    string
	publisher string
	config    string
	registry  string
	format    string
	out       outputFlags
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "split report amounts between payees" }
func (*splitCmd) Usage() string {
	return `rbo split -registry <file> [-mode writer|publisher] [-format domestic|international|ecad] [-config <file>] <report>...

  Aggregates the report amounts by work, classifies every work with the
  registry flags, and splits its total between the payees of its bucket.
  Works missing from the registry are listed and excluded.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", string(split.Writer), "Allocation mode (writer, publisher)")
	f.StringVar(&c.writer, "writer", "", "Name of the writer payee")
	f.StringVar(&c.publisher, "publisher", "", "Name of the publisher payee")
	f.StringVar(&c.config, "config", "", "YAML share configuration, overrides -mode")
	f.StringVar(&c.registry, "registry", "", "Work registry (csv or xlsx)")
	f.StringVar(&c.format, "format", string(split.Domestic), "Report format (domestic, international, ecad)")
	c.out.SetFlags(f, "split.xlsx")
}

func (c *splitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.registry == "" || f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a registry and at least one report are required")
		return subcommands.ExitUsageError
	}
	format, err := split.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, err := split.LoadRegistry(c.registry, format.RegistryKey())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var rows []split.Row
	for _, path := range f.Args() {
		r, err := split.LoadReport(format, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			return subcommands.ExitFailure
		}
		rows = append(rows, r...)
	}

	res := split.Allocate(rows, reg, cfg)
	md := renderer.RenderSplit(res)
	if err := c.out.write(ctx, "Rateio", md, res.Tables()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *splitCmd) loadConfig() (split.Config, error) {
	var cfg split.Config
	if c.config != "" {
		var err error
		if cfg, err = split.LoadConfig(c.config); err != nil {
			return cfg, err
		}
	} else {
		mode, err := split.ParseMode(c.mode)
		if err != nil {
			return cfg, err
		}
		cfg = split.DefaultConfig(mode)
	}
	if c.writer != "" {
		cfg.Writer = c.writer
	}
	if c.publisher != "" {
		cfg.Publisher = c.publisher
	}
	return cfg, nil
}
