package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/royalty/ecad"
	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/sheet"
	"github.com/google/subcommands"
)

// ecadCmd extracts ECAD statements.
type ecadCmd struct {
	out outputFlags
}

func (*ecadCmd) Name() string     { return "ecad" }
func (*ecadCmd) Synopsis() string { return "extract ECAD fixed-width statements into a table" }
func (*ecadCmd) Usage() string {
	return `rbo ecad [-o <file>] [-html <file>] [-pg <table>] <statement>...

  Extracts the records of ECAD fixed-width statements, one row per record,
  with the header fields repeated on every row.
  Malformed lines are dropped and counted.
`
}

func (c *ecadCmd) SetFlags(f *flag.FlagSet) {
	c.out.SetFlags(f, "ecad.csv")
}

func (c *ecadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one statement file is required")
		return subcommands.ExitUsageError
	}
	res, err := ecad.ParseFiles(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	table, err := res.Table()
	if errors.Is(err, ecad.ErrNoRecords) {
		// no table to write, the report still lists the dropped lines
		printMarkdown(renderer.RenderECAD(res))
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.RenderECAD(res)
	if err := c.out.write(ctx, "ECAD", md, sheet.Sheet{Name: "ECAD", Table: table}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
