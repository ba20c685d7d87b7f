package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/royalty/concat"
	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/sheet"
	"github.com/google/subcommands"
)

// concatCmd appends the rows of several files.
type concatCmd struct {
	column string
	agg    string
	by     string
	filter string
	in     inputFlags
	out    outputFlags
}

func (*concatCmd) Name() string     { return "concat" }
func (*concatCmd) Synopsis() string { return "concatenate files with the same columns" }
func (*concatCmd) Usage() string {
	return `rbo concat [-column <name> -agg sum|count|mean|min|max [-by <name> [-filter <v1,v2>]]] <file>...

  Appends the rows of the files, which must all have the columns of the
  first one, and optionally aggregates a column of the result, as a whole
  or per value of the -by column.
`
}

func (c *concatCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.column, "column", "", "Column to aggregate")
	f.StringVar(&c.agg, "agg", string(concat.Sum), "Aggregation (sum, count, mean, min, max)")
	f.StringVar(&c.by, "by", "", "Column to group by before aggregating")
	f.StringVar(&c.filter, "filter", "", "Comma separated values of the -by column to keep")
	c.in.SetFlags(f, "")
	c.out.SetFlags(f, "concat.csv")
}

func (c *concatCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file is required")
		return subcommands.ExitUsageError
	}
	if c.by != "" && c.column == "" {
		fmt.Fprintln(os.Stderr, "Error: -by requires a -column to aggregate")
		return subcommands.ExitUsageError
	}
	if c.filter != "" && c.by == "" {
		fmt.Fprintln(os.Stderr, "Error: -filter requires a -by column")
		return subcommands.ExitUsageError
	}
	opts, nf, err := c.in.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	agg, err := concat.ParseAggregation(c.agg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	inputs, err := concat.LoadFiles(opts, f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	df, err := concat.Concat(inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := renderer.ConcatReport{Files: inputs, Rows: df.Nrow(), Columns: df.Names()}
	sheets := []sheet.Sheet{{Name: "Concatenado", Table: df}}
	switch {
	case c.by != "":
		groups, err := concat.GroupBy(df, c.by, c.column, agg, nf, splitList(c.filter)...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		table, err := concat.GroupTable(c.by, c.column, agg, groups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		report.Column, report.Aggregation, report.By, report.Groups = c.column, agg, c.by, groups
		sheets = append(sheets, sheet.Sheet{Name: "Agrupado", Table: table})
	case c.column != "":
		v, err := concat.Aggregate(df, c.column, agg, nf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		report.Column, report.Aggregation, report.Value = c.column, agg, v
	}

	md := renderer.RenderConcat(report)
	if err := c.out.write(ctx, "Concatenação", md, sheets...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// splitList splits a comma separated list, dropping blank items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
