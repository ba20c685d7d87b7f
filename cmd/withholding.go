package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/royalty"
	"github.com/etnz/royalty/fx"
	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/sheet"
	"github.com/etnz/royalty/withholding"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// withholdingCmd applies the US withholding to a digital sales report.
type withholdingCmd struct {
	rate      float64
	territory string
	groups    string
	fx        string
	fxURL     string
	fxPath    string
	in        inputFlags
	out       outputFlags
}

func (*withholdingCmd) Name() string     { return "withholding" }
func (*withholdingCmd) Synopsis() string { return "apply the US withholding to a digital sales report" }
func (*withholdingCmd) Usage() string {
	return `rbo withholding [-rate <percent>] [-groups <file> [-fx <rate>]] <report>

  Removes the total lines of the report and reduces the net amount of the
  sales made in the withheld territory.
  With -groups, the net amounts are summed by artist and converted to BRL,
  at the -fx rate or at the rate fetched from -fx-url.
`
}

func (c *withholdingCmd) SetFlags(f *flag.FlagSet) {
	def := withholding.DefaultOptions()
	f.Float64Var(&c.rate, "rate", float64(def.Rate), "Withheld percentage of the net amount")
	f.StringVar(&c.territory, "territory", def.Territory, "Territory subject to the withholding")
	f.StringVar(&c.groups, "groups", "", "YAML artist groups for the summary by artist")
	f.StringVar(&c.fx, "fx", "", "BRL per USD rate, fetched when empty")
	f.StringVar(&c.fxURL, "fx-url", fx.DefaultSource.URL, "JSON service providing the rate")
	f.StringVar(&c.fxPath, "fx-path", fx.DefaultSource.Path, "JSONPath of the rate in the service response")
	c.in.SetFlags(f, withholding.SheetName)
	c.out.SetFlags(f, "withholding.xlsx")
}

func (c *withholdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one sales report is required")
		return subcommands.ExitUsageError
	}
	opts, nf, err := c.in.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.rate < 0 || c.rate > 100 {
		fmt.Fprintf(os.Stderr, "Error: rate %v out of range [0, 100]\n", c.rate)
		return subcommands.ExitUsageError
	}

	df, err := sheet.ReadFile(f.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := withholding.Apply(df, withholding.Options{
		Rate:      royalty.Percent(c.rate),
		Territory: c.territory,
		Numbers:   nf,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sheets := []sheet.Sheet{{Name: withholding.SheetName, Table: res.Table}}

	var summary *withholding.Summary
	if c.groups != "" {
		groups, err := withholding.LoadGroups(c.groups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		rate, err := c.exchangeRate(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		s := withholding.Summarize(res, groups, rate)
		summary = &s
		sheets = append(sheets, sheet.Sheet{Name: "Resumo por Artista", Table: s.Table()})
	}

	md := renderer.RenderWithholding(res, summary)
	if err := c.out.write(ctx, "Withholding", md, sheets...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *withholdingCmd) exchangeRate(ctx context.Context) (decimal.Decimal, error) {
	if c.fx != "" {
		rate, err := decimal.NewFromString(c.fx)
		if err != nil || !rate.IsPositive() {
			return decimal.Zero, fmt.Errorf("invalid rate %q", c.fx)
		}
		return rate, nil
	}
	return newFetcher().Rate(ctx, fx.Source{URL: c.fxURL, Path: c.fxPath})
}
