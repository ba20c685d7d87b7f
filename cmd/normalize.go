package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/royalty/fx"
	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/normalize"
	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/sheet"
	"github.com/google/subcommands"
)

// rateFlags collects repeated -rate CUR=value flags.
type rateFlags struct {
	rates normalize.Rates
}

func (r *rateFlags) String() string {
	var s []string
	for cur, v := range r.rates {
		s = append(s, cur+"="+v.String())
	}
	return strings.Join(s, ",")
}

func (r *rateFlags) Set(v string) error {
	cur, rate, err := normalize.ParseRate(v)
	if err != nil {
		return err
	}
	if r.rates == nil {
		r.rates = make(normalize.Rates)
	}
	r.rates.Set(cur, rate)
	return nil
}

// normalizeCmd normalizes a distributor workbook.
type normalizeCmd struct {
	ratesFile string
	rate      rateFlags
	fetch     bool
	decimal   string
	out       outputFlags
}

func (*normalizeCmd) Name() string { return "normalize" }
func (*normalizeCmd) Synopsis() string {
	return "normalize the sheets of a distributor workbook and convert them to BRL"
}
func (*normalizeCmd) Usage() string {
	return `rbo normalize [-rates <file.yaml>] [-rate CUR=value]... [-fetch] <workbook.xlsx>

  Maps the Masters, Youtube Channels and Shares In & Out sheets to a single
  layout, adds the Gross BRL and Net BRL columns and sums them by sheet.
  Shares paid onward are listed apart, by receiver.

  Rates are BRL per unit. -rate wins over the -rates file, which wins over
  the rates fetched with -fetch.
`
}

func (c *normalizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ratesFile, "rates", "", "YAML file of currency rates to BRL")
	f.Var(&c.rate, "rate", "Currency rate to BRL, like USD=5.20 (repeatable)")
	f.BoolVar(&c.fetch, "fetch", false, "Fetch the missing rates from the quotes service")
	f.StringVar(&c.decimal, "decimal", ".", "Decimal separator of the numbers stored as text (. or ,)")
	c.out.SetFlags(f, "normalized.xlsx")
}

func (c *normalizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one workbook is required")
		return subcommands.ExitUsageError
	}
	nf, err := sheet.ParseNumberFormat(c.decimal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	wb, warnings, err := normalize.LoadWorkbook(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, err := c.rates(ctx, wb.Currencies())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := normalize.Normalize(wb, rates, nf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	res.Warnings = append(warnings, res.Warnings...)

	sheets, err := res.Tables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	md := renderer.RenderNormalize(res)
	if err := c.out.write(ctx, "Normalização", md, sheets...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// rates merges the rate sources for the currencies of the workbook.
func (c *normalizeCmd) rates(ctx context.Context, currencies []string) (normalize.Rates, error) {
	rates := make(normalize.Rates)
	if c.ratesFile != "" {
		file, err := normalize.LoadRates(c.ratesFile)
		if err != nil {
			return nil, err
		}
		for cur, v := range file {
			rates[cur] = v
		}
	}
	for cur, v := range c.rate.rates {
		rates[cur] = v
	}
	if !c.fetch {
		return rates, nil
	}
	fetcher := newFetcher()
	for _, cur := range currencies {
		if _, ok := rates[cur]; ok || cur == "BRL" {
			continue
		}
		v, err := fetcher.Rate(ctx, fx.BRLSource(cur))
		if err != nil {
			return nil, fmt.Errorf("cannot fetch the %s rate: %w", cur, err)
		}
		logging.Log.WithField("currency", cur).WithField("rate", v).Info("rate fetched")
		rates[cur] = v
	}
	return rates, nil
}
