package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/royalty"
	"github.com/etnz/royalty/discount"
	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/sheet"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// discountCmd discounts a numeric column of a table.
type discountCmd struct {
	column            string
	percent           float64
	value             string
	adjust            string
	description       string
	descriptionColumn string
	positive          bool
	in                inputFlags
	out               outputFlags
}

func (*discountCmd) Name() string     { return "discount" }
func (*discountCmd) Synopsis() string { return "apply a discount to a numeric column" }
func (*discountCmd) Usage() string {
	return `rbo discount -column <name> (-percent <p> | -value <v> | -adjust <v> -description <text> -description-column <name>) <file>

  -percent reduces every row by p percent.
  -value spreads a discount of v over the rows, proportionally to their value.
  -adjust appends a row of -v (or +v with -positive) with a description.
`
}

func (c *discountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.column, "column", "", "Numeric column to discount")
	f.Float64Var(&c.percent, "percent", 0, "Percentage discount applied to every row")
	f.StringVar(&c.value, "value", "", "Total discount spread over the rows")
	f.StringVar(&c.adjust, "adjust", "", "Amount of the adjustment row")
	f.StringVar(&c.description, "description", "", "Description of the adjustment row")
	f.StringVar(&c.descriptionColumn, "description-column", "", "Column receiving the adjustment description")
	f.BoolVar(&c.positive, "positive", false, "The adjustment is added instead of subtracted")
	c.in.SetFlags(f, "")
	c.out.SetFlags(f, "discount.csv")
}

func (c *discountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.column == "" {
		fmt.Fprintln(os.Stderr, "Error: a -column and exactly one file are required")
		return subcommands.ExitUsageError
	}
	modes := 0
	for _, set := range []bool{c.percent != 0, c.value != "", c.adjust != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -percent, -value and -adjust is required")
		return subcommands.ExitUsageError
	}
	opts, nf, err := c.in.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	df, err := sheet.ReadFile(f.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var res *discount.Result
	switch {
	case c.percent != 0:
		res, err = discount.Percent(df, c.column, nf, royalty.Percent(c.percent))
	case c.value != "":
		var v decimal.Decimal
		if v, err = nf.Parse(c.value); err == nil {
			res, err = discount.Value(df, c.column, nf, v)
		}
	default:
		var v decimal.Decimal
		if v, err = nf.Parse(c.adjust); err == nil {
			res, err = discount.Adjust(df, c.column, nf, discount.Adjustment{
				Amount:            v,
				Description:       c.description,
				Positive:          c.positive,
				DescriptionColumn: c.descriptionColumn,
			})
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.RenderDiscount(res, c.column)
	if err := c.out.write(ctx, "Desconto", md, sheet.Sheet{Name: "Desconto", Table: res.Table}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
