// Package withholding applies the US tax withholding to a digital sales
// report and summarizes the net amounts by artist.
package withholding

import (
	"fmt"
	"strings"

	"github.com/etnz/royalty"
	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"
)

// Report layout.
const (
	SheetName            = "Digital Sales Details"
	ColumnClassification = "Sales Classification"
	ColumnNet            = "Net Dollars after Fees"
	ColumnTerritory      = "Territory"
	ColumnArtist         = "Artist"
)

// Currency of the report amounts.
const Currency = "USD"

var schema = sheet.Schema{
	{Name: ColumnClassification},
	{Name: ColumnNet},
	{Name: ColumnTerritory},
	{Name: ColumnArtist, Optional: true},
}

// Options of the withholding.
type Options struct {
	Rate      royalty.Percent // withheld share of the net amount
	Territory string          // territory subject to withholding
	Numbers   sheet.NumberFormat
}

// DefaultOptions withholds 30% of the sales in the United States.
func DefaultOptions() Options {
	return Options{Rate: 30, Territory: "United States", Numbers: sheet.Dot}
}

// Result is a report with the withholding applied.
type Result struct {
	Table     dataframe.DataFrame
	Rows      int // rows after removing the total lines
	Withheld  int // rows subject to withholding
	NetBefore royalty.Money
	NetAfter  royalty.Money
	// TotalWithheld is NetBefore - NetAfter.
	TotalWithheld royalty.Money

	net []royalty.Money // exact net amounts, by row
}

// Apply removes the total lines of the report and reduces the net amount of
// the rows of the withheld territory.
func Apply(df dataframe.DataFrame, opts Options) (*Result, error) {
	df, err := schema.Apply(df)
	if err != nil {
		return nil, fmt.Errorf("invalid sales report: %w", err)
	}

	var keep []int
	for i, c := range df.Col(ColumnClassification).Records() {
		if !strings.Contains(strings.ToLower(c), "total") {
			keep = append(keep, i)
		}
	}
	if len(keep) < df.Nrow() {
		logging.Log.WithField("rows", df.Nrow()-len(keep)).Debug("removed total lines")
		if len(keep) == 0 {
			df, err = sheet.FromRecords(df.Names(), nil)
		} else {
			df = df.Subset(keep)
			err = df.Err
		}
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		Rows:      df.Nrow(),
		NetBefore: royalty.M(0, Currency),
		NetAfter:  royalty.M(0, Currency),
	}
	net := df.Col(ColumnNet).Records()
	territories := df.Col(ColumnTerritory).Records()
	after := make([]float64, len(net))
	keepShare := 100 - opts.Rate
	for i := range net {
		v, err := opts.Numbers.Parse(net[i])
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", i+1, ColumnNet, err)
		}
		amount := royalty.M(v, Currency)
		res.NetBefore = res.NetBefore.Add(amount)
		if strings.TrimSpace(territories[i]) == opts.Territory {
			amount = amount.Share(keepShare)
			res.Withheld++
		}
		res.NetAfter = res.NetAfter.Add(amount)
		res.net = append(res.net, amount)
		after[i] = amount.AsFloat()
	}
	res.TotalWithheld = res.NetBefore.Sub(res.NetAfter)
	res.Table = df.Mutate(series.New(after, series.Float, ColumnNet))
	if res.Table.Err != nil {
		return nil, res.Table.Err
	}
	logging.Log.WithFields(logrus.Fields{"rows": res.Rows, "withheld": res.Withheld}).Info("withholding applied")
	return res, nil
}
