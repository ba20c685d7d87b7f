// Package discount applies a discount to a numeric column of a table, either
// proportionally on every row or as an extra adjustment row.
package discount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/royalty"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
)

// ErrNonPositiveTotal is returned when a value discount is applied to a column
// whose total is zero or negative.
var ErrNonPositiveTotal = errors.New("column total is zero or negative")

// Result is a discounted table.
type Result struct {
	Table      dataframe.DataFrame
	Original   decimal.Decimal // column total before
	Processed  decimal.Decimal // column total after
	Difference decimal.Decimal // Original - Processed
}

// values parses the cells of the column.
func values(df dataframe.DataFrame, column string, nf sheet.NumberFormat) ([]decimal.Decimal, error) {
	cells, err := sheet.Strings(df, column)
	if err != nil {
		return nil, err
	}
	vs := make([]decimal.Decimal, len(cells))
	for i, c := range cells {
		if vs[i], err = nf.Parse(c); err != nil {
			return nil, fmt.Errorf("row %d %s: %w", i+1, column, err)
		}
	}
	return vs, nil
}

func total(vs []decimal.Decimal) decimal.Decimal {
	t := decimal.Zero
	for _, v := range vs {
		t = t.Add(v)
	}
	return t
}

// scale multiplies every cell of the column by factor.
func scale(df dataframe.DataFrame, column string, nf sheet.NumberFormat, factor decimal.Decimal) (*Result, error) {
	vs, err := values(df, column, nf)
	if err != nil {
		return nil, err
	}
	res := &Result{Original: total(vs), Processed: decimal.Zero}
	out := make([]float64, len(vs))
	for i, v := range vs {
		v = v.Mul(factor)
		res.Processed = res.Processed.Add(v)
		out[i] = v.InexactFloat64()
	}
	res.Difference = res.Original.Sub(res.Processed)
	res.Table = df.Mutate(series.New(out, series.Float, column))
	return res, res.Table.Err
}

// Percent reduces every row of the column by p percent.
func Percent(df dataframe.DataFrame, column string, nf sheet.NumberFormat, p royalty.Percent) (*Result, error) {
	if p < 0 || p > 100 {
		return nil, fmt.Errorf("discount %v out of range [0, 100]", p)
	}
	return scale(df, column, nf, (100 - p).Fraction())
}

// Value spreads a discount of v over the rows of the column, proportionally
// to their value.
func Value(df dataframe.DataFrame, column string, nf sheet.NumberFormat, v decimal.Decimal) (*Result, error) {
	if v.IsNegative() {
		return nil, fmt.Errorf("discount %v is negative", v)
	}
	vs, err := values(df, column, nf)
	if err != nil {
		return nil, err
	}
	t := total(vs)
	if !t.IsPositive() {
		return nil, fmt.Errorf("cannot discount %v: %w (%v)", v, ErrNonPositiveTotal, t)
	}
	return scale(df, column, nf, t.Sub(v).Div(t))
}

// Adjustment is an extra row added to a table.
type Adjustment struct {
	Amount      decimal.Decimal // always positive
	Description string
	Positive    bool // adds Amount instead of subtracting it
	// DescriptionColumn receives the description.
	DescriptionColumn string
}

// Adjust appends a row with the signed amount in the column and the
// description in the description column. Other cells are empty.
func Adjust(df dataframe.DataFrame, column string, nf sheet.NumberFormat, a Adjustment) (*Result, error) {
	if !a.Amount.IsPositive() {
		return nil, fmt.Errorf("adjustment amount must be positive, got %v", a.Amount)
	}
	if strings.TrimSpace(a.Description) == "" {
		return nil, fmt.Errorf("adjustment description is empty")
	}
	if !sheet.HasColumn(df, a.DescriptionColumn) {
		return nil, &sheet.MissingColumnError{Column: a.DescriptionColumn, Available: df.Names()}
	}
	if a.DescriptionColumn == column {
		return nil, fmt.Errorf("description and amount columns must differ")
	}
	vs, err := values(df, column, nf)
	if err != nil {
		return nil, err
	}
	signed := a.Amount
	if !a.Positive {
		signed = signed.Neg()
	}

	names := df.Names()
	row := make([]string, len(names))
	for i, n := range names {
		if n == a.DescriptionColumn {
			row[i] = a.Description
		}
	}
	extra, err := sheet.FromRecords(names, [][]string{row})
	if err != nil {
		return nil, err
	}
	table := df.RBind(extra)
	if table.Err != nil {
		return nil, table.Err
	}

	vs = append(vs, signed)
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.InexactFloat64()
	}
	res := &Result{Original: total(vs[:len(vs)-1]), Processed: total(vs)}
	res.Difference = res.Original.Sub(res.Processed)
	res.Table = table.Mutate(series.New(out, series.Float, column))
	return res, res.Table.Err
}
