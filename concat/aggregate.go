package concat

import (
	"errors"
	"fmt"

	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
)

// Aggregation is a function applied to a column.
type Aggregation string

const (
	Sum   Aggregation = "sum"
	Count Aggregation = "count"
	Mean  Aggregation = "mean"
	Min   Aggregation = "min"
	Max   Aggregation = "max"
)

// Aggregations lists the available functions.
var Aggregations = []Aggregation{Sum, Count, Mean, Min, Max}

// ParseAggregation parses an aggregation name.
func ParseAggregation(s string) (Aggregation, error) {
	for _, a := range Aggregations {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation %q (sum, count, mean, min or max)", s)
}

// ErrNoValues is returned when a mean, min or max has no value to work on.
var ErrNoValues = errors.New("no values")

// Aggregate applies a to the column. Count counts the non blank cells, the
// other functions ignore blank cells and fail on non numeric ones.
func Aggregate(df dataframe.DataFrame, column string, a Aggregation, nf sheet.NumberFormat) (decimal.Decimal, error) {
	cells, err := sheet.Strings(df, column)
	if err != nil {
		return decimal.Zero, err
	}
	return aggregate(column, cells, nil, a, nf)
}

// aggregate applies a to the cells at idx, or to all cells when idx is nil.
func aggregate(column string, cells []string, idx []int, a Aggregation, nf sheet.NumberFormat) (decimal.Decimal, error) {
	if idx == nil {
		idx = make([]int, len(cells))
		for i := range idx {
			idx[i] = i
		}
	}
	var vs []decimal.Decimal
	for _, i := range idx {
		c := cells[i]
		if c == "" {
			continue
		}
		if a == Count {
			vs = append(vs, decimal.Zero)
			continue
		}
		v, err := nf.Parse(c)
		if err != nil {
			return decimal.Zero, fmt.Errorf("row %d %s: %w", i+1, column, err)
		}
		vs = append(vs, v)
	}
	switch a {
	case Count:
		return decimal.NewFromInt(int64(len(vs))), nil
	case Sum:
		return decimal.Sum(decimal.Zero, vs...), nil
	}
	if len(vs) == 0 {
		return decimal.Zero, fmt.Errorf("%s of %s: %w", a, column, ErrNoValues)
	}
	switch a {
	case Mean:
		return decimal.Avg(vs[0], vs[1:]...), nil
	case Min:
		return decimal.Min(vs[0], vs[1:]...), nil
	case Max:
		return decimal.Max(vs[0], vs[1:]...), nil
	}
	return decimal.Zero, fmt.Errorf("unknown aggregation %q", a)
}
