package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a share expressed in percentage points: 50 means 50%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Fraction returns p as a decimal fraction: 50% is 0.5.
func (p Percent) Fraction() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Shift(-2)
}

// Of returns the percentage p of q, e.g. 50% of 60% is 30%.
func (p Percent) Of(q Percent) Percent { return p * q / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// Total adds up percentages.
func Total(ps ...Percent) Percent {
	var t Percent
	for _, p := range ps {
		t += p
	}
	return t
}
