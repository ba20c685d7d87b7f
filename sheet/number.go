package sheet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormat describes how numbers are written in a text file.
type NumberFormat struct {
	Decimal   rune // decimal separator
	Thousands rune // thousands separator, 0 when none
}

var (
	// Dot is the format of spreadsheet raw values and of the generated files: 1234.56
	Dot = NumberFormat{Decimal: '.'}
	// Comma is the Brazilian format: 1.234,56
	Comma = NumberFormat{Decimal: ',', Thousands: '.'}
)

// Parse parses a number. Blank cells are zero; currency prefixes are ignored.
func (f NumberFormat) Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"R$", "US$", "$"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	clean := s
	if f.Thousands != 0 {
		clean = strings.ReplaceAll(clean, string(f.Thousands), "")
	}
	if f.Decimal != 0 && f.Decimal != '.' {
		clean = strings.ReplaceAll(clean, string(f.Decimal), ".")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// ParseNumberFormat returns the number format for a decimal separator name.
func ParseNumberFormat(decimalSep string) (NumberFormat, error) {
	switch decimalSep {
	case ".", "dot", "":
		return NumberFormat{Decimal: '.', Thousands: ','}, nil
	case ",", "comma":
		return Comma, nil
	}
	return NumberFormat{}, fmt.Errorf("unknown decimal separator %q (. or ,)", decimalSep)
}
