package ecad

import (
	"fmt"
	"strings"

	"github.com/etnz/royalty/date"
)

// FormatPercent formats a 9(03)V99 field: "01234" is "12.34". Blank is "0.00".
func FormatPercent(s string) (string, error) { return impliedDecimal(s, 5, 2) }

// FormatMoney formats a 9(10)V9(9) field: "0000000001000000000" is "1.000000000".
// Blank is "0.000000000".
func FormatMoney(s string) (string, error) { return impliedDecimal(s, 19, 9) }

// impliedDecimal formats a zero-padded digit string whose last 'decimals'
// digits are the fractional part.
func impliedDecimal(s string, width, decimals int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0." + strings.Repeat("0", decimals), nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%q is not a number", s)
		}
	}
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	intPart := strings.TrimLeft(s[:len(s)-decimals], "0")
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + s[len(s)-decimals:], nil
}

// FormatPeriod formats a DDMMYYYYDDMMYYYY period as "DD-MM-YYYY DD-MM-YYYY",
// by position: the dates are not checked. Other lengths are kept as is.
func FormatPeriod(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) != 16 {
		return s
	}
	day := func(d []rune) string { return string(d[0:2]) + "-" + string(d[2:4]) + "-" + string(d[4:8]) }
	return day(r[:8]) + " " + day(r[8:])
}

// FormatMonthYear formats a MMYYYY payment month as "MM-YYYY".
// Values that are not a valid month are kept as is.
func FormatMonthYear(s string) string {
	s = strings.TrimSpace(s)
	d, err := date.ParseMonthYear(s)
	if err != nil {
		return s
	}
	return d.Format(date.MonthFormat)
}

var distributionTypes = map[string]string{
	"1": "Repasse",
	"2": "Liberação Retido",
	"3": "Liberação Pendente",
	"4": "Liberação Parâmetro",
	"5": "Lançamento Manual",
}

// DistributionType names a distribution code; unknown codes are returned as is.
func DistributionType(code string) string {
	code = strings.TrimSpace(code)
	if name, ok := distributionTypes[code]; ok {
		return name
	}
	return code
}

// format formats a raw (trimmed) value according to the field kind.
func (f Field) format(raw string) (string, error) {
	switch f.Kind {
	case Percent:
		return FormatPercent(raw)
	case Amount:
		return FormatMoney(raw)
	case Period:
		return FormatPeriod(raw), nil
	case MonthYear:
		return FormatMonthYear(raw), nil
	case Distribution:
		return DistributionType(raw), nil
	}
	return raw, nil
}
