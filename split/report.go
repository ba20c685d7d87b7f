package split

import (
	"fmt"

	"github.com/etnz/royalty/ecad"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
)

// Format is the layout of a detail report.
type Format string

const (
	// Domestic is the society's semicolon separated Latin-1 export.
	Domestic Format = "domestic"
	// International is the xlsx detail of foreign collections.
	International Format = "international"
	// ECAD is the table written by the statement extractor.
	ECAD Format = "ecad"
)

// InternationalSheet is the sheet read from international reports.
const InternationalSheet = "Detalhamento Completo"

type layout struct {
	options sheet.Options
	numbers sheet.NumberFormat
	// report columns
	code, title, amount string
	key                 string // registry column matching the report codes
	dropZero            bool   // remove rows with a zero amount
}

func (l layout) schema() sheet.Schema {
	return sheet.Schema{
		{Name: l.code},
		{Name: l.title, Optional: true},
		{Name: l.amount},
	}
}

var layouts = map[Format]layout{
	Domestic: {
		options: sheet.Options{CSV: sheet.CSVOptions{Delimiter: ';', Encoding: sheet.Latin1, SkipRows: 4}},
		numbers: sheet.Comma,
		code:    "CÓD. OBRA",
		title:   "TÍTULO DA MUSICA",
		amount:  "RATEIO",
		key:     ColumnCode,
	},
	International: {
		options:  sheet.Options{Sheet: InternationalSheet},
		numbers:  sheet.Dot,
		code:     "ISRC/ISWC",
		title:    "Título",
		amount:   "Rendimento",
		key:      ColumnISWC,
		dropZero: true,
	},
	ECAD: {
		numbers: sheet.Dot,
		code:    ecad.ColumnWorkCode,
		title:   ecad.ColumnTitle,
		amount:  ecad.ColumnShare,
		key:     ColumnCode,
	},
}

// ParseFormat parses a report format name.
func ParseFormat(s string) (Format, error) {
	if _, ok := layouts[Format(s)]; !ok {
		return "", fmt.Errorf("unknown report format %q (domestic, international or ecad)", s)
	}
	return Format(s), nil
}

// RegistryKey returns the registry column matching the codes of the format.
func (f Format) RegistryKey() string { return layouts[f].key }

// Row is one line of a detail report.
type Row struct {
	Code   string
	Title  string
	Amount decimal.Decimal
}

// LoadReport reads a detail report file.
func LoadReport(format Format, path string) ([]Row, error) {
	l, ok := layouts[format]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	df, err := sheet.ReadFile(path, l.options)
	if err != nil {
		return nil, fmt.Errorf("cannot read report: %w", err)
	}
	return ReadReport(format, df)
}

// ReadReport extracts the rows of a report table. Rows without a code are
// ignored.
func ReadReport(format Format, df dataframe.DataFrame) ([]Row, error) {
	l, ok := layouts[format]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	df, err := l.schema().Apply(df)
	if err != nil {
		return nil, fmt.Errorf("invalid %s report: %w", format, err)
	}
	codes := df.Col(l.code).Records()
	titles := df.Col(l.title).Records()
	amounts := df.Col(l.amount).Records()

	var rows []Row
	for i, code := range codes {
		code = normalizeCode(code)
		if code == "" {
			continue
		}
		amount, err := l.numbers.Parse(amounts[i])
		if err != nil {
			return nil, fmt.Errorf("report row %d (%s): %w", i+1, code, err)
		}
		if l.dropZero && amount.IsZero() {
			continue
		}
		rows = append(rows, Row{Code: code, Title: titles[i], Amount: amount})
	}
	return rows, nil
}
