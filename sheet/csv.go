package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// CSVOptions describes a delimited text file.
type CSVOptions struct {
	Delimiter rune     // defaults to ','
	Encoding  Encoding // defaults to Auto
	SkipRows  int      // preamble lines before the header row
}

// loadOptions keeps every cell as a string: codes like "00123" must survive
// and numbers are parsed later with the file's NumberFormat.
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	}
}

// ReadCSV reads a delimited file into a table of strings.
func ReadCSV(r io.Reader, opts CSVOptions) (dataframe.DataFrame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if opts.SkipRows >= len(lines) {
		return dataframe.DataFrame{}, fmt.Errorf("file has %d lines, cannot skip %d preamble lines", len(lines), opts.SkipRows)
	}
	text = strings.Join(lines[opts.SkipRows:], "\n")

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // ragged rows are padded by FromRecords

	var header []string
	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("cannot read csv (after %d preamble lines): %w", opts.SkipRows, err)
		}
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = trimAll(row)
			continue
		}
		rows = append(rows, row)
	}
	if header == nil {
		return dataframe.DataFrame{}, fmt.Errorf("csv has no header row")
	}
	return FromRecords(header, rows)
}

// FromRecords builds a table of strings from a header row and data rows.
// Short rows are padded with empty cells.
func FromRecords(header []string, rows [][]string) (dataframe.DataFrame, error) {
	if len(rows) == 0 {
		// gota cannot load a header without rows.
		cols := make([]series.Series, len(header))
		for i, name := range header {
			cols[i] = series.New([]string{}, series.String, name)
		}
		df := dataframe.New(cols...)
		return df, df.Err
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		padded := make([]string, len(header))
		copy(padded, row)
		records = append(records, padded)
	}
	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return df, fmt.Errorf("cannot load table: %w", df.Err)
	}
	return df, nil
}
