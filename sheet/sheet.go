// Package sheet reads and writes the tabular files handled by the back office:
// delimited text files in various encodings and xlsx workbooks.
//
// Tables are gota data frames whose columns are all strings; numbers are
// parsed on demand with a [NumberFormat] because Brazilian files use a comma
// as decimal separator.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Options selects how ReadFile reads a file.
type Options struct {
	CSV   CSVOptions
	Sheet string // workbook sheet, first sheet when empty
}

// ReadFile reads a csv/txt or xlsx file depending on its extension.
func ReadFile(path string, opts Options) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	var df dataframe.DataFrame
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		df, err = ReadXLSX(f, opts.Sheet)
	case ".csv", ".txt", ".tsv":
		df, err = ReadCSV(f, opts.CSV)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported file format %q", ext)
	}
	if err != nil {
		return df, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return df, nil
}

// Strings returns the cells of a column, or a MissingColumnError.
func Strings(df dataframe.DataFrame, column string) ([]string, error) {
	if !HasColumn(df, column) {
		return nil, &MissingColumnError{Column: column, Available: df.Names()}
	}
	return df.Col(column).Records(), nil
}

// HasColumn reports whether df has a column named 'column'.
func HasColumn(df dataframe.DataFrame, column string) bool {
	for _, name := range df.Names() {
		if name == column {
			return true
		}
	}
	return false
}
