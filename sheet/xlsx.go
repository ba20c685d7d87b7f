package sheet

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a workbook sheet into a table of strings. The first non empty
// row is the header. An empty sheet name selects the first sheet.
//
// Cells are read as raw values, numbers use the Dot format.
func ReadXLSX(r io.Reader, sheetName string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheetName == "" {
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, &MissingSheetError{Sheet: "(first)"}
		}
		sheetName = sheets[0]
	}
	if !slices.Contains(sheets, sheetName) {
		return dataframe.DataFrame{}, &MissingSheetError{Sheet: sheetName, Available: sheets}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("cannot read sheet %q: %w", sheetName, err)
	}

	var header []string
	var data [][]string
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = trimAll(row)
			continue
		}
		data = append(data, row)
	}
	if header == nil {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q is empty", sheetName)
	}
	return FromRecords(header, data)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
