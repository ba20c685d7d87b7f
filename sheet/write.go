package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Sheet is a named table, written as one workbook sheet or one csv file.
type Sheet struct {
	Name  string
	Table dataframe.DataFrame
}

// WriteCSV writes a table as UTF-8 csv with a byte order mark, which is what
// spreadsheet applications need to detect the encoding.
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	return df.WriteCSV(w)
}

// WriteXLSX writes the tables as sheets of a single workbook. Float and Int
// columns are written as numbers, everything else as text.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		name := sheetName(s.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("cannot create sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, s.Table); err != nil {
			return fmt.Errorf("cannot write sheet %q: %w", name, err)
		}
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, df dataframe.DataFrame) error {
	names := df.Names()
	header := make([]interface{}, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	cols := make([]series.Series, len(names))
	for j, n := range names {
		cols[j] = df.Col(n)
	}
	for i := 0; i < df.Nrow(); i++ {
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			e := col.Elem(i)
			switch {
			case e.IsNA():
				row[j] = nil
			case col.Type() == series.Float:
				row[j] = e.Float()
			case col.Type() == series.Int:
				v, _ := e.Int()
				row[j] = v
			default:
				row[j] = e.String()
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName makes a valid workbook sheet name (31 characters, no []:*?/\).
func sheetName(name string, i int) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = fmt.Sprintf("Sheet%d", i+1)
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

// WriteFile writes the tables to 'path'. A .xlsx path gets one workbook with
// all sheets. A .csv path gets the first table; the following tables are
// written next to it, suffixed with their sheet name.
func WriteFile(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("nothing to write to %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return writeTo(path, func(w io.Writer) error { return WriteXLSX(w, sheets...) })
	case ".csv":
		base := strings.TrimSuffix(path, filepath.Ext(path))
		for i, s := range sheets {
			p := path
			if i > 0 {
				p = fmt.Sprintf("%s_%s%s", base, slug(s.Name), filepath.Ext(path))
			}
			if err := writeTo(p, func(w io.Writer) error { return WriteCSV(w, s.Table) }); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use .csv or .xlsx)", ext)
}

func writeTo(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return f.Close()
}

func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}
