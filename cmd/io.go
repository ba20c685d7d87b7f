package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/etnz/royalty/fx"
	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/renderer"
	"github.com/etnz/royalty/sheet"
	"github.com/etnz/royalty/store"
)

// inputFlags describe how the input spreadsheets are read.
type inputFlags struct {
	sep      string
	decimal  string
	encoding string
	skip     int
	sheet    string
}

func (in *inputFlags) SetFlags(f *flag.FlagSet, defaultSheet string) {
	f.StringVar(&in.sep, "sep", ",", "CSV field separator")
	f.StringVar(&in.decimal, "decimal", ".", "Decimal separator of the numbers (. or ,)")
	f.StringVar(&in.encoding, "encoding", "auto", "CSV encoding (auto, utf-8, latin1, cp1252)")
	f.IntVar(&in.skip, "skip", 0, "Lines to skip before the CSV header")
	f.StringVar(&in.sheet, "sheet", defaultSheet, "Workbook sheet, the first one when empty")
}

func (in *inputFlags) options() (sheet.Options, sheet.NumberFormat, error) {
	nf, err := sheet.ParseNumberFormat(in.decimal)
	if err != nil {
		return sheet.Options{}, nf, err
	}
	enc, err := sheet.ParseEncoding(in.encoding)
	if err != nil {
		return sheet.Options{}, nf, err
	}
	if in.sep == `\t` {
		in.sep = "\t"
	}
	sep, size := utf8.DecodeRuneInString(in.sep)
	if size == 0 || size != len(in.sep) {
		return sheet.Options{}, nf, fmt.Errorf("invalid separator %q, want a single character", in.sep)
	}
	return sheet.Options{
		CSV:   sheet.CSVOptions{Delimiter: sep, Encoding: enc, SkipRows: in.skip},
		Sheet: in.sheet,
	}, nf, nil
}

// outputFlags describe where results are written.
type outputFlags struct {
	path string
	html string
	pg   string
}

func (out *outputFlags) SetFlags(f *flag.FlagSet, defaultPath string) {
	f.StringVar(&out.path, "o", defaultPath, "Output spreadsheet (.xlsx or .csv), nothing is written when empty")
	f.StringVar(&out.html, "html", "", "Also write the report as an HTML page")
	f.StringVar(&out.pg, "pg", "", "Also export the tables to PostgreSQL, with this table name prefix")
}

// write writes the tables and the report, then prints the report.
func (out *outputFlags) write(ctx context.Context, title, md string, sheets ...sheet.Sheet) error {
	if out.path != "" {
		if err := sheet.WriteFile(out.path, sheets...); err != nil {
			return fmt.Errorf("cannot write %s: %w", out.path, err)
		}
		logging.Log.WithField("file", out.path).Info("written")
	}
	if out.html != "" {
		page, err := renderer.HTML(title, md)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out.html, page, 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", out.html, err)
		}
	}
	if out.pg != "" {
		if err := export(ctx, out.pg, sheets); err != nil {
			return err
		}
	}
	printMarkdown(md)
	return nil
}

// export copies every table into <prefix>_<sheet name>.
func export(ctx context.Context, prefix string, sheets []sheet.Sheet) error {
	dsn, err := store.DSNFromEnv(*envFile)
	if err != nil {
		return err
	}
	db, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	for _, s := range sheets {
		table := store.ColumnName(prefix + "_" + s.Name)
		if _, err := store.Export(ctx, db, table, s.Table); err != nil {
			return err
		}
	}
	return nil
}

// newFetcher returns a rate fetcher caching in the user cache directory.
func newFetcher() *fx.Fetcher {
	dir, err := os.UserCacheDir()
	if err == nil {
		dir = filepath.Join(dir, "rbo")
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		dir = "" // temp directory
	}
	return fx.New(dir)
}
