// Package normalize maps the sheets of a distributor royalty workbook to a
// single column layout and converts the amounts to BRL.
//
// Three sheets are read: Masters, Youtube Channels and Shares In & Out. Of the
// shares, only the rows received ("In") are normalized; the rows paid onward
// ("Out") are kept apart and summarized by receiver.
package normalize

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Workbook sheets.
const (
	Masters         = "Masters"
	YouTubeChannels = "Youtube Channels"
	SharesInOut     = "Shares In & Out"
)

// Columns read or computed by the normalization.
const (
	ColumnCurrency    = "Currency"
	ColumnGross       = "Gross"
	ColumnNet         = "Net"
	ColumnProductType = "Product Type"
	ColumnGrossBRL    = "Gross BRL"
	ColumnNetBRL      = "Net BRL"
	ColumnOrigin      = "Origem"
	ColumnShareType   = "Share Type"
	ColumnReceiver    = "Receiver Name"
)

// Share types of the Shares In & Out sheet.
const (
	ShareIn  = "In"
	ShareOut = "Out"
)

// Columns is the layout of the normalized table.
var Columns = []string{
	"Album Title", "Track Title", "Artists", "Label", "UPC", "ISRC",
	ColumnProductType, "Store", "Territory", "Sale Type", "Transaction Month",
	"Accounted Date", "Original Currency", "Gross (Original Currency)",
	"Exchange Rate", ColumnCurrency, ColumnGross, "Quantity", "Average Unit Gross",
	"% Share", "Fees", ColumnNet, ColumnGrossBRL, ColumnNetBRL, "Payer Name", ColumnOrigin,
}

// outColumns are kept from the rows paid onward, when present.
var outColumns = []string{ColumnReceiver, ColumnNet, ColumnCurrency, ColumnNetBRL, "Artists", "Title"}

// source describes how a sheet maps to Columns. Columns absent from the
// mapping keep their name.
type source struct {
	sheet       string
	renames     map[string]string // sheet column -> normalized column
	productType string            // forced product type, if any
	shares      bool              // rows are filtered on their share type
}

var sources = []source{
	{sheet: Masters},
	{
		sheet: YouTubeChannels,
		renames: map[string]string{
			"Video Title":  "Track Title",
			"Channel Name": "Artists",
			"Channel ID":   "UPC",
			"Video ID":     "ISRC",
		},
		productType: "Video",
	},
	{
		sheet: SharesInOut,
		renames: map[string]string{
			"Title":          "Album Title",
			"Parent ID":      "UPC",
			"ID":             "ISRC",
			"% Share In/Out": "% Share",
		},
		shares: true,
	},
}

// Sheets lists the sheets read from a workbook, in output order.
func Sheets() []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.sheet
	}
	return names
}

// schema renames the sheet columns and adds the absent ones, blank.
func (s source) schema() sheet.Schema {
	aliases := make(map[string][]string)
	for from, to := range s.renames {
		aliases[to] = append(aliases[to], from)
	}
	var schema sheet.Schema
	for _, c := range Columns {
		switch c {
		case ColumnGrossBRL, ColumnNetBRL, ColumnOrigin:
			continue
		}
		schema = append(schema, sheet.Column{Name: c, Aliases: aliases[c], Optional: true})
	}
	return schema
}

// Workbook holds the sheets of a distributor report, by name.
type Workbook map[string]dataframe.DataFrame

// LoadWorkbook reads the known sheets of an xlsx file. Absent sheets are
// reported as warnings; a workbook without any of them is an error.
func LoadWorkbook(path string) (Workbook, []string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" && ext != ".xlsm" {
		return nil, nil, fmt.Errorf("%s: a workbook (.xlsx) is required", filepath.Base(path))
	}
	wb := make(Workbook)
	var warnings []string
	for _, name := range Sheets() {
		df, err := sheet.ReadFile(path, sheet.Options{Sheet: name})
		if err != nil {
			if isMissingSheet(err) {
				warnings = append(warnings, fmt.Sprintf("sheet %q not found", name))
				logging.Log.WithField("sheet", name).Warn("sheet not found")
				continue
			}
			return nil, nil, err
		}
		wb[name] = df
	}
	if len(wb) == 0 {
		return nil, warnings, fmt.Errorf("%s: none of the sheets %s", filepath.Base(path), strings.Join(Sheets(), ", "))
	}
	return wb, warnings, nil
}

// Currencies returns the currencies used by the workbook, sorted.
func (wb Workbook) Currencies() []string {
	seen := make(map[string]bool)
	for _, name := range Sheets() {
		df, ok := wb[name]
		if !ok || !sheet.HasColumn(df, ColumnCurrency) {
			continue
		}
		for _, c := range df.Col(ColumnCurrency).Records() {
			if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
				seen[c] = true
			}
		}
	}
	return sortedKeys(seen)
}

// Result is a normalized workbook.
type Result struct {
	Table     dataframe.DataFrame // rows of every sheet, in Columns layout
	Out       dataframe.DataFrame // shares paid onward, empty when none
	Origins   []OriginTotal       // by sheet
	Total     OriginTotal         // over all sheets
	Receivers []ReceiverTotal     // shares paid onward, by receiver
	OutTotal  decimal.Decimal     // Net BRL paid onward
	// Missing lists the currencies without rate: their BRL amounts are blank.
	Missing  []string
	Warnings []string
}

// HasOut reports whether shares are paid onward.
func (r *Result) HasOut() bool { return r.Out.Nrow() > 0 }

// converter converts amounts and remembers the currencies it could not convert.
type converter struct {
	rates   Rates
	nf      sheet.NumberFormat
	missing map[string]bool
}

// column converts a column of amounts, with the currency of every row.
// Blank cells and unknown currencies give NaN cells and a nil amount.
func (c *converter) column(df dataframe.DataFrame, column, name string) (series.Series, []*decimal.Decimal, error) {
	cells := df.Col(column).Records()
	currencies := df.Col(ColumnCurrency).Records()
	out := make([]string, len(cells))
	amounts := make([]*decimal.Decimal, len(cells))
	for i, cell := range cells {
		out[i] = "NaN"
		if strings.TrimSpace(cell) == "" || strings.TrimSpace(currencies[i]) == "" {
			continue
		}
		v, err := c.nf.Parse(cell)
		if err != nil {
			return series.Series{}, nil, fmt.Errorf("row %d %s: %w", i+1, column, err)
		}
		brl, ok := c.rates.Convert(v, currencies[i])
		if !ok {
			c.missing[strings.ToUpper(strings.TrimSpace(currencies[i]))] = true
			continue
		}
		out[i] = brl.String()
		amounts[i] = &brl
	}
	return series.New(out, series.Float, name), amounts, nil
}

// filter keeps the rows whose share type is t.
func filter(df dataframe.DataFrame, t string) (dataframe.DataFrame, error) {
	if !sheet.HasColumn(df, ColumnShareType) {
		if t == ShareIn {
			return df, nil
		}
		return sheet.FromRecords(df.Names(), nil)
	}
	var keep []int
	for i, v := range df.Col(ColumnShareType).Records() {
		if strings.TrimSpace(v) == t {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return sheet.FromRecords(df.Names(), nil)
	}
	df = df.Subset(keep)
	return df, df.Err
}

// Normalize maps the workbook sheets to Columns, converts the gross and net
// amounts with rates, and summarizes them by sheet and by receiver.
func Normalize(wb Workbook, rates Rates, nf sheet.NumberFormat) (*Result, error) {
	conv := &converter{rates: rates, nf: nf, missing: make(map[string]bool)}
	res := &Result{Total: OriginTotal{Origin: TotalLabel}}

	var tables []dataframe.DataFrame
	for _, src := range sources {
		df, ok := wb[src.sheet]
		if !ok {
			continue
		}
		table, total, err := conv.normalize(src, df)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", src.sheet, err)
		}
		tables = append(tables, table)
		res.Origins = append(res.Origins, total)
		res.Total.Rows += total.Rows
		res.Total.NetBRL = res.Total.NetBRL.Add(total.NetBRL)

		if src.shares {
			if err := conv.out(res, df); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", src.sheet, err)
			}
		}
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no sheet to normalize among %s", strings.Join(Sheets(), ", "))
	}
	res.Table = tables[0]
	for _, t := range tables[1:] {
		res.Table = res.Table.RBind(t)
	}
	if res.Table.Err != nil {
		return nil, res.Table.Err
	}
	if res.Out.Ncol() == 0 {
		res.Out, _ = sheet.FromRecords([]string{ColumnReceiver, ColumnNet, ColumnCurrency, ColumnNetBRL}, nil)
	}

	res.Missing = sortedKeys(conv.missing)
	for _, c := range res.Missing {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no rate for %s, its BRL amounts are blank", c))
	}
	logging.Log.WithFields(logrus.Fields{"rows": res.Total.Rows, "out": res.Out.Nrow()}).Info("workbook normalized")
	return res, nil
}

// normalize maps one sheet.
func (c *converter) normalize(src source, df dataframe.DataFrame) (dataframe.DataFrame, OriginTotal, error) {
	total := OriginTotal{Origin: src.sheet}
	var err error
	if src.shares {
		if df, err = filter(df, ShareIn); err != nil {
			return df, total, err
		}
	}
	if df, err = src.schema().Apply(df); err != nil {
		return df, total, err
	}

	n := df.Nrow()
	constant := func(v string) []string {
		vs := make([]string, n)
		for i := range vs {
			vs[i] = v
		}
		return vs
	}
	if src.productType != "" {
		df = df.Mutate(series.New(constant(src.productType), series.String, ColumnProductType))
	}
	df = df.Mutate(series.New(constant(src.sheet), series.String, ColumnOrigin))

	gross, _, err := c.column(df, ColumnGross, ColumnGrossBRL)
	if err != nil {
		return df, total, err
	}
	net, amounts, err := c.column(df, ColumnNet, ColumnNetBRL)
	if err != nil {
		return df, total, err
	}
	df = df.Mutate(gross).Mutate(net).Select(Columns)
	if df.Err != nil {
		return df, total, df.Err
	}

	total.Rows = n
	for _, a := range amounts {
		if a != nil {
			total.NetBRL = total.NetBRL.Add(*a)
		}
	}
	return df, total, nil
}

// out keeps the shares paid onward and sums them by receiver.
func (c *converter) out(res *Result, df dataframe.DataFrame) error {
	df, err := filter(df, ShareOut)
	if err != nil || df.Nrow() == 0 {
		return err
	}
	df, err = sheet.Schema{{Name: ColumnNet, Optional: true}, {Name: ColumnCurrency, Optional: true}}.Apply(df)
	if err != nil {
		return err
	}
	net, amounts, err := c.column(df, ColumnNet, ColumnNetBRL)
	if err != nil {
		return err
	}
	df = df.Mutate(net)

	var keep []string
	for _, col := range outColumns {
		if sheet.HasColumn(df, col) {
			keep = append(keep, col)
		}
	}
	res.Out = df.Select(keep)
	if res.Out.Err != nil {
		return res.Out.Err
	}

	receivers := make([]string, df.Nrow())
	if sheet.HasColumn(df, ColumnReceiver) {
		receivers = df.Col(ColumnReceiver).Records()
	}
	cells := df.Col(ColumnNet).Records()
	nets := make([]decimal.Decimal, len(cells))
	for i, cell := range cells {
		if nets[i], err = c.nf.Parse(cell); err != nil {
			return fmt.Errorf("row %d %s: %w", i+1, ColumnNet, err)
		}
	}
	res.Receivers = receiverTotals(receivers, nets, amounts)
	for _, a := range amounts {
		if a != nil {
			res.OutTotal = res.OutTotal.Add(*a)
		}
	}
	return nil
}

func isMissingSheet(err error) bool {
	return errors.Is(err, sheet.ErrMissingSheet)
}
