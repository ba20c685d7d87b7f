package normalize

import (
	"sort"
	"strings"

	"github.com/etnz/royalty/sheet"
	"github.com/shopspring/decimal"
)

// TotalLabel names the row summing all sheets.
const TotalLabel = "TOTAL"

// Output sheets.
const (
	SheetData         = "Dados Processados"
	SheetOrigins      = "Resumo por Origem"
	SheetOut          = "Share Out Analysis"
	SheetOutReceivers = "Resumo Share Out"
)

// OriginTotal sums the rows of one sheet.
type OriginTotal struct {
	Origin string
	Rows   int
	NetBRL decimal.Decimal
}

// ReceiverTotal sums the shares paid onward to one receiver.
type ReceiverTotal struct {
	Receiver string
	Net      decimal.Decimal
	NetBRL   decimal.Decimal
}

// receiverTotals groups by receiver, skipping blank names, largest Net BRL
// first.
func receiverTotals(receivers []string, nets []decimal.Decimal, brl []*decimal.Decimal) []ReceiverTotal {
	idx := make(map[string]int)
	var totals []ReceiverTotal
	for i, name := range receivers {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		j, ok := idx[name]
		if !ok {
			j = len(totals)
			idx[name] = j
			totals = append(totals, ReceiverTotal{Receiver: name})
		}
		totals[j].Net = totals[j].Net.Add(nets[i])
		if brl[i] != nil {
			totals[j].NetBRL = totals[j].NetBRL.Add(*brl[i])
		}
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].NetBRL.Cmp(totals[j].NetBRL); c != 0 {
			return c > 0
		}
		return totals[i].Receiver < totals[j].Receiver
	})
	return totals
}

// Tables returns the output sheets. The share out sheets are only present
// when shares are paid onward.
func (r *Result) Tables() ([]sheet.Sheet, error) {
	rows := make([][]string, 0, len(r.Origins)+1)
	for _, o := range append(r.Origins, r.Total) {
		rows = append(rows, []string{o.Origin, decimal.NewFromInt(int64(o.Rows)).String(), o.NetBRL.StringFixed(2)})
	}
	origins, err := sheet.FromRecords([]string{ColumnOrigin, "Registros", "Total Net BRL"}, rows)
	if err != nil {
		return nil, err
	}
	sheets := []sheet.Sheet{{Name: SheetData, Table: r.Table}, {Name: SheetOrigins, Table: origins}}
	if !r.HasOut() {
		return sheets, nil
	}
	rows = rows[:0]
	for _, t := range r.Receivers {
		rows = append(rows, []string{t.Receiver, t.NetBRL.StringFixed(2), t.Net.StringFixed(2)})
	}
	receivers, err := sheet.FromRecords([]string{ColumnReceiver, ColumnNetBRL, ColumnNet}, rows)
	if err != nil {
		return nil, err
	}
	return append(sheets, sheet.Sheet{Name: SheetOut, Table: r.Out}, sheet.Sheet{Name: SheetOutReceivers, Table: receivers}), nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
