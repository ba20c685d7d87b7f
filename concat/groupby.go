package concat

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
)

// Group is the aggregated value of the rows sharing a key.
type Group struct {
	Key   string
	Rows  int
	Value decimal.Decimal
}

// labels name the aggregations in result headers.
var labels = map[Aggregation]string{
	Sum:   "Soma",
	Mean:  "Média",
	Max:   "Máximo",
	Min:   "Mínimo",
	Count: "Contagem",
}

// Label returns the header of the aggregated column, like "Soma de Net".
func Label(a Aggregation, value string) string {
	return fmt.Sprintf("%s de %s", labels[a], value)
}

// GroupBy aggregates the value column per distinct key of the by column.
// Rows with a blank key are ignored. When keys are given, only those groups
// are kept. Groups come largest value first, then by key.
func GroupBy(df dataframe.DataFrame, by, value string, a Aggregation, nf sheet.NumberFormat, keys ...string) ([]Group, error) {
	byCells, err := sheet.Strings(df, by)
	if err != nil {
		return nil, err
	}
	cells, err := sheet.Strings(df, value)
	if err != nil {
		return nil, err
	}
	var keep map[string]bool
	if len(keys) > 0 {
		keep = make(map[string]bool, len(keys))
		for _, k := range keys {
			keep[strings.TrimSpace(k)] = true
		}
	}

	index := make(map[string]int)
	var groups []Group
	var rows [][]int
	for i, k := range byCells {
		k = strings.TrimSpace(k)
		if k == "" || (keep != nil && !keep[k]) {
			continue
		}
		j, ok := index[k]
		if !ok {
			j = len(groups)
			index[k] = j
			groups = append(groups, Group{Key: k})
			rows = append(rows, nil)
		}
		rows[j] = append(rows[j], i)
	}
	for j := range groups {
		groups[j].Rows = len(rows[j])
		v, err := aggregate(value, cells, rows[j], a, nf)
		if err != nil && !errors.Is(err, ErrNoValues) {
			return nil, fmt.Errorf("%s %q: %w", by, groups[j].Key, err)
		}
		groups[j].Value = v
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].Value.Cmp(groups[j].Value); c != 0 {
			return c > 0
		}
		return groups[i].Key < groups[j].Key
	})
	return groups, nil
}

// GroupTable lays groups out as a two column table.
func GroupTable(by, value string, a Aggregation, groups []Group) (dataframe.DataFrame, error) {
	rows := make([][]string, len(groups))
	for i, g := range groups {
		rows[i] = []string{g.Key, g.Value.String()}
	}
	return sheet.FromRecords([]string{by, Label(a, value)}, rows)
}

// Total sums the group values.
func Total(groups []Group) decimal.Decimal {
	t := decimal.Zero
	for _, g := range groups {
		t = t.Add(g.Value)
	}
	return t
}
