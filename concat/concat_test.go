package concat

import (
	"errors"
	"testing"

	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func tbl(t *testing.T, header []string, rows ...[]string) dataframe.DataFrame {
	t.Helper()
	df, err := sheet.FromRecords(header, rows)
	if err != nil {
		t.Fatal(err)
	}
	return df
}

func TestConcat(t *testing.T) {
	inputs := []Input{
		{Name: "jan.csv", Table: tbl(t, []string{"Artist", "Amount"}, []string{"A", "1,5"})},
		{Name: "feb.csv", Table: tbl(t, []string{"Amount", "Artist"}, []string{"2", "B"}, []string{"", "C"})},
	}
	df, err := Concat(inputs)
	if err != nil {
		t.Fatalf("Concat() error = %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, df.Col("Artist").Records()); diff != "" {
		t.Errorf("Concat() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		agg  Aggregation
		want string
	}{
		{Sum, "3.5"},
		{Count, "2"},
		{Mean, "1.75"},
		{Min, "1.5"},
		{Max, "2"},
	}
	for _, tt := range tests {
		got, err := Aggregate(df, "Amount", tt.agg, sheet.Comma)
		if err != nil {
			t.Errorf("Aggregate(%s) error = %v", tt.agg, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Aggregate(%s) = %s, want %s", tt.agg, got, tt.want)
		}
	}
}

func TestCheckColumns(t *testing.T) {
	inputs := []Input{
		{Name: "a.csv", Table: tbl(t, []string{"X", "Y"})},
		{Name: "b.csv", Table: tbl(t, []string{"X", "Y"})},
		{Name: "c.csv", Table: tbl(t, []string{"X", "Z"})},
	}
	err := CheckColumns(inputs)
	var inconsistent *InconsistentColumnsError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("CheckColumns() error = %v, want InconsistentColumnsError", err)
	}
	want := []Mismatch{{Name: "c.csv", Missing: []string{"Y"}, Extra: []string{"Z"}}}
	if diff := cmp.Diff(want, inconsistent.Mismatches); diff != "" {
		t.Errorf("CheckColumns() mismatch (-want +got):\n%s", diff)
	}
	if got, want := err.Error(), "columns differ from a.csv: c.csv missing [Y] extra [Z]"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if _, err := Concat(inputs); err == nil {
		t.Errorf("Concat() with inconsistent columns want error")
	}
}

func TestAggregateErrors(t *testing.T) {
	df := tbl(t, []string{"Amount"}, []string{"abc"})
	if _, err := Aggregate(df, "Amount", Sum, sheet.Dot); err == nil {
		t.Errorf("Aggregate() on text want error")
	}
	if _, err := Aggregate(df, "Total", Sum, sheet.Dot); !errors.Is(err, sheet.ErrMissingColumn) {
		t.Errorf("Aggregate() on missing column error = %v", err)
	}
	if _, err := ParseAggregation("median"); err == nil {
		t.Errorf("ParseAggregation(median) want error")
	}
}

func TestGroupBy(t *testing.T) {
	df := tbl(t, []string{"Artist", "Net"},
		[]string{"Pollo", "10"},
		[]string{"Dom", "5"},
		[]string{"Pollo", "2,5"},
		[]string{"", "100"},
		[]string{"Ana", ""},
		[]string{"Dom", "5"},
	)
	tests := []struct {
		name string
		agg  Aggregation
		keys []string
		want []Group
	}{
		{"sum", Sum, nil, []Group{{"Pollo", 2, dec("12.5")}, {"Dom", 2, dec("10")}, {"Ana", 1, dec("0")}}},
		{"mean", Mean, nil, []Group{{"Pollo", 2, dec("6.25")}, {"Dom", 2, dec("5")}, {"Ana", 1, dec("0")}}},
		{"count", Count, nil, []Group{{"Dom", 2, dec("2")}, {"Pollo", 2, dec("2")}, {"Ana", 1, dec("0")}}},
		{"filtered", Max, []string{"Dom", " Ana", "Nobody"}, []Group{{"Dom", 2, dec("5")}, {"Ana", 1, dec("0")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GroupBy(df, "Artist", "Net", tt.agg, sheet.Comma, tt.keys...)
			if err != nil {
				t.Fatalf("GroupBy() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.Comparer(decimal.Decimal.Equal)); diff != "" {
				t.Errorf("GroupBy() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := GroupBy(df, "Label", "Net", Sum, sheet.Comma); !errors.Is(err, sheet.ErrMissingColumn) {
		t.Errorf("GroupBy(missing column) error = %v, want ErrMissingColumn", err)
	}
	bad := tbl(t, []string{"Artist", "Net"}, []string{"Pollo", "abc"})
	if _, err := GroupBy(bad, "Artist", "Net", Sum, sheet.Comma); err == nil {
		t.Errorf("GroupBy(non numeric) want error")
	}
}

func TestGroupTable(t *testing.T) {
	groups := []Group{{Key: "Pollo", Rows: 2, Value: dec("12.5")}, {Key: "Dom", Rows: 1, Value: dec("5")}}
	df, err := GroupTable("Artist", "Net", Mean, groups)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Artist", "Média de Net"}, df.Names()); diff != "" {
		t.Errorf("GroupTable() names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"12.5", "5"}, df.Col("Média de Net").Records()); diff != "" {
		t.Errorf("GroupTable() values mismatch (-want +got):\n%s", diff)
	}
	if got := Total(groups); !got.Equal(dec("17.5")) {
		t.Errorf("Total() = %v, want 17.5", got)
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
