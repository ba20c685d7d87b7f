package discount

import (
	"errors"
	"testing"

	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func royalties(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df, err := sheet.FromRecords(
		[]string{"Faixa", "Valor"},
		[][]string{{"A", "100,00"}, {"B", "50,00"}, {"C", "50,00"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return df
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPercent(t *testing.T) {
	res, err := Percent(royalties(t), "Valor", sheet.Comma, 10)
	if err != nil {
		t.Fatalf("Percent() error = %v", err)
	}
	if diff := cmp.Diff([]float64{90, 45, 45}, res.Table.Col("Valor").Float()); diff != "" {
		t.Errorf("Percent() mismatch (-want +got):\n%s", diff)
	}
	if !res.Original.Equal(d("200")) || !res.Processed.Equal(d("180")) || !res.Difference.Equal(d("20")) {
		t.Errorf("Percent() totals = %v %v %v", res.Original, res.Processed, res.Difference)
	}
	if _, err := Percent(royalties(t), "Valor", sheet.Comma, 101); err == nil {
		t.Errorf("Percent(101) want error")
	}
}

func TestValue(t *testing.T) {
	res, err := Value(royalties(t), "Valor", sheet.Comma, d("50"))
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if diff := cmp.Diff([]float64{75, 37.5, 37.5}, res.Table.Col("Valor").Float()); diff != "" {
		t.Errorf("Value() mismatch (-want +got):\n%s", diff)
	}
	if !res.Difference.Equal(d("50")) {
		t.Errorf("Value() difference = %v, want 50", res.Difference)
	}

	zero, _ := sheet.FromRecords([]string{"Valor"}, [][]string{{"0"}})
	if _, err := Value(zero, "Valor", sheet.Comma, d("1")); !errors.Is(err, ErrNonPositiveTotal) {
		t.Errorf("Value() on zero total error = %v, want ErrNonPositiveTotal", err)
	}
	if _, err := Value(royalties(t), "Montant", sheet.Comma, d("1")); !errors.Is(err, sheet.ErrMissingColumn) {
		t.Errorf("Value() on missing column error = %v, want ErrMissingColumn", err)
	}
}

func TestAdjust(t *testing.T) {
	res, err := Adjust(royalties(t), "Valor", sheet.Comma, Adjustment{
		Amount:            d("12.5"),
		Description:       "Desconto aplicado",
		DescriptionColumn: "Faixa",
	})
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "Desconto aplicado"}, res.Table.Col("Faixa").Records()); diff != "" {
		t.Errorf("Adjust() descriptions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 50, 50, -12.5}, res.Table.Col("Valor").Float()); diff != "" {
		t.Errorf("Adjust() values mismatch (-want +got):\n%s", diff)
	}
	if !res.Processed.Equal(d("187.5")) || !res.Difference.Equal(d("12.5")) {
		t.Errorf("Adjust() totals = %v %v", res.Processed, res.Difference)
	}

	res, err = Adjust(royalties(t), "Valor", sheet.Comma, Adjustment{
		Amount: d("5"), Description: "Bonus", Positive: true, DescriptionColumn: "Faixa",
	})
	if err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if !res.Difference.Equal(d("-5")) {
		t.Errorf("positive Adjust() difference = %v, want -5", res.Difference)
	}

	bad := []Adjustment{
		{Amount: d("0"), Description: "x", DescriptionColumn: "Faixa"},
		{Amount: d("1"), Description: "  ", DescriptionColumn: "Faixa"},
		{Amount: d("1"), Description: "x", DescriptionColumn: "Valor"},
	}
	for _, a := range bad {
		if _, err := Adjust(royalties(t), "Valor", sheet.Comma, a); err == nil {
			t.Errorf("Adjust(%+v) want error", a)
		}
	}
}
