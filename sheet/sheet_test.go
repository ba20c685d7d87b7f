package sheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

func TestDecode(t *testing.T) {
	latin, err := charmap.ISO8859_1.NewEncoder().String("CÓD. OBRA;TÍTULO")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		in   []byte
		enc  Encoding
		want string
	}{
		{"utf-8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, "São Paulo"...), Auto, "São Paulo"},
		{"latin1 detected", []byte(latin), Auto, "CÓD. OBRA;TÍTULO"},
		{"latin1 forced", []byte(latin), Latin1, "CÓD. OBRA;TÍTULO"},
		{"cp1252 quotes", []byte{0x93, 'x', 0x94}, Windows1252, "“x”"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in, tt.enc)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Decode([]byte(latin), UTF8); err == nil {
		t.Errorf("Decode(latin1, UTF8) want error")
	}
}

func TestNumberFormat(t *testing.T) {
	tests := []struct {
		format NumberFormat
		in     string
		want   string
	}{
		{Comma, "1.234,56", "1234.56"},
		{Comma, "R$ 10,5", "10.5"},
		{Comma, "", "0"},
		{Comma, "-12,00", "-12"},
		{Dot, "1234.5", "1234.5"},
		{NumberFormat{Decimal: '.', Thousands: ','}, "1,000.25", "1000.25"},
	}
	for _, tt := range tests {
		got, err := tt.format.Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := Comma.Parse("abc"); err == nil {
		t.Errorf("Parse(%q) want error", "abc")
	}
}

func TestReadCSV(t *testing.T) {
	content := "Relatório de distribuição\n" +
		"Titular: Fulano\n" +
		"\n" +
		"Período: 01/2025\n" +
		"CÓD. OBRA;TÍTULO DA MUSICA;RATEIO\n" +
		"00123;Canção;1.234,56\n" +
		"456;Outra;10,00;\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}

	df, err := ReadCSV(strings.NewReader(latin), CSVOptions{Delimiter: ';', Encoding: Latin1, SkipRows: 4})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if diff := cmp.Diff([]string{"CÓD. OBRA", "TÍTULO DA MUSICA", "RATEIO"}, df.Names()); diff != "" {
		t.Errorf("ReadCSV() names mismatch (-want +got):\n%s", diff)
	}
	codes, err := Strings(df, "CÓD. OBRA")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"00123", "456"}, codes); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	amounts, _ := Strings(df, "RATEIO")
	if amounts[0] != "1.234,56" {
		t.Errorf("amount = %q, want raw cell %q", amounts[0], "1.234,56")
	}
}

func TestSchemaApply(t *testing.T) {
	df, err := FromRecords([]string{"Código", "RATEIO"}, [][]string{{"A", "1"}, {"B", "2"}})
	if err != nil {
		t.Fatal(err)
	}

	schema := Schema{
		{Name: "CODE", Aliases: []string{"Código"}},
		{Name: "RATEIO"},
		{Name: "TITLE", Optional: true, Default: "-"},
	}
	got, err := schema.Apply(df)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if diff := cmp.Diff([]string{"CODE", "RATEIO", "TITLE"}, got.Names()); diff != "" {
		t.Errorf("Apply() names mismatch (-want +got):\n%s", diff)
	}
	titles, _ := Strings(got, "TITLE")
	if diff := cmp.Diff([]string{"-", "-"}, titles); diff != "" {
		t.Errorf("default column mismatch (-want +got):\n%s", diff)
	}

	_, err = Schema{{Name: "AMOUNT"}}.Apply(df)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Apply() error = %v, want ErrMissingColumn", err)
	}
	var mce *MissingColumnError
	if !errors.As(err, &mce) || mce.Column != "AMOUNT" {
		t.Errorf("Apply() error = %v, want column AMOUNT", err)
	}
}

func TestWriteCSV(t *testing.T) {
	df, err := FromRecords([]string{"A", "B"}, [][]string{{"1", "x"}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, df); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "\ufeffA,B\n1,x\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"W1", "W2"}, series.String, "CODE"),
		series.New([]float64{1000, 12.5}, series.Float, "TOTAL"),
	)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, Sheet{Name: "Obras", Table: df}, Sheet{Name: "Vazia", Table: df}); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	got, err := ReadXLSX(bytes.NewReader(buf.Bytes()), "Obras")
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	codes, err := Strings(got, "CODE")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"W1", "W2"}, codes); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
	totals, _ := Strings(got, "TOTAL")
	for i, want := range []string{"1000", "12.5"} {
		v, err := Dot.Parse(totals[i])
		if err != nil || !v.Equal(decimal.RequireFromString(want)) {
			t.Errorf("TOTAL[%d] = %q, want %s", i, totals[i], want)
		}
	}

	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()), "Digital Sales Details")
	if !errors.Is(err, ErrMissingSheet) {
		t.Errorf("ReadXLSX() error = %v, want ErrMissingSheet", err)
	}
}

func TestSheetName(t *testing.T) {
	if got := sheetName("a/b", 0); got != "a_b" {
		t.Errorf("sheetName() = %q", got)
	}
	if got := sheetName("", 2); got != "Sheet3" {
		t.Errorf("sheetName() = %q", got)
	}
	if got := sheetName(strings.Repeat("x", 40), 0); len(got) != 31 {
		t.Errorf("sheetName() length = %d, want 31", len(got))
	}
}
