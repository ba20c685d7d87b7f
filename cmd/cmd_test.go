package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/royalty/docs"
	"github.com/etnz/royalty/sheet"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// run parses args with the command flags and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s flags %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestConcatCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "A,B\n1,2\n")
	b := writeFile(t, dir, "b.csv", "A,B\n3,4\n")
	out := filepath.Join(dir, "out.csv")

	if got := run(t, &concatCmd{}, "-o", out, "-column", "B", a, b); got != subcommands.ExitSuccess {
		t.Fatalf("concat exit = %v, want success", got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1,2", "3,4"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("concat output %q does not contain %q", data, want)
		}
	}
}

func TestConcatCommandInconsistent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "A,B\n1,2\n")
	b := writeFile(t, dir, "b.csv", "A,C\n3,4\n")

	if got := run(t, &concatCmd{}, "-o", "", a, b); got != subcommands.ExitFailure {
		t.Errorf("concat exit = %v, want failure", got)
	}
}

func TestConcatCommandGroupBy(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "Artist,Net\nA,1\nB,5\nA,2\nC,9\n")
	out := filepath.Join(dir, "out.csv")

	got := run(t, &concatCmd{}, "-o", out, "-column", "Net", "-by", "Artist", "-filter", "A, B", a)
	if got != subcommands.ExitSuccess {
		t.Fatalf("concat exit = %v, want success", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out_agrupado.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "Artist,Soma de Net\nB,5\nA,3\n"; !strings.HasSuffix(string(data), want) {
		t.Errorf("grouped output = %q, want %q", data, want)
	}
}

func TestNormalizeCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "royalties.xlsx")
	masters, err := sheet.FromRecords([]string{"Track Title", "Currency", "Net"}, [][]string{{"Song", "USD", "2"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := sheet.WriteFile(in, sheet.Sheet{Name: "Masters", Table: masters}); err != nil {
		t.Fatal(err)
	}
	rates := writeFile(t, dir, "rates.yaml", "USD: 5\n")
	out := filepath.Join(dir, "out.csv")

	got := run(t, &normalizeCmd{}, "-rates", rates, "-rate", "usd=5.5", "-o", out, in)
	if got != subcommands.ExitSuccess {
		t.Fatalf("normalize exit = %v, want success", got)
	}
	df, err := sheet.ReadFile(out, sheet.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cells := df.Col("Net BRL").Records()
	if len(cells) != 1 {
		t.Fatalf("Net BRL = %v, want one row", cells)
	}
	if v, err := sheet.Dot.Parse(cells[0]); err != nil || !v.Equal(decimal.NewFromInt(11)) {
		t.Errorf("Net BRL = %v, want 11", cells)
	}
	if got := run(t, &normalizeCmd{}, "-o", "", filepath.Join(dir, "missing.xlsx")); got != subcommands.ExitFailure {
		t.Errorf("normalize of a missing workbook exit = %v, want failure", got)
	}
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	registry := writeFile(t, dir, "registry.csv", "CÓD. OBRA,AQUIRED,CONTROLLED\n100,N,Y\n")
	report := writeFile(t, dir, "report.csv", "COD ECAD MUSICA,TITULO DA MUSICA,RATEIO\n100,Song,600\n100,Song,400\n")
	out := filepath.Join(dir, "split.xlsx")

	got := run(t, &splitCmd{}, "-registry", registry, "-format", "ecad", "-writer", "Author", "-o", out, report)
	if got != subcommands.ExitSuccess {
		t.Fatalf("split exit = %v, want success", got)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("split output: %v", err)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
	}{
		{"ecad without file", &ecadCmd{}, nil},
		{"split without registry", &splitCmd{}, []string{"report.csv"}},
		{"split unknown format", &splitCmd{}, []string{"-registry", "r.csv", "-format", "pdf", "report.csv"}},
		{"split unknown mode", &splitCmd{}, []string{"-registry", "r.csv", "-mode", "label", "report.csv"}},
		{"discount without mode", &discountCmd{}, []string{"-column", "A", "in.csv"}},
		{"discount two modes", &discountCmd{}, []string{"-column", "A", "-percent", "10", "-value", "5", "in.csv"}},
		{"concat without file", &concatCmd{}, nil},
		{"concat group without column", &concatCmd{}, []string{"-by", "Artist", "a.csv"}},
		{"concat filter without group", &concatCmd{}, []string{"-column", "B", "-filter", "x", "a.csv"}},
		{"normalize without workbook", &normalizeCmd{}, nil},
		{"normalize bad decimal", &normalizeCmd{}, []string{"-decimal", ";", "royalties.xlsx"}},
		{"concat unknown aggregation", &concatCmd{}, []string{"-agg", "median", "a.csv", "b.csv"}},
		{"unknown topic", &topicCmd{}, []string{"royalties"}},
		{"withholding bad separator", &withholdingCmd{}, []string{"-sep", ";;", "report.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.cmd, tt.args...); got != subcommands.ExitUsageError {
				t.Errorf("exit = %v, want usage error", got)
			}
		})
	}
}

func TestDiscountCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "NOME;VALOR\na;100,00\nb;300,00\n")
	out := filepath.Join(dir, "out.csv")

	got := run(t, &discountCmd{}, "-sep", ";", "-decimal", ",", "-column", "VALOR", "-percent", "10", "-o", out, in)
	if got != subcommands.ExitSuccess {
		t.Fatalf("discount exit = %v, want success", got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "270") {
		t.Errorf("discount output %q does not contain 270", data)
	}
}

func TestTopicList(t *testing.T) {
	md, err := topicList()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"| ecad |", "| configuration |"} {
		if !strings.Contains(md, want) {
			t.Errorf("topicList() = %q, missing %q", md, want)
		}
	}
	if got := run(t, &topicCmd{}, "ecad", "split"); got != subcommands.ExitSuccess {
		t.Errorf("topic exit = %v, want success", got)
	}
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("rbo", flag.ContinueOnError)
	global.String("log-level", "info", "")
	c := Completion(global)

	if _, ok := c.Flags["log-level"]; !ok {
		t.Errorf("completion misses the global -log-level flag")
	}
	for _, cmd := range Commands {
		sub, ok := c.Sub[cmd.Name()]
		if !ok {
			t.Errorf("completion misses command %q", cmd.Name())
			continue
		}
		if cmd.Name() == "topic" {
			continue
		}
		if _, ok := sub.Flags["o"]; !ok {
			t.Errorf("completion of %q misses the -o flag", cmd.Name())
		}
	}
	if got := c.Sub["topic"].Args.Predict(""); len(got) != len(docs.Names()) {
		t.Errorf("topic predictions = %v, want %v", got, docs.Names())
	}
	if got := c.Sub["split"].Flags["mode"].Predict(""); len(got) != 2 {
		t.Errorf("split -mode predictions = %v, want writer and publisher", got)
	}
}
