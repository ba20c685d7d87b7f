// Package concat stacks tables sharing the same columns and aggregates a
// column of the result.
package concat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
)

// Input is a named table.
type Input struct {
	Name  string
	Table dataframe.DataFrame
}

// Mismatch lists the differences of a table's columns with the first table.
type Mismatch struct {
	Name    string
	Missing []string
	Extra   []string
}

// InconsistentColumnsError reports the tables whose columns differ from the
// first one.
type InconsistentColumnsError struct {
	Reference  string
	Mismatches []Mismatch
}

func (e *InconsistentColumnsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "columns differ from %s:", e.Reference)
	for _, m := range e.Mismatches {
		fmt.Fprintf(&b, " %s", m.Name)
		if len(m.Missing) > 0 {
			fmt.Fprintf(&b, " missing [%s]", strings.Join(m.Missing, ", "))
		}
		if len(m.Extra) > 0 {
			fmt.Fprintf(&b, " extra [%s]", strings.Join(m.Extra, ", "))
		}
		b.WriteString(";")
	}
	return strings.TrimSuffix(b.String(), ";")
}

// CheckColumns compares the columns of every input with the first one.
func CheckColumns(inputs []Input) error {
	if len(inputs) == 0 {
		return nil
	}
	ref := set(inputs[0].Table.Names())
	var mismatches []Mismatch
	for _, in := range inputs[1:] {
		cols := set(in.Table.Names())
		m := Mismatch{Name: in.Name, Missing: diff(ref, cols), Extra: diff(cols, ref)}
		if len(m.Missing) > 0 || len(m.Extra) > 0 {
			mismatches = append(mismatches, m)
		}
	}
	if len(mismatches) > 0 {
		return &InconsistentColumnsError{Reference: inputs[0].Name, Mismatches: mismatches}
	}
	return nil
}

func set(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// diff returns the sorted names in a and not in b.
func diff(a, b map[string]bool) []string {
	var d []string
	for n := range a {
		if !b[n] {
			d = append(d, n)
		}
	}
	sort.Strings(d)
	return d
}

// Concat stacks the inputs in order. Columns are ordered as in the first input.
func Concat(inputs []Input) (dataframe.DataFrame, error) {
	if len(inputs) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("nothing to concatenate")
	}
	if err := CheckColumns(inputs); err != nil {
		return dataframe.DataFrame{}, err
	}
	names := inputs[0].Table.Names()
	out := inputs[0].Table
	for _, in := range inputs[1:] {
		out = out.RBind(in.Table.Select(names))
		if out.Err != nil {
			return out, fmt.Errorf("cannot append %s: %w", in.Name, out.Err)
		}
	}
	logging.Log.WithFields(logrus.Fields{"files": len(inputs), "rows": out.Nrow()}).Info("tables concatenated")
	return out, nil
}

// LoadFiles reads files with the same options.
func LoadFiles(opts sheet.Options, paths ...string) ([]Input, error) {
	inputs := make([]Input, 0, len(paths))
	for _, p := range paths {
		df, err := sheet.ReadFile(p, opts)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Name: p, Table: df})
	}
	return inputs, nil
}
