package ecad

import (
	"errors"

	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
)

// ErrNoRecords is returned by Table when no data record was found. An empty
// statement is not a failure: callers report it and stop.
var ErrNoRecords = errors.New("no records found")

// present returns the field names and labels carried by at least one record,
// in output order.
func (r *Result) present() (fields, labels []string) {
	seen := make(map[string]bool)
	for _, rec := range r.Records {
		for k := range rec.Fields {
			seen[k] = true
		}
	}
	for _, c := range columns {
		if seen[c.field] {
			fields = append(fields, c.field)
			labels = append(labels, c.label)
		}
	}
	return fields, labels
}

// Columns returns the output labels present in the result, in output order.
func (r *Result) Columns() []string {
	_, labels := r.present()
	return labels
}

// Table flattens the records into a table with human labels.
func (r *Result) Table() (dataframe.DataFrame, error) {
	if r.Empty() {
		return dataframe.DataFrame{}, ErrNoRecords
	}
	fields, labels := r.present()
	rows := make([][]string, len(r.Records))
	for i, rec := range r.Records {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = rec.Fields[f] // absent fields are empty cells
		}
		rows[i] = row
	}
	return sheet.FromRecords(labels, rows)
}
