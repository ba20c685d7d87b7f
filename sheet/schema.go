package sheet

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column describes an expected column of an input table.
type Column struct {
	Name     string   // canonical name
	Aliases  []string // other accepted headers, renamed to Name
	Optional bool     // when absent, the column is created with Default
	Default  string
}

// Schema is the list of columns an input table must provide. It is validated
// once when the table is loaded, so that the rest of the code can rely on
// every column being present.
type Schema []Column

// Apply checks df against the schema. Aliased columns are renamed to their
// canonical name and absent optional columns are added with their default.
// The first absent required column is reported as a MissingColumnError.
func (s Schema) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, col := range s {
		if HasColumn(df, col.Name) {
			continue
		}
		found := false
		for _, alias := range col.Aliases {
			if HasColumn(df, alias) {
				df = df.Rename(col.Name, alias)
				found = true
				break
			}
		}
		if found {
			continue
		}
		if !col.Optional {
			return df, &MissingColumnError{Column: col.Name, Available: df.Names()}
		}
		values := make([]string, df.Nrow())
		for i := range values {
			values[i] = col.Default
		}
		df = df.Mutate(series.New(values, series.String, col.Name))
	}
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}
