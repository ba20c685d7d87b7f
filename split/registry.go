package split

import (
	"fmt"
	"strings"

	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/sheet"
	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
)

// Registry columns.
const (
	ColumnCode       = "CÓD. OBRA"
	ColumnISWC       = "ISWC"
	ColumnAcquired   = "AQUIRED"
	ColumnControlled = "CONTROLLED"
)

// Entry is the classification of a registered work.
type Entry struct {
	Code       string
	Acquired   bool
	Controlled bool
}

// Registry maps work codes to their classification.
type Registry struct {
	entries  map[string]Entry
	Warnings []string // duplicate codes
}

// NewRegistry builds a registry. The first entry of a duplicated code wins.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, e := range entries {
		r.add(e)
	}
	return r
}

func (r *Registry) add(e Entry) {
	e.Code = normalizeCode(e.Code)
	if _, dup := r.entries[e.Code]; dup {
		logging.Log.WithField("code", e.Code).Warn("duplicate work in registry, keeping the first one")
		r.Warnings = append(r.Warnings, fmt.Sprintf("work %s is registered more than once, the first entry is used", e.Code))
		return
	}
	r.entries[e.Code] = e
}

// Lookup returns the entry of a work code.
func (r *Registry) Lookup(code string) (Entry, bool) {
	e, ok := r.entries[normalizeCode(code)]
	return e, ok
}

// Len returns the number of registered works.
func (r *Registry) Len() int { return len(r.entries) }

// ParseFlag parses a Y/N registry flag. Blank is false.
func ParseFlag(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "S", "SIM", "YES", "TRUE", "1":
		return true, nil
	case "N", "NAO", "NÃO", "NO", "FALSE", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid flag %q (Y or N)", s)
}

// normalizeCode trims a work code. Codes read from spreadsheets as numbers
// may carry a ".0" suffix.
func normalizeCode(code string) string {
	code = strings.TrimSpace(code)
	return strings.TrimSuffix(code, ".0")
}

// LoadRegistry reads a registry file, keyed by 'key' (ColumnCode or ColumnISWC).
func LoadRegistry(path, key string) (*Registry, error) {
	df, err := sheet.ReadFile(path, sheet.Options{})
	if err != nil {
		return nil, fmt.Errorf("cannot read registry: %w", err)
	}
	return ReadRegistry(df, key)
}

// ReadRegistry builds a registry from a table.
func ReadRegistry(df dataframe.DataFrame, key string) (*Registry, error) {
	schema := sheet.Schema{
		{Name: key},
		{Name: ColumnAcquired, Aliases: []string{"ACQUIRED"}},
		{Name: ColumnControlled},
	}
	df, err := schema.Apply(df)
	if err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}
	codes := df.Col(key).Records()
	acquired := df.Col(ColumnAcquired).Records()
	controlled := df.Col(ColumnControlled).Records()

	r := NewRegistry()
	for i, code := range codes {
		code = normalizeCode(code)
		if code == "" {
			continue
		}
		a, err := ParseFlag(acquired[i])
		if err != nil {
			return nil, fmt.Errorf("registry row %d (%s) %s: %w", i+2, code, ColumnAcquired, err)
		}
		c, err := ParseFlag(controlled[i])
		if err != nil {
			return nil, fmt.Errorf("registry row %d (%s) %s: %w", i+2, code, ColumnControlled, err)
		}
		r.add(Entry{Code: code, Acquired: a, Controlled: c})
	}
	logging.Log.WithFields(logrus.Fields{"works": r.Len(), "key": key}).Debug("registry loaded")
	return r, nil
}
