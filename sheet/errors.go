package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn and ErrMissingSheet are the only fatal input errors: the
// invocation cannot proceed without the named column or sheet.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrMissingSheet  = errors.New("missing sheet")
)

// MissingColumnError names a required column absent from a table.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// MissingSheetError names a workbook sheet that could not be found.
type MissingSheetError struct {
	Sheet     string
	Available []string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("missing sheet %q (available: %s)", e.Sheet, strings.Join(e.Available, ", "))
}

func (e *MissingSheetError) Unwrap() error { return ErrMissingSheet }
