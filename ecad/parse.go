package ecad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/royalty/internal/logging"
	"github.com/etnz/royalty/sheet"
	"github.com/sirupsen/logrus"
)

// Record is one data line of a statement, with the header fields in force
// when it was read.
type Record struct {
	File   string
	Line   int // 1-based
	Type   RecordType
	Fields map[string]string
}

// LineError describes a line that could not be sliced into a record.
type LineError struct {
	File   string
	Line   int
	Reason string
}

func (e LineError) Error() string { return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason) }

// Result is the outcome of parsing one or more statements.
type Result struct {
	Records []Record
	Dropped []LineError
	Skipped int // lines with an unknown record type
	// Headers are the header fields read, in file order.
	Headers []map[string]string
}

// Empty reports whether no data record was found.
func (r *Result) Empty() bool { return len(r.Records) == 0 }

// Merge appends the content of x to r.
func (r *Result) Merge(x *Result) {
	r.Records = append(r.Records, x.Records...)
	r.Dropped = append(r.Dropped, x.Dropped...)
	r.Skipped += x.Skipped
	r.Headers = append(r.Headers, x.Headers...)
}

// ParseLines parses the lines of a single statement file. Header fields are
// broadcast onto the data records that follow, until the next header.
func ParseLines(file string, lines []string) *Result {
	res := new(Result)
	var header map[string]string
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r\n")
		if line == "" {
			continue
		}
		l, ok := layouts[RecordType(line[0])]
		if !ok {
			res.Skipped++
			continue
		}
		fields, err := slice(l, line)
		if err != nil {
			e := LineError{File: file, Line: i + 1, Reason: err.Error()}
			logging.Log.WithFields(logrus.Fields{"file": file, "line": i + 1}).Debugf("dropped line: %v", err)
			res.Dropped = append(res.Dropped, e)
			continue
		}
		if l.Type == Header {
			header = fields
			res.Headers = append(res.Headers, fields)
			continue
		}
		for k, v := range header {
			fields[k] = v
		}
		fields[RecordTypeColumn] = l.Label
		res.Records = append(res.Records, Record{File: file, Line: i + 1, Type: l.Type, Fields: fields})
	}
	return res
}

// slice cuts a line according to the layout. It fails without a partial
// record if the line is too short, an amount is cut by the end of the line,
// or a numeric field is not numeric.
func slice(l Layout, line string) (map[string]string, error) {
	runes := []rune(line)
	if want := l.MinLen(); len(runes) < want {
		return nil, fmt.Errorf("line too short for %s record: %d characters, want at least %d", l.Type, len(runes), want)
	}
	fields := make(map[string]string, len(l.Fields)+1)
	for _, f := range l.Fields {
		raw := ""
		if f.Start < len(runes) {
			raw = string(runes[f.Start:min(f.End, len(runes))])
		}
		raw = strings.TrimSpace(raw)
		if f.Kind == Amount && raw != "" && f.End > len(runes) {
			return nil, fmt.Errorf("field %s truncated at %d characters", f.Name, len(runes))
		}
		v, err := f.format(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields[f.Name] = v
	}
	return fields, nil
}

// Parse reads a statement, decoding it as UTF-8 or Latin-1.
func Parse(file string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	text, err := sheet.Decode(data, sheet.Auto)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", file, err)
	}
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not split %q into lines: %w", file, err)
	}
	return ParseLines(file, lines), nil
}

// ParseFiles parses each file independently and concatenates the results in
// the given order.
func ParseFiles(paths ...string) (*Result, error) {
	res := new(Result)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open statement: %w", err)
		}
		r, err := Parse(filepath.Base(path), f)
		f.Close()
		if err != nil {
			return nil, err
		}
		logging.Log.WithFields(logrus.Fields{"file": path, "records": len(r.Records), "dropped": len(r.Dropped)}).Info("statement parsed")
		res.Merge(r)
	}
	return res, nil
}
