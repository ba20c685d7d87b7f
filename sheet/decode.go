package sheet

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the character set of a text input.
type Encoding string

const (
	Auto        Encoding = "auto" // UTF-8 when valid, Latin-1 otherwise
	UTF8        Encoding = "utf-8"
	Latin1      Encoding = "latin1"
	Windows1252 Encoding = "cp1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding parses an encoding name as given on the command line.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return Latin1, nil
	case "cp1252", "windows-1252":
		return Windows1252, nil
	}
	return "", fmt.Errorf("unknown encoding %q (auto, utf-8, latin1, cp1252)", name)
}

// Decode converts raw bytes into a UTF-8 string.
func Decode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8:
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
		return string(data), nil
	case Latin1:
		b, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		return string(b), err
	case Windows1252:
		b, err := charmap.Windows1252.NewDecoder().Bytes(data)
		return string(b), err
	case Auto, "":
		if trimmed := bytes.TrimPrefix(data, utf8BOM); utf8.Valid(trimmed) {
			return string(trimmed), nil
		}
		// Latin-1 maps every byte, it cannot fail.
		return Decode(data, Latin1)
	}
	return "", fmt.Errorf("unknown encoding %q", enc)
}
