package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// RawTable is the ephemeral product of a successful decode: normalized column
// names in source order, and rows of untyped string cells padded/truncated to
// the header width. It is discarded once the canonical table is built.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

type charsetAttempt struct {
	name   string
	decode func([]byte) (string, bool)
}

// charsetAttempts are tried strictly in order: a wrong single-byte encoding
// can still "succeed" while producing garbled text, so the stricter encodings
// come first. latin-1 and ISO-8859-1 are the same table; cp1252 differs in
// the 0x80-0x9F range common in Windows exports.
var charsetAttempts = []charsetAttempt{
	{"utf-8-sig", func(data []byte) (string, bool) {
		if !bytes.HasPrefix(data, bomUTF8) {
			return "", false
		}
		data = data[len(bomUTF8):]
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}},
	{"utf-8", func(data []byte) (string, bool) {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}},
	{"latin-1", charmapDecoder(charmap.ISO8859_1)},
	{"cp1252", charmapDecoder(charmap.Windows1252)},
}

func charmapDecoder(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

// DecodeTable decodes raw CSV bytes on a best-effort basis: each supported
// text encoding is tried against each candidate delimiter (sniffed first,
// then comma, semicolon, tab) and the first combination parsing into a table
// with more than one column wins; a one-column result signals delimiter
// mis-detection and is rejected. When every combination fails, a last
// permissive parse is attempted before reporting a DecodeError.
func DecodeTable(data []byte) (*RawTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Reason: "empty file"}
	}

	for _, cs := range charsetAttempts {
		text, ok := cs.decode(data)
		if !ok {
			continue
		}
		for _, delim := range delimiterCandidates(text) {
			tbl, err := parseCSV(text, delim)
			if err != nil {
				continue
			}
			if len(tbl.Columns) > 1 {
				return tbl, nil
			}
		}
	}

	// default permissive parse, accepting even a single column: utf-8 when
	// the bytes allow it, else cp1252 for semicolon-separated spreadsheets
	fallback := string(data)
	if !utf8.Valid(data) {
		text, ok := charmapDecoder(charmap.Windows1252)(data)
		if !ok {
			return nil, &DecodeError{}
		}
		fallback = text
	}
	if tbl, err := parseCSV(fallback, ';'); err == nil && len(tbl.Columns) > 0 {
		return tbl, nil
	}
	return nil, &DecodeError{}
}

// delimiterCandidates returns the sniffed delimiter (most frequent candidate
// in the header line) followed by the fixed attempt list, deduplicated.
func delimiterCandidates(text string) []rune {
	fixed := []rune{',', ';', '\t'}

	header := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		header = text[:i]
	}
	sniffed, best := rune(0), 0
	for _, d := range fixed {
		if n := strings.Count(header, string(d)); n > best {
			sniffed, best = d, n
		}
	}

	if sniffed == 0 {
		return fixed
	}
	out := []rune{sniffed}
	for _, d := range fixed {
		if d != sniffed {
			out = append(out, d)
		}
	}
	return out
}

func parseCSV(text string, delim rune) (*RawTable, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	// real-world exports have ragged rows and stray quotes
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = Normalize(h)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) != len(columns) {
			// pad or truncate to the header width
			fixed := make([]string, len(columns))
			copy(fixed, row)
			row = fixed
		}
		rows = append(rows, row)
	}

	return &RawTable{Columns: columns, Rows: rows}, nil
}
