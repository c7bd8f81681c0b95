// Copyright ©2016 The tilegram Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hexmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a table does not have
// a column that is required.
var ErrMissingColumn = errors.New("hexmap: missing column")

// table reads a CSV file with a header row, looking up
// the required columns by name.
type table struct {
	r    *csv.Reader
	cols []int
}

func newTable(r io.Reader, columns ...string) (*table, error) {
	t := &table{r: csv.NewReader(r)}
	t.r.TrimLeadingSpace = true
	header, err := t.r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: table is empty", ErrMissingColumn)
	} else if err != nil {
		return nil, fmt.Errorf("hexmap: reading table header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, c := range columns {
		for _, prev := range columns[:i] {
			if strings.EqualFold(prev, c) {
				return nil, fmt.Errorf("hexmap: column %q requested twice", c)
			}
		}
		j := indexOf(header, c)
		if j < 0 {
			return nil, fmt.Errorf("%w %q; have %s", ErrMissingColumn, c, strings.Join(header, ", "))
		}
		t.cols = append(t.cols, j)
	}
	return t, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// next returns the required fields of the next row and its line number.
func (t *table) next() (fields []string, line int, err error) {
	rec, err := t.r.Read()
	if err != nil {
		return nil, 0, err
	}
	line, _ = t.r.FieldPos(0)
	fields = make([]string, len(t.cols))
	for i, j := range t.cols {
		fields[i] = strings.TrimSpace(rec[j])
	}
	return fields, line, nil
}

// ReadCodes reads a code table: CSV data with a header row holding
// at least the columns idColumn, the hexagon ID, and codeColumn, the
// raw region identifier. Raw identifiers are converted with
// NormalizeCode, and rows whose identifier has no letters are skipped.
func ReadCodes(r io.Reader, idColumn, codeColumn string) ([]CodeEntry, error) {
	t, err := newTable(r, idColumn, codeColumn)
	if err != nil {
		return nil, err
	}
	var o []CodeEntry
	for {
		f, line, err := t.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("hexmap: reading code table: %w", err)
		}
		id, err := parseID(f[0])
		if err != nil {
			return nil, fmt.Errorf("hexmap: code table line %d: %w", line, err)
		}
		code := NormalizeCode(f[1])
		if code == "" {
			continue
		}
		o = append(o, CodeEntry{ID: id, Code: code})
	}
	return o, nil
}

// parseID parses a hexagon ID. Integral floating point IDs such as
// "12.0", which spreadsheet exports produce, are accepted.
func parseID(s string) (int, error) {
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid hex id %q", s)
	}
	return int(f), nil
}

// ReadValues reads a value table: CSV data with a header row holding
// at least the columns codeColumn and valueColumn. Codes are
// upper-cased. Rows with an empty value are skipped.
func ReadValues(r io.Reader, codeColumn, valueColumn string) ([]ValueEntry, error) {
	t, err := newTable(r, codeColumn, valueColumn)
	if err != nil {
		return nil, err
	}
	var o []ValueEntry
	for {
		f, line, err := t.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("hexmap: reading value table: %w", err)
		}
		if f[1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil || math.IsNaN(v) {
			return nil, fmt.Errorf("hexmap: value table line %d: invalid value %q", line, f[1])
		}
		o = append(o, ValueEntry{Code: strings.ToUpper(f[0]), Value: v})
	}
	return o, nil
}
