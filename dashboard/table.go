package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"chargedash/charges"
)

// table is a small in-memory string table: one header row plus data rows.
// Column values stay raw strings until the harmonizer coerces the numeric
// ones; ragged rows are padded on access.
type table struct {
	cols []string
	rows [][]string
}

// readCSVTable loads a whole CSV file. Tolerates a UTF-8 BOM, lazy quotes
// and ragged record lengths, like the hospital files this pipeline grew out
// of.
func readCSVTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: no header row", path)
	}

	cols := records[0]
	if len(cols) > 0 {
		cols[0] = strings.TrimPrefix(cols[0], "\uFEFF")
	}
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
	}

	t := &table{cols: cols}
	for _, rec := range records[1:] {
		// Skip fully empty rows
		if len(rec) == 0 || (len(rec) == 1 && rec[0] == "") {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// readParquetTable loads a charges Parquet file into the same raw-string
// table shape the CSV path produces, so harmonization is format-agnostic.
func readParquetTable(path string) (*table, error) {
	rows, err := charges.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := &table{cols: append([]string(nil), charges.Columns...)}
	for _, r := range rows {
		t.rows = append(t.rows, r.Strings())
	}
	return t, nil
}

// colIndex returns the index of an exactly named column, or -1.
func (t *table) colIndex(name string) int {
	for i, c := range t.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// value returns the trimmed cell at (row, col index), "" when the row is
// ragged.
func (t *table) value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rename changes a column header in place. No-op when the old name is
// absent.
func (t *table) rename(from, to string) {
	if i := t.colIndex(from); i >= 0 {
		t.cols[i] = to
	}
}

// mergeLeft left-outer-joins right onto left by the key column. Every left
// row is preserved; unmatched rows get empty right-side cells; duplicate
// right-side keys fan out. Non-key columns defined by both inputs are
// disambiguated with _x (left) and _y (right) suffixes.
func mergeLeft(left, right *table, key string) (*table, error) {
	lKey := left.colIndex(key)
	rKey := right.colIndex(key)
	if lKey < 0 || rKey < 0 {
		return nil, &SchemaError{Msg: fmt.Sprintf("both tables must contain %s for merging", key)}
	}

	overlap := make(map[string]bool)
	for _, c := range right.cols {
		if c != key && left.colIndex(c) >= 0 {
			overlap[c] = true
		}
	}

	merged := &table{}
	for _, c := range left.cols {
		if overlap[c] {
			c += "_x"
		}
		merged.cols = append(merged.cols, c)
	}
	var rightCols []int // indices of right columns carried into the merge
	for i, c := range right.cols {
		if i == rKey {
			continue
		}
		rightCols = append(rightCols, i)
		if overlap[c] {
			c += "_y"
		}
		merged.cols = append(merged.cols, c)
	}

	byKey := make(map[string][]int)
	for i, row := range right.rows {
		k := right.value(row, rKey)
		byKey[k] = append(byKey[k], i)
	}

	for _, lRow := range left.rows {
		matches := byKey[left.value(lRow, lKey)]
		if len(matches) == 0 {
			merged.rows = append(merged.rows, padRow(left, lRow, rightCols, nil))
			continue
		}
		for _, ri := range matches {
			merged.rows = append(merged.rows, padRow(left, lRow, rightCols, right.rows[ri]))
		}
	}
	return merged, nil
}

func padRow(left *table, lRow []string, rightCols []int, rRow []string) []string {
	out := make([]string, 0, len(left.cols)+len(rightCols))
	for i := range left.cols {
		out = append(out, left.value(lRow, i))
	}
	for _, ri := range rightCols {
		if rRow == nil {
			out = append(out, "")
			continue
		}
		if ri < len(rRow) {
			out = append(out, strings.TrimSpace(rRow[ri]))
		} else {
			out = append(out, "")
		}
	}
	return out
}
