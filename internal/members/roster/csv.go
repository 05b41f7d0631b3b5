// Package roster parses the member list CSV published by headquarters.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed roster line. Rows with a missing member number carry Err
// and are reported by the sync rather than aborting the whole import.
type Row struct {
	MemberNumber string
	Line         int
	Err          error
}

var ErrNoHeader = errors.New("roster: missing or unrecognised header row")

// Exports from the national database have changed column naming several
// times; accept every spelling seen in the wild. Other columns (names,
// emails, chapter codes) are ignored.
var memberNumberAliases = []string{"member#", "member_number", "member number", "major_key"}

// ParseCSV reads a headquarters member list export and returns one row per
// line. The header row is matched case-insensitively and a UTF-8 BOM (Excel
// exports) is tolerated.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports sometimes have ragged trailing columns
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrNoHeader
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	numberIdx, ok := findColumn(cols, memberNumberAliases)
	if !ok {
		return nil, ErrNoHeader
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rows = append(rows, Row{Line: line, Err: fmt.Errorf("line %d: %w", line, err)})
			continue
		}

		row := Row{Line: line}
		row.MemberNumber = field(record, numberIdx)
		if row.MemberNumber == "" {
			row.Err = fmt.Errorf("line %d: missing member number", line)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Numbers collects the distinct member numbers from parsed rows, returning
// the error messages for rows that could not be read.
func Numbers(rows []Row) (map[string]bool, []string) {
	numbers := make(map[string]bool, len(rows))
	var errs []string
	for _, row := range rows {
		if row.Err != nil {
			errs = append(errs, row.Err.Error())
			continue
		}
		numbers[row.MemberNumber] = true
	}
	return numbers, errs
}

func findColumn(cols map[string]int, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := cols[alias]; ok {
			return idx, true
		}
	}
	return 0, false
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
