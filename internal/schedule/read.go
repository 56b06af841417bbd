// Package schedule reads uploaded schedules and turns them into game rows.
package schedule

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// MaxRows is the most data rows accepted from one file.
	MaxRows = 1000
	// MaxFileBytes is the largest accepted upload.
	MaxFileBytes = 5 << 20

	headerScanRows    = 5
	minHeaderKeywords = 2
)

var (
	ErrUnsupportedType = errors.New("unsupported file type, upload a CSV or Excel file")
	ErrEmptyFile       = errors.New("file is empty")
	ErrNoDataRows      = errors.New("file has no data rows after headers")
	ErrTooManyRows     = errors.New("file exceeds maximum row count")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
)

var headerKeywords = []string{
	"date", "time", "team", "home", "away", "opponent", "location", "venue", "city", "state",
}

// Table is a parsed schedule: the detected header row and one record per data row keyed
// by header text.
type Table struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// Read parses a CSV or Excel schedule, picking the parser from the file extension.
func Read(name string, r io.Reader) (Table, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxFileBytes+1))
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(content) > MaxFileBytes {
		return Table{}, ErrFileTooLarge
	}

	var raw [][]string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		raw, err = readCSV(content)
	case ".xlsx", ".xls":
		raw, err = readXLSX(content)
	default:
		return Table{}, ErrUnsupportedType
	}
	if err != nil {
		return Table{}, err
	}
	return buildTable(raw)
}

func readCSV(content []byte) ([][]string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets: %w", ErrEmptyFile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func buildTable(raw [][]string) (Table, error) {
	raw = dropBlankRows(raw)
	if len(raw) == 0 {
		return Table{}, ErrEmptyFile
	}

	headerIdx := findHeaderRow(raw)
	headers := make([]string, len(raw[headerIdx]))
	for i, h := range raw[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	data := raw[headerIdx+1:]
	if len(data) == 0 {
		return Table{}, ErrNoDataRows
	}
	if len(data) > MaxRows {
		return Table{}, fmt.Errorf("%w: maximum is %d, found %d", ErrTooManyRows, MaxRows, len(data))
	}

	rows := make([]map[string]string, len(data))
	for i, cells := range data {
		record := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(cells) {
				record[header] = strings.TrimSpace(cells[j])
			} else {
				record[header] = ""
			}
		}
		rows[i] = record
	}
	return Table{Headers: headers, Rows: rows}, nil
}

// findHeaderRow returns the first of the leading rows with at least two cells that look
// like column names, or 0 when none do.
func findHeaderRow(rows [][]string) int {
	limit := min(len(rows), headerScanRows)
	for i := 0; i < limit; i++ {
		matches := 0
		for _, cell := range rows[i] {
			if looksLikeHeader(cell) {
				matches++
			}
		}
		if matches >= minHeaderKeywords {
			return i
		}
	}
	return 0
}

func looksLikeHeader(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	for _, keyword := range headerKeywords {
		if strings.Contains(cell, keyword) {
			return true
		}
	}
	return false
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
