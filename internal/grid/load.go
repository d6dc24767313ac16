package grid

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Load opens a spreadsheet byte buffer into a workbook. Only .xlsx and .csv
// are accepted; anything else is rejected before any parsing starts.
func Load(data []byte, filename string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return loadXLSX(data)
	case ".csv":
		return loadCSV(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .xlsx or .csv)", filename)
	}
}

// loadXLSX reads every sheet into a grid.
func loadXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	wb := newWorkbook()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		wb.addSheet(sheet, rows)
	}
	if len(wb.order) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return wb, nil
}

// loadCSV reads a delimited text file as a single-sheet workbook. Legacy
// Icelandic exports arrive in ISO-8859-1, so bytes that are not valid UTF-8
// are decoded through the Latin-1 charmap first.
func loadCSV(data []byte) (*Workbook, error) {
	if !utf8.Valid(data) {
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("failed to decode csv charset: %w", err)
		}
		data = decoded
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}

	wb := newWorkbook()
	wb.addSheet("Sheet1", rows)
	return wb, nil
}

// sniffDelimiter picks ';' over ',' when the first line favors it.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
