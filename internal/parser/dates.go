package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"salesdash/internal/grid"
)

// monthAbbrev maps Icelandic month abbreviations to month numbers. Both
// accented and ASCII-degraded spellings occur in hand-made exports.
var monthAbbrev = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4,
	"maí": 5, "mai": 5,
	"jún": 6, "jun": 6,
	"júl": 7, "jul": 7,
	"ágú": 8, "agu": 8, "ág": 8,
	"sep": 9, "okt": 10,
	"nóv": 11, "nov": 11,
	"des": 12,
}

var (
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dmyDateRe   = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	abbrevDateRe = regexp.MustCompile(`^(\d{1,2})\.?\s+([\p{L}]+)\.?\s+(\d{4})$`)
)

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDateCell reads a date from a single cell. Supported encodings: Excel
// date serial, ISO string, "D.M.YYYY", and "D. <month-abbrev>. YYYY" with
// the fixed Icelandic abbreviation table.
func ParseDateCell(c grid.Cell) (string, bool) {
	if c.Kind == grid.KindNumber {
		serial := c.Number
		if serial > 20000 && serial < 80000 && serial == float64(int(serial)) {
			d := excelEpoch.AddDate(0, 0, int(serial))
			return d.Format("2006-01-02"), true
		}
		return "", false
	}
	if c.Kind == grid.KindText {
		return ParseDateText(c.String())
	}
	return "", false
}

// ParseDateText reads a date from free text, also accepting a labelled form
// such as "Dagsetning: 5. ágú. 2025".
func ParseDateText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ":"); i >= 0 {
		if d, ok := parseDatePattern(strings.TrimSpace(s[i+1:])); ok {
			return d, true
		}
	}
	return parseDatePattern(s)
}

func parseDatePattern(s string) (string, bool) {
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return s, true
		}
		return "", false
	}
	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		return formatDMY(m[1], m[2], m[3])
	}
	if m := abbrevDateRe.FindStringSubmatch(s); m != nil {
		abbrev := strings.ToLower(strings.TrimSuffix(m[2], "."))
		if len([]rune(abbrev)) > 3 {
			abbrev = string([]rune(abbrev)[:3])
		}
		month, ok := monthAbbrev[abbrev]
		if !ok {
			return "", false
		}
		return formatDMY(m[1], strconv.Itoa(month), m[3])
	}
	return "", false
}

func formatDMY(day, month, year string) (string, bool) {
	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	y, _ := strconv.Atoi(year)
	if d < 1 || d > 31 || m < 1 || m > 12 || y < 2000 || y > 2100 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// FindDateInWindow scans a bounded header window for the first parseable
// date. Extractors never scan the whole sheet for dates.
func FindDateInWindow(g [][]grid.Cell, maxRows, maxCols int) (string, bool) {
	for i := 0; i < len(g) && i < maxRows; i++ {
		for j := 0; j < len(g[i]) && j < maxCols; j++ {
			if d, ok := ParseDateCell(g[i][j]); ok {
				return d, true
			}
		}
	}
	return "", false
}

// requireDateInWindow is FindDateInWindow with the structural-error contract.
func requireDateInWindow(g [][]grid.Cell, maxRows, maxCols int, sheet string) (string, error) {
	d, ok := FindDateInWindow(g, maxRows, maxCols)
	if !ok {
		return "", fmt.Errorf("%w: sheet %q, first %d rows", ErrNoDate, sheet, maxRows)
	}
	return d, nil
}
