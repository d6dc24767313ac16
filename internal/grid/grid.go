package grid

import (
	"regexp"
	"strconv"
	"strings"
)

// CellKind tags the value held by a cell.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
)

// Cell is one spreadsheet cell as a tagged union. Number is set only when
// Kind is KindNumber; Text always holds the raw string form.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Empty reports whether the cell holds no value.
func (c Cell) Empty() bool {
	return c.Kind == KindEmpty
}

// String returns the trimmed text form of the cell.
func (c Cell) String() string {
	return c.Text
}

// groupedNumberRe matches Icelandic thousands grouping: dot-separated groups
// of three with an optional decimal comma ("1.250", "12.345,5"). The strict
// group shape keeps date strings like "5.8.2025" from matching.
var groupedNumberRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)

// AsNumber returns the numeric value of the cell. Text cells are parsed,
// tolerating thousands separators and a decimal comma.
func (c Cell) AsNumber() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Number, true
	case KindText:
		s := strings.TrimSpace(c.Text)
		if groupedNumberRe.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NewCell classifies a raw string into a cell. Grouped numbers are handled
// before the plain parse: "1.250" is 1250, not 1.25.
func NewCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: KindEmpty}
	}
	if groupedNumberRe.MatchString(s) {
		n := strings.ReplaceAll(s, ".", "")
		n = strings.ReplaceAll(n, ",", ".")
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return Cell{Kind: KindNumber, Text: s, Number: f}
		}
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return Cell{Kind: KindNumber, Text: s, Number: f}
	}
	return Cell{Kind: KindText, Text: s}
}

// Workbook is a loaded spreadsheet: sheet name -> rectangular grid of cells.
// Grids are built once per load and never mutated.
type Workbook struct {
	order  []string
	sheets map[string][][]Cell
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// Sheet returns the grid for a sheet name.
func (w *Workbook) Sheet(name string) ([][]Cell, bool) {
	g, ok := w.sheets[name]
	return g, ok
}

// SheetFold returns the grid for a sheet matched case-insensitively.
func (w *Workbook) SheetFold(name string) ([][]Cell, string, bool) {
	for _, n := range w.order {
		if strings.EqualFold(n, name) {
			return w.sheets[n], n, true
		}
	}
	return nil, "", false
}

// NamedSheet is a raw sheet used to build workbooks programmatically.
type NamedSheet struct {
	Name string
	Rows [][]string
}

// FromRows builds a workbook from raw string rows.
func FromRows(sheets ...NamedSheet) *Workbook {
	wb := newWorkbook()
	for _, s := range sheets {
		wb.addSheet(s.Name, s.Rows)
	}
	return wb
}

func newWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string][][]Cell)}
}

func (w *Workbook) addSheet(name string, rows [][]string) {
	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, raw := range row {
			cells[j] = NewCell(raw)
		}
		grid[i] = cells
	}
	w.order = append(w.order, name)
	w.sheets[name] = grid
}
