package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// totalMarkers are the sentinel spellings used for subtotal/total rows.
var totalMarkers = []string{"samtals", "alls", "total", "heildarsala"}

// IsTotalMarker reports whether a cell text marks a subtotal/total row.
func IsTotalMarker(s string) bool {
	ls := strings.ToLower(strings.TrimSpace(s))
	for _, m := range totalMarkers {
		if strings.HasPrefix(ls, m) {
			return true
		}
	}
	return false
}

// singleUnitSuffix marks single-unit SKUs excluded from box counting.
const singleUnitSuffix = "-STK"

// skuDenylist lists non-product SKUs (merchandise, bags, gift cards).
var skuDenylist = map[string]struct{}{
	"GJAFAB": {},
	"POKI":   {},
	"MERCH":  {},
}

// SKUSkipReason returns the skip reason for an excluded SKU, if any.
// Exclusions apply before quantity parsing and are counted, not warned.
func SKUSkipReason(sku string) (model.SkipReason, bool) {
	u := strings.ToUpper(strings.TrimSpace(sku))
	if strings.HasSuffix(u, singleUnitSuffix) {
		return model.SkipSKU, true
	}
	if _, ok := skuDenylist[u]; ok {
		return model.SkipOther, true
	}
	return "", false
}

// carryState models hand-formatted reports where a store name is printed
// once above a block of product lines. Fresh per parse invocation.
type carryState struct {
	currentStore    string
	currentSubChain string
}

// update refreshes carry-down values from non-empty cells.
func (s *carryState) update(store, subChain string) {
	if store = strings.TrimSpace(store); store != "" {
		s.currentStore = store
	}
	if subChain = strings.TrimSpace(subChain); subChain != "" {
		s.currentSubChain = subChain
	}
}

// collector accumulates extractor output. Warnings are deduplicated by
// kind+value so one bad SKU over many rows yields a single entry.
type collector struct {
	rows       []*model.RawSaleRow
	warnings   []model.ParseWarning
	seenWarn   map[string]struct{}
	skipped    []model.SkippedRow
	excelTotal *int
}

func newCollector() *collector {
	return &collector{seenWarn: make(map[string]struct{})}
}

func (c *collector) add(row *model.RawSaleRow) {
	c.rows = append(c.rows, row)
}

func (c *collector) warn(kind model.WarningKind, value, message string, rowNo int) {
	key := string(kind) + "|" + value
	if _, ok := c.seenWarn[key]; ok {
		return
	}
	c.seenWarn[key] = struct{}{}
	c.warnings = append(c.warnings, model.ParseWarning{
		Kind:    kind,
		Value:   value,
		Message: message,
		RowNo:   rowNo,
	})
}

func (c *collector) skip(reason model.SkipReason, sku string, qty, rowNo int) {
	c.skipped = append(c.skipped, model.SkippedRow{
		Reason:   reason,
		SKU:      sku,
		Quantity: qty,
		RowNo:    rowNo,
	})
}

// setExcelTotal records the printed grand total. The largest value wins so
// per-store subtotals never shadow the workbook grand total.
func (c *collector) setExcelTotal(v int) {
	if c.excelTotal == nil || v > *c.excelTotal {
		t := v
		c.excelTotal = &t
	}
}

// result assembles the extract result, failing when a full scan produced no
// rows.
func (c *collector) result(date string, allDates []string) (*ExtractResult, error) {
	if len(c.rows) == 0 {
		return nil, fmt.Errorf("%w (scanned whole workbook)", ErrNoRows)
	}
	if len(allDates) == 0 {
		allDates = []string{date}
	}
	sort.Strings(allDates)
	return &ExtractResult{
		Rows:       c.rows,
		Warnings:   c.warnings,
		Skipped:    c.skipped,
		ExcelTotal: c.excelTotal,
		Date:       date,
		AllDates:   allDates,
	}, nil
}

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeHeader lowercases a header cell and collapses whitespace.
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, "\n", " ")
	return spaceRe.ReplaceAllString(s, " ")
}

// findHeaderRow locates the first row within limit containing a cell whose
// normalized text equals token, returning the row index or -1.
func findHeaderRow(g [][]grid.Cell, token string, limit int) int {
	for i := 0; i < len(g) && i < limit; i++ {
		for _, c := range g[i] {
			if NormalizeHeader(c.String()) == token {
				return i
			}
		}
	}
	return -1
}

// headerColumns maps normalized header text to column index for one row.
func headerColumns(row []grid.Cell) map[string]int {
	cols := make(map[string]int, len(row))
	for j, c := range row {
		key := NormalizeHeader(c.String())
		if key == "" {
			continue
		}
		if _, ok := cols[key]; !ok {
			cols[key] = j
		}
	}
	return cols
}

// columnIndex returns the index of the first matching header name, or -1.
func columnIndex(cols map[string]int, names ...string) int {
	for _, name := range names {
		if idx, ok := cols[name]; ok {
			return idx
		}
	}
	return -1
}

// cellAt returns the cell at a column, tolerating ragged rows.
func cellAt(row []grid.Cell, col int) grid.Cell {
	if col < 0 || col >= len(row) {
		return grid.Cell{}
	}
	return row[col]
}

// parseQuantity reads a positive integer quantity from a cell.
func parseQuantity(c grid.Cell) (int, bool) {
	f, ok := c.AsNumber()
	if !ok {
		return 0, false
	}
	q := int(f)
	if q <= 0 || float64(q) != f {
		return 0, false
	}
	return q, true
}

// uniqueSorted deduplicates and sorts a list of date strings.
func uniqueSorted(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
