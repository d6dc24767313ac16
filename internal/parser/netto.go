package parser

import (
	"fmt"
	"strings"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// nettoSummarySheet is the all-stores summary sheet that must never be
// parsed as data; its rows would double every fact.
const nettoSummarySheet = "Allar verslanir"

// NettoExtractor parses the Nettó export: one sheet per physical store
// (sheet name is the store name), a store-list sheet and an all-stores
// summary sheet to skip. Each store sheet may shift its layout, so the
// quantity column is located per sheet, preferring the specific "Selt magn"
// header over the generic "Magn" (which is pack size).
type NettoExtractor struct{}

// Extract merges all store sheets.
func (e *NettoExtractor) Extract(wb *grid.Workbook) (*ExtractResult, error) {
	sheets := e.storeSheets(wb)
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no store sheets found")
	}

	// Workbook-wide fallback date: first sheet that carries one.
	fallbackDate := ""
	for _, sheet := range sheets {
		g, _ := wb.Sheet(sheet)
		if d, ok := FindDateInWindow(g, 6, 6); ok {
			fallbackDate = d
			break
		}
	}
	if fallbackDate == "" {
		return nil, fmt.Errorf("%w: no store sheet carries a date", ErrNoDate)
	}

	c := newCollector()
	var dates []string

	for _, sheet := range sheets {
		g, _ := wb.Sheet(sheet)

		date, ok := FindDateInWindow(g, 6, 6)
		if !ok {
			date = fallbackDate
		}
		dates = append(dates, date)

		headerRow := findHeaderRow(g, "vörunúmer", 10)
		if headerRow < 0 {
			headerRow = findHeaderRow(g, "vorunumer", 10)
		}
		if headerRow < 0 {
			return nil, fmt.Errorf("header row with %q not found in sheet %q", "Vörunúmer", sheet)
		}
		cols := headerColumns(g[headerRow])
		skuCol := columnIndex(cols, "vörunúmer", "vorunumer")
		// The specific sold-quantity label wins over the generic one.
		qtyCol := columnIndex(cols, "selt magn", "seldar einingar", "magn")
		if qtyCol < 0 {
			return nil, fmt.Errorf("quantity column not found in sheet %q", sheet)
		}

		for i := headerRow + 1; i < len(g); i++ {
			row := g[i]
			rowNo := i + 1
			skuCell := cellAt(row, skuCol).String()

			if IsTotalMarker(skuCell) || IsTotalMarker(cellAt(row, 0).String()) {
				continue
			}
			if skuCell == "" {
				continue
			}
			qty, qtyOK := parseQuantity(cellAt(row, qtyCol))
			if reason, skip := SKUSkipReason(skuCell); skip {
				c.skip(reason, skuCell, qty, rowNo)
				continue
			}
			if !qtyOK {
				c.skip(model.SkipZeroQty, skuCell, 0, rowNo)
				c.warn(model.WarnZeroQuantity, skuCell, "zero or unparseable quantity for SKU "+skuCell, rowNo)
				continue
			}

			c.add(&model.RawSaleRow{
				Date:         date,
				ChainID:      "netto",
				ChainName:    "Nettó",
				RawStoreName: sheet,
				SKU:          skuCell,
				Quantity:     qty,
				RowNo:        rowNo,
				SourceSheet:  sheet,
			})
		}
	}

	allDates := uniqueSorted(dates)
	return c.result(allDates[0], allDates)
}

// storeSheets lists the per-store sheets, excluding the store-list and
// all-stores summary sheets.
func (e *NettoExtractor) storeSheets(wb *grid.Workbook) []string {
	var out []string
	for _, name := range wb.SheetNames() {
		if isStoreListSheet(name) || strings.EqualFold(name, nettoSummarySheet) {
			continue
		}
		out = append(out, name)
	}
	return out
}
