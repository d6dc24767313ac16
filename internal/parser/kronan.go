package parser

import (
	"fmt"
	"strings"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// KronanExtractor parses the Krónan export: a data sheet with per-row dates
// and carried-down store names, plus a "Verslanir" sheet mapping each store
// to its sub-chain label ("Keðja"). The export prints no grand total; the
// operator supplies one for reconciliation.
type KronanExtractor struct{}

// Extract walks the Krónan data sheet.
func (e *KronanExtractor) Extract(wb *grid.Workbook) (*ExtractResult, error) {
	subChains := e.readStoreList(wb)

	sheet := e.dataSheet(wb)
	if sheet == "" {
		return nil, fmt.Errorf("no data sheet found beside the store list")
	}
	g, _ := wb.Sheet(sheet)

	headerRow := findHeaderRow(g, "dagsetning", 10)
	if headerRow < 0 {
		return nil, fmt.Errorf("header row with %q not found in sheet %q", "Dagsetning", sheet)
	}
	cols := headerColumns(g[headerRow])
	dateCol := columnIndex(cols, "dagsetning")
	storeCol := columnIndex(cols, "verslun")
	skuCol := columnIndex(cols, "vörunúmer", "vorunumer")
	qtyCol := columnIndex(cols, "magn")
	if storeCol < 0 || skuCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("sheet %q is missing store, SKU or quantity column", sheet)
	}

	c := newCollector()
	carry := &carryState{}
	currentDate := ""
	var dates []string

	for i := headerRow + 1; i < len(g); i++ {
		row := g[i]
		rowNo := i + 1
		storeCell := cellAt(row, storeCol).String()
		skuCell := cellAt(row, skuCol).String()

		if IsTotalMarker(storeCell) || IsTotalMarker(skuCell) {
			continue
		}

		// Dates carry down the same way store names do.
		if d, ok := ParseDateCell(cellAt(row, dateCol)); ok {
			currentDate = d
		}
		carry.update(storeCell, "")

		if skuCell == "" {
			continue
		}
		if currentDate == "" {
			return nil, fmt.Errorf("%w: sheet %q row %d has data before any date", ErrNoDate, sheet, rowNo)
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

		dates = append(dates, currentDate)
		c.add(&model.RawSaleRow{
			Date:         currentDate,
			ChainID:      "kronan",
			ChainName:    "Krónan",
			RawStoreName: carry.currentStore,
			SubChain:     subChains[strings.ToLower(carry.currentStore)],
			SKU:          skuCell,
			Quantity:     qty,
			RowNo:        rowNo,
			SourceSheet:  sheet,
		})
	}

	allDates := uniqueSorted(dates)
	if len(allDates) == 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrNoDate, sheet)
	}
	return c.result(allDates[0], allDates)
}

// readStoreList builds the store -> sub-chain map from the Verslanir sheet.
func (e *KronanExtractor) readStoreList(wb *grid.Workbook) map[string]string {
	out := make(map[string]string)
	for _, listName := range storeListSheets {
		g, _, ok := wb.SheetFold(listName)
		if !ok {
			continue
		}
		header := firstNonEmptyRow(g)
		if header == nil {
			continue
		}
		cols := headerColumns(header)
		storeCol := columnIndex(cols, "verslun")
		chainCol := columnIndex(cols, "keðja", "kedja")
		if storeCol < 0 || chainCol < 0 {
			continue
		}
		for _, row := range g {
			store := strings.TrimSpace(cellAt(row, storeCol).String())
			chain := strings.TrimSpace(cellAt(row, chainCol).String())
			if store == "" || strings.EqualFold(store, "verslun") {
				continue
			}
			out[strings.ToLower(store)] = chain
		}
	}
	return out
}

// dataSheet picks the first sheet that is not a store listing.
func (e *KronanExtractor) dataSheet(wb *grid.Workbook) string {
	for _, name := range wb.SheetNames() {
		if !isStoreListSheet(name) {
			return name
		}
	}
	return ""
}

func isStoreListSheet(name string) bool {
	for _, listName := range storeListSheets {
		if strings.EqualFold(name, listName) {
			return true
		}
	}
	return false
}
