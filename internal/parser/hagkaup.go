package parser

import (
	"fmt"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// HagkaupExtractor parses the Hagkaup warehouse report: boilerplate header
// rows with a "Dagsetning: D. mán. YYYY" line, free-text product names
// instead of SKUs, store names carried down, an "Alls" grand total.
type HagkaupExtractor struct{}

// Extract walks the first sheet of the Hagkaup workbook.
func (e *HagkaupExtractor) Extract(wb *grid.Workbook) (*ExtractResult, error) {
	sheet := wb.SheetNames()[0]
	g, _ := wb.Sheet(sheet)

	date, err := requireDateInWindow(g, 8, 6, sheet)
	if err != nil {
		return nil, err
	}

	headerRow := findHeaderRow(g, "vara", 12)
	if headerRow < 0 {
		return nil, fmt.Errorf("header row with %q not found in sheet %q", "Vara", sheet)
	}
	cols := headerColumns(g[headerRow])
	storeCol := columnIndex(cols, "verslun")
	productCol := columnIndex(cols, "vara", "vöruheiti")
	qtyCol := columnIndex(cols, "magn")
	if storeCol < 0 || productCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("sheet %q is missing store, product or quantity column", sheet)
	}

	c := newCollector()
	carry := &carryState{}

	for i := headerRow + 1; i < len(g); i++ {
		row := g[i]
		rowNo := i + 1
		storeCell := cellAt(row, storeCol).String()
		productCell := cellAt(row, productCol).String()

		if IsTotalMarker(storeCell) || IsTotalMarker(productCell) {
			if total, ok := parseQuantity(cellAt(row, qtyCol)); ok {
				c.setExcelTotal(total)
			}
			continue
		}

		carry.update(storeCell, "")

		if productCell == "" {
			continue
		}
		qty, qtyOK := parseQuantity(cellAt(row, qtyCol))
		if !qtyOK {
			c.skip(model.SkipZeroQty, "", 0, rowNo)
			c.warn(model.WarnZeroQuantity, productCell, "zero or unparseable quantity for product "+productCell, rowNo)
			continue
		}

		c.add(&model.RawSaleRow{
			Date:         date,
			ChainID:      "hagkaup",
			ChainName:    "Hagkaup",
			RawStoreName: carry.currentStore,
			ProductName:  productCell,
			Quantity:     qty,
			RowNo:        rowNo,
			SourceSheet:  sheet,
		})
	}

	return c.result(date, nil)
}
