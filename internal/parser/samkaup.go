package parser

import (
	"fmt"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// SamkaupExtractor parses the Samkaup_Dagssala_Birgdir daily export: one
// sheet, fixed columns, store and sub-chain printed once per block and
// carried down, a printed "Samtals" grand total at the bottom.
type SamkaupExtractor struct{}

// Extract walks the Samkaup sheet.
func (e *SamkaupExtractor) Extract(wb *grid.Workbook) (*ExtractResult, error) {
	g, sheet, ok := wb.SheetFold(samkaupSheetName)
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", samkaupSheetName)
	}

	date, err := requireDateInWindow(g, 6, 8, sheet)
	if err != nil {
		return nil, err
	}

	headerRow := findHeaderRow(g, "verslun", 10)
	if headerRow < 0 {
		return nil, fmt.Errorf("header row with %q not found in sheet %q", "Verslun", sheet)
	}
	cols := headerColumns(g[headerRow])
	storeCol := columnIndex(cols, "verslun")
	subChainCol := columnIndex(cols, "undirkeðja", "undirkedja")
	skuCol := columnIndex(cols, "vörunúmer", "vorunumer", "sku")
	qtyCol := columnIndex(cols, "magn selt", "magn")
	if skuCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("sheet %q is missing SKU or quantity column", sheet)
	}

	c := newCollector()
	carry := &carryState{}

	for i := headerRow + 1; i < len(g); i++ {
		row := g[i]
		rowNo := i + 1
		storeCell := cellAt(row, storeCol).String()
		skuCell := cellAt(row, skuCol).String()

		if IsTotalMarker(storeCell) || IsTotalMarker(skuCell) {
			if total, ok := parseQuantity(cellAt(row, qtyCol)); ok {
				c.setExcelTotal(total)
			}
			continue
		}

		carry.update(storeCell, cellAt(row, subChainCol).String())

		if skuCell == "" {
			continue // spacer row
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
			ChainID:      "samkaup",
			ChainName:    "Samkaup",
			RawStoreName: carry.currentStore,
			SubChain:     carry.currentSubChain,
			SKU:          skuCell,
			Quantity:     qty,
			RowNo:        rowNo,
			SourceSheet:  sheet,
		})
	}

	return c.result(date, nil)
}
