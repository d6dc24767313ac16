// Package exporter builds downloadable Excel reports from the fact store.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/store"
)

const overviewSheet = "Yfirlit"

// Exporter writes daily-sales reports for a date range: one overview sheet
// with every fact, plus one sheet per chain aggregated by store and product.
type Exporter struct {
	store *store.Store
}

// NewExporter creates a report exporter over the fact store.
func NewExporter(st *store.Store) *Exporter {
	return &Exporter{store: st}
}

// ExportOptions selects the inclusive date range to export.
type ExportOptions struct {
	From string
	To   string
}

// Export builds the report workbook. The caller owns the returned file and
// must close it.
func (e *Exporter) Export(opts ExportOptions) (*excelize.File, error) {
	facts, err := e.store.ListFactRows(opts.From, opts.To)
	if err != nil {
		return nil, fmt.Errorf("failed to read facts for export: %w", err)
	}
	if len(facts) == 0 {
		return nil, fmt.Errorf("no sales facts between %s and %s", opts.From, opts.To)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, err
	}
	if err := fillOverviewSheet(f, facts); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := fillChainSheets(f, facts); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func fillOverviewSheet(f *excelize.File, facts []store.FactRow) error {
	header := []interface{}{"Dagsetning", "Keðja", "Verslun", "Vara", "Magn"}
	if err := writeRow(f, overviewSheet, 1, header); err != nil {
		return err
	}

	total := 0
	row := 2
	for _, fact := range facts {
		values := []interface{}{fact.Date, fact.ChainName, fact.StoreName, fact.ProductName, fact.Quantity}
		if err := writeRow(f, overviewSheet, row, values); err != nil {
			return err
		}
		total += fact.Quantity
		row++
	}
	if err := writeRow(f, overviewSheet, row, []interface{}{"Samtals", "", "", "", total}); err != nil {
		return err
	}

	return f.SetColWidth(overviewSheet, "A", "D", 18)
}

// fillChainSheets writes one sheet per chain with quantities summed over the
// range, keyed by store and product.
func fillChainSheets(f *excelize.File, facts []store.FactRow) error {
	type key struct {
		storeName   string
		productName string
	}
	sums := make(map[string]map[key]int)
	chainNames := make(map[string]string)
	var chainOrder []string

	for _, fact := range facts {
		if _, ok := sums[fact.ChainID]; !ok {
			sums[fact.ChainID] = make(map[key]int)
			chainNames[fact.ChainID] = fact.ChainName
			chainOrder = append(chainOrder, fact.ChainID)
		}
		sums[fact.ChainID][key{fact.StoreName, fact.ProductName}] += fact.Quantity
	}

	for _, chainID := range chainOrder {
		sheet := chainNames[chainID]
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := writeRow(f, sheet, 1, []interface{}{"Verslun", "Vara", "Magn"}); err != nil {
			return err
		}

		row := 2
		total := 0
		// Facts arrive ordered; replay them to keep sheet order deterministic.
		written := make(map[key]bool)
		for _, fact := range facts {
			if fact.ChainID != chainID {
				continue
			}
			k := key{fact.StoreName, fact.ProductName}
			if written[k] {
				continue
			}
			written[k] = true
			qty := sums[chainID][k]
			if err := writeRow(f, sheet, row, []interface{}{k.storeName, k.productName, qty}); err != nil {
				return err
			}
			total += qty
			row++
		}
		if err := writeRow(f, sheet, row, []interface{}{"Samtals", "", total}); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", "B", 18); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
