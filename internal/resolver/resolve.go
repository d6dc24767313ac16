package resolver

import (
	"salesdash/internal/model"
)

// RowResolution is the output of resolving one extractor's rows: surviving
// rows carry both a product ID and a store ID (real or temp); rows missing
// either are excluded and counted, never silently dropped.
type RowResolution struct {
	Rows     []*model.RawSaleRow
	Warnings []model.ParseWarning
	Skipped  []model.SkippedRow
}

// ResolveRows maps raw SKUs/product names and raw store names onto canonical
// identifiers. Product resolution is table lookup only; store resolution
// uses the layered matcher scoped to each row's chain.
func ResolveRows(rows []*model.RawSaleRow, stores *StoreResolver) *RowResolution {
	res := &RowResolution{}
	seenWarn := make(map[string]struct{})

	warn := func(kind model.WarningKind, value, message string, rowNo int) {
		key := string(kind) + "|" + value
		if _, ok := seenWarn[key]; ok {
			return
		}
		seenWarn[key] = struct{}{}
		res.Warnings = append(res.Warnings, model.ParseWarning{
			Kind:    kind,
			Value:   value,
			Message: message,
			RowNo:   rowNo,
		})
	}

	for _, row := range rows {
		// Product: SKU table first, free-text name table for SKU-less rows.
		var p Product
		var ok bool
		switch {
		case row.SKU != "":
			p, ok = LookupSKU(row.SKU)
			if !ok {
				warn(model.WarnUnknownSKU, row.SKU, "unknown SKU "+row.SKU, row.RowNo)
				res.Skipped = append(res.Skipped, model.SkippedRow{
					Reason:   model.SkipUnknownProduct,
					SKU:      row.SKU,
					Quantity: row.Quantity,
					RowNo:    row.RowNo,
				})
				continue
			}
		default:
			p, ok = LookupProductName(row.ProductName)
			if !ok {
				warn(model.WarnUnknownSKU, row.ProductName, "unknown product name "+row.ProductName, row.RowNo)
				res.Skipped = append(res.Skipped, model.SkippedRow{
					Reason:   model.SkipUnknownProduct,
					Quantity: row.Quantity,
					RowNo:    row.RowNo,
				})
				continue
			}
		}
		row.ProductID = p.ID
		row.ProductName = p.Name

		// Store: a row without any store name cannot be placed.
		if row.RawStoreName == "" {
			warn(model.WarnUnknownStore, "(blank)", "row has no store name and none carried down", row.RowNo)
			res.Skipped = append(res.Skipped, model.SkippedRow{
				Reason:   model.SkipOther,
				SKU:      row.SKU,
				Quantity: row.Quantity,
				RowNo:    row.RowNo,
			})
			continue
		}
		storeID, isNew := stores.Resolve(row.ChainID, row.RawStoreName)
		row.StoreID = storeID
		row.IsNewStore = isNew
		if isNew {
			warn(model.WarnUnknownStore, row.RawStoreName, "store "+row.RawStoreName+" not in registry, will be created on save", row.RowNo)
		}

		res.Rows = append(res.Rows, row)
	}

	return res
}
