// Package recon aggregates resolved sale rows into final facts and accounts
// for the gap between the parsed total and the source document's own total.
package recon

import (
	"sort"

	"salesdash/internal/model"
)

// Aggregate merges rows sharing a (date, store, product) key, summing
// quantities. Two raw rows collapsing onto one fact is normal source
// behavior, not an error. The output order is deterministic.
func Aggregate(rows []*model.RawSaleRow) []*model.RawSaleRow {
	byKey := make(map[model.FactKey]*model.RawSaleRow, len(rows))
	order := make([]model.FactKey, 0, len(rows))

	for _, row := range rows {
		key := row.Key()
		if existing, ok := byKey[key]; ok {
			existing.Quantity += row.Quantity
			continue
		}
		merged := *row
		byKey[key] = &merged
		order = append(order, key)
	}

	out := make([]*model.RawSaleRow, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		return a.ProductID < b.ProductID
	})
	return out
}

// TotalBoxes sums the surviving quantities.
func TotalBoxes(rows []*model.RawSaleRow) int {
	total := 0
	for _, row := range rows {
		total += row.Quantity
	}
	return total
}

// SkipQuantity sums the quantities skipped for one reason.
func SkipQuantity(skipped []model.SkippedRow, reason model.SkipReason) int {
	total := 0
	for _, s := range skipped {
		if s.Reason == reason {
			total += s.Quantity
		}
	}
	return total
}

// Reconcile classifies the parsed total against the source total. Only the
// single-unit SKU exclusion may explain a gap; other skip categories never
// do. An unexplained gap is a soft block requiring operator acknowledgment.
func Reconcile(totalBoxes int, sourceTotal *int, skipped []model.SkippedRow) model.Reconciliation {
	rec := model.Reconciliation{
		TotalBoxes:  totalBoxes,
		SourceTotal: sourceTotal,
		SkipSKUQty:  SkipQuantity(skipped, model.SkipSKU),
	}
	if sourceTotal == nil {
		rec.Status = model.ReconNoTotal
		return rec
	}
	rec.Diff = *sourceTotal - totalBoxes
	switch {
	case rec.Diff == 0:
		rec.Status = model.ReconMatched
	case rec.Diff == rec.SkipSKUQty:
		rec.Status = model.ReconExplained
	default:
		rec.Status = model.ReconUnexplained
	}
	return rec
}

// MarkDuplicates flags rows whose fact key is already persisted. This is
// informational for the operator; merge is an upsert and proceeds anyway.
func MarkDuplicates(rows []*model.RawSaleRow, existing map[model.FactKey]struct{}) int {
	count := 0
	for _, row := range rows {
		if _, ok := existing[row.Key()]; ok {
			row.IsDuplicate = true
			count++
		}
	}
	return count
}

// StoreCount counts distinct resolved stores among the rows.
func StoreCount(rows []*model.RawSaleRow) int {
	seen := make(map[string]struct{})
	for _, row := range rows {
		seen[row.StoreID] = struct{}{}
	}
	return len(seen)
}
