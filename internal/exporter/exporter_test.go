package exporter

import (
	"path/filepath"
	"testing"

	"salesdash/internal/model"
	"salesdash/internal/store"
)

func TestExport_OverviewAndChainSheets(t *testing.T) {
	t.Parallel()

	st, err := store.New(filepath.Join(t.TempDir(), "salesdash.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	facts := []model.DailySalesFact{
		{Date: "2025-08-05", StoreID: "samkaup-akureyri", ProductID: "lemon-lime", Quantity: 5},
		{Date: "2025-08-05", StoreID: "samkaup-akureyri", ProductID: "cola", Quantity: 3},
		{Date: "2025-08-06", StoreID: "samkaup-akureyri", ProductID: "lemon-lime", Quantity: 2},
		{Date: "2025-08-06", StoreID: "kronan-akranes", ProductID: "orange", Quantity: 4},
		// Outside the requested range.
		{Date: "2025-08-09", StoreID: "kronan-akranes", ProductID: "orange", Quantity: 99},
	}
	if err := st.UpsertDailySales(facts); err != nil {
		t.Fatalf("seed facts: %v", err)
	}

	f, err := NewExporter(st).Export(ExportOptions{From: "2025-08-05", To: "2025-08-06"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{"Yfirlit": true, "Samkaup": true, "Krónan": true}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v", sheets)
	}
	for _, s := range sheets {
		if !want[s] {
			t.Fatalf("unexpected sheet %q in %v", s, sheets)
		}
	}

	// Overview: header + 4 facts + total row summing 14.
	rows, err := f.GetRows("Yfirlit")
	if err != nil {
		t.Fatalf("read overview: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("overview rows = %d, want 6", len(rows))
	}
	last := rows[len(rows)-1]
	if last[0] != "Samtals" || last[len(last)-1] != "14" {
		t.Fatalf("overview total row = %v", last)
	}

	// Chain sheet aggregates across the two days.
	rows, err = f.GetRows("Samkaup")
	if err != nil {
		t.Fatalf("read chain sheet: %v", err)
	}
	found := false
	for _, r := range rows {
		if len(r) >= 3 && r[0] == "Akureyri" && r[1] == "Lemon Lime" {
			found = true
			if r[2] != "7" {
				t.Fatalf("aggregated quantity = %q, want 7", r[2])
			}
		}
	}
	if !found {
		t.Fatalf("missing aggregated row: %v", rows)
	}
}

func TestExport_EmptyRangeIsError(t *testing.T) {
	t.Parallel()

	st, err := store.New(filepath.Join(t.TempDir(), "salesdash.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if _, err := NewExporter(st).Export(ExportOptions{From: "2025-01-01", To: "2025-01-31"}); err == nil {
		t.Fatalf("expected error for empty range")
	}
}
