package parser

import (
	"testing"

	"salesdash/internal/grid"
)

func TestNettoExtract_PerSheetStoresAndQuantityColumn(t *testing.T) {
	t.Parallel()

	wb := grid.FromRows(
		grid.NamedSheet{Name: "Verslanir", Rows: [][]string{
			{"Verslun", "Staður"},
			{"Mjódd", "Reykjavík"},
		}},
		// Summary sheet: parsing it would double every fact.
		grid.NamedSheet{Name: "Allar verslanir", Rows: [][]string{
			{"", "5.8.2025"},
			{"Vörunúmer", "Magn", "Selt magn"},
			{"HHLL001", "24", "99"},
		}},
		// This sheet has both a generic "Magn" (pack size) and the specific
		// "Selt magn"; the specific one must win.
		grid.NamedSheet{Name: "Mjódd", Rows: [][]string{
			{"", "5.8.2025"},
			{"Vörunúmer", "Magn", "Selt magn"},
			{"HHLL001", "24", "7"},
			{"HHOR001", "12", "3"},
		}},
		// Shifted layout, only the generic label, and no own date.
		grid.NamedSheet{Name: "Grandi", Rows: [][]string{
			{"Vörunúmer", "Magn"},
			{"HHCO001", "5"},
		}},
	)

	res, err := (&NettoExtractor{}).Extract(wb)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Rows))
	}

	// Sold quantity, not pack size.
	if res.Rows[0].Quantity != 7 || res.Rows[1].Quantity != 3 {
		t.Fatalf("quantities = %d, %d", res.Rows[0].Quantity, res.Rows[1].Quantity)
	}
	// Sheet name is the store name.
	if res.Rows[0].RawStoreName != "Mjódd" || res.Rows[2].RawStoreName != "Grandi" {
		t.Fatalf("stores = %q, %q", res.Rows[0].RawStoreName, res.Rows[2].RawStoreName)
	}
	// The dateless sheet falls back to the workbook-wide date.
	if res.Rows[2].Date != "2025-08-05" {
		t.Fatalf("fallback date = %q", res.Rows[2].Date)
	}
}
