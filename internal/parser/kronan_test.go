package parser

import (
	"testing"

	"salesdash/internal/grid"
)

func TestKronanExtract_PerRowDatesAndSubChains(t *testing.T) {
	t.Parallel()

	wb := grid.FromRows(
		grid.NamedSheet{Name: "Sala", Rows: [][]string{
			{"Dagsetning", "Verslun", "Vörunúmer", "Magn"},
			{"5.8.2025", "Grafarvogur", "HHLL001", "4"},
			{"", "", "HHOR001", "3"},
			{"6.8.2025", "Akranes", "HHLL001", "2"},
			{"", "Samtals", "", "9"},
		}},
		grid.NamedSheet{Name: "Verslanir", Rows: [][]string{
			{"Verslun", "Keðja"},
			{"Grafarvogur", "Krónan"},
			{"Akranes", "Krónan Minni"},
		}},
	)

	res, err := (&KronanExtractor{}).Extract(wb)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Rows))
	}

	// Dates and stores both carry down.
	if res.Rows[1].Date != "2025-08-05" || res.Rows[1].RawStoreName != "Grafarvogur" {
		t.Fatalf("carry-down row: date=%q store=%q", res.Rows[1].Date, res.Rows[1].RawStoreName)
	}
	if res.Rows[2].Date != "2025-08-06" {
		t.Fatalf("row date = %q", res.Rows[2].Date)
	}

	// Sub-chain labels come from the store list sheet.
	if res.Rows[0].SubChain != "Krónan" || res.Rows[2].SubChain != "Krónan Minni" {
		t.Fatalf("sub-chains: %q, %q", res.Rows[0].SubChain, res.Rows[2].SubChain)
	}

	if len(res.AllDates) != 2 || res.AllDates[0] != "2025-08-05" || res.AllDates[1] != "2025-08-06" {
		t.Fatalf("allDates = %v", res.AllDates)
	}
	if res.Date != "2025-08-05" {
		t.Fatalf("primary date = %q", res.Date)
	}
	if res.ExcelTotal != nil {
		t.Fatalf("kronan export prints no total, got %v", *res.ExcelTotal)
	}
}
