package parser

import (
	"errors"
	"testing"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

func samkaupWorkbook(rows [][]string) *grid.Workbook {
	all := [][]string{
		{"Dagssala og birgðir", "", "", "", ""},
		{"", "5.8.2025", "", "", ""},
		{"Verslun", "Undirkeðja", "Vörunúmer", "Vöruheiti", "Magn"},
	}
	all = append(all, rows...)
	return grid.FromRows(grid.NamedSheet{Name: "Samkaup_Dagssala_Birgdir", Rows: all})
}

func TestSamkaupExtract_CarryDownAndTotals(t *testing.T) {
	t.Parallel()

	wb := samkaupWorkbook([][]string{
		{"04 - Hafnarfjörður", "Krambúð", "HHLL002", "Lemon Lime", "12"},
		{"", "", "HHOR001", "Orange", "8"},
		{"Akureyri", "Kjörbúð", "HHLL001", "Lemon Lime", "5"},
		{"", "", "HHLL001-STK", "Lemon Lime stk", "50"},
		{"Samtals", "", "", "", "75"},
	})

	res, err := (&SamkaupExtractor{}).Extract(wb)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if len(res.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(res.Rows))
	}
	if res.Date != "2025-08-05" {
		t.Fatalf("date = %q", res.Date)
	}

	// Carry-down: the blank store cell inherits the prior explicit value.
	if res.Rows[1].RawStoreName != "04 - Hafnarfjörður" {
		t.Fatalf("carry-down store = %q", res.Rows[1].RawStoreName)
	}
	if res.Rows[1].SubChain != "Krambúð" {
		t.Fatalf("carry-down sub-chain = %q", res.Rows[1].SubChain)
	}
	if res.Rows[2].RawStoreName != "Akureyri" {
		t.Fatalf("store update = %q", res.Rows[2].RawStoreName)
	}

	// The -STK row is excluded with its quantity retained.
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != model.SkipSKU || res.Skipped[0].Quantity != 50 {
		t.Fatalf("unexpected skipped: %+v", res.Skipped)
	}

	// The printed grand total is captured, not parsed as data.
	if res.ExcelTotal == nil || *res.ExcelTotal != 75 {
		t.Fatalf("excel total = %v", res.ExcelTotal)
	}
}

func TestSamkaupExtract_DenylistAndZeroQuantity(t *testing.T) {
	t.Parallel()

	wb := samkaupWorkbook([][]string{
		{"Selfoss", "Krambúð", "POKI", "Innkaupapoki", "30"},
		{"", "", "HHCO001", "Cola", "0"},
		{"", "", "HHCO001", "Cola", "x"},
		{"", "", "HHBE001", "Berry", "4"},
	})

	res, err := (&SamkaupExtractor{}).Extract(wb)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(res.Rows))
	}

	reasons := map[model.SkipReason]int{}
	for _, s := range res.Skipped {
		reasons[s.Reason]++
	}
	if reasons[model.SkipOther] != 1 || reasons[model.SkipZeroQty] != 2 {
		t.Fatalf("unexpected skip reasons: %v", reasons)
	}

	// Two bad rows, one distinct cause: exactly one warning.
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != model.WarnZeroQuantity {
		t.Fatalf("unexpected warnings: %+v", res.Warnings)
	}
}

func TestSamkaupExtract_ThousandsGroupedQuantities(t *testing.T) {
	t.Parallel()

	wb := samkaupWorkbook([][]string{
		{"Selfoss", "Krambúð", "HHLL001", "Lemon Lime", "1.250"},
		{"", "", "HHOR001", "Orange", "8"},
		{"Samtals", "", "", "", "1.258"},
	})

	res, err := (&SamkaupExtractor{}).Extract(wb)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(res.Rows) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("rows=%d skipped=%+v", len(res.Rows), res.Skipped)
	}
	if res.Rows[0].Quantity != 1250 {
		t.Fatalf("grouped quantity = %d, want 1250", res.Rows[0].Quantity)
	}
	if res.ExcelTotal == nil || *res.ExcelTotal != 1258 {
		t.Fatalf("grouped excel total = %v", res.ExcelTotal)
	}
}

func TestSamkaupExtract_ZeroRowsIsError(t *testing.T) {
	t.Parallel()

	wb := samkaupWorkbook([][]string{
		{"Samtals", "", "", "", "0"},
	})
	_, err := (&SamkaupExtractor{}).Extract(wb)
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestSamkaupExtract_MissingDateIsError(t *testing.T) {
	t.Parallel()

	wb := grid.FromRows(grid.NamedSheet{Name: "Samkaup_Dagssala_Birgdir", Rows: [][]string{
		{"Verslun", "Undirkeðja", "Vörunúmer", "Vöruheiti", "Magn"},
		{"Selfoss", "Krambúð", "HHLL001", "Lemon Lime", "3"},
	}})
	_, err := (&SamkaupExtractor{}).Extract(wb)
	if !errors.Is(err, ErrNoDate) {
		t.Fatalf("expected ErrNoDate, got %v", err)
	}
}
