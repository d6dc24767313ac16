package parser

import (
	"testing"

	"salesdash/internal/grid"
)

func TestParseDateText_Patterns(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-08-05", "2025-08-05", true},
		{"5.8.2025", "2025-08-05", true},
		{"05.08.2025", "2025-08-05", true},
		{"5. ágú. 2025", "2025-08-05", true},
		{"12 des 2025", "2025-12-12", true},
		{"3. maí 2026", "2026-05-03", true},
		{"Dagsetning: 5. ágú. 2025", "2025-08-05", true},
		{"32.1.2025", "", false},
		{"5. xyz. 2025", "", false},
		{"not a date", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseDateText(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseDateText(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseDateCell_ExcelSerial(t *testing.T) {
	t.Parallel()

	// 45658 is 2025-01-01 in the 1900 date system.
	got, ok := ParseDateCell(grid.NewCell("45658"))
	if !ok || got != "2025-01-01" {
		t.Fatalf("serial 45658 = %q, %v", got, ok)
	}

	// Plain quantities must never be read as dates.
	if _, ok := ParseDateCell(grid.NewCell("12")); ok {
		t.Fatalf("small number parsed as date")
	}
}

func TestFindDateInWindow_Bounded(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"", ""},
		{"", "5.8.2025"},
	}
	g := make([][]grid.Cell, len(rows))
	for i, r := range rows {
		for _, raw := range r {
			g[i] = append(g[i], grid.NewCell(raw))
		}
	}

	if d, ok := FindDateInWindow(g, 4, 4); !ok || d != "2025-08-05" {
		t.Fatalf("window scan = %q, %v", d, ok)
	}
	// The date sits on row 1: a 1-row window must not see it.
	if _, ok := FindDateInWindow(g, 1, 4); ok {
		t.Fatalf("date found outside bounded window")
	}
}
