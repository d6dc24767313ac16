package parser

import (
	"errors"
	"strings"
	"testing"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

func TestDetect_SamkaupSheetNameWinsFirst(t *testing.T) {
	t.Parallel()

	// Even with a verslanir sheet present, the export sheet name decides.
	wb := grid.FromRows(
		grid.NamedSheet{Name: "Samkaup_Dagssala_Birgdir", Rows: [][]string{{"Verslun"}}},
		grid.NamedSheet{Name: "Verslanir", Rows: [][]string{{"Verslun", "Keðja"}}},
	)
	f, err := Detect(wb)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if f != model.FormatSamkaup {
		t.Fatalf("got %s, want samkaup", f)
	}
}

func TestDetect_HagkaupMarkerPhrase(t *testing.T) {
	t.Parallel()

	wb := grid.FromRows(grid.NamedSheet{Name: "Skyrsla", Rows: [][]string{
		{"Sölugreining úr vöruhúsi Hagkaupa"},
		{"Dagsetning: 5. ágú. 2025"},
	}})
	f, err := Detect(wb)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if f != model.FormatHagkaup {
		t.Fatalf("got %s, want hagkaup", f)
	}
}

func TestDetect_StoreListDisambiguation(t *testing.T) {
	t.Parallel()

	kronan := grid.FromRows(
		grid.NamedSheet{Name: "Sala", Rows: [][]string{{"Dagsetning", "Verslun"}}},
		grid.NamedSheet{Name: "verslanir", Rows: [][]string{{"Verslun", "Keðja"}}},
	)
	f, err := Detect(kronan)
	if err != nil {
		t.Fatalf("detect kronan: %v", err)
	}
	if f != model.FormatKronan {
		t.Fatalf("got %s, want kronan", f)
	}

	netto := grid.FromRows(
		grid.NamedSheet{Name: "Mjódd", Rows: [][]string{{"Vörunúmer", "Magn"}}},
		grid.NamedSheet{Name: "Stores", Rows: [][]string{{"Verslun", "Staður"}}},
	)
	f, err = Detect(netto)
	if err != nil {
		t.Fatalf("detect netto: %v", err)
	}
	if f != model.FormatNetto {
		t.Fatalf("got %s, want netto", f)
	}
}

func TestDetect_UnrecognizedListsSheets(t *testing.T) {
	t.Parallel()

	wb := grid.FromRows(grid.NamedSheet{Name: "Blad1", Rows: [][]string{{"foo"}}})
	_, err := Detect(wb)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "Blad1") {
		t.Fatalf("error should list sheet names, got %q", err.Error())
	}
}
