package parser

import (
	"fmt"
	"strings"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// samkaupSheetName is the export sheet identifier of the Samkaup back office.
const samkaupSheetName = "Samkaup_Dagssala_Birgdir"

// hagkaupMarker is a boilerplate phrase unique to the Hagkaup warehouse
// export system, printed in the first rows of the sheet.
const hagkaupMarker = "sölugreining úr vöruhúsi hagkaupa"

// storeListSheets are the sheet names that hold a store listing in the two
// remaining formats.
var storeListSheets = []string{"verslanir", "stores"}

// Detect classifies a workbook into exactly one source format. Detection is
// priority-ordered; when no rule matches the pipeline refuses to guess.
func Detect(wb *grid.Workbook) (model.Format, error) {
	names := wb.SheetNames()

	// Rule 1: chain-specific export sheet name.
	for _, name := range names {
		if strings.EqualFold(name, samkaupSheetName) {
			return model.FormatSamkaup, nil
		}
	}

	// Rule 2: marker phrase in the first sheet's header rows.
	if g, ok := wb.Sheet(names[0]); ok {
		if containsMarker(g, hagkaupMarker, 8) {
			return model.FormatHagkaup, nil
		}
	}

	// Rule 3: store-list sheet, disambiguated by its header tokens.
	for _, listName := range storeListSheets {
		g, _, ok := wb.SheetFold(listName)
		if !ok {
			continue
		}
		if f, ok := classifyStoreList(g); ok {
			return f, nil
		}
	}

	return model.FormatUnknown, fmt.Errorf("%w: sheets seen: [%s]", ErrUnknownFormat, strings.Join(names, ", "))
}

// containsMarker scans a bounded window of rows for a phrase.
func containsMarker(g [][]grid.Cell, marker string, maxRows int) bool {
	for i := 0; i < len(g) && i < maxRows; i++ {
		for _, c := range g[i] {
			if strings.Contains(strings.ToLower(c.String()), marker) {
				return true
			}
		}
	}
	return false
}

// classifyStoreList tells the two store-list formats apart: Krónan's listing
// carries a literal "Keðja" column, Nettó's store column header starts with
// "Verslun".
func classifyStoreList(g [][]grid.Cell) (model.Format, bool) {
	header := firstNonEmptyRow(g)
	if header == nil {
		return model.FormatUnknown, false
	}
	for _, c := range header {
		if NormalizeHeader(c.String()) == "keðja" {
			return model.FormatKronan, true
		}
	}
	for _, c := range header {
		if strings.HasPrefix(NormalizeHeader(c.String()), "verslun") {
			return model.FormatNetto, true
		}
	}
	return model.FormatUnknown, false
}

func firstNonEmptyRow(g [][]grid.Cell) []grid.Cell {
	for _, row := range g {
		for _, c := range row {
			if !c.Empty() {
				return row
			}
		}
	}
	return nil
}
