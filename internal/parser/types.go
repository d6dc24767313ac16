package parser

import (
	"errors"

	"salesdash/internal/grid"
	"salesdash/internal/model"
)

// ErrUnknownFormat is returned when no detection rule matches a workbook.
var ErrUnknownFormat = errors.New("unrecognized workbook format")

// ErrNoRows is returned when a full scan extracts zero rows. An empty export
// means a layout mismatch, never "no sales that day".
var ErrNoRows = errors.New("no data rows extracted")

// ErrNoDate is returned when no date is found within the bounded header window.
var ErrNoDate = errors.New("no date found in header window")

// Extractor walks a workbook using one source format's layout rules and
// emits raw sale rows plus structured anomalies.
type Extractor interface {
	Extract(wb *grid.Workbook) (*ExtractResult, error)
}

// ExtractResult is the output of one extractor run. Rows carry raw store
// names and SKUs; entity resolution happens in a later stage.
type ExtractResult struct {
	Rows       []*model.RawSaleRow
	Warnings   []model.ParseWarning
	Skipped    []model.SkippedRow
	ExcelTotal *int
	Date       string
	AllDates   []string
}

// ForFormat returns the extractor for a detected format.
func ForFormat(f model.Format) (Extractor, error) {
	switch f {
	case model.FormatSamkaup:
		return &SamkaupExtractor{}, nil
	case model.FormatHagkaup:
		return &HagkaupExtractor{}, nil
	case model.FormatKronan:
		return &KronanExtractor{}, nil
	case model.FormatNetto:
		return &NettoExtractor{}, nil
	default:
		return nil, errors.New("no extractor for format " + string(f))
	}
}
