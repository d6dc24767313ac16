package model

// Format identifies which source layout a workbook matched.
type Format string

const (
	FormatSamkaup Format = "samkaup"
	FormatHagkaup Format = "hagkaup"
	FormatKronan  Format = "kronan"
	FormatNetto   Format = "netto"
	FormatUnknown Format = "unknown"
)

// WarningKind classifies a row-level anomaly.
type WarningKind string

const (
	WarnUnknownSKU   WarningKind = "unknown_sku"
	WarnUnknownStore WarningKind = "unknown_store"
	WarnZeroQuantity WarningKind = "zero_quantity"
)

// ParseWarning is an advisory anomaly collected during a parse. Warnings are
// deduplicated by kind+value so one bad SKU repeated over many rows yields a
// single entry; RowNo references a sample row.
type ParseWarning struct {
	Kind    WarningKind `json:"kind"`
	Value   string      `json:"value"`
	Message string      `json:"message"`
	RowNo   int         `json:"rowNo,omitempty"`
}

// SkipReason classifies a row deliberately excluded from the output set.
type SkipReason string

const (
	SkipZeroQty        SkipReason = "zero_qty"
	SkipUnknownProduct SkipReason = "unknown_product"
	SkipSKU            SkipReason = "skip_sku"
	SkipOther          SkipReason = "other"
)

// SkippedRow records an excluded row. Quantity is retained so reconciliation
// can test whether exclusions explain a source-total gap.
type SkippedRow struct {
	Reason   SkipReason `json:"reason"`
	SKU      string     `json:"sku,omitempty"`
	Quantity int        `json:"quantity,omitempty"`
	RowNo    int        `json:"rowNo,omitempty"`
}

// RawSaleRow is one extracted sale line. ProductID and StoreID are empty
// until the resolver has run; rows reaching the merge step always carry both.
type RawSaleRow struct {
	Date         string `json:"date"`
	ChainID      string `json:"chainId"`
	ChainName    string `json:"chainName"`
	RawStoreName string `json:"rawStoreName"`
	SubChain     string `json:"subChain,omitempty"`
	SKU          string `json:"sku,omitempty"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Quantity     int    `json:"quantity"`
	StoreID      string `json:"storeId"`
	IsNewStore   bool   `json:"isNewStore"`
	IsDuplicate  bool   `json:"isDuplicate"`
	RowNo        int    `json:"rowNo"`
	SourceSheet  string `json:"sourceSheet"`
}

// Key returns the fact key the row aggregates under.
func (r *RawSaleRow) Key() FactKey {
	return FactKey{Date: r.Date, StoreID: r.StoreID, ProductID: r.ProductID}
}

// ReconStatus classifies the parsed total against the source's own total.
type ReconStatus string

const (
	ReconMatched     ReconStatus = "matched"
	ReconExplained   ReconStatus = "explained"
	ReconUnexplained ReconStatus = "unexplained"
	ReconNoTotal     ReconStatus = "no_total"
)

// Reconciliation is the totals accounting for one parse.
type Reconciliation struct {
	TotalBoxes  int         `json:"totalBoxes"`
	SourceTotal *int        `json:"sourceTotal"`
	Diff        int         `json:"diff"`
	SkipSKUQty  int         `json:"skipSkuQty"`
	Status      ReconStatus `json:"status"`
}

// ParseResult is the terminal artifact of one parse. It has no side effects;
// nothing is persisted until the operator confirms the preview.
type ParseResult struct {
	Rows           []*RawSaleRow  `json:"rows"`
	Date           string         `json:"date"`
	AllDates       []string       `json:"allDates"`
	DetectedFormat Format         `json:"detectedFormat"`
	StoreCount     int            `json:"storeCount"`
	TotalBoxes     int            `json:"totalBoxes"`
	ExcelTotal     *int           `json:"excelTotal"`
	Recon          Reconciliation `json:"reconciliation"`
	Warnings       []ParseWarning `json:"warnings"`
	SkippedRows    []SkippedRow   `json:"skippedRows"`
}
