package model

// Chain is a retail company operating multiple stores.
type Chain struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CanonicalStore is a persisted store in the registry. SubChain carries the
// store-brand label within one parent chain, empty when the chain has none.
type CanonicalStore struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ChainID  string `json:"chainId"`
	SubChain string `json:"subChain,omitempty"`
}

// CanonicalProduct is a persisted product. Products are seeded, never created
// by the ingestion pipeline; unknown SKUs surface as warnings instead.
type CanonicalProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DailySalesFact is one persisted (date, store, product, quantity) record,
// unique per key. Merge overwrites quantity on conflict and never deletes
// facts outside the keys present in the current upload.
type DailySalesFact struct {
	Date      string `json:"date"`
	StoreID   string `json:"storeId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FactKey identifies one daily sales fact.
type FactKey struct {
	Date      string
	StoreID   string
	ProductID string
}
