package resolver

import "strings"

// Product is a resolved canonical product reference.
type Product struct {
	ID   string
	Name string
}

// skuTable maps source-system SKUs to canonical products. Several SKU
// variants map onto one product; the table is static and unknown SKUs are
// reported, never auto-created or fuzzy-matched.
var skuTable = map[string]Product{
	"HHLL001": {ID: "lemon-lime", Name: "Lemon Lime"},
	"HHLL002": {ID: "lemon-lime", Name: "Lemon Lime"},
	"HHOR001": {ID: "orange", Name: "Orange"},
	"HHOR002": {ID: "orange", Name: "Orange"},
	"HHBE001": {ID: "berry", Name: "Berry"},
	"HHCO001": {ID: "cola", Name: "Cola"},
	"HHCO002": {ID: "cola", Name: "Cola"},
	"HHGI001": {ID: "ginger", Name: "Ginger"},
}

// nameTable maps lowercased free-text product names (used by the Hagkaup
// export, which carries no SKUs) to canonical products.
var nameTable = map[string]Product{
	"lemon lime":  {ID: "lemon-lime", Name: "Lemon Lime"},
	"lemon-lime":  {ID: "lemon-lime", Name: "Lemon Lime"},
	"sítróna lime": {ID: "lemon-lime", Name: "Lemon Lime"},
	"orange":      {ID: "orange", Name: "Orange"},
	"appelsína":   {ID: "orange", Name: "Orange"},
	"berry":       {ID: "berry", Name: "Berry"},
	"berjablanda": {ID: "berry", Name: "Berry"},
	"cola":        {ID: "cola", Name: "Cola"},
	"kóla":        {ID: "cola", Name: "Cola"},
	"ginger":      {ID: "ginger", Name: "Ginger"},
	"engifer":     {ID: "ginger", Name: "Ginger"},
}

// LookupSKU resolves a SKU against the static table.
func LookupSKU(sku string) (Product, bool) {
	p, ok := skuTable[strings.ToUpper(strings.TrimSpace(sku))]
	return p, ok
}

// LookupProductName resolves a free-text product name against the static
// name table. Lookup is exact after lowercasing; ambiguity surfaces as
// unknown rather than being guessed.
func LookupProductName(name string) (Product, bool) {
	p, ok := nameTable[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}
