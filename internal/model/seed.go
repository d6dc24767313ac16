package model

// SeedChains are the four retail chains whose exports the pipeline accepts.
func SeedChains() []Chain {
	return []Chain{
		{ID: "samkaup", Name: "Samkaup"},
		{ID: "hagkaup", Name: "Hagkaup"},
		{ID: "kronan", Name: "Krónan"},
		{ID: "netto", Name: "Nettó"},
	}
}

// SeedStores is the canonical store registry shipped with the app. Stores
// discovered in uploads that match none of these are created during merge.
func SeedStores() []CanonicalStore {
	return []CanonicalStore{
		{ID: "samkaup-akureyri", Name: "Akureyri", ChainID: "samkaup", SubChain: "Kjörbúð"},
		{ID: "samkaup-borgarnes", Name: "Borgarnes", ChainID: "samkaup", SubChain: "Kjörbúð"},
		{ID: "samkaup-selfoss", Name: "Selfoss", ChainID: "samkaup", SubChain: "Krambúð"},
		{ID: "samkaup-hafnarfjordur", Name: "Hafnarfjörður", ChainID: "samkaup", SubChain: "Krambúð"},
		{ID: "samkaup-isafjordur", Name: "Ísafjörður", ChainID: "samkaup", SubChain: "Kjörbúð"},

		{ID: "hagkaup-kringlan", Name: "Kringlan", ChainID: "hagkaup"},
		{ID: "hagkaup-smaralind", Name: "Smáralind", ChainID: "hagkaup"},
		{ID: "hagkaup-skeifan", Name: "Skeifan", ChainID: "hagkaup"},
		{ID: "hagkaup-gardabaer", Name: "Garðabær", ChainID: "hagkaup"},
		{ID: "hagkaup-akureyri", Name: "Akureyri", ChainID: "hagkaup"},

		{ID: "kronan-grafarvogur", Name: "Grafarvogur", ChainID: "kronan"},
		{ID: "kronan-mosfellsbaer", Name: "Mosfellsbær", ChainID: "kronan"},
		{ID: "kronan-akranes", Name: "Akranes", ChainID: "kronan"},
		{ID: "kronan-hafnarfjordur", Name: "Hafnarfjörður", ChainID: "kronan"},
		{ID: "kronan-selfoss", Name: "Selfoss", ChainID: "kronan"},

		{ID: "netto-mjodd", Name: "Mjódd", ChainID: "netto"},
		{ID: "netto-salavegur", Name: "Salavegur", ChainID: "netto"},
		{ID: "netto-grandi", Name: "Grandi", ChainID: "netto"},
		{ID: "netto-husavik", Name: "Húsavík", ChainID: "netto"},
		{ID: "netto-egilsstadir", Name: "Egilsstaðir", ChainID: "netto"},
	}
}

// SeedProducts is the canonical product catalogue.
func SeedProducts() []CanonicalProduct {
	return []CanonicalProduct{
		{ID: "lemon-lime", Name: "Lemon Lime", Category: "sparkling"},
		{ID: "orange", Name: "Orange", Category: "sparkling"},
		{ID: "berry", Name: "Berry", Category: "sparkling"},
		{ID: "cola", Name: "Cola", Category: "sparkling"},
		{ID: "ginger", Name: "Ginger", Category: "sparkling"},
	}
}
