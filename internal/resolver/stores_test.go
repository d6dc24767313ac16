package resolver

import (
	"strings"
	"testing"

	"salesdash/internal/model"
)

func testResolver() *StoreResolver {
	return NewStoreResolver(model.SeedChains(), model.SeedStores())
}

func TestResolve_ExactAndNumericPrefix(t *testing.T) {
	t.Parallel()
	r := testResolver()

	id, isNew := r.Resolve("samkaup", "Akureyri")
	if isNew || id != "samkaup-akureyri" {
		t.Fatalf("exact: %q, %v", id, isNew)
	}

	id, isNew = r.Resolve("samkaup", "04 - Hafnarfjörður")
	if isNew || id != "samkaup-hafnarfjordur" {
		t.Fatalf("numeric prefix: %q, %v", id, isNew)
	}
}

func TestResolve_ChainPrefixStripped(t *testing.T) {
	t.Parallel()
	r := testResolver()

	id, isNew := r.Resolve("kronan", "Krónan Akranes")
	if isNew || id != "kronan-akranes" {
		t.Fatalf("chain prefix: %q, %v", id, isNew)
	}
}

func TestResolve_Declension(t *testing.T) {
	t.Parallel()
	r := testResolver()

	// Inflected and nominative forms resolve to the same canonical store.
	inflected, isNew := r.Resolve("samkaup", "Hafnarfirði")
	if isNew {
		t.Fatalf("inflected form not matched")
	}
	nominative, _ := r.Resolve("samkaup", "Hafnarfjörður")
	if inflected != nominative {
		t.Fatalf("declension mismatch: %q vs %q", inflected, nominative)
	}
}

func TestResolve_PrefixAndContainment(t *testing.T) {
	t.Parallel()
	r := testResolver()

	// Truncated name hits the short-prefix layer.
	id, isNew := r.Resolve("kronan", "Mosfells")
	if isNew || id != "kronan-mosfellsbaer" {
		t.Fatalf("prefix: %q, %v", id, isNew)
	}

	// Longer free text hits containment.
	id, isNew = r.Resolve("netto", "Verslunin Mjódd")
	if isNew || id != "netto-mjodd" {
		t.Fatalf("containment: %q, %v", id, isNew)
	}
}

func TestResolve_CrossChainIsolation(t *testing.T) {
	t.Parallel()
	r := testResolver()

	// Both chains have an "Akureyri"; the row's chain decides.
	samkaup, _ := r.Resolve("samkaup", "Akureyri")
	hagkaup, _ := r.Resolve("hagkaup", "Akureyri")
	if samkaup == hagkaup {
		t.Fatalf("cross-chain collision: %q", samkaup)
	}
	if samkaup != "samkaup-akureyri" || hagkaup != "hagkaup-akureyri" {
		t.Fatalf("wrong pools: %q, %q", samkaup, hagkaup)
	}
}

func TestResolve_NewStoreTempIDStable(t *testing.T) {
	t.Parallel()
	r := testResolver()

	id1, isNew1 := r.Resolve("samkaup", "Þorlákshöfn")
	id2, isNew2 := r.Resolve("samkaup", "Þorlákshöfn")
	if !isNew1 || !isNew2 {
		t.Fatalf("expected new store")
	}
	if id1 != id2 {
		t.Fatalf("temp ID not stable: %q vs %q", id1, id2)
	}
	if !strings.HasPrefix(id1, TempIDPrefix) {
		t.Fatalf("missing temp prefix: %q", id1)
	}
	if !strings.Contains(id1, "thorlakshofn") {
		t.Fatalf("slug not derived from name: %q", id1)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Hafnarfjörður":  "hafnarfjordur",
		"04 - Garðabær":  "04-gardabaer",
		"Þorlákshöfn":    "thorlakshofn",
		"  Egilsstaðir ": "egilsstadir",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
