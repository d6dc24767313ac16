package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"salesdash/internal/model"
)

// TempIDPrefix marks a store identifier that does not exist in the registry
// yet. Temp IDs never reach persistence; merge rewrites them to real IDs.
const TempIDPrefix = "new:"

// StoreResolver matches raw store names against the canonical registry.
// Candidate pools are scoped per chain so two chains sharing a bare store
// name (both have an "Akureyri") can never cross-match.
type StoreResolver struct {
	pools      map[string][]model.CanonicalStore
	chainNames map[string]string
}

// NewStoreResolver builds a resolver over the registry contents.
func NewStoreResolver(chains []model.Chain, stores []model.CanonicalStore) *StoreResolver {
	r := &StoreResolver{
		pools:      make(map[string][]model.CanonicalStore),
		chainNames: make(map[string]string),
	}
	for _, c := range chains {
		r.chainNames[c.ID] = c.Name
	}
	for _, s := range stores {
		r.pools[s.ChainID] = append(r.pools[s.ChainID], s)
	}
	return r
}

// numericPrefixRe strips leading store numbers like "04 - ".
var numericPrefixRe = regexp.MustCompile(`^\d+\s*[-.]\s*`)

// StripName normalizes a raw store name: trims, drops a leading numeric
// prefix, and drops the chain name token when the report repeats it.
func (r *StoreResolver) StripName(chainID, name string) string {
	s := strings.TrimSpace(name)
	s = numericPrefixRe.ReplaceAllString(s, "")
	for _, token := range []string{r.chainNames[chainID], chainID} {
		if token == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(token)+" ") {
			s = strings.TrimSpace(s[len(token):])
		}
	}
	return s
}

// Resolve maps a raw store name to a canonical store ID within the row's
// chain. The layers run in order, first match wins:
//  1. exact case-insensitive match
//  2. match after stripping prefixes from both sides
//  3. match after locale-declension normalization of both sides
//  4. prefix match on the first 4-5 characters of the stripped names
//  5. substring containment either direction
//
// When nothing matches the store is new: the ID is a deterministic temp ID
// stable across all rows of the same upload.
func (r *StoreResolver) Resolve(chainID, rawName string) (storeID string, isNew bool) {
	pool := r.pools[chainID]
	raw := strings.TrimSpace(rawName)
	stripped := r.StripName(chainID, raw)

	// Layer 1: exact.
	for _, s := range pool {
		if strings.EqualFold(s.Name, raw) {
			return s.ID, false
		}
	}
	// Layer 2: stripped.
	for _, s := range pool {
		if strings.EqualFold(r.StripName(chainID, s.Name), stripped) {
			return s.ID, false
		}
	}
	// Layer 3: declension table on both sides.
	base := NormalizeDeclension(stripped)
	for _, s := range pool {
		if NormalizeDeclension(r.StripName(chainID, s.Name)) == base {
			return s.ID, false
		}
	}
	// Layer 4: short prefix, for truncated or abbreviated names.
	for _, s := range pool {
		if prefixMatch(stripped, r.StripName(chainID, s.Name)) {
			return s.ID, false
		}
	}
	// Layer 5: containment either direction.
	ls := strings.ToLower(stripped)
	for _, s := range pool {
		cand := strings.ToLower(r.StripName(chainID, s.Name))
		if ls != "" && cand != "" && (strings.Contains(cand, ls) || strings.Contains(ls, cand)) {
			return s.ID, false
		}
	}

	return fmt.Sprintf("%s%s:%s", TempIDPrefix, chainID, Slugify(stripped)), true
}

// prefixMatch compares the first 4-5 runes of two stripped names.
func prefixMatch(a, b string) bool {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	n := 5
	if len(ra) < n || len(rb) < n {
		n = 4
	}
	if len(ra) < n || len(rb) < n {
		return false
	}
	return string(ra[:n]) == string(rb[:n])
}
