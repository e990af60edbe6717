package drug

import (
	"regexp"
	"sort"
	"strings"
)

// MatchingProducts re-filters search results down to the distinct product
// names that actually contain the normalized query. The store search may
// have matched on an ingredient column, so product containment is checked
// again here. The result is sorted ascending so disambiguation lists are
// stable.
func MatchingProducts(records []Record, query string) []string {
	q := Normalize(query)
	if len([]rune(q)) < 2 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.ProductA != "" && strings.Contains(Normalize(r.ProductA), q) {
			seen[r.ProductA] = struct{}{}
		}
		if r.ProductB != "" && strings.Contains(Normalize(r.ProductB), q) {
			seen[r.ProductB] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Ingredients collects the ingredient names recorded for one resolved
// product. Unlike MatchingProducts this matches the literal product text
// case-insensitively against the unnormalized columns: the resolved name
// came out of those columns verbatim, and brand-name punctuation must keep
// distinguishing otherwise-identical variants.
func Ingredients(records []Record, product string) []string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(product))
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	collect := func(ingredient string) {
		ingredient = strings.TrimSpace(ingredient)
		if len([]rune(ingredient)) > 1 && ingredient != "nan" {
			seen[ingredient] = struct{}{}
		}
	}
	for _, r := range records {
		if r.ProductA != "" && re.MatchString(r.ProductA) {
			collect(r.IngredientA)
		}
		if r.ProductB != "" && re.MatchString(r.ProductB) {
			collect(r.IngredientB)
		}
	}
	out := make([]string, 0, len(seen))
	for ing := range seen {
		out = append(out, ing)
	}
	sort.Strings(out)
	return out
}
