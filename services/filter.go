package services

import (
	"sort"
	"strings"

	"bestMuscatAPI/internal/types/place"
)

// FilterCriteria is the combined set of user selections from the listing
// page. Empty fields constrain nothing; non-empty fields are AND-combined.
type FilterCriteria struct {
	SearchText    string
	Awards        []string
	Prices        []string
	Cuisines      []string
	Neighborhoods []string
}

// Filter reduces places to those matching every non-empty criterion,
// preserving catalog order. The input slice is never mutated.
func Filter(places []place.Place, criteria FilterCriteria) []place.Place {
	query := strings.ToLower(strings.TrimSpace(criteria.SearchText))

	results := make([]place.Place, 0, len(places))
	for _, p := range places {
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		if len(criteria.Awards) > 0 && !containsAll(p.Badges, criteria.Awards) {
			continue
		}
		if len(criteria.Prices) > 0 {
			if p.PriceRange == nil || !contains(criteria.Prices, p.PriceRange.Symbol) {
				continue
			}
		}
		if len(criteria.Cuisines) > 0 && !containsAny(p.Cuisines, criteria.Cuisines) {
			continue
		}
		if len(criteria.Neighborhoods) > 0 {
			if p.Location == nil || !contains(criteria.Neighborhoods, p.Location.Neighborhood) {
				continue
			}
		}
		results = append(results, p)
	}
	return results
}

// matchesSearch checks name, any cuisine, and neighborhood, case-insensitively.
func matchesSearch(p place.Place, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, c := range p.Cuisines {
		if strings.Contains(strings.ToLower(c), query) {
			return true
		}
	}
	if p.Location != nil && p.Location.Neighborhood != "" {
		if strings.Contains(strings.ToLower(p.Location.Neighborhood), query) {
			return true
		}
	}
	return false
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// containsAll reports whether every wanted value is present (awards semantics).
func containsAll(have, wanted []string) bool {
	for _, w := range wanted {
		if !contains(have, w) {
			return false
		}
	}
	return true
}

// containsAny reports whether at least one value overlaps (cuisine semantics).
func containsAny(have, wanted []string) bool {
	for _, h := range have {
		if contains(wanted, h) {
			return true
		}
	}
	return false
}

// FilterOptions is the vocabulary the listing page builds its checkboxes from.
type FilterOptions struct {
	Awards        []string `json:"awards"`
	Prices        []string `json:"prices"`
	Cuisines      []string `json:"cuisines"`
	Neighborhoods []string `json:"neighborhoods"`
}

// CollectFilterOptions gathers the distinct awards, price symbols, cuisines
// and neighborhoods present in the catalog, each sorted alphabetically.
func CollectFilterOptions(places []place.Place) FilterOptions {
	awards := make(map[string]struct{})
	prices := make(map[string]struct{})
	cuisines := make(map[string]struct{})
	neighborhoods := make(map[string]struct{})

	for _, p := range places {
		for _, b := range p.Badges {
			awards[b] = struct{}{}
		}
		if p.PriceRange != nil && p.PriceRange.Symbol != "" {
			prices[p.PriceRange.Symbol] = struct{}{}
		}
		for _, c := range p.Cuisines {
			cuisines[c] = struct{}{}
		}
		if p.Location != nil && p.Location.Neighborhood != "" {
			neighborhoods[p.Location.Neighborhood] = struct{}{}
		}
	}

	return FilterOptions{
		Awards:        sortedKeys(awards),
		Prices:        sortedKeys(prices),
		Cuisines:      sortedKeys(cuisines),
		Neighborhoods: sortedKeys(neighborhoods),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
