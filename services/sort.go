package services

import (
	"sort"

	"bestMuscatAPI/internal/types/place"
)

type SortStrategy string

const (
	SortFeatured SortStrategy = "featured"
	SortRating   SortStrategy = "rating"
)

// Sort orders places by the chosen strategy, returning a new slice.
// "featured" keeps catalog order; "rating" sorts descending by overall
// rating, stable so ties keep their relative order. Places without a
// rating sort as 0. Unknown strategies behave like "featured".
func Sort(places []place.Place, strategy SortStrategy) []place.Place {
	sorted := make([]place.Place, len(places))
	copy(sorted, places)

	if strategy == SortRating {
		sort.SliceStable(sorted, func(i, j int) bool {
			return ratingOrZero(sorted[i]) > ratingOrZero(sorted[j])
		})
	}
	return sorted
}

func ratingOrZero(p place.Place) float64 {
	if p.RatingOverall == nil {
		return 0
	}
	return *p.RatingOverall
}
