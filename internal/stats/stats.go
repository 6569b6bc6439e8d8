// Package stats derives rating statistics from a review collection.
// All functions are pure: same input, same output, no I/O. The
// postgres repository exposes an equivalent grouped-aggregate query
// for large collections; both must agree.
package stats

import (
	"math"

	"github.com/streetkicks/storefront/internal/domain"
)

// Compute returns the average rating (rounded to one decimal) and the
// total review count. An empty collection yields zeroes.
func Compute(reviews []*domain.Review) domain.RatingStats {
	s := domain.RatingStats{}
	if len(reviews) == 0 {
		return s
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	s.TotalReviews = len(reviews)
	s.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return s
}

// Distribution returns a histogram mapping each star value 1..5 to the
// number of reviews with that rating. Ratings outside 1..5 are ignored
// rather than crashing on malformed rows.
func Distribution(reviews []*domain.Review) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		dist[r.Rating]++
	}
	return dist
}
