package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streetkicks/storefront/internal/domain"
)

func reviewsWithRatings(ratings ...int) []*domain.Review {
	reviews := make([]*domain.Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, &domain.Review{Rating: r})
	}
	return reviews
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)

	assert.Equal(t, 0.0, s.AverageRating)
	assert.Equal(t, 0, s.TotalReviews)
}

func TestCompute_RoundsToOneDecimal(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		average float64
		total   int
	}{
		{"single five star", []int{5}, 5.0, 1},
		{"five and three", []int{5, 3}, 4.0, 2},
		{"thirds round down", []int{5, 4, 4}, 4.3, 3},
		{"thirds round up", []int{5, 5, 4}, 4.7, 3},
		{"all ones", []int{1, 1, 1, 1}, 1.0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(reviewsWithRatings(tt.ratings...))
			assert.Equal(t, tt.average, s.AverageRating)
			assert.Equal(t, tt.total, s.TotalReviews)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	reviews := reviewsWithRatings(2, 5, 3, 4)

	first := Compute(reviews)
	second := Compute(reviews)

	assert.Equal(t, first, second)
}

func TestDistribution(t *testing.T) {
	dist := Distribution(reviewsWithRatings(5, 5, 2))

	assert.Equal(t, map[int]int{5: 2, 4: 0, 3: 0, 2: 1, 1: 0}, dist)
}

func TestDistribution_Empty(t *testing.T) {
	dist := Distribution(nil)

	assert.Equal(t, map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}, dist)
}

func TestDistribution_IgnoresMalformedRatings(t *testing.T) {
	dist := Distribution(reviewsWithRatings(5, 0, -3, 7, 3))

	assert.Equal(t, map[int]int{5: 1, 4: 0, 3: 1, 2: 0, 1: 0}, dist)
}
