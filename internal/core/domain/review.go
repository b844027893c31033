package domain

import "math"

// Review is a single customer review attached to a listing.
type Review struct {
	Rating  float64 `json:"rating" bson:"rating"`
	Name    string  `json:"name" bson:"name"`
	Comment string  `json:"comment,omitempty" bson:"comment,omitempty"`
	Date    string  `json:"date,omitempty" bson:"date,omitempty"`
}

// RecalculateRating returns the average rating rounded to one decimal and the
// review count for the given review set. An empty set yields (0, 0).
func RecalculateRating(reviews []Review) (avg float64, count int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	avg = math.Round(total/float64(len(reviews))*10) / 10
	return avg, len(reviews)
}
