package entity

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	ProductID     string    `db:"product_id"`
	UserID        string    `db:"user_id"`
	Rating        int       `db:"rating"`
	MessageReview string    `db:"message_review"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// AverageRating is the mean of ratings rounded to one decimal place.
// No ratings yields zero.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
