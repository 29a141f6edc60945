package model

import "time"

type ListUserOrdersRequest struct {
	UserID string `validate:"required"`
}

type CancelOrderRequest struct {
	OrderID string `validate:"required"`
}

type SubmitReviewRequest struct {
	OrderID       string `json:"-" validate:"required"`
	UserID        string `json:"-" validate:"required"`
	Rating        *int   `json:"rating" validate:"required,min=1,max=5"`
	MessageReview string `json:"messageReview" validate:"required,max=2000"`
}

type GetProductRatingRequest struct {
	ProductID string `validate:"required"`
}

type OrderResponse struct {
	ID            string           `json:"id"`
	PaymentID     string           `json:"paymentId"`
	BookingID     string           `json:"bookingId,omitempty"`
	Product       ProductSummary   `json:"product"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
	StartDateTime *time.Time       `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time       `json:"endDateTime,omitempty"`
	TotalPersons  int              `json:"totalPersons,omitempty"`
	Total         float64          `json:"total,omitempty"`
	Status        string           `json:"status"`
	Reviewed      bool             `json:"reviewed"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type ReviewResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	ProductID     string    `json:"productId"`
	Rating        int       `json:"rating"`
	MessageReview string    `json:"messageReview"`
	OrderStatus   string    `json:"orderStatus"`
	ProductRating *float64  `json:"productRating,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ProductRatingResponse struct {
	ProductID string  `json:"productId"`
	Rating    float64 `json:"rating"`
	Cached    bool    `json:"cached"`
}
