package entity

import "time"

type OrderStatus string

const (
	OrderOnJourney OrderStatus = "ON_JOURNEY"
	OrderCanceled  OrderStatus = "CANCELED"
	OrderFinished  OrderStatus = "FINISHED"
)

func (s OrderStatus) Valid() bool {
	return s == OrderOnJourney || s == OrderCanceled || s == OrderFinished
}

type Order struct {
	ID        string      `db:"id"`
	PaymentID string      `db:"payment_id"`
	UserID    string      `db:"user_id"`
	ProductID string      `db:"product_id"`
	Status    OrderStatus `db:"status"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

type OrderDetail struct {
	Order
	BookingID     string     `db:"booking_id"`
	ProductTitle  string     `db:"product_title"`
	StartDateTime time.Time  `db:"start_date_time"`
	EndDateTime   *time.Time `db:"end_date_time"`
	TotalPersons  int        `db:"total_persons"`
	Total         float64    `db:"total"`
	CustomerName  *string    `db:"customer_name"`
	CustomerEmail *string    `db:"customer_email"`
	ReviewRating  *int       `db:"review_rating"`
}
