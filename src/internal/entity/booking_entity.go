package entity

import "time"

type BookingStatus string

const (
	BookingOffering          BookingStatus = "OFFERING"
	BookingWaitingForPayment BookingStatus = "WAITING_FOR_PAYMENT"
	BookingDeclined          BookingStatus = "DECLINED"
	BookingPaymentReviewing  BookingStatus = "PAYMENT_REVIEWING"
	BookingPaymentFailed     BookingStatus = "PAYMENT_FAILED"
	BookingSuccess           BookingStatus = "SUCCESS"
)

var bookingStatusFilters = map[string]BookingStatus{
	"offering":            BookingOffering,
	"waiting-for-payment": BookingWaitingForPayment,
	"declined":            BookingDeclined,
	"payment-reviewing":   BookingPaymentReviewing,
	"payment-failed":      BookingPaymentFailed,
	"success":             BookingSuccess,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingOffering, BookingWaitingForPayment, BookingDeclined,
		BookingPaymentReviewing, BookingPaymentFailed, BookingSuccess:
		return true
	}
	return false
}

// ParseBookingStatusFilter maps an admin filter token such as
// "waiting-for-payment" to its status.
func ParseBookingStatusFilter(token string) (BookingStatus, bool) {
	status, ok := bookingStatusFilters[token]
	return status, ok
}

// Deletable reports whether a booking in this status may still be removed.
func (s BookingStatus) Deletable() bool {
	return s == BookingOffering || s == BookingDeclined || s == BookingPaymentFailed
}

// Reofferable reports whether the customer may send a new offer.
func (s BookingStatus) Reofferable() bool {
	return s == BookingOffering || s == BookingDeclined || s == BookingPaymentFailed
}

// Note is the customer-facing explanation of a status.
func (s BookingStatus) Note() string {
	switch s {
	case BookingOffering:
		return "Your offer has been sent. Please wait while our team reviews it."
	case BookingWaitingForPayment:
		return "Your offer has been accepted. Please choose a payment method and complete the payment."
	case BookingDeclined:
		return "Your offer was declined. You can adjust it and send a new offer."
	case BookingPaymentReviewing:
		return "We received your payment proof and are verifying it."
	case BookingPaymentFailed:
		return "We could not verify your payment. Please send a new offer to try again."
	case BookingSuccess:
		return "Your booking is confirmed. Enjoy your trip!"
	}
	return ""
}

type Booking struct {
	ID            string        `db:"id"`
	ProductID     string        `db:"product_id"`
	UserID        string        `db:"user_id"`
	StartDateTime time.Time     `db:"start_date_time"`
	EndDateTime   *time.Time    `db:"end_date_time"`
	OfferingPrice float64       `db:"offering_price"`
	AddOns        string        `db:"add_ons"`
	TotalPersons  int           `db:"total_persons"`
	Status        BookingStatus `db:"status"`
	AdminMessage  *string       `db:"admin_message"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

// BookingDetail is a booking joined with its product and customer.
type BookingDetail struct {
	Booking
	ProductTitle  string  `db:"product_title"`
	ProductRating float64 `db:"product_rating"`
	CustomerName  *string `db:"customer_name"`
	CustomerEmail *string `db:"customer_email"`
}
