package repository

import (
	"context"

	"tour-service/src/internal/entity"
)

// Transactor scopes a unit of work: returning an error from fn rolls back
// every write made through the repositories with the ctx it receives.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Bookings interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	FindDetailByID(ctx context.Context, id string) (*entity.BookingDetail, error)
	ListByUser(ctx context.Context, userID string) ([]entity.BookingDetail, error)
	ListForAdmin(ctx context.Context, status *entity.BookingStatus) ([]entity.BookingDetail, error)
	// UpdateOffer rewrites the offer fields, resets status to OFFERING and
	// clears the admin message, provided the current status is in from.
	UpdateOffer(ctx context.Context, booking *entity.Booking, from []entity.BookingStatus) (bool, error)
	// UpdateStatus moves from -> to; a nil adminMessage keeps the stored one.
	UpdateStatus(ctx context.Context, id string, from, to entity.BookingStatus, adminMessage *string) (bool, error)
	UpdateAdminMessage(ctx context.Context, id string, adminMessage *string) error
	Delete(ctx context.Context, id string, allowed []entity.BookingStatus) (bool, error)
}

type Payments interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id string) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID string) (*entity.Payment, error)
	FindByBookingAndMethod(ctx context.Context, bookingID string, method entity.PaymentMethod) (*entity.Payment, error)
	FindDetailByID(ctx context.Context, id string) (*entity.PaymentDetail, error)
	ListDetails(ctx context.Context, status *entity.PaymentStatus) ([]entity.PaymentDetail, error)
	// UpdateMethod only succeeds while the payment is still PENDING.
	UpdateMethod(ctx context.Context, id string, method entity.PaymentMethod) (bool, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.PaymentStatus) (bool, error)
	// MarkNeedsReview moves a PENDING payment to NEEDS_REVIEW only while its
	// method is still the one the proof was submitted for.
	MarkNeedsReview(ctx context.Context, id string, method entity.PaymentMethod) (bool, error)
	Delete(ctx context.Context, id string) error
	CreateBankProof(ctx context.Context, proof *entity.BankPayment) error
	CreateWiseProof(ctx context.Context, proof *entity.WisePayment) error
	HasProof(ctx context.Context, paymentID string) (bool, error)
}

type Orders interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	FindDetailByID(ctx context.Context, id string) (*entity.OrderDetail, error)
	ListByUser(ctx context.Context, userID string) ([]entity.OrderDetail, error)
	ListAll(ctx context.Context) ([]entity.OrderDetail, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error)
}

type Reviews interface {
	Create(ctx context.Context, review *entity.Review) error
	RatingsByProduct(ctx context.Context, productID string) ([]int, error)
}

type Products interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	UpdateRating(ctx context.Context, id string, rating float64) error
}

type Users interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
