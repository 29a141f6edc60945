package model

import "time"

type CreateBookingRequest struct {
	UserID        string     `json:"-" validate:"required"`
	ProductID     string     `json:"productId" validate:"required,max=64"`
	StartDateTime *time.Time `json:"startDateTime" validate:"required"`
	EndDateTime   *time.Time `json:"endDateTime" validate:"omitempty,gtfield=StartDateTime"`
	OfferingPrice *float64   `json:"offeringPrice" validate:"required,gte=0"`
	TotalPersons  *int       `json:"totalPersons" validate:"required,min=1"`
	AddOns        string     `json:"addOns" validate:"max=2000"`
}

// UpdateOfferRequest is a partial update: absent fields keep their value,
// present ones are validated.
type UpdateOfferRequest struct {
	BookingID     string     `json:"-" validate:"required"`
	UserID        string     `json:"-" validate:"required"`
	StartDateTime *time.Time `json:"startDateTime" validate:"omitempty"`
	EndDateTime   *time.Time `json:"endDateTime" validate:"omitempty"`
	OfferingPrice *float64   `json:"offeringPrice" validate:"omitempty,gte=0"`
	TotalPersons  *int       `json:"totalPersons" validate:"omitempty,min=1"`
	AddOns        *string    `json:"addOns" validate:"omitempty,max=2000"`
}

type AdminUpdateBookingRequest struct {
	BookingID    string  `json:"-" validate:"required"`
	Status       *string `json:"status" validate:"omitempty,oneof=OFFERING WAITING_FOR_PAYMENT DECLINED PAYMENT_REVIEWING PAYMENT_FAILED SUCCESS"`
	AdminMessage *string `json:"adminMessage" validate:"omitempty,max=1000"`
}

type GetBookingRequest struct {
	BookingID string `validate:"required"`
	UserID    string `validate:"required"`
}

type ListUserBookingsRequest struct {
	UserID string `validate:"required"`
}

type ListAdminBookingsRequest struct {
	Status string `query:"status"`
}

type DeleteBookingRequest struct {
	BookingID string `validate:"required"`
	// UserID restricts deletion to the owner; empty for admins.
	UserID string
}

type ProductSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
}

type CustomerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type BookingResponse struct {
	ID            string           `json:"id"`
	Product       ProductSummary   `json:"product"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
	StartDateTime time.Time        `json:"startDateTime"`
	EndDateTime   *time.Time       `json:"endDateTime,omitempty"`
	OfferingPrice float64          `json:"offeringPrice"`
	AddOns        string           `json:"addOns"`
	TotalPersons  int              `json:"totalPersons"`
	Status        string           `json:"status"`
	Note          string           `json:"note"`
	AdminMessage  *string          `json:"adminMessage,omitempty"`
	Payment       *PaymentResponse `json:"payment,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
