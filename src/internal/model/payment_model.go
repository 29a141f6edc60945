package model

import "time"

type SelectPaymentMethodRequest struct {
	BookingID string `json:"-" validate:"required"`
	UserID    string `json:"-" validate:"required"`
	Method    string `json:"method" validate:"required,oneof=BANK WISE"`
}

type GetPaymentRequest struct {
	BookingID string `validate:"required"`
	UserID    string `validate:"required"`
}

// ProofFile is the uploaded proof image as read from the multipart form.
type ProofFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SubmitBankProofRequest struct {
	BookingID     string     `json:"-" validate:"required"`
	UserID        string     `json:"-" validate:"required"`
	BankName      string     `json:"bankName" form:"bankName" validate:"required,max=100"`
	AccountName   string     `json:"accountName" form:"accountName" validate:"required,max=100"`
	AccountNumber string     `json:"accountNumber" form:"accountNumber" validate:"required,numeric,max=50"`
	Proof         *ProofFile `json:"-" validate:"required"`
}

type SubmitWiseProofRequest struct {
	BookingID   string     `json:"-" validate:"required"`
	UserID      string     `json:"-" validate:"required"`
	WiseEmail   string     `json:"wiseEmail" form:"wiseEmail" validate:"required,email,max=150"`
	AccountName string     `json:"accountName" form:"accountName" validate:"required,max=100"`
	Proof       *ProofFile `json:"-" validate:"required"`
}

type ListAdminPaymentsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=PENDING NEEDS_REVIEW APPROVED REJECTED"`
}

type AdjudicatePaymentRequest struct {
	PaymentID string `json:"-" validate:"required"`
	Decision  string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

type BankProofResponse struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	ProofURL      string `json:"proofUrl"`
}

type WiseProofResponse struct {
	WiseEmail   string `json:"wiseEmail"`
	AccountName string `json:"accountName"`
	ProofURL    string `json:"proofUrl"`
}

type PaymentResponse struct {
	ID        string             `json:"id"`
	BookingID string             `json:"bookingId"`
	Tax       float64            `json:"tax"`
	SubTotal  float64            `json:"subTotal"`
	Total     float64            `json:"total"`
	Method    *string            `json:"method"`
	Status    string             `json:"status"`
	Bank      *BankProofResponse `json:"bank,omitempty"`
	Wise      *WiseProofResponse `json:"wise,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type PaymentReviewResponse struct {
	PaymentResponse
	ProductTitle  string           `json:"productTitle"`
	StartDateTime time.Time        `json:"startDateTime"`
	EndDateTime   *time.Time       `json:"endDateTime,omitempty"`
	TotalPersons  int              `json:"totalPersons"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
}

type AdjudicationResponse struct {
	PaymentID     string         `json:"paymentId"`
	Decision      string         `json:"decision"`
	BookingID     string         `json:"bookingId"`
	BookingStatus string         `json:"bookingStatus"`
	Order         *OrderResponse `json:"order,omitempty"`
}
