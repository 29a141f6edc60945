package entity

import "time"

type PaymentMethod string

const (
	PaymentMethodBank PaymentMethod = "BANK"
	PaymentMethodWise PaymentMethod = "WISE"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodBank || m == PaymentMethodWise
}

// FolderPrefix namespaces uploaded proofs per method.
func (m PaymentMethod) FolderPrefix() string {
	switch m {
	case PaymentMethodBank:
		return "paymentbank"
	case PaymentMethodWise:
		return "paymentwise"
	}
	return "payment"
}

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "PENDING"
	PaymentNeedsReview PaymentStatus = "NEEDS_REVIEW"
	PaymentApproved    PaymentStatus = "APPROVED"
	PaymentRejected    PaymentStatus = "REJECTED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentNeedsReview, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

type Payment struct {
	ID        string         `db:"id"`
	BookingID string         `db:"booking_id"`
	Tax       float64        `db:"tax"`
	SubTotal  float64        `db:"sub_total"`
	Total     float64        `db:"total"`
	Method    *PaymentMethod `db:"method"`
	Status    PaymentStatus  `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// CalculateTotal applies a percentage tax: subTotal + subTotal*tax/100.
func CalculateTotal(subTotal, tax float64) float64 {
	return subTotal + subTotal*tax/100
}

func (p *Payment) HasMethod(method PaymentMethod) bool {
	return p.Method != nil && *p.Method == method
}

type BankPayment struct {
	ID            string    `db:"id"`
	PaymentID     string    `db:"payment_id"`
	BankName      string    `db:"bank_name"`
	AccountName   string    `db:"account_name"`
	AccountNumber string    `db:"account_number"`
	ProofURL      string    `db:"proof_url"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type WisePayment struct {
	ID          string    `db:"id"`
	PaymentID   string    `db:"payment_id"`
	WiseEmail   string    `db:"wise_email"`
	AccountName string    `db:"account_name"`
	ProofURL    string    `db:"proof_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// PaymentDetail is a payment joined with its booking, product, customer and
// whichever proof was submitted.
type PaymentDetail struct {
	Payment
	UserID            string     `db:"user_id"`
	ProductID         string     `db:"product_id"`
	ProductTitle      string     `db:"product_title"`
	StartDateTime     time.Time  `db:"start_date_time"`
	EndDateTime       *time.Time `db:"end_date_time"`
	TotalPersons      int        `db:"total_persons"`
	CustomerName      *string    `db:"customer_name"`
	CustomerEmail     *string    `db:"customer_email"`
	BankName          *string    `db:"bank_name"`
	BankAccountName   *string    `db:"bank_account_name"`
	BankAccountNumber *string    `db:"bank_account_number"`
	BankProofURL      *string    `db:"bank_proof_url"`
	WiseEmail         *string    `db:"wise_email"`
	WiseAccountName   *string    `db:"wise_account_name"`
	WiseProofURL      *string    `db:"wise_proof_url"`
}
