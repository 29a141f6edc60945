package repository

import (
	"time"

	"gorm.io/gorm"
)

// Table models used only for schema migration. The unique indexes on
// payment.booking_id, *_payments.payment_id, orders.payment_id and
// reviews.order_id are what make concurrent duplicate creation fail.

type UserTable struct {
	ID       string `gorm:"primaryKey;type:char(36)"`
	FullName string `gorm:"type:varchar(150);not null"`
	Email    string `gorm:"type:varchar(150);not null;uniqueIndex"`
}

func (UserTable) TableName() string { return "users" }

type ProductTable struct {
	ID     string  `gorm:"primaryKey;type:char(36)"`
	Title  string  `gorm:"type:varchar(200);not null"`
	Rating float64 `gorm:"type:decimal(3,1);not null;default:0"`
}

func (ProductTable) TableName() string { return "products" }

type BookingTable struct {
	ID            string       `gorm:"primaryKey;type:char(36)"`
	ProductID     string       `gorm:"type:char(36);not null;index"`
	Product       ProductTable `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	UserID        string       `gorm:"type:char(36);not null;index"`
	User          UserTable    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	StartDateTime time.Time    `gorm:"not null"`
	EndDateTime   *time.Time
	OfferingPrice float64 `gorm:"type:decimal(12,2);not null;check:chk_bookings_offering_price,offering_price >= 0"`
	AddOns        string  `gorm:"type:text"`
	TotalPersons  int     `gorm:"not null;check:chk_bookings_total_persons,total_persons >= 1"`
	Status        string  `gorm:"type:varchar(32);not null;index"`
	AdminMessage  *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BookingTable) TableName() string { return "bookings" }

type PaymentTable struct {
	ID        string       `gorm:"primaryKey;type:char(36)"`
	BookingID string       `gorm:"type:char(36);not null;uniqueIndex:uq_payments_booking_id"`
	Booking   BookingTable `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Tax       float64      `gorm:"type:decimal(5,2);not null"`
	SubTotal  float64      `gorm:"type:decimal(12,2);not null"`
	Total     float64      `gorm:"type:decimal(14,4);not null"`
	Method    *string      `gorm:"type:varchar(16)"`
	Status    string       `gorm:"type:varchar(32);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentTable) TableName() string { return "payments" }

type BankPaymentTable struct {
	ID            string       `gorm:"primaryKey;type:char(36)"`
	PaymentID     string       `gorm:"type:char(36);not null;uniqueIndex:uq_bank_payments_payment_id"`
	Payment       PaymentTable `gorm:"foreignKey:PaymentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	BankName      string       `gorm:"type:varchar(100);not null"`
	AccountName   string       `gorm:"type:varchar(100);not null"`
	AccountNumber string       `gorm:"type:varchar(50);not null"`
	ProofURL      string       `gorm:"column:proof_url;type:varchar(500);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BankPaymentTable) TableName() string { return "bank_payments" }

type WisePaymentTable struct {
	ID          string       `gorm:"primaryKey;type:char(36)"`
	PaymentID   string       `gorm:"type:char(36);not null;uniqueIndex:uq_wise_payments_payment_id"`
	Payment     PaymentTable `gorm:"foreignKey:PaymentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	WiseEmail   string       `gorm:"type:varchar(150);not null"`
	AccountName string       `gorm:"type:varchar(100);not null"`
	ProofURL    string       `gorm:"column:proof_url;type:varchar(500);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (WisePaymentTable) TableName() string { return "wise_payments" }

type OrderTable struct {
	ID        string       `gorm:"primaryKey;type:char(36)"`
	PaymentID string       `gorm:"type:char(36);not null;uniqueIndex:uq_orders_payment_id"`
	Payment   PaymentTable `gorm:"foreignKey:PaymentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	UserID    string       `gorm:"type:char(36);not null;index"`
	ProductID string       `gorm:"type:char(36);not null;index"`
	Status    string       `gorm:"type:varchar(32);not null;index"`
	CreatedAt time.Time    `gorm:"index"`
	UpdatedAt time.Time
}

func (OrderTable) TableName() string { return "orders" }

type ReviewTable struct {
	ID            string     `gorm:"primaryKey;type:char(36)"`
	OrderID       string     `gorm:"type:char(36);not null;uniqueIndex:uq_reviews_order_id"`
	Order         OrderTable `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ProductID     string     `gorm:"type:char(36);not null;index"`
	UserID        string     `gorm:"type:char(36);not null"`
	Rating        int        `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	MessageReview string     `gorm:"type:text;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ReviewTable) TableName() string { return "reviews" }

// Migrate creates or alters the lifecycle tables, parents first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserTable{},
		&ProductTable{},
		&BookingTable{},
		&PaymentTable{},
		&BankPaymentTable{},
		&WisePaymentTable{},
		&OrderTable{},
		&ReviewTable{},
	)
}
