package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
	"tour-service/src/pkg/databases/mysql"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"
)

// ledger is an in-memory stand-in for the MySQL schema. It enforces the same
// unique keys and guarded updates, and WithTransaction restores a snapshot
// when fn fails.
type ledger struct {
	mu         sync.Mutex
	bookings   map[string]entity.Booking
	payments   map[string]entity.Payment
	bankProofs map[string]entity.BankPayment
	wiseProofs map[string]entity.WisePayment
	orders     map[string]entity.Order
	reviews    map[string]entity.Review
	products   map[string]entity.Product
	users      map[string]entity.User

	ratingsErr error
}

func newLedger() *ledger {
	return &ledger{
		bookings:   map[string]entity.Booking{},
		payments:   map[string]entity.Payment{},
		bankProofs: map[string]entity.BankPayment{},
		wiseProofs: map[string]entity.WisePayment{},
		orders:     map[string]entity.Order{},
		reviews:    map[string]entity.Review{},
		products:   map[string]entity.Product{},
		users:      map[string]entity.User{},
	}
}

type ledgerSnapshot struct {
	bookings   map[string]entity.Booking
	payments   map[string]entity.Payment
	bankProofs map[string]entity.BankPayment
	wiseProofs map[string]entity.WisePayment
	orders     map[string]entity.Order
	reviews    map[string]entity.Review
	products   map[string]entity.Product
}

func cloneMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (l *ledger) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	snap := ledgerSnapshot{
		bookings:   cloneMap(l.bookings),
		payments:   cloneMap(l.payments),
		bankProofs: cloneMap(l.bankProofs),
		wiseProofs: cloneMap(l.wiseProofs),
		orders:     cloneMap(l.orders),
		reviews:    cloneMap(l.reviews),
		products:   cloneMap(l.products),
	}
	l.mu.Unlock()

	if err := fn(ctx); err != nil {
		l.mu.Lock()
		l.bookings = snap.bookings
		l.payments = snap.payments
		l.bankProofs = snap.bankProofs
		l.wiseProofs = snap.wiseProofs
		l.orders = snap.orders
		l.reviews = snap.reviews
		l.products = snap.products
		l.mu.Unlock()
		return err
	}
	return nil
}

func statusIn[S comparable](status S, allowed []S) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }

// bookings

type fakeBookings struct{ *ledger }

func (r fakeBookings) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; ok {
		return mysql.ErrDuplicate
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r fakeBookings) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &booking, nil
}

func (r fakeBookings) detail(booking entity.Booking) entity.BookingDetail {
	detail := entity.BookingDetail{Booking: booking}
	if product, ok := r.products[booking.ProductID]; ok {
		detail.ProductTitle = product.Title
		detail.ProductRating = product.Rating
	}
	if user, ok := r.users[booking.UserID]; ok {
		detail.CustomerName = strPtr(user.FullName)
		detail.CustomerEmail = strPtr(user.Email)
	}
	return detail
}

func (r fakeBookings) FindDetailByID(ctx context.Context, id string) (*entity.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := r.detail(booking)
	return &detail, nil
}

func (r fakeBookings) list(match func(entity.Booking) bool) []entity.BookingDetail {
	r.mu.Lock()
	defer r.mu.Unlock()
	details := []entity.BookingDetail{}
	for _, booking := range r.bookings {
		if match(booking) {
			details = append(details, r.detail(booking))
		}
	}
	sort.Slice(details, func(i, j int) bool { return details[i].CreatedAt.After(details[j].CreatedAt) })
	return details
}

func (r fakeBookings) ListByUser(ctx context.Context, userID string) ([]entity.BookingDetail, error) {
	return r.list(func(b entity.Booking) bool { return b.UserID == userID }), nil
}

func (r fakeBookings) ListForAdmin(ctx context.Context, status *entity.BookingStatus) ([]entity.BookingDetail, error) {
	return r.list(func(b entity.Booking) bool { return status == nil || b.Status == *status }), nil
}

func (r fakeBookings) UpdateOffer(ctx context.Context, booking *entity.Booking, from []entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[booking.ID]
	if !ok || !statusIn(current.Status, from) {
		return false, nil
	}
	current.StartDateTime = booking.StartDateTime
	current.EndDateTime = booking.EndDateTime
	current.OfferingPrice = booking.OfferingPrice
	current.TotalPersons = booking.TotalPersons
	current.AddOns = booking.AddOns
	current.Status = entity.BookingOffering
	current.AdminMessage = nil
	r.bookings[booking.ID] = current
	return true, nil
}

func (r fakeBookings) UpdateStatus(ctx context.Context, id string, from, to entity.BookingStatus, adminMessage *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[id]
	if !ok || current.Status != from {
		return false, nil
	}
	current.Status = to
	if adminMessage != nil {
		current.AdminMessage = adminMessage
	}
	r.bookings[id] = current
	return true, nil
}

func (r fakeBookings) UpdateAdminMessage(ctx context.Context, id string, adminMessage *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[id]
	if !ok {
		return sql.ErrNoRows
	}
	current.AdminMessage = adminMessage
	r.bookings[id] = current
	return nil
}

func (r fakeBookings) Delete(ctx context.Context, id string, allowed []entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[id]
	if !ok || !statusIn(current.Status, allowed) {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

// payments

type fakePayments struct{ *ledger }

func (r fakePayments) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.payments {
		if existing.BookingID == payment.BookingID {
			return mysql.ErrDuplicate
		}
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r fakePayments) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &payment, nil
}

func (r fakePayments) FindByBookingID(ctx context.Context, bookingID string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, payment := range r.payments {
		if payment.BookingID == bookingID {
			return &payment, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r fakePayments) FindByBookingAndMethod(ctx context.Context, bookingID string, method entity.PaymentMethod) (*entity.Payment, error) {
	payment, err := r.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !payment.HasMethod(method) {
		return nil, sql.ErrNoRows
	}
	return payment, nil
}

func (r fakePayments) detail(payment entity.Payment) entity.PaymentDetail {
	detail := entity.PaymentDetail{Payment: payment}
	if booking, ok := r.bookings[payment.BookingID]; ok {
		detail.UserID = booking.UserID
		detail.ProductID = booking.ProductID
		detail.StartDateTime = booking.StartDateTime
		detail.EndDateTime = booking.EndDateTime
		detail.TotalPersons = booking.TotalPersons
		detail.ProductTitle = r.products[booking.ProductID].Title
		if user, ok := r.users[booking.UserID]; ok {
			detail.CustomerName = strPtr(user.FullName)
			detail.CustomerEmail = strPtr(user.Email)
		}
	}
	for _, proof := range r.bankProofs {
		if proof.PaymentID == payment.ID {
			detail.BankName = strPtr(proof.BankName)
			detail.BankAccountName = strPtr(proof.AccountName)
			detail.BankAccountNumber = strPtr(proof.AccountNumber)
			detail.BankProofURL = strPtr(proof.ProofURL)
		}
	}
	for _, proof := range r.wiseProofs {
		if proof.PaymentID == payment.ID {
			detail.WiseEmail = strPtr(proof.WiseEmail)
			detail.WiseAccountName = strPtr(proof.AccountName)
			detail.WiseProofURL = strPtr(proof.ProofURL)
		}
	}
	return detail
}

func (r fakePayments) FindDetailByID(ctx context.Context, id string) (*entity.PaymentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := r.detail(payment)
	return &detail, nil
}

func (r fakePayments) ListDetails(ctx context.Context, status *entity.PaymentStatus) ([]entity.PaymentDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	details := []entity.PaymentDetail{}
	for _, payment := range r.payments {
		if status == nil || payment.Status == *status {
			details = append(details, r.detail(payment))
		}
	}
	return details, nil
}

func (r fakePayments) UpdateMethod(ctx context.Context, id string, method entity.PaymentMethod) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok || payment.Status != entity.PaymentPending {
		return false, nil
	}
	payment.Method = &method
	r.payments[id] = payment
	return true, nil
}

func (r fakePayments) UpdateStatus(ctx context.Context, id string, from, to entity.PaymentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok || payment.Status != from {
		return false, nil
	}
	payment.Status = to
	r.payments[id] = payment
	return true, nil
}

func (r fakePayments) MarkNeedsReview(ctx context.Context, id string, method entity.PaymentMethod) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok || payment.Status != entity.PaymentPending || !payment.HasMethod(method) {
		return false, nil
	}
	payment.Status = entity.PaymentNeedsReview
	r.payments[id] = payment
	return true, nil
}

func (r fakePayments) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, proof := range r.bankProofs {
		if proof.PaymentID == id {
			delete(r.bankProofs, key)
		}
	}
	for key, proof := range r.wiseProofs {
		if proof.PaymentID == id {
			delete(r.wiseProofs, key)
		}
	}
	delete(r.payments, id)
	return nil
}

func (r fakePayments) CreateBankProof(ctx context.Context, proof *entity.BankPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bankProofs {
		if existing.PaymentID == proof.PaymentID {
			return mysql.ErrDuplicate
		}
	}
	r.bankProofs[proof.ID] = *proof
	return nil
}

func (r fakePayments) CreateWiseProof(ctx context.Context, proof *entity.WisePayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.wiseProofs {
		if existing.PaymentID == proof.PaymentID {
			return mysql.ErrDuplicate
		}
	}
	r.wiseProofs[proof.ID] = *proof
	return nil
}

func (r fakePayments) HasProof(ctx context.Context, paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, proof := range r.bankProofs {
		if proof.PaymentID == paymentID {
			return true, nil
		}
	}
	for _, proof := range r.wiseProofs {
		if proof.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

// orders

type fakeOrders struct{ *ledger }

func (r fakeOrders) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.PaymentID == order.PaymentID {
			return mysql.ErrDuplicate
		}
	}
	r.orders[order.ID] = *order
	return nil
}

func (r fakeOrders) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &order, nil
}

func (r fakeOrders) detail(order entity.Order) entity.OrderDetail {
	detail := entity.OrderDetail{Order: order}
	detail.ProductTitle = r.products[order.ProductID].Title
	if payment, ok := r.payments[order.PaymentID]; ok {
		detail.Total = payment.Total
		detail.BookingID = payment.BookingID
		if booking, ok := r.bookings[payment.BookingID]; ok {
			detail.StartDateTime = booking.StartDateTime
			detail.EndDateTime = booking.EndDateTime
			detail.TotalPersons = booking.TotalPersons
		}
	}
	if user, ok := r.users[order.UserID]; ok {
		detail.CustomerName = strPtr(user.FullName)
		detail.CustomerEmail = strPtr(user.Email)
	}
	for _, review := range r.reviews {
		if review.OrderID == order.ID {
			rating := review.Rating
			detail.ReviewRating = &rating
		}
	}
	return detail
}

func (r fakeOrders) FindDetailByID(ctx context.Context, id string) (*entity.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := r.detail(order)
	return &detail, nil
}

func (r fakeOrders) list(match func(entity.Order) bool) []entity.OrderDetail {
	r.mu.Lock()
	defer r.mu.Unlock()
	details := []entity.OrderDetail{}
	for _, order := range r.orders {
		if match(order) {
			details = append(details, r.detail(order))
		}
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details
}

func (r fakeOrders) ListByUser(ctx context.Context, userID string) ([]entity.OrderDetail, error) {
	return r.list(func(o entity.Order) bool { return o.UserID == userID }), nil
}

func (r fakeOrders) ListAll(ctx context.Context) ([]entity.OrderDetail, error) {
	return r.list(func(entity.Order) bool { return true }), nil
}

func (r fakeOrders) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	r.orders[id] = order
	return true, nil
}

// reviews, products, users

type fakeReviews struct{ *ledger }

func (r fakeReviews) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.OrderID == review.OrderID {
			return mysql.ErrDuplicate
		}
	}
	r.reviews[review.ID] = *review
	return nil
}

func (r fakeReviews) RatingsByProduct(ctx context.Context, productID string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ratingsErr != nil {
		return nil, r.ratingsErr
	}
	ratings := []int{}
	for _, review := range r.reviews {
		if review.ProductID == productID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

type fakeProducts struct{ *ledger }

func (r fakeProducts) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &product, nil
}

func (r fakeProducts) UpdateRating(ctx context.Context, id string, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return sql.ErrNoRows
	}
	product.Rating = rating
	r.products[id] = product
	return nil
}

type fakeUsers struct{ *ledger }

func (r fakeUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

// collaborators

type sentNotification struct {
	Kind      model.NotificationKind
	Recipient string
	Data      map[string]interface{}
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentNotification
	failFor map[string]bool
}

func (n *fakeNotifier) Send(ctx context.Context, kind model.NotificationKind, recipient string, data map[string]interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[recipient] {
		return fmt.Errorf("smtp relay rejected %s", recipient)
	}
	n.sent = append(n.sent, sentNotification{Kind: kind, Recipient: recipient, Data: data})
	return nil
}

func (n *fakeNotifier) fail(recipient string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor == nil {
		n.failFor = map[string]bool{}
	}
	n.failFor[recipient] = true
}

func (n *fakeNotifier) byKind(kind model.NotificationKind) []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentNotification
	for _, s := range n.sent {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

type fakeUploader struct {
	mu    sync.Mutex
	keys  []string
	err   error
	calls int
	// during runs before the upload returns, outside the lock
	during func()
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, contentType, suggestedPath string) (string, error) {
	if u.during != nil {
		u.during()
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	u.keys = append(u.keys, suggestedPath)
	return "https://cdn.example.test/" + suggestedPath, nil
}

type fakeRatingCache struct {
	mu      sync.Mutex
	ratings map[string]float64
}

var errCacheMiss = errors.New("cache miss")

func (c *fakeRatingCache) SetRating(ctx context.Context, productID string, rating float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ratings == nil {
		c.ratings = map[string]float64{}
	}
	c.ratings[productID] = rating
	return nil
}

func (c *fakeRatingCache) GetRating(ctx context.Context, productID string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rating, ok := c.ratings[productID]
	if !ok {
		return 0, errCacheMiss
	}
	return rating, nil
}

// harness wires every usecase against one ledger.

const (
	testTax      = 10.0
	customerID   = "user-1"
	customerMail = "ayu@example.test"
	otherUserID  = "user-2"
	productID    = "product-1"
	adminOne     = "ops@example.test"
	adminTwo     = "sales@example.test"
)

type harness struct {
	ledger       *ledger
	notifier     *fakeNotifier
	uploader     *fakeUploader
	cache        *fakeRatingCache
	dispatcher   *NotificationDispatcher
	booking      *BookingUseCase
	payment      *PaymentUseCase
	adjudication *AdjudicationUseCase
	order        *OrderUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	l := newLedger()
	l.products[productID] = entity.Product{ID: productID, Title: "Komodo Island Hopping"}
	l.users[customerID] = entity.User{ID: customerID, FullName: "Ayu Lestari", Email: customerMail}
	l.users[otherUserID] = entity.User{ID: otherUserID, FullName: "Budi Santoso", Email: "budi@example.test"}

	h := &harness{
		ledger:   l,
		notifier: &fakeNotifier{},
		uploader: &fakeUploader{},
		cache:    &fakeRatingCache{},
	}
	logger := log.NewNop()
	validate := utils.NewValidator()
	h.dispatcher = NewNotificationDispatcher(h.notifier, logger, []string{adminOne, adminTwo}, nil)

	bookings, payments := fakeBookings{l}, fakePayments{l}
	orders, reviews := fakeOrders{l}, fakeReviews{l}
	products, users := fakeProducts{l}, fakeUsers{l}

	h.payment = NewPaymentUseCase(logger, validate, l, bookings, payments, products, users, h.uploader, h.dispatcher,
		PaymentSettings{Tax: testTax, ProofMaxBytes: 1024})
	h.booking = NewBookingUseCase(logger, validate, l, bookings, payments, products, users, h.dispatcher, h.payment)
	h.adjudication = NewAdjudicationUseCase(logger, validate, l, bookings, payments, orders, products, users, h.dispatcher)
	h.order = NewOrderUseCase(logger, validate, l, orders, reviews, products, h.dispatcher, h.cache)
	return h
}
