package usecase

import (
	"context"
	"fmt"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
	"tour-service/src/internal/model/converter"
	"tour-service/src/internal/repository"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AdjudicationUseCase approves or rejects a submitted payment proof.
type AdjudicationUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	Tx                repository.Transactor
	BookingRepository repository.Bookings
	PaymentRepository repository.Payments
	OrderRepository   repository.Orders
	ProductRepository repository.Products
	UserRepository    repository.Users
	Notification      *NotificationDispatcher
}

func NewAdjudicationUseCase(
	logger log.Log,
	validate *validator.Validate,
	tx repository.Transactor,
	bookingRepository repository.Bookings,
	paymentRepository repository.Payments,
	orderRepository repository.Orders,
	productRepository repository.Products,
	userRepository repository.Users,
	notification *NotificationDispatcher,
) *AdjudicationUseCase {
	return &AdjudicationUseCase{
		Log:               logger,
		Validate:          validate,
		Tx:                tx,
		BookingRepository: bookingRepository,
		PaymentRepository: paymentRepository,
		OrderRepository:   orderRepository,
		ProductRepository: productRepository,
		UserRepository:    userRepository,
		Notification:      notification,
	}
}

func (c *AdjudicationUseCase) Adjudicate(ctx context.Context, request *model.AdjudicatePaymentRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "adjudication-usecase", "Adjudicate", err, request)
	}

	payment, err := c.PaymentRepository.FindByID(ctx, request.PaymentID)
	if err != nil {
		return failure(c.Log, "adjudication-usecase", "Adjudicate",
			notFoundOr(err, fmt.Sprintf("payment with id %s not found", request.PaymentID)), request.PaymentID)
	}
	booking, err := c.BookingRepository.FindByID(ctx, payment.BookingID)
	if err != nil {
		return failure(c.Log, "adjudication-usecase", "Adjudicate",
			notFoundOr(err, fmt.Sprintf("booking with id %s not found", payment.BookingID)), payment.ID)
	}

	switch entity.PaymentStatus(request.Decision) {
	case entity.PaymentApproved:
		return c.approve(ctx, booking, payment)
	case entity.PaymentRejected:
		return c.reject(ctx, booking, payment)
	}
	return failure(c.Log, "adjudication-usecase", "Adjudicate",
		newBadRequest(fmt.Sprintf("validation error: decision must be %s or %s", entity.PaymentApproved, entity.PaymentRejected)), payment.ID)
}

func (c *AdjudicationUseCase) approve(ctx context.Context, booking *entity.Booking, payment *entity.Payment) utils.Result {
	now := time.Now().UTC()
	order := &entity.Order{
		ID:        uuid.NewString(),
		PaymentID: payment.ID,
		UserID:    booking.UserID,
		ProductID: booking.ProductID,
		Status:    entity.OrderOnJourney,
		CreatedAt: now,
		UpdatedAt: now,
	}

	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyPaymentApproved,
		func(ctx context.Context) error {
			if err := c.moveToDecision(ctx, booking, payment, entity.PaymentApproved, entity.BookingSuccess); err != nil {
				return err
			}
			if err := c.OrderRepository.Create(ctx, order); err != nil {
				return conflictOnDuplicate(err, "order already created for this payment")
			}
			return nil
		},
		func(ctx context.Context) error {
			data := c.decisionSummary(ctx, booking, payment)
			data["orderId"] = order.ID
			return c.notifyCustomer(ctx, model.NotifyPaymentApproved, booking.UserID, data)
		},
	)
	if err != nil {
		return failure(c.Log, "adjudication-usecase", "Approve", err, payment.ID)
	}

	response := &model.AdjudicationResponse{
		PaymentID:     payment.ID,
		Decision:      string(entity.PaymentApproved),
		BookingID:     booking.ID,
		BookingStatus: string(entity.BookingSuccess),
		Order:         converter.OrderToResponse(order),
	}
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "adjudication-usecase", "Approve", notifyErr, response)
	}

	c.Log.Info("adjudication-usecase", "payment approved, order created", "Approve", order.ID)
	return utils.Result{Data: response}
}

func (c *AdjudicationUseCase) reject(ctx context.Context, booking *entity.Booking, payment *entity.Payment) utils.Result {
	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyPaymentRejected,
		func(ctx context.Context) error {
			if err := c.moveToDecision(ctx, booking, payment, entity.PaymentRejected, entity.BookingPaymentFailed); err != nil {
				return err
			}
			return c.PaymentRepository.Delete(ctx, payment.ID)
		},
		func(ctx context.Context) error {
			return c.notifyCustomer(ctx, model.NotifyPaymentRejected, booking.UserID, c.decisionSummary(ctx, booking, payment))
		},
	)
	if err != nil {
		return failure(c.Log, "adjudication-usecase", "Reject", err, payment.ID)
	}

	response := &model.AdjudicationResponse{
		PaymentID:     payment.ID,
		Decision:      string(entity.PaymentRejected),
		BookingID:     booking.ID,
		BookingStatus: string(entity.BookingPaymentFailed),
	}
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "adjudication-usecase", "Reject", notifyErr, response)
	}

	c.Log.Info("adjudication-usecase", "payment rejected", "Reject", payment.ID)
	return utils.Result{Data: response}
}

// moveToDecision claims the payment out of NEEDS_REVIEW first; a concurrent
// or repeated adjudication finds zero rows and stops with a conflict.
func (c *AdjudicationUseCase) moveToDecision(ctx context.Context, booking *entity.Booking, payment *entity.Payment, paymentTo entity.PaymentStatus, bookingTo entity.BookingStatus) error {
	ok, err := c.PaymentRepository.UpdateStatus(ctx, payment.ID, entity.PaymentNeedsReview, paymentTo)
	if err != nil {
		return err
	}
	if !ok {
		return newConflict(fmt.Sprintf("payment in status %s is not waiting for review", payment.Status))
	}

	ok, err = c.BookingRepository.UpdateStatus(ctx, booking.ID, entity.BookingPaymentReviewing, bookingTo, nil)
	if err != nil {
		return err
	}
	if !ok {
		return newConflict(fmt.Sprintf("booking in status %s is not under payment review", booking.Status))
	}
	return nil
}

func (c *AdjudicationUseCase) decisionSummary(ctx context.Context, booking *entity.Booking, payment *entity.Payment) map[string]interface{} {
	data := map[string]interface{}{
		"bookingId":     booking.ID,
		"paymentId":     payment.ID,
		"startDateTime": booking.StartDateTime,
		"endDateTime":   booking.EndDateTime,
		"totalPersons":  booking.TotalPersons,
		"total":         payment.Total,
	}
	if product, err := c.ProductRepository.FindByID(ctx, booking.ProductID); err == nil {
		data["productTitle"] = product.Title
	}
	return data
}

func (c *AdjudicationUseCase) notifyCustomer(ctx context.Context, kind model.NotificationKind, userID string, data map[string]interface{}) error {
	user, err := c.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup customer %s: %w", userID, err)
	}
	data["customerName"] = user.FullName
	return c.Notification.ToRecipient(ctx, kind, user.Email, data)
}
