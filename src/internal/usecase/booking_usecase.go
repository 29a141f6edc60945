package usecase

import (
	"context"
	"database/sql"
	"errors"
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

type BookingUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	Tx                repository.Transactor
	BookingRepository repository.Bookings
	PaymentRepository repository.Payments
	ProductRepository repository.Products
	UserRepository    repository.Users
	Notification      *NotificationDispatcher
	PaymentUseCase    *PaymentUseCase
}

func NewBookingUseCase(
	logger log.Log,
	validate *validator.Validate,
	tx repository.Transactor,
	bookingRepository repository.Bookings,
	paymentRepository repository.Payments,
	productRepository repository.Products,
	userRepository repository.Users,
	notification *NotificationDispatcher,
	paymentUseCase *PaymentUseCase,
) *BookingUseCase {
	return &BookingUseCase{
		Log:               logger,
		Validate:          validate,
		Tx:                tx,
		BookingRepository: bookingRepository,
		PaymentRepository: paymentRepository,
		ProductRepository: productRepository,
		UserRepository:    userRepository,
		Notification:      notification,
		PaymentUseCase:    paymentUseCase,
	}
}

func (c *BookingUseCase) CreateBooking(ctx context.Context, request *model.CreateBookingRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "booking-usecase", "CreateBooking", err, request)
	}

	product, err := c.ProductRepository.FindByID(ctx, request.ProductID)
	if err != nil {
		return failure(c.Log, "booking-usecase", "CreateBooking", notFoundOr(err, fmt.Sprintf("product with id %s not found", request.ProductID)), request.ProductID)
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		ID:            uuid.NewString(),
		ProductID:     product.ID,
		UserID:        request.UserID,
		StartDateTime: request.StartDateTime.UTC(),
		EndDateTime:   utcPtr(request.EndDateTime),
		OfferingPrice: *request.OfferingPrice,
		AddOns:        request.AddOns,
		TotalPersons:  *request.TotalPersons,
		Status:        entity.BookingOffering,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyBookingOfferAck,
		func(ctx context.Context) error {
			return c.BookingRepository.Create(ctx, booking)
		},
		func(ctx context.Context) error {
			return c.Notification.ToAdmins(ctx, model.NotifyBookingOfferAck, c.offerSummary(ctx, booking, product))
		},
	)
	if err != nil {
		return failure(c.Log, "booking-usecase", "CreateBooking", err, booking.ID)
	}

	response := converter.BookingToResponse(booking)
	response.Product.Title = product.Title
	response.Product.Rating = product.Rating
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "booking-usecase", "CreateBooking", notifyErr, response)
	}

	c.Log.Info("booking-usecase", "booking created", "CreateBooking", booking.ID)
	return utils.Result{Data: response}
}

func (c *BookingUseCase) offerSummary(ctx context.Context, booking *entity.Booking, product *entity.Product) map[string]interface{} {
	data := map[string]interface{}{
		"bookingId":     booking.ID,
		"productId":     product.ID,
		"productTitle":  product.Title,
		"startDateTime": booking.StartDateTime,
		"endDateTime":   booking.EndDateTime,
		"offeringPrice": booking.OfferingPrice,
		"totalPersons":  booking.TotalPersons,
		"addOns":        booking.AddOns,
		"customerId":    booking.UserID,
	}
	if user, err := c.UserRepository.FindByID(ctx, booking.UserID); err == nil {
		data["customerName"] = user.FullName
		data["customerEmail"] = user.Email
	}
	return data
}

func (c *BookingUseCase) ListBookingsForUser(ctx context.Context, request *model.ListUserBookingsRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "booking-usecase", "ListBookingsForUser", err, request)
	}

	details, err := c.BookingRepository.ListByUser(ctx, request.UserID)
	if err != nil {
		return failure(c.Log, "booking-usecase", "ListBookingsForUser", err, request.UserID)
	}
	return utils.Result{Data: converter.BookingDetailsToResponse(details, false)}
}

func (c *BookingUseCase) ListBookingsForAdmin(ctx context.Context, request *model.ListAdminBookingsRequest) utils.Result {
	var filter *entity.BookingStatus
	if request.Status != "" {
		status, ok := entity.ParseBookingStatusFilter(request.Status)
		if !ok {
			return failure(c.Log, "booking-usecase", "ListBookingsForAdmin",
				newNotFound(fmt.Sprintf("no bookings found for status %q", request.Status)), request.Status)
		}
		filter = &status
	}

	details, err := c.BookingRepository.ListForAdmin(ctx, filter)
	if err != nil {
		return failure(c.Log, "booking-usecase", "ListBookingsForAdmin", err, request.Status)
	}
	return utils.Result{Data: converter.BookingDetailsToResponse(details, true)}
}

func (c *BookingUseCase) GetBooking(ctx context.Context, request *model.GetBookingRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "booking-usecase", "GetBooking", err, request)
	}

	detail, err := c.BookingRepository.FindDetailByID(ctx, request.BookingID)
	if err == nil && detail.UserID != request.UserID {
		err = sql.ErrNoRows
	}
	if err != nil {
		return failure(c.Log, "booking-usecase", "GetBooking",
			notFoundOr(err, fmt.Sprintf("booking with id %s not found", request.BookingID)), request.BookingID)
	}

	response := converter.BookingDetailToResponse(detail, false)
	payment, err := c.PaymentRepository.FindByBookingID(ctx, detail.ID)
	switch {
	case err == nil:
		response.Payment = converter.PaymentToResponse(payment)
	case !errors.Is(err, sql.ErrNoRows):
		return failure(c.Log, "booking-usecase", "GetBooking", err, request.BookingID)
	}
	return utils.Result{Data: response}
}

// UpdateOffer lets the customer send a new offer after a decline or a failed
// payment, or adjust one the admin has not decided on yet. The booking goes
// back to OFFERING and the admin message is cleared.
func (c *BookingUseCase) UpdateOffer(ctx context.Context, request *model.UpdateOfferRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "booking-usecase", "UpdateOffer", err, request)
	}

	booking, err := c.BookingRepository.FindByID(ctx, request.BookingID)
	if err == nil && booking.UserID != request.UserID {
		err = sql.ErrNoRows
	}
	if err != nil {
		return failure(c.Log, "booking-usecase", "UpdateOffer",
			notFoundOr(err, fmt.Sprintf("booking with id %s not found", request.BookingID)), request.BookingID)
	}
	if !booking.Status.Reofferable() {
		return failure(c.Log, "booking-usecase", "UpdateOffer",
			newConflict(fmt.Sprintf("booking in status %s can no longer be changed", booking.Status)), booking.ID)
	}

	if request.StartDateTime != nil {
		booking.StartDateTime = request.StartDateTime.UTC()
	}
	if request.EndDateTime != nil {
		booking.EndDateTime = utcPtr(request.EndDateTime)
	}
	if request.OfferingPrice != nil {
		booking.OfferingPrice = *request.OfferingPrice
	}
	if request.TotalPersons != nil {
		booking.TotalPersons = *request.TotalPersons
	}
	if request.AddOns != nil {
		booking.AddOns = *request.AddOns
	}
	if booking.EndDateTime != nil && !booking.EndDateTime.After(booking.StartDateTime) {
		return failure(c.Log, "booking-usecase", "UpdateOffer",
			newBadRequest("validation error: endDateTime must be after startDateTime"), booking.ID)
	}

	product, err := c.ProductRepository.FindByID(ctx, booking.ProductID)
	if err != nil {
		return failure(c.Log, "booking-usecase", "UpdateOffer", err, booking.ProductID)
	}

	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyBookingOfferAck,
		func(ctx context.Context) error {
			ok, err := c.BookingRepository.UpdateOffer(ctx, booking, []entity.BookingStatus{
				entity.BookingOffering, entity.BookingDeclined, entity.BookingPaymentFailed,
			})
			if err != nil {
				return err
			}
			if !ok {
				return newConflict("booking was changed by someone else, please reload it")
			}
			return nil
		},
		func(ctx context.Context) error {
			return c.Notification.ToAdmins(ctx, model.NotifyBookingOfferAck, c.offerSummary(ctx, booking, product))
		},
	)
	if err != nil {
		return failure(c.Log, "booking-usecase", "UpdateOffer", err, booking.ID)
	}

	booking.Status = entity.BookingOffering
	booking.AdminMessage = nil
	response := converter.BookingToResponse(booking)
	response.Product.Title = product.Title
	response.Product.Rating = product.Rating
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "booking-usecase", "UpdateOffer", notifyErr, response)
	}
	return utils.Result{Data: response}
}

func (c *BookingUseCase) DeleteBooking(ctx context.Context, request *model.DeleteBookingRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "booking-usecase", "DeleteBooking", err, request)
	}

	booking, err := c.BookingRepository.FindByID(ctx, request.BookingID)
	if err == nil && request.UserID != "" && booking.UserID != request.UserID {
		err = sql.ErrNoRows
	}
	if err != nil {
		return failure(c.Log, "booking-usecase", "DeleteBooking",
			notFoundOr(err, fmt.Sprintf("booking with id %s not found", request.BookingID)), request.BookingID)
	}
	if !booking.Status.Deletable() {
		return failure(c.Log, "booking-usecase", "DeleteBooking",
			newConflict(fmt.Sprintf("booking in status %s cannot be deleted", booking.Status)), booking.ID)
	}

	err = c.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		ok, err := c.BookingRepository.Delete(ctx, booking.ID, []entity.BookingStatus{
			entity.BookingOffering, entity.BookingDeclined, entity.BookingPaymentFailed,
		})
		if err != nil {
			return err
		}
		if !ok {
			return newConflict("booking status changed, it can no longer be deleted")
		}
		return nil
	})
	if err != nil {
		return failure(c.Log, "booking-usecase", "DeleteBooking", err, booking.ID)
	}

	c.Log.Info("booking-usecase", "booking deleted", "DeleteBooking", booking.ID)
	return utils.Result{Data: map[string]string{"id": booking.ID}}
}

// AdminUpdateBooking is the admin side of the offer state machine.
// OFFERING may move to WAITING_FOR_PAYMENT (which creates the payment) or
// DECLINED; DECLINED and PAYMENT_FAILED may be reset to OFFERING. The
// payment-driven statuses are only reachable through proof submission and
// adjudication.
func (c *BookingUseCase) AdminUpdateBooking(ctx context.Context, request *model.AdminUpdateBookingRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "booking-usecase", "AdminUpdateBooking", err, request)
	}
	if request.Status == nil && request.AdminMessage == nil {
		return failure(c.Log, "booking-usecase", "AdminUpdateBooking",
			newBadRequest("validation error: status or adminMessage is required"), request.BookingID)
	}

	booking, err := c.BookingRepository.FindByID(ctx, request.BookingID)
	if err != nil {
		return failure(c.Log, "booking-usecase", "AdminUpdateBooking",
			notFoundOr(err, fmt.Sprintf("booking with id %s not found", request.BookingID)), request.BookingID)
	}

	if request.Status == nil || entity.BookingStatus(*request.Status) == booking.Status {
		return c.updateAdminMessage(ctx, booking, request.AdminMessage)
	}

	target := entity.BookingStatus(*request.Status)
	switch target {
	case entity.BookingWaitingForPayment:
		return c.PaymentUseCase.CreatePayment(ctx, booking, request.AdminMessage)
	case entity.BookingDeclined:
		return c.transition(ctx, booking, []entity.BookingStatus{entity.BookingOffering}, target, request.AdminMessage)
	case entity.BookingOffering:
		return c.transition(ctx, booking, []entity.BookingStatus{entity.BookingDeclined, entity.BookingPaymentFailed}, target, request.AdminMessage)
	}

	return failure(c.Log, "booking-usecase", "AdminUpdateBooking",
		newConflict(fmt.Sprintf("status %s is set by the payment review, not by a booking update", target)), booking.ID)
}

func (c *BookingUseCase) updateAdminMessage(ctx context.Context, booking *entity.Booking, adminMessage *string) utils.Result {
	if adminMessage != nil {
		if err := c.BookingRepository.UpdateAdminMessage(ctx, booking.ID, adminMessage); err != nil {
			return failure(c.Log, "booking-usecase", "AdminUpdateBooking", err, booking.ID)
		}
		booking.AdminMessage = adminMessage
	}
	return utils.Result{Data: converter.BookingToResponse(booking)}
}

func (c *BookingUseCase) transition(ctx context.Context, booking *entity.Booking, from []entity.BookingStatus, to entity.BookingStatus, adminMessage *string) utils.Result {
	allowed := false
	for _, status := range from {
		if booking.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return failure(c.Log, "booking-usecase", "AdminUpdateBooking",
			newConflict(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, to)), booking.ID)
	}

	err := c.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		ok, err := c.BookingRepository.UpdateStatus(ctx, booking.ID, booking.Status, to, adminMessage)
		if err != nil {
			return err
		}
		if !ok {
			return newConflict("booking status changed, please reload it")
		}
		// a fresh offer does not carry the old decline or failure reason
		if to == entity.BookingOffering && adminMessage == nil {
			return c.BookingRepository.UpdateAdminMessage(ctx, booking.ID, nil)
		}
		return nil
	})
	if err != nil {
		return failure(c.Log, "booking-usecase", "AdminUpdateBooking", err, booking.ID)
	}

	c.Log.Info("booking-usecase", fmt.Sprintf("booking moved %s -> %s", booking.Status, to), "AdminUpdateBooking", booking.ID)
	booking.Status = to
	if adminMessage != nil || to == entity.BookingOffering {
		booking.AdminMessage = adminMessage
	}
	return utils.Result{Data: converter.BookingToResponse(booking)}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
