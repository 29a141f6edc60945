package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/internal/gateway/storage"
	"tour-service/src/internal/model"
	"tour-service/src/internal/model/converter"
	"tour-service/src/internal/repository"
	httpError "tour-service/src/pkg/http-error"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PaymentSettings struct {
	// Tax is the percentage applied to every payment created.
	Tax           float64
	ProofMaxBytes int
}

type PaymentUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	Tx                repository.Transactor
	BookingRepository repository.Bookings
	PaymentRepository repository.Payments
	ProductRepository repository.Products
	UserRepository    repository.Users
	Uploader          storage.Uploader
	Notification      *NotificationDispatcher
	Settings          PaymentSettings
}

func NewPaymentUseCase(
	logger log.Log,
	validate *validator.Validate,
	tx repository.Transactor,
	bookingRepository repository.Bookings,
	paymentRepository repository.Payments,
	productRepository repository.Products,
	userRepository repository.Users,
	uploader storage.Uploader,
	notification *NotificationDispatcher,
	settings PaymentSettings,
) *PaymentUseCase {
	return &PaymentUseCase{
		Log:               logger,
		Validate:          validate,
		Tx:                tx,
		BookingRepository: bookingRepository,
		PaymentRepository: paymentRepository,
		ProductRepository: productRepository,
		UserRepository:    userRepository,
		Uploader:          uploader,
		Notification:      notification,
		Settings:          settings,
	}
}

// CreatePayment accepts an offer: the payment is created and the booking
// moves to WAITING_FOR_PAYMENT in one transaction, then the customer gets the
// payment instructions.
func (c *PaymentUseCase) CreatePayment(ctx context.Context, booking *entity.Booking, adminMessage *string) utils.Result {
	existing, err := c.PaymentRepository.FindByBookingID(ctx, booking.ID)
	if err == nil && existing != nil {
		return failure(c.Log, "payment-usecase", "CreatePayment", newConflict("Payment already created"), booking.ID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return failure(c.Log, "payment-usecase", "CreatePayment", err, booking.ID)
	}
	if booking.Status != entity.BookingOffering {
		return failure(c.Log, "payment-usecase", "CreatePayment",
			newConflict(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, entity.BookingWaitingForPayment)), booking.ID)
	}

	now := time.Now().UTC()
	payment := &entity.Payment{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Tax:       c.Settings.Tax,
		SubTotal:  booking.OfferingPrice,
		Total:     entity.CalculateTotal(booking.OfferingPrice, c.Settings.Tax),
		Status:    entity.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyPaymentInstructions,
		func(ctx context.Context) error {
			if err := c.PaymentRepository.Create(ctx, payment); err != nil {
				return conflictOnDuplicate(err, "Payment already created")
			}
			ok, err := c.BookingRepository.UpdateStatus(ctx, booking.ID, entity.BookingOffering, entity.BookingWaitingForPayment, adminMessage)
			if err != nil {
				return err
			}
			if !ok {
				return newConflict("booking status changed, please reload it")
			}
			return nil
		},
		func(ctx context.Context) error {
			recipient, err := c.customerEmail(ctx, booking.UserID)
			if err != nil {
				return err
			}
			return c.Notification.ToRecipient(ctx, model.NotifyPaymentInstructions, recipient, map[string]interface{}{
				"bookingId":    booking.ID,
				"paymentId":    payment.ID,
				"productTitle": c.productTitle(ctx, booking.ProductID),
				"tax":          payment.Tax,
				"subTotal":     payment.SubTotal,
				"total":        payment.Total,
				"methods":      []entity.PaymentMethod{entity.PaymentMethodBank, entity.PaymentMethodWise},
			})
		},
	)
	if err != nil {
		return failure(c.Log, "payment-usecase", "CreatePayment", err, booking.ID)
	}

	booking.Status = entity.BookingWaitingForPayment
	if adminMessage != nil {
		booking.AdminMessage = adminMessage
	}
	response := converter.BookingToResponse(booking)
	response.Payment = converter.PaymentToResponse(payment)
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "payment-usecase", "CreatePayment", notifyErr, response)
	}

	c.Log.Info("payment-usecase", "payment created", "CreatePayment", payment.ID)
	return utils.Result{Data: response}
}

func (c *PaymentUseCase) GetPayment(ctx context.Context, request *model.GetPaymentRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "payment-usecase", "GetPayment", err, request)
	}

	if _, err := c.ownedBooking(ctx, request.BookingID, request.UserID); err != nil {
		return failure(c.Log, "payment-usecase", "GetPayment", err, request.BookingID)
	}
	payment, err := c.PaymentRepository.FindByBookingID(ctx, request.BookingID)
	if err != nil {
		return failure(c.Log, "payment-usecase", "GetPayment",
			notFoundOr(err, "payment has not been created for this booking yet"), request.BookingID)
	}
	detail, err := c.PaymentRepository.FindDetailByID(ctx, payment.ID)
	if err != nil {
		return failure(c.Log, "payment-usecase", "GetPayment", err, payment.ID)
	}
	return utils.Result{Data: converter.PaymentDetailToResponse(detail)}
}

func (c *PaymentUseCase) SelectPaymentMethod(ctx context.Context, request *model.SelectPaymentMethodRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "payment-usecase", "SelectPaymentMethod", err, request)
	}
	method := entity.PaymentMethod(request.Method)

	if _, err := c.ownedBooking(ctx, request.BookingID, request.UserID); err != nil {
		return failure(c.Log, "payment-usecase", "SelectPaymentMethod", err, request.BookingID)
	}
	payment, err := c.PaymentRepository.FindByBookingID(ctx, request.BookingID)
	if err != nil {
		return failure(c.Log, "payment-usecase", "SelectPaymentMethod",
			notFoundOr(err, "payment has not been created for this booking yet, please wait for the offer to be accepted"), request.BookingID)
	}

	ok, err := c.PaymentRepository.UpdateMethod(ctx, payment.ID, method)
	if err != nil {
		return failure(c.Log, "payment-usecase", "SelectPaymentMethod", err, payment.ID)
	}
	if !ok {
		return failure(c.Log, "payment-usecase", "SelectPaymentMethod",
			newConflict("payment proof already submitted, the method can no longer be changed"), payment.ID)
	}

	payment.Method = &method
	return utils.Result{Data: converter.PaymentToResponse(payment)}
}

func (c *PaymentUseCase) SubmitBankProof(ctx context.Context, request *model.SubmitBankProofRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "payment-usecase", "SubmitBankProof", err, request.BookingID)
	}

	var proof *entity.BankPayment
	return c.submitProof(ctx, "SubmitBankProof", request.BookingID, request.UserID, entity.PaymentMethodBank, request.Proof,
		func(ctx context.Context, payment *entity.Payment, proofURL string) error {
			now := time.Now().UTC()
			proof = &entity.BankPayment{
				ID:            uuid.NewString(),
				PaymentID:     payment.ID,
				BankName:      request.BankName,
				AccountName:   request.AccountName,
				AccountNumber: request.AccountNumber,
				ProofURL:      proofURL,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			return c.PaymentRepository.CreateBankProof(ctx, proof)
		},
		func(response *model.PaymentResponse, summary map[string]interface{}) {
			response.Bank = &model.BankProofResponse{
				BankName:      proof.BankName,
				AccountName:   proof.AccountName,
				AccountNumber: proof.AccountNumber,
				ProofURL:      proof.ProofURL,
			}
			summary["bankName"] = proof.BankName
			summary["accountName"] = proof.AccountName
			summary["accountNumber"] = proof.AccountNumber
			summary["proofUrl"] = proof.ProofURL
		},
	)
}

func (c *PaymentUseCase) SubmitWiseProof(ctx context.Context, request *model.SubmitWiseProofRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "payment-usecase", "SubmitWiseProof", err, request.BookingID)
	}

	var proof *entity.WisePayment
	return c.submitProof(ctx, "SubmitWiseProof", request.BookingID, request.UserID, entity.PaymentMethodWise, request.Proof,
		func(ctx context.Context, payment *entity.Payment, proofURL string) error {
			now := time.Now().UTC()
			proof = &entity.WisePayment{
				ID:          uuid.NewString(),
				PaymentID:   payment.ID,
				WiseEmail:   request.WiseEmail,
				AccountName: request.AccountName,
				ProofURL:    proofURL,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			return c.PaymentRepository.CreateWiseProof(ctx, proof)
		},
		func(response *model.PaymentResponse, summary map[string]interface{}) {
			response.Wise = &model.WiseProofResponse{
				WiseEmail:   proof.WiseEmail,
				AccountName: proof.AccountName,
				ProofURL:    proof.ProofURL,
			}
			summary["wiseEmail"] = proof.WiseEmail
			summary["accountName"] = proof.AccountName
			summary["proofUrl"] = proof.ProofURL
		},
	)
}

// submitProof is shared by both methods: look up the payment for the
// selected method, reject a second proof, check and upload the image, then
// record the proof and move booking and payment into review together.
func (c *PaymentUseCase) submitProof(
	ctx context.Context,
	scope string,
	bookingID, userID string,
	method entity.PaymentMethod,
	file *model.ProofFile,
	createProof func(ctx context.Context, payment *entity.Payment, proofURL string) error,
	describe func(response *model.PaymentResponse, summary map[string]interface{}),
) utils.Result {
	booking, err := c.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return failure(c.Log, "payment-usecase", scope, err, bookingID)
	}

	payment, err := c.PaymentRepository.FindByBookingAndMethod(ctx, bookingID, method)
	if err != nil {
		return failure(c.Log, "payment-usecase", scope,
			notFoundOr(err, fmt.Sprintf("no payment with method %s for this booking, select the method first", method)), bookingID)
	}

	submitted, err := c.PaymentRepository.HasProof(ctx, payment.ID)
	if err != nil {
		return failure(c.Log, "payment-usecase", scope, err, payment.ID)
	}
	if submitted {
		return failure(c.Log, "payment-usecase", scope, newConflict("payment proof already submitted"), payment.ID)
	}

	if c.Settings.ProofMaxBytes > 0 && len(file.Data) > c.Settings.ProofMaxBytes {
		return failure(c.Log, "payment-usecase", scope,
			httpError.NewValidationError([]string{fmt.Sprintf("proof must be at most %d bytes", c.Settings.ProofMaxBytes)}), payment.ID)
	}
	contentType, ext, err := storage.DetectProofType(file.Data, file.ContentType)
	if err != nil {
		return failure(c.Log, "payment-usecase", scope, httpError.NewValidationError([]string{err.Error()}), payment.ID)
	}

	key := storage.ObjectKey(method.FolderPrefix(), file.Data, ext)
	proofURL, err := c.Uploader.Upload(ctx, file.Data, contentType, key)
	if err != nil {
		errObj := httpError.NewUploadError()
		errObj.Message = fmt.Sprintf("failed to upload payment proof: %v", err)
		return failure(c.Log, "payment-usecase", scope, errObj, payment.ID)
	}

	summary := map[string]interface{}{
		"bookingId":     booking.ID,
		"paymentId":     payment.ID,
		"method":        method,
		"productTitle":  c.productTitle(ctx, booking.ProductID),
		"startDateTime": booking.StartDateTime,
		"totalPersons":  booking.TotalPersons,
		"tax":           payment.Tax,
		"subTotal":      payment.SubTotal,
		"total":         payment.Total,
		"customerId":    booking.UserID,
	}
	response := converter.PaymentToResponse(payment)

	notifyErr, err := commitAndNotify(ctx, c.Tx, c.Notification, model.NotifyPaymentProofSubmitted,
		func(ctx context.Context) error {
			// the method can change while the upload runs; the row lock taken
			// here holds it until commit
			ok, err := c.PaymentRepository.MarkNeedsReview(ctx, payment.ID, method)
			if err != nil {
				return err
			}
			if !ok {
				return newConflict(fmt.Sprintf("payment is no longer pending with method %s", method))
			}
			if err := createProof(ctx, payment, proofURL); err != nil {
				return conflictOnDuplicate(err, "payment proof already submitted")
			}
			ok, err = c.BookingRepository.UpdateStatus(ctx, booking.ID, entity.BookingWaitingForPayment, entity.BookingPaymentReviewing, nil)
			if err != nil {
				return err
			}
			if !ok {
				return newConflict(fmt.Sprintf("booking in status %s is not waiting for payment", booking.Status))
			}
			describe(response, summary)
			return nil
		},
		func(ctx context.Context) error {
			return c.Notification.ToAdmins(ctx, model.NotifyPaymentProofSubmitted, summary)
		},
	)
	if err != nil {
		return failure(c.Log, "payment-usecase", scope, err, payment.ID)
	}

	response.Status = string(entity.PaymentNeedsReview)
	if notifyErr != nil {
		return committedWithNotifyError(c.Log, "payment-usecase", scope, notifyErr, response)
	}

	c.Log.Info("payment-usecase", "payment proof submitted", scope, payment.ID)
	return utils.Result{Data: response}
}

func (c *PaymentUseCase) ListPaymentsForAdmin(ctx context.Context, request *model.ListAdminPaymentsRequest) utils.Result {
	if err := c.Validate.Struct(request); err != nil {
		return validationFailure(c.Log, "payment-usecase", "ListPaymentsForAdmin", err, request)
	}

	var filter *entity.PaymentStatus
	if request.Status != "" {
		status := entity.PaymentStatus(request.Status)
		filter = &status
	}
	details, err := c.PaymentRepository.ListDetails(ctx, filter)
	if err != nil {
		return failure(c.Log, "payment-usecase", "ListPaymentsForAdmin", err, request.Status)
	}
	return utils.Result{Data: converter.PaymentDetailsToResponse(details)}
}

func (c *PaymentUseCase) ownedBooking(ctx context.Context, bookingID, userID string) (*entity.Booking, error) {
	booking, err := c.BookingRepository.FindByID(ctx, bookingID)
	if err == nil && booking.UserID != userID {
		err = sql.ErrNoRows
	}
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("booking with id %s not found", bookingID))
	}
	return booking, nil
}

func (c *PaymentUseCase) customerEmail(ctx context.Context, userID string) (string, error) {
	user, err := c.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("lookup customer %s: %w", userID, err)
	}
	return user.Email, nil
}

func (c *PaymentUseCase) productTitle(ctx context.Context, productID string) string {
	product, err := c.ProductRepository.FindByID(ctx, productID)
	if err != nil {
		c.Log.Warn("payment-usecase", err.Error(), "productTitle", productID)
		return ""
	}
	return product.Title
}
