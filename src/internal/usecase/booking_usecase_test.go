package usecase

import (
	"context"
	"testing"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
	httpError "tour-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngProof() *model.ProofFile {
	data := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	return &model.ProofFile{Filename: "transfer.png", ContentType: "image/png", Data: data}
}

func createBooking(t *testing.T, h *harness, userID string, price float64) *model.BookingResponse {
	t.Helper()
	start := time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	persons := 2
	res := h.booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		UserID:        userID,
		ProductID:     productID,
		StartDateTime: &start,
		EndDateTime:   &end,
		OfferingPrice: &price,
		TotalPersons:  &persons,
		AddOns:        "snorkel gear",
	})
	require.NoError(t, res.Error)
	return res.Data.(*model.BookingResponse)
}

func acceptBooking(t *testing.T, h *harness, bookingID string) *model.BookingResponse {
	t.Helper()
	status := string(entity.BookingWaitingForPayment)
	res := h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID: bookingID,
		Status:    &status,
	})
	require.NoError(t, res.Error)
	return res.Data.(*model.BookingResponse)
}

func TestCreateBookingStartsOffering(t *testing.T) {
	h := newHarness(t)

	booking := createBooking(t, h, customerID, 100)

	assert.Equal(t, string(entity.BookingOffering), booking.Status)
	assert.Equal(t, entity.BookingOffering.Note(), booking.Note)
	assert.Equal(t, "Komodo Island Hopping", booking.Product.Title)

	acks := h.notifier.byKind(model.NotifyBookingOfferAck)
	recipients := []string{}
	for _, ack := range acks {
		recipients = append(recipients, ack.Recipient)
	}
	assert.ElementsMatch(t, []string{adminOne, adminTwo}, recipients)
}

func TestCreateBookingReportsEveryInvalidField(t *testing.T) {
	h := newHarness(t)

	res := h.booking.CreateBooking(context.Background(), &model.CreateBookingRequest{UserID: customerID})

	var badRequest *httpError.BadRequest
	require.ErrorAs(t, res.Error, &badRequest)
	assert.Len(t, badRequest.Details, 4)
	assert.Contains(t, badRequest.Details, "productId is required")
	assert.Contains(t, badRequest.Details, "startDateTime is required")
	assert.Contains(t, badRequest.Details, "offeringPrice is required")
	assert.Contains(t, badRequest.Details, "totalPersons is required")
	assert.Empty(t, h.ledger.bookings)
}

func TestCreateBookingUnknownProduct(t *testing.T) {
	h := newHarness(t)
	start := time.Now().Add(24 * time.Hour)
	price, persons := 50.0, 1

	res := h.booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		UserID:        customerID,
		ProductID:     "missing",
		StartDateTime: &start,
		OfferingPrice: &price,
		TotalPersons:  &persons,
	})

	assert.IsType(t, &httpError.NotFound{}, res.Error)
}

func TestCreateBookingNotifyFailureKeepsBooking(t *testing.T) {
	h := newHarness(t)
	h.notifier.fail(adminTwo)
	start := time.Now().Add(24 * time.Hour)
	price, persons := 75.0, 3

	res := h.booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		UserID:        customerID,
		ProductID:     productID,
		StartDateTime: &start,
		OfferingPrice: &price,
		TotalPersons:  &persons,
	})

	require.Error(t, res.Error)
	assert.True(t, httpError.IsCommitted(res.Error))
	require.NotNil(t, res.Data)
	assert.Len(t, h.ledger.bookings, 1)
}

func TestListBookingsForAdminByStatus(t *testing.T) {
	h := newHarness(t)
	first := createBooking(t, h, customerID, 100)
	createBooking(t, h, otherUserID, 80)
	acceptBooking(t, h, first.ID)

	res := h.booking.ListBookingsForAdmin(context.Background(), &model.ListAdminBookingsRequest{Status: "waiting-for-payment"})
	require.NoError(t, res.Error)
	waiting := res.Data.([]*model.BookingResponse)
	require.Len(t, waiting, 1)
	assert.Equal(t, first.ID, waiting[0].ID)
	require.NotNil(t, waiting[0].Customer)
	assert.Equal(t, customerMail, waiting[0].Customer.Email)

	res = h.booking.ListBookingsForAdmin(context.Background(), &model.ListAdminBookingsRequest{})
	require.NoError(t, res.Error)
	assert.Len(t, res.Data.([]*model.BookingResponse), 2)

	res = h.booking.ListBookingsForAdmin(context.Background(), &model.ListAdminBookingsRequest{Status: "archived"})
	assert.IsType(t, &httpError.NotFound{}, res.Error)
}

func TestListBookingsForUserOnlyOwn(t *testing.T) {
	h := newHarness(t)
	createBooking(t, h, customerID, 100)
	createBooking(t, h, otherUserID, 80)

	res := h.booking.ListBookingsForUser(context.Background(), &model.ListUserBookingsRequest{UserID: customerID})
	require.NoError(t, res.Error)
	bookings := res.Data.([]*model.BookingResponse)
	require.Len(t, bookings, 1)
	assert.Nil(t, bookings[0].Customer)
}

func TestGetBookingIncludesPayment(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)

	res := h.booking.GetBooking(context.Background(), &model.GetBookingRequest{BookingID: booking.ID, UserID: customerID})
	require.NoError(t, res.Error)
	assert.Nil(t, res.Data.(*model.BookingResponse).Payment)

	acceptBooking(t, h, booking.ID)
	res = h.booking.GetBooking(context.Background(), &model.GetBookingRequest{BookingID: booking.ID, UserID: customerID})
	require.NoError(t, res.Error)
	got := res.Data.(*model.BookingResponse)
	require.NotNil(t, got.Payment)
	assert.Equal(t, 110.0, got.Payment.Total)

	res = h.booking.GetBooking(context.Background(), &model.GetBookingRequest{BookingID: booking.ID, UserID: otherUserID})
	assert.IsType(t, &httpError.NotFound{}, res.Error)
}

func TestAdminDeclineThenReoffer(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)
	declined := string(entity.BookingDeclined)
	message := "price too low for the season"

	res := h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID:    booking.ID,
		Status:       &declined,
		AdminMessage: &message,
	})
	require.NoError(t, res.Error)
	assert.Equal(t, declined, res.Data.(*model.BookingResponse).Status)
	assert.Equal(t, message, *h.ledger.bookings[booking.ID].AdminMessage)

	price := 140.0
	res = h.booking.UpdateOffer(context.Background(), &model.UpdateOfferRequest{
		BookingID:     booking.ID,
		UserID:        customerID,
		OfferingPrice: &price,
	})
	require.NoError(t, res.Error)
	stored := h.ledger.bookings[booking.ID]
	assert.Equal(t, entity.BookingOffering, stored.Status)
	assert.Equal(t, 140.0, stored.OfferingPrice)
	assert.Nil(t, stored.AdminMessage)
}

func TestAdminReofferClearsOldMessage(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)
	declined := string(entity.BookingDeclined)
	offering := string(entity.BookingOffering)
	reason := "dates are fully booked"

	res := h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID:    booking.ID,
		Status:       &declined,
		AdminMessage: &reason,
	})
	require.NoError(t, res.Error)

	res = h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID: booking.ID,
		Status:    &offering,
	})
	require.NoError(t, res.Error)
	assert.Nil(t, res.Data.(*model.BookingResponse).AdminMessage)
	stored := h.ledger.bookings[booking.ID]
	assert.Equal(t, entity.BookingOffering, stored.Status)
	assert.Nil(t, stored.AdminMessage)

	res = h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID:    booking.ID,
		Status:       &declined,
		AdminMessage: &reason,
	})
	require.NoError(t, res.Error)
	note := "reopened for the december dates"
	res = h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID:    booking.ID,
		Status:       &offering,
		AdminMessage: &note,
	})
	require.NoError(t, res.Error)
	assert.Equal(t, note, *h.ledger.bookings[booking.ID].AdminMessage)
}

func TestUpdateOfferRejectedOnceAccepted(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)
	acceptBooking(t, h, booking.ID)
	price := 10.0

	res := h.booking.UpdateOffer(context.Background(), &model.UpdateOfferRequest{
		BookingID:     booking.ID,
		UserID:        customerID,
		OfferingPrice: &price,
	})

	assert.IsType(t, &httpError.Conflict{}, res.Error)
	assert.Equal(t, 100.0, h.ledger.bookings[booking.ID].OfferingPrice)
}

func TestUpdateOfferEndBeforeStart(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)
	end := booking.StartDateTime.Add(-time.Hour)

	res := h.booking.UpdateOffer(context.Background(), &model.UpdateOfferRequest{
		BookingID:   booking.ID,
		UserID:      customerID,
		EndDateTime: &end,
	})

	assert.IsType(t, &httpError.BadRequest{}, res.Error)
}

func TestAdminCannotSetPaymentDrivenStatus(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)

	for _, status := range []entity.BookingStatus{entity.BookingPaymentReviewing, entity.BookingSuccess, entity.BookingPaymentFailed} {
		target := string(status)
		res := h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
			BookingID: booking.ID,
			Status:    &target,
		})
		assert.IsType(t, &httpError.Conflict{}, res.Error, status)
	}
	assert.Equal(t, entity.BookingOffering, h.ledger.bookings[booking.ID].Status)
}

func TestAdminMessageOnlyUpdate(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)
	message := "we can add a guide for free"

	res := h.booking.AdminUpdateBooking(context.Background(), &model.AdminUpdateBookingRequest{
		BookingID:    booking.ID,
		AdminMessage: &message,
	})

	require.NoError(t, res.Error)
	stored := h.ledger.bookings[booking.ID]
	assert.Equal(t, entity.BookingOffering, stored.Status)
	assert.Equal(t, message, *stored.AdminMessage)
}

func TestDeleteBooking(t *testing.T) {
	h := newHarness(t)
	booking := createBooking(t, h, customerID, 100)

	res := h.booking.DeleteBooking(context.Background(), &model.DeleteBookingRequest{BookingID: booking.ID, UserID: otherUserID})
	assert.IsType(t, &httpError.NotFound{}, res.Error)

	res = h.booking.DeleteBooking(context.Background(), &model.DeleteBookingRequest{BookingID: booking.ID, UserID: customerID})
	require.NoError(t, res.Error)
	assert.Empty(t, h.ledger.bookings)

	res = h.booking.DeleteBooking(context.Background(), &model.DeleteBookingRequest{BookingID: booking.ID})
	assert.IsType(t, &httpError.NotFound{}, res.Error)
}

func TestDeleteBookingAfterSuccessConflicts(t *testing.T) {
	h := newHarness(t)
	order := runToOrder(t, h, customerID, 100)

	res := h.booking.DeleteBooking(context.Background(), &model.DeleteBookingRequest{BookingID: order.BookingID})

	assert.IsType(t, &httpError.Conflict{}, res.Error)
	assert.Equal(t, entity.BookingSuccess, h.ledger.bookings[order.BookingID].Status)
}
