package http

import (
	"tour-service/src/internal/model"
	"tour-service/src/internal/usecase"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminController serves the back office: offer decisions, payment review
// and order cancellation.
type AdminController struct {
	Log                 log.Log
	BookingUseCase      *usecase.BookingUseCase
	PaymentUseCase      *usecase.PaymentUseCase
	AdjudicationUseCase *usecase.AdjudicationUseCase
	OrderUseCase        *usecase.OrderUseCase
}

func NewAdminController(
	bookingUseCase *usecase.BookingUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	adjudicationUseCase *usecase.AdjudicationUseCase,
	orderUseCase *usecase.OrderUseCase,
	logger log.Log,
) *AdminController {
	return &AdminController{
		Log:                 logger,
		BookingUseCase:      bookingUseCase,
		PaymentUseCase:      paymentUseCase,
		AdjudicationUseCase: adjudicationUseCase,
		OrderUseCase:        orderUseCase,
	}
}

func (c *AdminController) ListBookings(ctx *fiber.Ctx) error {
	request := new(model.ListAdminBookingsRequest)
	if err := ctx.QueryParser(request); err != nil {
		return utils.ResponseError(fiber.NewError(fiber.StatusBadRequest, err.Error()), ctx)
	}

	result := c.BookingUseCase.ListBookingsForAdmin(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "List bookings", fiber.StatusOK, ctx)
}

func (c *AdminController) UpdateBooking(ctx *fiber.Ctx) error {
	request := new(model.AdminUpdateBookingRequest)
	request.BookingID = ctx.Params("id")
	if err := utils.ParseBody(ctx, c.BookingUseCase.Validate, request); err != nil {
		c.Log.Error("AdminController.UpdateBooking", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.BookingUseCase.AdminUpdateBooking(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Booking updated", fiber.StatusOK, ctx)
}

func (c *AdminController) DeleteBooking(ctx *fiber.Ctx) error {
	result := c.BookingUseCase.DeleteBooking(ctx.UserContext(), &model.DeleteBookingRequest{BookingID: ctx.Params("id")})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Booking deleted", fiber.StatusOK, ctx)
}

func (c *AdminController) ListPayments(ctx *fiber.Ctx) error {
	request := new(model.ListAdminPaymentsRequest)
	if err := ctx.QueryParser(request); err != nil {
		return utils.ResponseError(fiber.NewError(fiber.StatusBadRequest, err.Error()), ctx)
	}

	result := c.PaymentUseCase.ListPaymentsForAdmin(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "List payments", fiber.StatusOK, ctx)
}

func (c *AdminController) Adjudicate(ctx *fiber.Ctx) error {
	request := new(model.AdjudicatePaymentRequest)
	request.PaymentID = ctx.Params("id")
	if err := utils.ParseBody(ctx, c.AdjudicationUseCase.Validate, request); err != nil {
		c.Log.Error("AdminController.Adjudicate", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.AdjudicationUseCase.Adjudicate(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Payment adjudicated", fiber.StatusOK, ctx)
}

func (c *AdminController) ListOrders(ctx *fiber.Ctx) error {
	result := c.OrderUseCase.ListOrdersForAdmin(ctx.UserContext())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "List orders", fiber.StatusOK, ctx)
}

func (c *AdminController) CancelOrder(ctx *fiber.Ctx) error {
	result := c.OrderUseCase.CancelOrder(ctx.UserContext(), &model.CancelOrderRequest{OrderID: ctx.Params("id")})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Order canceled", fiber.StatusOK, ctx)
}
