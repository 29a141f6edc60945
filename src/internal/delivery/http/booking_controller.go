package http

import (
	"tour-service/src/internal/delivery/http/middleware"
	"tour-service/src/internal/model"
	"tour-service/src/internal/usecase"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type BookingController struct {
	Log     log.Log
	UseCase *usecase.BookingUseCase
}

func NewBookingController(useCase *usecase.BookingUseCase, logger log.Log) *BookingController {
	return &BookingController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *BookingController) Create(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.CreateBookingRequest)
	request.UserID = auth.UserID
	if err := utils.ParseBody(ctx, c.UseCase.Validate, request); err != nil {
		c.Log.Error("BookingController.Create", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.CreateBooking(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Offer sent", fiber.StatusCreated, ctx)
}

func (c *BookingController) List(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListBookingsForUser(ctx.UserContext(), &model.ListUserBookingsRequest{UserID: auth.UserID})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "List bookings", fiber.StatusOK, ctx)
}

func (c *BookingController) Get(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetBooking(ctx.UserContext(), &model.GetBookingRequest{
		BookingID: ctx.Params("id"),
		UserID:    auth.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Get booking", fiber.StatusOK, ctx)
}

func (c *BookingController) UpdateOffer(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.UpdateOfferRequest)
	request.BookingID = ctx.Params("id")
	request.UserID = auth.UserID
	if err := utils.ParseBody(ctx, c.UseCase.Validate, request); err != nil {
		c.Log.Error("BookingController.UpdateOffer", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.UpdateOffer(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Offer updated", fiber.StatusOK, ctx)
}

func (c *BookingController) Delete(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.DeleteBooking(ctx.UserContext(), &model.DeleteBookingRequest{
		BookingID: ctx.Params("id"),
		UserID:    auth.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Booking deleted", fiber.StatusOK, ctx)
}
