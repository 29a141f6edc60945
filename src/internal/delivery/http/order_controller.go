package http

import (
	"tour-service/src/internal/delivery/http/middleware"
	"tour-service/src/internal/model"
	"tour-service/src/internal/usecase"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Log     log.Log
	UseCase *usecase.OrderUseCase
}

func NewOrderController(useCase *usecase.OrderUseCase, logger log.Log) *OrderController {
	return &OrderController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *OrderController) List(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListOrders(ctx.UserContext(), &model.ListUserOrdersRequest{UserID: auth.UserID})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "List orders", fiber.StatusOK, ctx)
}

func (c *OrderController) SubmitReview(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitReviewRequest)
	request.OrderID = ctx.Params("id")
	request.UserID = auth.UserID
	if err := utils.ParseBody(ctx, c.UseCase.Validate, request); err != nil {
		c.Log.Error("OrderController.SubmitReview", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.SubmitReview(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Review submitted", fiber.StatusCreated, ctx)
}

func (c *OrderController) ProductRating(ctx *fiber.Ctx) error {
	result := c.UseCase.GetProductRating(ctx.UserContext(), &model.GetProductRatingRequest{ProductID: ctx.Params("id")})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Product rating", fiber.StatusOK, ctx)
}
