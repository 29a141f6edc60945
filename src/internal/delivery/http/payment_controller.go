package http

import (
	"fmt"
	"io"

	"tour-service/src/internal/delivery/http/middleware"
	"tour-service/src/internal/model"
	"tour-service/src/internal/usecase"
	"tour-service/src/pkg/log"
	"tour-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct {
	Log     log.Log
	UseCase *usecase.PaymentUseCase
}

func NewPaymentController(useCase *usecase.PaymentUseCase, logger log.Log) *PaymentController {
	return &PaymentController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *PaymentController) Get(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetPayment(ctx.UserContext(), &model.GetPaymentRequest{
		BookingID: ctx.Params("id"),
		UserID:    auth.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Get payment", fiber.StatusOK, ctx)
}

func (c *PaymentController) SelectMethod(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SelectPaymentMethodRequest)
	request.BookingID = ctx.Params("id")
	request.UserID = auth.UserID
	if err := utils.ParseBody(ctx, c.UseCase.Validate, request); err != nil {
		c.Log.Error("PaymentController.SelectMethod", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.SelectPaymentMethod(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Payment method selected", fiber.StatusOK, ctx)
}

func (c *PaymentController) SubmitBank(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitBankProofRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("PaymentController.SubmitBank", "Failed to parse form", "error", err.Error())
		return utils.ResponseError(fiber.NewError(fiber.StatusBadRequest, err.Error()), ctx)
	}
	proof, err := c.readProof(ctx)
	if err != nil {
		return utils.ResponseError(err, ctx)
	}
	request.BookingID = ctx.Params("id")
	request.UserID = auth.UserID
	request.Proof = proof

	result := c.UseCase.SubmitBankProof(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Payment proof submitted", fiber.StatusCreated, ctx)
}

func (c *PaymentController) SubmitWise(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitWiseProofRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("PaymentController.SubmitWise", "Failed to parse form", "error", err.Error())
		return utils.ResponseError(fiber.NewError(fiber.StatusBadRequest, err.Error()), ctx)
	}
	proof, err := c.readProof(ctx)
	if err != nil {
		return utils.ResponseError(err, ctx)
	}
	request.BookingID = ctx.Params("id")
	request.UserID = auth.UserID
	request.Proof = proof

	result := c.UseCase.SubmitWiseProof(ctx.UserContext(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Payment proof submitted", fiber.StatusCreated, ctx)
}

// readProof returns nil when no file was sent so validation reports it
// alongside the other fields.
func (c *PaymentController) readProof(ctx *fiber.Ctx) (*model.ProofFile, error) {
	header, err := ctx.FormFile("proof")
	if err != nil {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("cannot open proof: %v", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("cannot read proof: %v", err))
	}
	return &model.ProofFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}
