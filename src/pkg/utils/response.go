package utils

import (
	"errors"

	httpError "tour-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

type BaseResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Details []string    `json:"details,omitempty"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(BaseResponse{
		Success: true,
		Data:    data,
		Message: message,
		Code:    code,
	})
}

// ResponseError renders any error. A committed notify failure keeps its data
// so the caller can tell it apart from a failure that wrote nothing.
func ResponseError(err error, ctx *fiber.Ctx) error {
	var notifyErr *httpError.NotifyError
	if errors.As(err, &notifyErr) && notifyErr.Committed {
		return ctx.Status(notifyErr.Code).JSON(BaseResponse{
			Success: false,
			Data:    notifyErr.Data,
			Message: notifyErr.Message,
			Code:    notifyErr.Code,
		})
	}

	var badRequest *httpError.BadRequest
	if errors.As(err, &badRequest) {
		return ctx.Status(badRequest.Code).JSON(BaseResponse{
			Message: badRequest.Message,
			Code:    badRequest.Code,
			Details: badRequest.Details,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(BaseResponse{
			Message: fiberErr.Message,
			Code:    fiberErr.Code,
		})
	}

	code := fiber.StatusInternalServerError
	message := err.Error()
	if typed, ok := httpError.As(err); ok {
		code = typed.StatusCode()
	}
	return ctx.Status(code).JSON(BaseResponse{
		Message: message,
		Code:    code,
	})
}
