package converter

import (
	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
)

func OrderToResponse(order *entity.Order) *model.OrderResponse {
	return &model.OrderResponse{
		ID:        order.ID,
		PaymentID: order.PaymentID,
		Product:   model.ProductSummary{ID: order.ProductID},
		Status:    string(order.Status),
		Reviewed:  order.Status == entity.OrderFinished,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func OrderDetailToResponse(detail *entity.OrderDetail, withCustomer bool) *model.OrderResponse {
	response := OrderToResponse(&detail.Order)
	start := detail.StartDateTime
	response.BookingID = detail.BookingID
	response.Product.Title = detail.ProductTitle
	response.StartDateTime = &start
	response.EndDateTime = detail.EndDateTime
	response.TotalPersons = detail.TotalPersons
	response.Total = detail.Total
	response.Reviewed = detail.ReviewRating != nil
	if withCustomer {
		response.Customer = customerSummary(detail.UserID, detail.CustomerName, detail.CustomerEmail)
	}
	return response
}

func OrderDetailsToResponse(details []entity.OrderDetail, withCustomer bool) []*model.OrderResponse {
	responses := make([]*model.OrderResponse, 0, len(details))
	for i := range details {
		responses = append(responses, OrderDetailToResponse(&details[i], withCustomer))
	}
	return responses
}

func ReviewToResponse(review *entity.Review, orderStatus entity.OrderStatus) *model.ReviewResponse {
	return &model.ReviewResponse{
		ID:            review.ID,
		OrderID:       review.OrderID,
		ProductID:     review.ProductID,
		Rating:        review.Rating,
		MessageReview: review.MessageReview,
		OrderStatus:   string(orderStatus),
		CreatedAt:     review.CreatedAt,
	}
}
