package converter

import (
	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
)

func BookingToResponse(booking *entity.Booking) *model.BookingResponse {
	return &model.BookingResponse{
		ID:            booking.ID,
		Product:       model.ProductSummary{ID: booking.ProductID},
		StartDateTime: booking.StartDateTime,
		EndDateTime:   booking.EndDateTime,
		OfferingPrice: booking.OfferingPrice,
		AddOns:        booking.AddOns,
		TotalPersons:  booking.TotalPersons,
		Status:        string(booking.Status),
		Note:          booking.Status.Note(),
		AdminMessage:  booking.AdminMessage,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func BookingDetailToResponse(detail *entity.BookingDetail, withCustomer bool) *model.BookingResponse {
	response := BookingToResponse(&detail.Booking)
	response.Product.Title = detail.ProductTitle
	response.Product.Rating = detail.ProductRating
	if withCustomer {
		response.Customer = customerSummary(detail.UserID, detail.CustomerName, detail.CustomerEmail)
	}
	return response
}

func BookingDetailsToResponse(details []entity.BookingDetail, withCustomer bool) []*model.BookingResponse {
	responses := make([]*model.BookingResponse, 0, len(details))
	for i := range details {
		responses = append(responses, BookingDetailToResponse(&details[i], withCustomer))
	}
	return responses
}

func customerSummary(userID string, name, email *string) *model.CustomerSummary {
	customer := &model.CustomerSummary{ID: userID}
	if name != nil {
		customer.FullName = *name
	}
	if email != nil {
		customer.Email = *email
	}
	return customer
}
