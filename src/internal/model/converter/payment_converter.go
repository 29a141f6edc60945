package converter

import (
	"tour-service/src/internal/entity"
	"tour-service/src/internal/model"
)

func PaymentToResponse(payment *entity.Payment) *model.PaymentResponse {
	response := &model.PaymentResponse{
		ID:        payment.ID,
		BookingID: payment.BookingID,
		Tax:       payment.Tax,
		SubTotal:  payment.SubTotal,
		Total:     payment.Total,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
	if payment.Method != nil {
		method := string(*payment.Method)
		response.Method = &method
	}
	return response
}

func PaymentDetailToResponse(detail *entity.PaymentDetail) *model.PaymentReviewResponse {
	response := &model.PaymentReviewResponse{
		PaymentResponse: *PaymentToResponse(&detail.Payment),
		ProductTitle:    detail.ProductTitle,
		StartDateTime:   detail.StartDateTime,
		EndDateTime:     detail.EndDateTime,
		TotalPersons:    detail.TotalPersons,
		Customer:        customerSummary(detail.UserID, detail.CustomerName, detail.CustomerEmail),
	}
	if detail.BankProofURL != nil {
		response.Bank = &model.BankProofResponse{
			BankName:      deref(detail.BankName),
			AccountName:   deref(detail.BankAccountName),
			AccountNumber: deref(detail.BankAccountNumber),
			ProofURL:      *detail.BankProofURL,
		}
	}
	if detail.WiseProofURL != nil {
		response.Wise = &model.WiseProofResponse{
			WiseEmail:   deref(detail.WiseEmail),
			AccountName: deref(detail.WiseAccountName),
			ProofURL:    *detail.WiseProofURL,
		}
	}
	return response
}

func PaymentDetailsToResponse(details []entity.PaymentDetail) []*model.PaymentReviewResponse {
	responses := make([]*model.PaymentReviewResponse, 0, len(details))
	for i := range details {
		responses = append(responses, PaymentDetailToResponse(&details[i]))
	}
	return responses
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
