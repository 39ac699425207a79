package request

import (
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
)

type ApplyPaymentRequest struct {
	InvoiceID string  `json:"invoice_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Method    string  `json:"method" binding:"required"`
	Reference string  `json:"reference"`
}

func (r ApplyPaymentRequest) ToInput() usecase.ApplyPaymentInput {
	return usecase.ApplyPaymentInput{
		InvoiceID: r.InvoiceID,
		Amount:    r.Amount,
		Method:    entities.PaymentMethod(r.Method),
		Reference: r.Reference,
	}
}

type RefundPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
