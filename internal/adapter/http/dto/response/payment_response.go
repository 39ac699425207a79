package response

import (
	"time"

	"autoshop/internal/domain/entities"
)

type PaymentResponse struct {
	ID           string     `json:"id"`
	InvoiceID    string     `json:"invoice_id"`
	CustomerID   string     `json:"customer_id"`
	Amount       float64    `json:"amount"`
	Method       string     `json:"method"`
	Status       string     `json:"status"`
	Reference    string     `json:"reference,omitempty"`
	RefundReason string     `json:"refund_reason,omitempty"`
	ProcessedAt  time.Time  `json:"processed_at"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		CustomerID:   p.CustomerID,
		Amount:       p.Amount,
		Method:       string(p.Method),
		Status:       string(p.Status),
		Reference:    p.Reference,
		RefundReason: p.RefundReason,
		ProcessedAt:  p.ProcessedAt,
		RefundedAt:   p.RefundedAt,
		CreatedAt:    p.CreatedAt,
	}
}

func FromPayments(list []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPayment(p))
	}
	return out
}
