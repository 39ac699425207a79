package response

import (
	"time"

	"autoshop/internal/domain/entities"
)

type InvoiceResponse struct {
	ID             string             `json:"id"`
	CustomerID     string             `json:"customer_id"`
	VehicleID      string             `json:"vehicle_id"`
	WorkOrderID    string             `json:"work_order_id,omitempty"`
	LineItems      []LineItemResponse `json:"line_items"`
	Subtotal       float64            `json:"subtotal"`
	DiscountAmount float64            `json:"discount_amount"`
	TaxRate        float64            `json:"tax_rate"`
	TaxAmount      float64            `json:"tax_amount"`
	Total          float64            `json:"total"`
	AmountPaid     float64            `json:"amount_paid"`
	AmountDue      float64            `json:"amount_due"`
	Status         string             `json:"status"`
	PaymentIDs     []string           `json:"payment_ids,omitempty"`
	CancelReason   string             `json:"cancel_reason,omitempty"`
	DueDate        *time.Time         `json:"due_date,omitempty"`
	SentAt         *time.Time         `json:"sent_at,omitempty"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`
	CreatedBy      string             `json:"created_by,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Version        int64              `json:"version"`
}

func FromInvoice(i entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             i.ID,
		CustomerID:     i.CustomerID,
		VehicleID:      i.VehicleID,
		WorkOrderID:    i.WorkOrderID,
		LineItems:      fromLineItems(i.LineItems),
		Subtotal:       i.Subtotal,
		DiscountAmount: i.DiscountAmount,
		TaxRate:        i.TaxRate,
		TaxAmount:      i.TaxAmount,
		Total:          i.Total,
		AmountPaid:     i.AmountPaid,
		AmountDue:      i.AmountDue,
		Status:         string(i.Status),
		PaymentIDs:     i.PaymentIDs,
		CancelReason:   i.CancelReason,
		DueDate:        i.DueDate,
		SentAt:         i.SentAt,
		PaidAt:         i.PaidAt,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
		Version:        i.Version,
	}
}

func FromInvoices(list []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromInvoice(i))
	}
	return out
}
