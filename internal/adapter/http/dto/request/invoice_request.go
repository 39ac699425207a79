package request

import (
	"time"

	"autoshop/internal/usecase"
)

type CreateInvoiceRequest struct {
	CustomerID     string            `json:"customer_id" binding:"required"`
	VehicleID      string            `json:"vehicle_id" binding:"required"`
	LineItems      []LineItemRequest `json:"line_items"`
	DiscountAmount float64           `json:"discount_amount"`
	DueDate        *time.Time        `json:"due_date"`
}

func (r CreateInvoiceRequest) ToInput(actor string) usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		CustomerID:     r.CustomerID,
		VehicleID:      r.VehicleID,
		LineItems:      toLineItemInputs(r.LineItems),
		DiscountAmount: r.DiscountAmount,
		DueDate:        r.DueDate,
		CreatedBy:      actor,
	}
}

type UpdateInvoiceRequest struct {
	DiscountAmount *float64   `json:"discount_amount"`
	DueDate        *time.Time `json:"due_date"`
}

func (r UpdateInvoiceRequest) ToInput() usecase.UpdateInvoiceInput {
	return usecase.UpdateInvoiceInput{
		DiscountAmount: r.DiscountAmount,
		DueDate:        r.DueDate,
	}
}

type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}
