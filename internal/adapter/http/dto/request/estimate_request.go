package request

import (
	"time"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
)

type CreateEstimateRequest struct {
	CustomerID     string            `json:"customer_id" binding:"required"`
	VehicleID      string            `json:"vehicle_id" binding:"required"`
	LineItems      []LineItemRequest `json:"line_items"`
	DiscountAmount float64           `json:"discount_amount"`
	Notes          string            `json:"notes"`
	ValidUntil     *time.Time        `json:"valid_until"`
}

func (r CreateEstimateRequest) ToInput(actor string) usecase.CreateEstimateInput {
	return usecase.CreateEstimateInput{
		CustomerID:     r.CustomerID,
		VehicleID:      r.VehicleID,
		LineItems:      toLineItemInputs(r.LineItems),
		DiscountAmount: r.DiscountAmount,
		Notes:          r.Notes,
		ValidUntil:     r.ValidUntil,
		CreatedBy:      actor,
	}
}

type UpdateEstimateRequest struct {
	DiscountAmount *float64   `json:"discount_amount"`
	Notes          *string    `json:"notes"`
	ValidUntil     *time.Time `json:"valid_until"`
}

func (r UpdateEstimateRequest) ToInput() usecase.UpdateEstimateInput {
	return usecase.UpdateEstimateInput{
		DiscountAmount: r.DiscountAmount,
		Notes:          r.Notes,
		ValidUntil:     r.ValidUntil,
	}
}

type RejectEstimateRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ConvertEstimateRequest struct {
	MileageIn int    `json:"mileage_in"`
	Priority  string `json:"priority"`
	Notes     string `json:"notes"`
}

func (r ConvertEstimateRequest) ToInput(actor string) usecase.ConvertEstimateInput {
	return usecase.ConvertEstimateInput{
		MileageIn: r.MileageIn,
		Priority:  entities.WorkOrderPriority(r.Priority),
		Notes:     r.Notes,
		CreatedBy: actor,
	}
}
