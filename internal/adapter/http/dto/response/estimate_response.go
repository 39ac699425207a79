package response

import (
	"time"

	"autoshop/internal/domain/entities"
)

type EstimateResponse struct {
	ID                     string             `json:"id"`
	CustomerID             string             `json:"customer_id"`
	VehicleID              string             `json:"vehicle_id"`
	LineItems              []LineItemResponse `json:"line_items"`
	Subtotal               float64            `json:"subtotal"`
	DiscountAmount         float64            `json:"discount_amount"`
	TaxRate                float64            `json:"tax_rate"`
	TaxAmount              float64            `json:"tax_amount"`
	Total                  float64            `json:"total"`
	Status                 string             `json:"status"`
	Notes                  string             `json:"notes,omitempty"`
	RejectReason           string             `json:"reject_reason,omitempty"`
	ValidUntil             *time.Time         `json:"valid_until,omitempty"`
	SentAt                 *time.Time         `json:"sent_at,omitempty"`
	ApprovedAt             *time.Time         `json:"approved_at,omitempty"`
	ApprovedBy             string             `json:"approved_by,omitempty"`
	RejectedAt             *time.Time         `json:"rejected_at,omitempty"`
	ConvertedToWorkOrderID string             `json:"converted_to_work_order_id,omitempty"`
	CreatedBy              string             `json:"created_by,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
	Version                int64              `json:"version"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:                     e.ID,
		CustomerID:             e.CustomerID,
		VehicleID:              e.VehicleID,
		LineItems:              fromLineItems(e.LineItems),
		Subtotal:               e.Subtotal,
		DiscountAmount:         e.DiscountAmount,
		TaxRate:                e.TaxRate,
		TaxAmount:              e.TaxAmount,
		Total:                  e.Total,
		Status:                 string(e.Status),
		Notes:                  e.Notes,
		RejectReason:           e.RejectReason,
		ValidUntil:             e.ValidUntil,
		SentAt:                 e.SentAt,
		ApprovedAt:             e.ApprovedAt,
		ApprovedBy:             e.ApprovedBy,
		RejectedAt:             e.RejectedAt,
		ConvertedToWorkOrderID: e.ConvertedToWorkOrderID,
		CreatedBy:              e.CreatedBy,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
		Version:                e.Version,
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e))
	}
	return out
}
