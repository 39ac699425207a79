package response

import (
	"time"

	"autoshop/internal/domain/entities"
)

type JobResponse struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`
	Status         string   `json:"status"`
}

type PartResponse struct {
	ID         string  `json:"id"`
	PartNumber string  `json:"part_number"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unit_cost"`
	UnitPrice  float64 `json:"unit_price"`
	Total      float64 `json:"total"`
}

type WorkOrderResponse struct {
	ID          string         `json:"id"`
	CustomerID  string         `json:"customer_id"`
	VehicleID   string         `json:"vehicle_id"`
	EstimateID  string         `json:"estimate_id,omitempty"`
	Jobs        []JobResponse  `json:"jobs"`
	Parts       []PartResponse `json:"parts"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	MileageIn   int            `json:"mileage_in"`
	MileageOut  *int           `json:"mileage_out,omitempty"`
	LabourTotal float64        `json:"labour_total"`
	PartsTotal  float64        `json:"parts_total"`
	TaxAmount   float64        `json:"tax_amount"`
	Total       float64        `json:"total"`
	InvoiceID   string         `json:"invoice_id,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	CreatedBy   string         `json:"created_by,omitempty"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Version     int64          `json:"version"`
}

func FromWorkOrder(w entities.WorkOrder) WorkOrderResponse {
	jobs := make([]JobResponse, 0, len(w.Jobs))
	for _, j := range w.Jobs {
		jobs = append(jobs, JobResponse{
			ID:             j.ID,
			Description:    j.Description,
			EstimatedHours: j.EstimatedHours,
			ActualHours:    j.ActualHours,
			Status:         string(j.Status),
		})
	}
	parts := make([]PartResponse, 0, len(w.Parts))
	for _, p := range w.Parts {
		parts = append(parts, PartResponse{
			ID:         p.ID,
			PartNumber: p.PartNumber,
			Quantity:   p.Quantity,
			UnitCost:   p.UnitCost,
			UnitPrice:  p.UnitPrice,
			Total:      p.Total,
		})
	}
	return WorkOrderResponse{
		ID:          w.ID,
		CustomerID:  w.CustomerID,
		VehicleID:   w.VehicleID,
		EstimateID:  w.EstimateID,
		Jobs:        jobs,
		Parts:       parts,
		Status:      string(w.Status),
		Priority:    string(w.Priority),
		MileageIn:   w.MileageIn,
		MileageOut:  w.MileageOut,
		LabourTotal: w.LabourTotal,
		PartsTotal:  w.PartsTotal,
		TaxAmount:   w.TaxAmount,
		Total:       w.Total,
		InvoiceID:   w.InvoiceID,
		Notes:       w.Notes,
		CreatedBy:   w.CreatedBy,
		StartedAt:   w.StartedAt,
		CompletedAt: w.CompletedAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Version:     w.Version,
	}
}

func FromWorkOrders(list []entities.WorkOrder) []WorkOrderResponse {
	out := make([]WorkOrderResponse, 0, len(list))
	for _, w := range list {
		out = append(out, FromWorkOrder(w))
	}
	return out
}
