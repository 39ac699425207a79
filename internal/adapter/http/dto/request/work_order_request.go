package request

import (
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
)

type JobRequest struct {
	Description    string   `json:"description" binding:"required"`
	EstimatedHours float64  `json:"estimated_hours"`
	ActualHours    *float64 `json:"actual_hours"`
	Status         string   `json:"status"`
}

func (r JobRequest) ToInput() usecase.JobInput {
	return usecase.JobInput{
		Description:    r.Description,
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
		Status:         entities.JobStatus(r.Status),
	}
}

type PartRequest struct {
	PartNumber string  `json:"part_number" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required"`
	UnitCost   float64 `json:"unit_cost"`
	UnitPrice  float64 `json:"unit_price"`
}

func (r PartRequest) ToInput() usecase.PartInput {
	return usecase.PartInput{
		PartNumber: r.PartNumber,
		Quantity:   r.Quantity,
		UnitCost:   r.UnitCost,
		UnitPrice:  r.UnitPrice,
	}
}

type CreateWorkOrderRequest struct {
	CustomerID string        `json:"customer_id" binding:"required"`
	VehicleID  string        `json:"vehicle_id" binding:"required"`
	Jobs       []JobRequest  `json:"jobs"`
	Parts      []PartRequest `json:"parts"`
	Priority   string        `json:"priority"`
	MileageIn  int           `json:"mileage_in"`
	Notes      string        `json:"notes"`
}

func (r CreateWorkOrderRequest) ToInput(actor string) usecase.CreateWorkOrderInput {
	in := usecase.CreateWorkOrderInput{
		CustomerID: r.CustomerID,
		VehicleID:  r.VehicleID,
		Priority:   entities.WorkOrderPriority(r.Priority),
		MileageIn:  r.MileageIn,
		Notes:      r.Notes,
		CreatedBy:  actor,
	}
	for _, j := range r.Jobs {
		in.Jobs = append(in.Jobs, j.ToInput())
	}
	for _, p := range r.Parts {
		in.Parts = append(in.Parts, p.ToInput())
	}
	return in
}

type UpdateWorkOrderRequest struct {
	Priority   *string `json:"priority"`
	MileageOut *int    `json:"mileage_out"`
	Notes      *string `json:"notes"`
}

func (r UpdateWorkOrderRequest) ToInput() usecase.UpdateWorkOrderInput {
	in := usecase.UpdateWorkOrderInput{
		MileageOut: r.MileageOut,
		Notes:      r.Notes,
	}
	if r.Priority != nil {
		p := entities.WorkOrderPriority(*r.Priority)
		in.Priority = &p
	}
	return in
}

type ChangeWorkOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
