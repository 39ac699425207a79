package request

import (
	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase"
)

type CreateAppointmentRequest struct {
	CustomerID       string `json:"customer_id" binding:"required"`
	VehicleID        string `json:"vehicle_id" binding:"required"`
	ScheduledDate    string `json:"scheduled_date" binding:"required"`
	ScheduledTime    string `json:"scheduled_time" binding:"required"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Notes            string `json:"notes"`
}

func (r CreateAppointmentRequest) ToInput() usecase.CreateAppointmentInput {
	return usecase.CreateAppointmentInput{
		CustomerID:       r.CustomerID,
		VehicleID:        r.VehicleID,
		ScheduledDate:    r.ScheduledDate,
		ScheduledTime:    r.ScheduledTime,
		EstimatedMinutes: r.EstimatedMinutes,
		Notes:            r.Notes,
	}
}

type UpdateAppointmentRequest struct {
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
	WorkOrderID   *string `json:"work_order_id"`
}

func (r UpdateAppointmentRequest) ToInput() usecase.UpdateAppointmentInput {
	in := usecase.UpdateAppointmentInput{
		ScheduledDate: r.ScheduledDate,
		ScheduledTime: r.ScheduledTime,
		Notes:         r.Notes,
		WorkOrderID:   r.WorkOrderID,
	}
	if r.Status != nil {
		s := entities.AppointmentStatus(*r.Status)
		in.Status = &s
	}
	return in
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}
