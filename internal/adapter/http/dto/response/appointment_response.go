package response

import (
	"time"

	"autoshop/internal/domain/entities"
)

type AppointmentResponse struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customer_id"`
	VehicleID        string    `json:"vehicle_id"`
	ScheduledDate    string    `json:"scheduled_date"`
	ScheduledTime    string    `json:"scheduled_time"`
	EstimatedMinutes int       `json:"estimated_minutes,omitempty"`
	Status           string    `json:"status"`
	CancelReason     string    `json:"cancel_reason,omitempty"`
	WorkOrderID      string    `json:"work_order_id,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Version          int64     `json:"version"`
}

func FromAppointment(a entities.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:               a.ID,
		CustomerID:       a.CustomerID,
		VehicleID:        a.VehicleID,
		ScheduledDate:    a.ScheduledDate,
		ScheduledTime:    a.ScheduledTime,
		EstimatedMinutes: a.EstimatedMinutes,
		Status:           string(a.Status),
		CancelReason:     a.CancelReason,
		WorkOrderID:      a.WorkOrderID,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		Version:          a.Version,
	}
}

func FromAppointments(list []entities.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAppointment(a))
	}
	return out
}

// SlotsResponse lists the free start times of one day.
type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
