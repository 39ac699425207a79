package entities

import "time"

// AppointmentStatus represents the booking state of a time slot.

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// OccupiesSlot reports whether this appointment still blocks its
// (date, time) slot. Matching is by exact scheduled_time string; duration
// does not block adjacent ticks.
func (s AppointmentStatus) OccupiesSlot() bool {
	return s != AppointmentStatusCancelled && s != AppointmentStatusCompleted
}

// Reschedulable reports whether date/time may still change.
func (s AppointmentStatus) Reschedulable() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

// Appointment books exactly one (scheduled_date, scheduled_time) slot while
// active. ScheduledDate is "2006-01-02", ScheduledTime is "15:04".
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI scheduled_date-index (PK: scheduled_date)
//   - Slot-lock items share the table under key "SLOT#<date>#<time>" so a
//     booking and its lock commit in one transaction.

type Appointment struct {
	ID               string            `json:"id"`
	CustomerID       string            `json:"customer_id"`
	VehicleID        string            `json:"vehicle_id"`
	ScheduledDate    string            `json:"scheduled_date"`
	ScheduledTime    string            `json:"scheduled_time"`
	EstimatedMinutes int               `json:"estimated_minutes,omitempty"`
	Status           AppointmentStatus `json:"status"`
	CancelReason     string            `json:"cancel_reason,omitempty"`
	WorkOrderID      string            `json:"work_order_id,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Version          int64             `json:"version"`
}
