package interfaces

import (
	"context"

	"autoshop/internal/domain/entities"
)

// IAppointmentRepository abstracts DynamoDB persistence for Appointment.
//
// Create writes the appointment together with its slot-lock item in one
// transaction; a taken slot surfaces as ErrSlotUnavailable. Update receives
// the previous document so the repository can move or release the slot lock
// when the schedule or occupancy changed, again in one transaction.

type IAppointmentRepository interface {
	Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]entities.Appointment, error)
	List(ctx context.Context, customerID string) ([]entities.Appointment, error)
	Update(ctx context.Context, a entities.Appointment, prev entities.Appointment) (entities.Appointment, error)
}
