package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"autoshop/internal/domain/entities"
	"autoshop/internal/infrastructure/config"
	"autoshop/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrInvalidAppointmentID = errors.New("invalid appointment id")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidSlot          = errors.New("time is not a bookable slot")
	ErrSlotTaken            = errors.New("slot already booked")
	ErrAppointmentLocked    = errors.New("appointment can no longer be changed")
	ErrInvalidDuration      = errors.New("invalid duration")
	ErrInvalidApptStatus    = errors.New("invalid appointment status")
	ErrCancelViaUpdate      = errors.New("use cancel to cancel an appointment")
)

const defaultSlotDurationMinutes = 60

type CreateAppointmentInput struct {
	CustomerID       string
	VehicleID        string
	ScheduledDate    string
	ScheduledTime    string
	EstimatedMinutes int
	Notes            string
}

type UpdateAppointmentInput struct {
	ScheduledDate *string
	ScheduledTime *string
	Status        *entities.AppointmentStatus
	Notes         *string
	WorkOrderID   *string
}

// IAppointmentUseCase books fixed-granularity slots inside the configured
// business hours. Occupancy is matched by exact scheduled_time string: a
// long appointment does not block adjacent ticks, only its own.

type IAppointmentUseCase interface {
	Create(ctx context.Context, in CreateAppointmentInput) (entities.Appointment, error)
	GetByID(ctx context.Context, id string) (entities.Appointment, error)
	List(ctx context.Context, customerID string) ([]entities.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]entities.Appointment, error)
	Update(ctx context.Context, id string, in UpdateAppointmentInput) (entities.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (entities.Appointment, error)
	AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]string, error)
}

type AppointmentUseCase struct {
	repo      interfaces.IAppointmentRepository
	customers interfaces.ICustomerGateway
	vehicles  interfaces.IVehicleGateway
	cfg       config.Shop
}

var _ IAppointmentUseCase = (*AppointmentUseCase)(nil)

func NewAppointmentUseCase(
	repo interfaces.IAppointmentRepository,
	customers interfaces.ICustomerGateway,
	vehicles interfaces.IVehicleGateway,
	cfg config.Shop,
) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, customers: customers, vehicles: vehicles, cfg: cfg}
}

// AvailableSlots returns the ordered free ticks of a day. A tick counts as
// taken iff some appointment that still occupies its slot has exactly that
// scheduled_time; ticks whose start plus duration would run past closing
// are not offered.
func (u *AppointmentUseCase) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]string, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	if durationMinutes == 0 {
		durationMinutes = defaultSlotDurationMinutes
	}
	if durationMinutes < 0 {
		return nil, ErrInvalidDuration
	}

	booked, err := u.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, a := range booked {
		if a.Status.OccupiesSlot() {
			taken[a.ScheduledTime] = true
		}
	}

	var free []string
	for _, tick := range u.ticks(durationMinutes) {
		if !taken[tick] {
			free = append(free, tick)
		}
	}
	return free, nil
}

func (u *AppointmentUseCase) Create(ctx context.Context, in CreateAppointmentInput) (entities.Appointment, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	in.ScheduledDate = strings.TrimSpace(in.ScheduledDate)
	in.ScheduledTime = strings.TrimSpace(in.ScheduledTime)
	if in.CustomerID == "" {
		return entities.Appointment{}, ErrInvalidCustomerID
	}
	if in.VehicleID == "" {
		return entities.Appointment{}, ErrInvalidVehicleID
	}
	if _, err := time.Parse("2006-01-02", in.ScheduledDate); err != nil {
		return entities.Appointment{}, ErrInvalidDate
	}
	if !u.isBookableTick(in.ScheduledTime) {
		return entities.Appointment{}, ErrInvalidSlot
	}
	if err := u.checkReferences(ctx, in.CustomerID, in.VehicleID); err != nil {
		return entities.Appointment{}, err
	}

	minutes := in.EstimatedMinutes
	if minutes == 0 {
		minutes = defaultSlotDurationMinutes
	}
	if minutes < 0 {
		return entities.Appointment{}, ErrInvalidDuration
	}

	now := time.Now().UTC()
	a := entities.Appointment{
		ID:               uuid.NewString(),
		CustomerID:       in.CustomerID,
		VehicleID:        in.VehicleID,
		ScheduledDate:    in.ScheduledDate,
		ScheduledTime:    in.ScheduledTime,
		EstimatedMinutes: minutes,
		Status:           entities.AppointmentStatusPending,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
		Version:          1,
	}

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		if errors.Is(err, interfaces.ErrSlotUnavailable) {
			return entities.Appointment{}, ErrSlotTaken
		}
		return entities.Appointment{}, err
	}
	return created, nil
}

func (u *AppointmentUseCase) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

func (u *AppointmentUseCase) List(ctx context.Context, customerID string) ([]entities.Appointment, error) {
	return u.repo.List(ctx, strings.TrimSpace(customerID))
}

func (u *AppointmentUseCase) ListByDate(ctx context.Context, date string) ([]entities.Appointment, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	return u.repo.ListByDate(ctx, date)
}

// Update reschedules or progresses an appointment that is still pending or
// confirmed. Rescheduling re-validates the target slot; the repository
// moves the slot lock in the same transaction as the document write.
func (u *AppointmentUseCase) Update(ctx context.Context, id string, in UpdateAppointmentInput) (entities.Appointment, error) {
	a, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if !a.Status.Reschedulable() {
		return entities.Appointment{}, ErrAppointmentLocked
	}
	prev := a

	if in.ScheduledDate != nil {
		d := strings.TrimSpace(*in.ScheduledDate)
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return entities.Appointment{}, ErrInvalidDate
		}
		a.ScheduledDate = d
	}
	if in.ScheduledTime != nil {
		tm := strings.TrimSpace(*in.ScheduledTime)
		if !u.isBookableTick(tm) {
			return entities.Appointment{}, ErrInvalidSlot
		}
		a.ScheduledTime = tm
	}
	if in.Status != nil {
		switch *in.Status {
		case entities.AppointmentStatusPending, entities.AppointmentStatusConfirmed, entities.AppointmentStatusCompleted:
			a.Status = *in.Status
		case entities.AppointmentStatusCancelled:
			return entities.Appointment{}, ErrCancelViaUpdate
		default:
			return entities.Appointment{}, ErrInvalidApptStatus
		}
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if in.WorkOrderID != nil {
		a.WorkOrderID = strings.TrimSpace(*in.WorkOrderID)
	}

	return u.update(ctx, a, prev)
}

func (u *AppointmentUseCase) Cancel(ctx context.Context, id, reason string) (entities.Appointment, error) {
	a, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if !a.Status.Reschedulable() {
		return entities.Appointment{}, ErrAppointmentLocked
	}
	prev := a
	a.Status = entities.AppointmentStatusCancelled
	a.CancelReason = strings.TrimSpace(reason)
	return u.update(ctx, a, prev)
}

func (u *AppointmentUseCase) update(ctx context.Context, a, prev entities.Appointment) (entities.Appointment, error) {
	a.UpdatedAt = time.Now().UTC()
	updated, err := u.repo.Update(ctx, a, prev)
	if err != nil {
		if errors.Is(err, interfaces.ErrSlotUnavailable) {
			return entities.Appointment{}, ErrSlotTaken
		}
		return entities.Appointment{}, err
	}
	return updated, nil
}

func (u *AppointmentUseCase) checkReferences(ctx context.Context, customerID, vehicleID string) error {
	c, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c.ID == "" {
		return ErrCustomerNotFound
	}
	v, err := u.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if v.ID == "" {
		return ErrVehicleNotFound
	}
	if v.CustomerID != customerID {
		return ErrVehicleNotOwned
	}
	return nil
}

// ticks lists the grid of bookable start times whose full duration fits
// before closing.
func (u *AppointmentUseCase) ticks(durationMinutes int) []string {
	start, _ := time.Parse("15:04", u.cfg.BusinessHoursStart)
	end, _ := time.Parse("15:04", u.cfg.BusinessHoursEnd)
	step := time.Duration(u.cfg.SlotGranularityMinutes) * time.Minute
	fit := time.Duration(durationMinutes) * time.Minute

	var out []string
	for t := start; !t.Add(fit).After(end); t = t.Add(step) {
		out = append(out, t.Format("15:04"))
	}
	return out
}

func (u *AppointmentUseCase) isBookableTick(tm string) bool {
	for _, tick := range u.ticks(u.cfg.SlotGranularityMinutes) {
		if tick == tm {
			return true
		}
	}
	return false
}
