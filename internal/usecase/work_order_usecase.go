package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"autoshop/internal/domain/entities"
	"autoshop/internal/domain/pricing"
	"autoshop/internal/infrastructure/config"
	"autoshop/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrWorkOrderNotFound     = errors.New("work order not found")
	ErrInvalidWorkOrderID    = errors.New("invalid work order id")
	ErrWorkOrderTerminal     = errors.New("work order is in a terminal state")
	ErrWorkOrderHasInvoice   = errors.New("work order already has an invoice")
	ErrWorkOrderNotCompleted = errors.New("work order is not completed")
	ErrJobNotFound           = errors.New("job not found")
	ErrInvalidJob            = errors.New("invalid job")
	ErrPartNotFound          = errors.New("part not found")
	ErrInvalidPart           = errors.New("invalid part")
	ErrInvalidStatus         = errors.New("invalid work order status")
)

type JobInput struct {
	Description    string
	EstimatedHours float64
	ActualHours    *float64
	Status         entities.JobStatus
}

type PartInput struct {
	PartNumber string
	Quantity   float64
	UnitCost   float64
	UnitPrice  float64
}

type CreateWorkOrderInput struct {
	CustomerID string
	VehicleID  string
	Jobs       []JobInput
	Parts      []PartInput
	Priority   entities.WorkOrderPriority
	MileageIn  int
	Notes      string
	CreatedBy  string
}

type UpdateWorkOrderInput struct {
	Priority   *entities.WorkOrderPriority
	MileageOut *int
	Notes      *string
}

// IWorkOrderUseCase drives the work-order state machine and the job/part
// rollup. Every job or part mutation recomputes labour, parts, tax and
// total before the document is saved; invoice generation is the atomic
// two-document exit from a completed work order.

type IWorkOrderUseCase interface {
	Create(ctx context.Context, in CreateWorkOrderInput) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	List(ctx context.Context, customerID string) ([]entities.WorkOrder, error)
	Update(ctx context.Context, id string, in UpdateWorkOrderInput) (entities.WorkOrder, error)
	ChangeStatus(ctx context.Context, id string, target entities.WorkOrderStatus) (entities.WorkOrder, error)
	AddJob(ctx context.Context, id string, in JobInput) (entities.WorkOrder, error)
	UpdateJob(ctx context.Context, id, jobID string, in JobInput) (entities.WorkOrder, error)
	RemoveJob(ctx context.Context, id, jobID string) (entities.WorkOrder, error)
	AddPart(ctx context.Context, id string, in PartInput) (entities.WorkOrder, error)
	UpdatePart(ctx context.Context, id, partID string, in PartInput) (entities.WorkOrder, error)
	RemovePart(ctx context.Context, id, partID string) (entities.WorkOrder, error)
	GenerateInvoice(ctx context.Context, id string) (entities.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type WorkOrderUseCase struct {
	repo      interfaces.IWorkOrderRepository
	customers interfaces.ICustomerGateway
	vehicles  interfaces.IVehicleGateway
	txn       interfaces.IDocumentTxn
	cfg       config.Shop
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

func NewWorkOrderUseCase(
	repo interfaces.IWorkOrderRepository,
	customers interfaces.ICustomerGateway,
	vehicles interfaces.IVehicleGateway,
	txn interfaces.IDocumentTxn,
	cfg config.Shop,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{repo: repo, customers: customers, vehicles: vehicles, txn: txn, cfg: cfg}
}

func (u *WorkOrderUseCase) Create(ctx context.Context, in CreateWorkOrderInput) (entities.WorkOrder, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	if in.CustomerID == "" {
		return entities.WorkOrder{}, ErrInvalidCustomerID
	}
	if in.VehicleID == "" {
		return entities.WorkOrder{}, ErrInvalidVehicleID
	}
	if err := u.checkReferences(ctx, in.CustomerID, in.VehicleID); err != nil {
		return entities.WorkOrder{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = entities.WorkOrderPriorityNormal
	}

	now := time.Now().UTC()
	wo := entities.WorkOrder{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		VehicleID:  in.VehicleID,
		Status:     entities.WorkOrderStatusCreated,
		Priority:   priority,
		MileageIn:  in.MileageIn,
		Notes:      in.Notes,
		CreatedBy:  strings.TrimSpace(in.CreatedBy),
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}
	for _, j := range in.Jobs {
		built, err := buildJob(j)
		if err != nil {
			return entities.WorkOrder{}, err
		}
		wo.Jobs = append(wo.Jobs, built)
	}
	for _, p := range in.Parts {
		built, err := buildPart(p)
		if err != nil {
			return entities.WorkOrder{}, err
		}
		wo.Parts = append(wo.Parts, built)
	}
	rollupWorkOrder(&wo, u.cfg)
	return u.repo.Create(ctx, wo)
}

func (u *WorkOrderUseCase) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}
	wo, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if wo.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return wo, nil
}

func (u *WorkOrderUseCase) List(ctx context.Context, customerID string) ([]entities.WorkOrder, error) {
	return u.repo.List(ctx, strings.TrimSpace(customerID))
}

func (u *WorkOrderUseCase) Update(ctx context.Context, id string, in UpdateWorkOrderInput) (entities.WorkOrder, error) {
	wo, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if wo.Status.Terminal() {
		return entities.WorkOrder{}, ErrWorkOrderTerminal
	}
	if in.Priority != nil {
		wo.Priority = *in.Priority
	}
	if in.MileageOut != nil {
		wo.MileageOut = in.MileageOut
	}
	if in.Notes != nil {
		wo.Notes = *in.Notes
	}
	return u.save(ctx, wo)
}

// ChangeStatus applies one transition from the work-order table. The first
// entry into in_progress stamps StartedAt; entering completed stamps
// CompletedAt.
func (u *WorkOrderUseCase) ChangeStatus(ctx context.Context, id string, target entities.WorkOrderStatus) (entities.WorkOrder, error) {
	switch target {
	case entities.WorkOrderStatusCreated, entities.WorkOrderStatusInProgress, entities.WorkOrderStatusWaitingParts,
		entities.WorkOrderStatusWaitingApproval, entities.WorkOrderStatusReady,
		entities.WorkOrderStatusCompleted, entities.WorkOrderStatusCancelled:
	default:
		return entities.WorkOrder{}, ErrInvalidStatus
	}

	wo, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if !wo.Status.CanTransitionTo(target) {
		return entities.WorkOrder{}, entities.NewInvalidTransition("work order", string(wo.Status), string(target))
	}

	now := time.Now().UTC()
	if target == entities.WorkOrderStatusInProgress && wo.StartedAt == nil {
		wo.StartedAt = &now
	}
	if target == entities.WorkOrderStatusCompleted {
		wo.CompletedAt = &now
	}
	wo.Status = target
	return u.save(ctx, wo)
}

func (u *WorkOrderUseCase) AddJob(ctx context.Context, id string, in JobInput) (entities.WorkOrder, error) {
	return u.mutate(ctx, id, func(wo *entities.WorkOrder) error {
		built, err := buildJob(in)
		if err != nil {
			return err
		}
		wo.Jobs = append(wo.Jobs, built)
		return nil
	})
}

func (u *WorkOrderUseCase) UpdateJob(ctx context.Context, id, jobID string, in JobInput) (entities.WorkOrder, error) {
	return u.mutate(ctx, id, func(wo *entities.WorkOrder) error {
		for i := range wo.Jobs {
			if wo.Jobs[i].ID == jobID {
				built, err := buildJob(in)
				if err != nil {
					return err
				}
				built.ID = jobID
				wo.Jobs[i] = built
				return nil
			}
		}
		return ErrJobNotFound
	})
}

func (u *WorkOrderUseCase) RemoveJob(ctx context.Context, id, jobID string) (entities.WorkOrder, error) {
	return u.mutate(ctx, id, func(wo *entities.WorkOrder) error {
		for i := range wo.Jobs {
			if wo.Jobs[i].ID == jobID {
				wo.Jobs = append(wo.Jobs[:i], wo.Jobs[i+1:]...)
				return nil
			}
		}
		return ErrJobNotFound
	})
}

func (u *WorkOrderUseCase) AddPart(ctx context.Context, id string, in PartInput) (entities.WorkOrder, error) {
	return u.mutate(ctx, id, func(wo *entities.WorkOrder) error {
		built, err := buildPart(in)
		if err != nil {
			return err
		}
		wo.Parts = append(wo.Parts, built)
		return nil
	})
}

func (u *WorkOrderUseCase) UpdatePart(ctx context.Context, id, partID string, in PartInput) (entities.WorkOrder, error) {
	return u.mutate(ctx, id, func(wo *entities.WorkOrder) error {
		for i := range wo.Parts {
			if wo.Parts[i].ID == partID {
				built, err := buildPart(in)
				if err != nil {
					return err
				}
				built.ID = partID
				wo.Parts[i] = built
				return nil
			}
		}
		return ErrPartNotFound
	})
}

func (u *WorkOrderUseCase) RemovePart(ctx context.Context, id, partID string) (entities.WorkOrder, error) {
	return u.mutate(ctx, id, func(wo *entities.WorkOrder) error {
		for i := range wo.Parts {
			if wo.Parts[i].ID == partID {
				wo.Parts = append(wo.Parts[:i], wo.Parts[i+1:]...)
				return nil
			}
		}
		return ErrPartNotFound
	})
}

// GenerateInvoice derives an invoice from a completed work order: jobs
// become labour line items at the configured labour rate, parts become part
// line items at their billed price. The invoice creation and the work
// order's InvoiceID back-reference commit in one transaction.
func (u *WorkOrderUseCase) GenerateInvoice(ctx context.Context, id string) (entities.Invoice, error) {
	wo, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if wo.InvoiceID != "" {
		return entities.Invoice{}, ErrWorkOrderHasInvoice
	}
	if wo.Status != entities.WorkOrderStatusCompleted {
		return entities.Invoice{}, ErrWorkOrderNotCompleted
	}

	now := time.Now().UTC()
	dueDate := now.AddDate(0, 0, u.cfg.InvoiceDueDays)
	inv := entities.Invoice{
		ID:          uuid.NewString(),
		CustomerID:  wo.CustomerID,
		VehicleID:   wo.VehicleID,
		WorkOrderID: wo.ID,
		TaxRate:     u.cfg.TaxRate,
		Status:      entities.InvoiceStatusDraft,
		DueDate:     &dueDate,
		CreatedBy:   wo.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
	for _, j := range wo.Jobs {
		inv.LineItems = append(inv.LineItems, entities.LineItem{
			ID:          uuid.NewString(),
			Description: j.Description,
			Kind:        entities.LineItemKindLabour,
			Quantity:    j.BilledHours(),
			UnitPrice:   u.cfg.LabourRate,
		})
	}
	for _, p := range wo.Parts {
		inv.LineItems = append(inv.LineItems, entities.LineItem{
			ID:          uuid.NewString(),
			Description: p.PartNumber,
			Kind:        entities.LineItemKindPart,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
		})
	}
	totals := pricing.DocumentTotals(inv.LineItems, inv.DiscountAmount, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.AmountDue = inv.Total

	wo.InvoiceID = inv.ID
	wo.UpdatedAt = now

	if err := u.txn.AttachInvoice(ctx, wo, inv); err != nil {
		if errors.Is(err, interfaces.ErrGuardAlreadySet) {
			return entities.Invoice{}, ErrWorkOrderHasInvoice
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (u *WorkOrderUseCase) Delete(ctx context.Context, id string) error {
	wo, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wo.InvoiceID != "" {
		return ErrWorkOrderHasInvoice
	}
	return u.repo.Delete(ctx, wo.ID)
}

func (u *WorkOrderUseCase) mutate(ctx context.Context, id string, fn func(*entities.WorkOrder) error) (entities.WorkOrder, error) {
	wo, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if wo.Status.Terminal() {
		return entities.WorkOrder{}, ErrWorkOrderTerminal
	}
	if err := fn(&wo); err != nil {
		return entities.WorkOrder{}, err
	}
	return u.save(ctx, wo)
}

func (u *WorkOrderUseCase) save(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	rollupWorkOrder(&wo, u.cfg)
	wo.UpdatedAt = time.Now().UTC()
	return u.repo.Save(ctx, wo)
}

func (u *WorkOrderUseCase) checkReferences(ctx context.Context, customerID, vehicleID string) error {
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

func rollupWorkOrder(wo *entities.WorkOrder, cfg config.Shop) {
	totals := pricing.WorkOrderRollup(wo.Jobs, wo.Parts, cfg.LabourRate, cfg.TaxRate)
	wo.LabourTotal = totals.LabourTotal
	wo.PartsTotal = totals.PartsTotal
	wo.TaxAmount = totals.TaxAmount
	wo.Total = totals.Total
}

func buildJob(in JobInput) (entities.Job, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" || in.EstimatedHours < 0 {
		return entities.Job{}, ErrInvalidJob
	}
	if in.ActualHours != nil && *in.ActualHours < 0 {
		return entities.Job{}, ErrInvalidJob
	}
	status := in.Status
	if status == "" {
		status = entities.JobStatusPending
	}
	switch status {
	case entities.JobStatusPending, entities.JobStatusInProgress, entities.JobStatusDone:
	default:
		return entities.Job{}, ErrInvalidJob
	}
	return entities.Job{
		ID:             uuid.NewString(),
		Description:    in.Description,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		Status:         status,
	}, nil
}

func buildPart(in PartInput) (entities.Part, error) {
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	if in.PartNumber == "" || in.Quantity < 0 || in.UnitCost < 0 || in.UnitPrice < 0 {
		return entities.Part{}, ErrInvalidPart
	}
	p := entities.Part{
		ID:         uuid.NewString(),
		PartNumber: in.PartNumber,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		UnitPrice:  in.UnitPrice,
	}
	p.Total = pricing.PartTotal(p)
	return p, nil
}
