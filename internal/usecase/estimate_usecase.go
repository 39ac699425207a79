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
	ErrEstimateNotFound     = errors.New("estimate not found")
	ErrInvalidEstimateID    = errors.New("invalid estimate id")
	ErrInvalidCustomerID    = errors.New("invalid customer id")
	ErrInvalidVehicleID     = errors.New("invalid vehicle id")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleNotOwned      = errors.New("vehicle does not belong to customer")
	ErrEstimateNotEditable  = errors.New("estimate can no longer be edited")
	ErrEstimateExpired      = errors.New("estimate validity window has passed")
	ErrEstimateConverted    = errors.New("estimate already converted to a work order")
	ErrEstimateNotDeletable = errors.New("estimate can no longer be deleted")
	ErrLineItemNotFound     = errors.New("line item not found")
	ErrInvalidLineItem      = errors.New("invalid line item")
	ErrRejectReasonRequired = errors.New("reject reason is required")
)

type LineItemInput struct {
	Description string
	Kind        entities.LineItemKind
	Quantity    float64
	UnitPrice   float64
	Discount    float64
}

type CreateEstimateInput struct {
	CustomerID     string
	VehicleID      string
	LineItems      []LineItemInput
	DiscountAmount float64
	Notes          string
	ValidUntil     *time.Time
	CreatedBy      string
}

type UpdateEstimateInput struct {
	DiscountAmount *float64
	Notes          *string
	ValidUntil     *time.Time
}

type ConvertEstimateInput struct {
	MileageIn int
	Priority  entities.WorkOrderPriority
	Notes     string
	CreatedBy string
}

// IEstimateUseCase exposes the estimate lifecycle:
// draft -> sent -> approved/rejected -> converted, with line-item editing
// while the document is still draft or sent. Every mutation recomputes the
// totals before the document is saved.

type IEstimateUseCase interface {
	Create(ctx context.Context, in CreateEstimateInput) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	List(ctx context.Context, customerID string) ([]entities.Estimate, error)
	Update(ctx context.Context, id string, in UpdateEstimateInput) (entities.Estimate, error)
	AddLineItem(ctx context.Context, id string, in LineItemInput) (entities.Estimate, error)
	UpdateLineItem(ctx context.Context, id, itemID string, in LineItemInput) (entities.Estimate, error)
	RemoveLineItem(ctx context.Context, id, itemID string) (entities.Estimate, error)
	Send(ctx context.Context, id string) (entities.Estimate, error)
	Approve(ctx context.Context, id, actor string) (entities.Estimate, error)
	Reject(ctx context.Context, id, reason string) (entities.Estimate, error)
	Convert(ctx context.Context, id string, in ConvertEstimateInput) (entities.WorkOrder, error)
	Delete(ctx context.Context, id string) error
}

type EstimateUseCase struct {
	repo      interfaces.IEstimateRepository
	customers interfaces.ICustomerGateway
	vehicles  interfaces.IVehicleGateway
	txn       interfaces.IDocumentTxn
	cfg       config.Shop
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	repo interfaces.IEstimateRepository,
	customers interfaces.ICustomerGateway,
	vehicles interfaces.IVehicleGateway,
	txn interfaces.IDocumentTxn,
	cfg config.Shop,
) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, customers: customers, vehicles: vehicles, txn: txn, cfg: cfg}
}

func (u *EstimateUseCase) Create(ctx context.Context, in CreateEstimateInput) (entities.Estimate, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	if in.CustomerID == "" {
		return entities.Estimate{}, ErrInvalidCustomerID
	}
	if in.VehicleID == "" {
		return entities.Estimate{}, ErrInvalidVehicleID
	}

	if err := u.checkReferences(ctx, in.CustomerID, in.VehicleID); err != nil {
		return entities.Estimate{}, err
	}

	items := make([]entities.LineItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		built, err := buildLineItem(li)
		if err != nil {
			return entities.Estimate{}, err
		}
		items = append(items, built)
	}

	now := time.Now().UTC()
	validUntil := in.ValidUntil
	if validUntil == nil {
		v := now.AddDate(0, 0, u.cfg.EstimateValidDays)
		validUntil = &v
	}

	e := entities.Estimate{
		ID:             uuid.NewString(),
		CustomerID:     in.CustomerID,
		VehicleID:      in.VehicleID,
		LineItems:      items,
		DiscountAmount: in.DiscountAmount,
		TaxRate:        u.cfg.TaxRate,
		Status:         entities.EstimateStatusDraft,
		Notes:          in.Notes,
		ValidUntil:     validUntil,
		CreatedBy:      strings.TrimSpace(in.CreatedBy),
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}
	recomputeEstimate(&e)
	return u.repo.Create(ctx, e)
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) List(ctx context.Context, customerID string) ([]entities.Estimate, error) {
	return u.repo.List(ctx, strings.TrimSpace(customerID))
}

func (u *EstimateUseCase) Update(ctx context.Context, id string, in UpdateEstimateInput) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.Editable() {
		return entities.Estimate{}, ErrEstimateNotEditable
	}

	if in.DiscountAmount != nil {
		e.DiscountAmount = *in.DiscountAmount
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	if in.ValidUntil != nil {
		e.ValidUntil = in.ValidUntil
	}
	return u.save(ctx, e)
}

func (u *EstimateUseCase) AddLineItem(ctx context.Context, id string, in LineItemInput) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.Editable() {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	built, err := buildLineItem(in)
	if err != nil {
		return entities.Estimate{}, err
	}
	e.LineItems = append(e.LineItems, built)
	return u.save(ctx, e)
}

func (u *EstimateUseCase) UpdateLineItem(ctx context.Context, id, itemID string, in LineItemInput) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.Editable() {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	idx := lineItemIndex(e.LineItems, itemID)
	if idx < 0 {
		return entities.Estimate{}, ErrLineItemNotFound
	}
	built, err := buildLineItem(in)
	if err != nil {
		return entities.Estimate{}, err
	}
	built.ID = itemID
	e.LineItems[idx] = built
	return u.save(ctx, e)
}

func (u *EstimateUseCase) RemoveLineItem(ctx context.Context, id, itemID string) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.Editable() {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	idx := lineItemIndex(e.LineItems, itemID)
	if idx < 0 {
		return entities.Estimate{}, ErrLineItemNotFound
	}
	e.LineItems = append(e.LineItems[:idx], e.LineItems[idx+1:]...)
	return u.save(ctx, e)
}

func (u *EstimateUseCase) Send(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.CanTransitionTo(entities.EstimateStatusSent) {
		return entities.Estimate{}, entities.NewInvalidTransition("estimate", string(e.Status), string(entities.EstimateStatusSent))
	}
	now := time.Now().UTC()
	e.Status = entities.EstimateStatusSent
	e.SentAt = &now
	return u.save(ctx, e)
}

func (u *EstimateUseCase) Approve(ctx context.Context, id, actor string) (entities.Estimate, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.CanTransitionTo(entities.EstimateStatusApproved) {
		return entities.Estimate{}, entities.NewInvalidTransition("estimate", string(e.Status), string(entities.EstimateStatusApproved))
	}
	now := time.Now().UTC()
	if e.ExpiredAt(now) {
		return entities.Estimate{}, ErrEstimateExpired
	}
	e.Status = entities.EstimateStatusApproved
	e.ApprovedAt = &now
	e.ApprovedBy = strings.TrimSpace(actor)
	return u.save(ctx, e)
}

func (u *EstimateUseCase) Reject(ctx context.Context, id, reason string) (entities.Estimate, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Estimate{}, ErrRejectReasonRequired
	}
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.Status.CanTransitionTo(entities.EstimateStatusRejected) {
		return entities.Estimate{}, entities.NewInvalidTransition("estimate", string(e.Status), string(entities.EstimateStatusRejected))
	}
	now := time.Now().UTC()
	e.Status = entities.EstimateStatusRejected
	e.RejectedAt = &now
	e.RejectReason = reason
	return u.save(ctx, e)
}

// Convert turns an approved estimate into a work order. The estimate flip
// and the work-order creation commit in one transaction; the
// ConvertedToWorkOrderID guard makes a duplicate call fail instead of
// producing a second work order.
func (u *EstimateUseCase) Convert(ctx context.Context, id string, in ConvertEstimateInput) (entities.WorkOrder, error) {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if e.ConvertedToWorkOrderID != "" {
		return entities.WorkOrder{}, ErrEstimateConverted
	}
	if !e.Status.CanTransitionTo(entities.EstimateStatusConverted) {
		return entities.WorkOrder{}, entities.NewInvalidTransition("estimate", string(e.Status), string(entities.EstimateStatusConverted))
	}
	now := time.Now().UTC()
	if e.ExpiredAt(now) {
		return entities.WorkOrder{}, ErrEstimateExpired
	}

	priority := in.Priority
	if priority == "" {
		priority = entities.WorkOrderPriorityNormal
	}

	wo := entities.WorkOrder{
		ID:         uuid.NewString(),
		CustomerID: e.CustomerID,
		VehicleID:  e.VehicleID,
		EstimateID: e.ID,
		Status:     entities.WorkOrderStatusCreated,
		Priority:   priority,
		MileageIn:  in.MileageIn,
		Notes:      in.Notes,
		CreatedBy:  strings.TrimSpace(in.CreatedBy),
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}

	// Part items become parts; labour, service and misc items become jobs
	// with the quoted quantity as estimated hours.
	for _, li := range e.LineItems {
		if li.Kind == entities.LineItemKindPart {
			wo.Parts = append(wo.Parts, entities.Part{
				ID:         uuid.NewString(),
				PartNumber: li.Description,
				Quantity:   li.Quantity,
				UnitCost:   li.UnitPrice / u.cfg.PartsMarkupFactor,
				UnitPrice:  li.UnitPrice,
			})
			continue
		}
		wo.Jobs = append(wo.Jobs, entities.Job{
			ID:             uuid.NewString(),
			Description:    li.Description,
			EstimatedHours: li.Quantity,
			Status:         entities.JobStatusPending,
		})
	}
	rollupWorkOrder(&wo, u.cfg)

	e.Status = entities.EstimateStatusConverted
	e.ConvertedToWorkOrderID = wo.ID
	e.UpdatedAt = now

	if err := u.txn.ConvertEstimate(ctx, e, wo); err != nil {
		if errors.Is(err, interfaces.ErrGuardAlreadySet) {
			return entities.WorkOrder{}, ErrEstimateConverted
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	e, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.ConvertedToWorkOrderID != "" || !e.Status.Editable() {
		return ErrEstimateNotDeletable
	}
	return u.repo.Delete(ctx, e.ID)
}

func (u *EstimateUseCase) save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	recomputeEstimate(&e)
	e.UpdatedAt = time.Now().UTC()
	return u.repo.Save(ctx, e)
}

func (u *EstimateUseCase) checkReferences(ctx context.Context, customerID, vehicleID string) error {
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

func recomputeEstimate(e *entities.Estimate) {
	totals := pricing.DocumentTotals(e.LineItems, e.DiscountAmount, e.TaxRate)
	e.Subtotal = totals.Subtotal
	e.TaxAmount = totals.TaxAmount
	e.Total = totals.Total
}

func buildLineItem(in LineItemInput) (entities.LineItem, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" || !in.Kind.Valid() || in.Quantity < 0 || in.UnitPrice < 0 || in.Discount < 0 {
		return entities.LineItem{}, ErrInvalidLineItem
	}
	li := entities.LineItem{
		ID:          uuid.NewString(),
		Description: in.Description,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Discount:    in.Discount,
	}
	li.Total = pricing.LineTotal(li)
	return li, nil
}

func lineItemIndex(items []entities.LineItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}
