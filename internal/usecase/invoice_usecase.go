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
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvalidInvoiceID    = errors.New("invalid invoice id")
	ErrInvoiceNotDraft     = errors.New("invoice is no longer a draft")
	ErrInvoiceClosed       = errors.New("invoice is closed")
	ErrInvoiceHasPayments  = errors.New("invoice has recorded payments")
	ErrCancelReasonMissing = errors.New("cancel reason is required")
)

type CreateInvoiceInput struct {
	CustomerID     string
	VehicleID      string
	LineItems      []LineItemInput
	DiscountAmount float64
	DueDate        *time.Time
	CreatedBy      string
}

type UpdateInvoiceInput struct {
	DiscountAmount *float64
	DueDate        *time.Time
}

// IInvoiceUseCase manages the invoice ledger. Draft invoices are fully
// editable; once sent, only payments and refunds move the balance, and the
// pre-save recompute derives amount_due and the paid/partial status.

type IInvoiceUseCase interface {
	Create(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context, customerID string) ([]entities.Invoice, error)
	Update(ctx context.Context, id string, in UpdateInvoiceInput) (entities.Invoice, error)
	AddLineItem(ctx context.Context, id string, in LineItemInput) (entities.Invoice, error)
	UpdateLineItem(ctx context.Context, id, itemID string, in LineItemInput) (entities.Invoice, error)
	RemoveLineItem(ctx context.Context, id, itemID string) (entities.Invoice, error)
	Send(ctx context.Context, id string) (entities.Invoice, error)
	Cancel(ctx context.Context, id, reason string) (entities.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceUseCase struct {
	repo      interfaces.IInvoiceRepository
	customers interfaces.ICustomerGateway
	vehicles  interfaces.IVehicleGateway
	cfg       config.Shop
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IInvoiceRepository,
	customers interfaces.ICustomerGateway,
	vehicles interfaces.IVehicleGateway,
	cfg config.Shop,
) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, customers: customers, vehicles: vehicles, cfg: cfg}
}

func (u *InvoiceUseCase) Create(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error) {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	if in.CustomerID == "" {
		return entities.Invoice{}, ErrInvalidCustomerID
	}
	if in.VehicleID == "" {
		return entities.Invoice{}, ErrInvalidVehicleID
	}
	if err := u.checkReferences(ctx, in.CustomerID, in.VehicleID); err != nil {
		return entities.Invoice{}, err
	}

	items := make([]entities.LineItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		built, err := buildLineItem(li)
		if err != nil {
			return entities.Invoice{}, err
		}
		items = append(items, built)
	}

	now := time.Now().UTC()
	dueDate := in.DueDate
	if dueDate == nil {
		d := now.AddDate(0, 0, u.cfg.InvoiceDueDays)
		dueDate = &d
	}
	inv := entities.Invoice{
		ID:             uuid.NewString(),
		CustomerID:     in.CustomerID,
		VehicleID:      in.VehicleID,
		LineItems:      items,
		DiscountAmount: in.DiscountAmount,
		TaxRate:        u.cfg.TaxRate,
		Status:         entities.InvoiceStatusDraft,
		DueDate:        dueDate,
		CreatedBy:      strings.TrimSpace(in.CreatedBy),
		CreatedAt:      now,
		UpdatedAt:      now,
		Version:        1,
	}
	recomputeInvoice(&inv, now)
	return u.repo.Create(ctx, inv)
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context, customerID string) ([]entities.Invoice, error) {
	return u.repo.List(ctx, strings.TrimSpace(customerID))
}

func (u *InvoiceUseCase) Update(ctx context.Context, id string, in UpdateInvoiceInput) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status != entities.InvoiceStatusDraft {
		return entities.Invoice{}, ErrInvoiceNotDraft
	}
	if in.DiscountAmount != nil {
		inv.DiscountAmount = *in.DiscountAmount
	}
	if in.DueDate != nil {
		inv.DueDate = in.DueDate
	}
	return u.save(ctx, inv)
}

func (u *InvoiceUseCase) AddLineItem(ctx context.Context, id string, in LineItemInput) (entities.Invoice, error) {
	return u.mutateDraft(ctx, id, func(inv *entities.Invoice) error {
		built, err := buildLineItem(in)
		if err != nil {
			return err
		}
		inv.LineItems = append(inv.LineItems, built)
		return nil
	})
}

func (u *InvoiceUseCase) UpdateLineItem(ctx context.Context, id, itemID string, in LineItemInput) (entities.Invoice, error) {
	return u.mutateDraft(ctx, id, func(inv *entities.Invoice) error {
		idx := lineItemIndex(inv.LineItems, itemID)
		if idx < 0 {
			return ErrLineItemNotFound
		}
		built, err := buildLineItem(in)
		if err != nil {
			return err
		}
		built.ID = itemID
		inv.LineItems[idx] = built
		return nil
	})
}

func (u *InvoiceUseCase) RemoveLineItem(ctx context.Context, id, itemID string) (entities.Invoice, error) {
	return u.mutateDraft(ctx, id, func(inv *entities.Invoice) error {
		idx := lineItemIndex(inv.LineItems, itemID)
		if idx < 0 {
			return ErrLineItemNotFound
		}
		inv.LineItems = append(inv.LineItems[:idx], inv.LineItems[idx+1:]...)
		return nil
	})
}

func (u *InvoiceUseCase) Send(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status != entities.InvoiceStatusDraft {
		return entities.Invoice{}, entities.NewInvalidTransition("invoice", string(inv.Status), string(entities.InvoiceStatusSent))
	}
	now := time.Now().UTC()
	inv.Status = entities.InvoiceStatusSent
	inv.SentAt = &now
	return u.save(ctx, inv)
}

func (u *InvoiceUseCase) Cancel(ctx context.Context, id, reason string) (entities.Invoice, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Invoice{}, ErrCancelReasonMissing
	}
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status.Closed() {
		return entities.Invoice{}, entities.NewInvalidTransition("invoice", string(inv.Status), string(entities.InvoiceStatusCancelled))
	}
	inv.Status = entities.InvoiceStatusCancelled
	inv.CancelReason = reason
	return u.save(ctx, inv)
}

func (u *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != entities.InvoiceStatusDraft {
		return ErrInvoiceNotDraft
	}
	if len(inv.PaymentIDs) > 0 {
		return ErrInvoiceHasPayments
	}
	return u.repo.Delete(ctx, inv.ID)
}

func (u *InvoiceUseCase) mutateDraft(ctx context.Context, id string, fn func(*entities.Invoice) error) (entities.Invoice, error) {
	inv, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status != entities.InvoiceStatusDraft {
		return entities.Invoice{}, ErrInvoiceNotDraft
	}
	if err := fn(&inv); err != nil {
		return entities.Invoice{}, err
	}
	return u.save(ctx, inv)
}

func (u *InvoiceUseCase) save(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	now := time.Now().UTC()
	recomputeInvoice(&inv, now)
	inv.UpdatedAt = now
	return u.repo.Save(ctx, inv)
}

func (u *InvoiceUseCase) checkReferences(ctx context.Context, customerID, vehicleID string) error {
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

// recomputeInvoice rebuilds monetary totals from line items and then derives
// the balance-driven fields, in that order, right before a save.
func recomputeInvoice(inv *entities.Invoice, now time.Time) {
	totals := pricing.DocumentTotals(inv.LineItems, inv.DiscountAmount, inv.TaxRate)
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.RecomputeBalance(now)
}
