package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrOverpayment          = errors.New("payment exceeds amount due")
	ErrPaymentNotRefundable = errors.New("payment is not refundable")
	ErrRefundReasonMissing  = errors.New("refund reason is required")
	ErrPaymentRace          = errors.New("invoice changed while applying payment")
)

type ApplyPaymentInput struct {
	InvoiceID string
	Amount    float64
	Method    entities.PaymentMethod
	Reference string
}

// IPaymentUseCase is the only component that moves invoice balances after
// creation. Applying a payment and saving the recomputed invoice commit in
// one transaction conditioned on the invoice version, so two concurrent
// payments cannot both pass the amount-due check and overpay the invoice.

type IPaymentUseCase interface {
	Apply(ctx context.Context, in ApplyPaymentInput) (entities.Payment, error)
	Refund(ctx context.Context, paymentID, reason string) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	invoices interfaces.IInvoiceRepository
	txn      interfaces.IDocumentTxn
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	invoices interfaces.IInvoiceRepository,
	txn interfaces.IDocumentTxn,
) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, invoices: invoices, txn: txn}
}

func (u *PaymentUseCase) Apply(ctx context.Context, in ApplyPaymentInput) (entities.Payment, error) {
	in.InvoiceID = strings.TrimSpace(in.InvoiceID)
	log.Printf("[payment][usecase] apply start invoice_id=%s amount=%.2f method=%s", in.InvoiceID, in.Amount, in.Method)
	if in.InvoiceID == "" {
		return entities.Payment{}, ErrInvalidInvoiceID
	}
	if in.Amount <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if !in.Method.Valid() {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}

	inv, err := u.invoices.GetByID(ctx, in.InvoiceID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading invoice invoice_id=%s err=%v", in.InvoiceID, err)
		return entities.Payment{}, err
	}
	if inv.ID == "" {
		return entities.Payment{}, ErrInvoiceNotFound
	}
	if inv.Status.Closed() {
		log.Printf("[payment][usecase] invoice closed invoice_id=%s status=%s", inv.ID, inv.Status)
		return entities.Payment{}, ErrInvoiceClosed
	}
	if in.Amount > inv.AmountDue {
		log.Printf("[payment][usecase] overpayment rejected invoice_id=%s amount=%.2f due=%.2f", inv.ID, in.Amount, inv.AmountDue)
		return entities.Payment{}, ErrOverpayment
	}

	now := time.Now().UTC()
	p := entities.Payment{
		ID:          uuid.NewString(),
		InvoiceID:   inv.ID,
		CustomerID:  inv.CustomerID,
		Amount:      in.Amount,
		Method:      in.Method,
		Status:      entities.PaymentStatusCompleted,
		Reference:   strings.TrimSpace(in.Reference),
		ProcessedAt: now,
		CreatedAt:   now,
	}

	inv.AmountPaid += p.Amount
	inv.PaymentIDs = append(inv.PaymentIDs, p.ID)
	inv.RecomputeBalance(now)
	inv.UpdatedAt = now

	if err := u.txn.ApplyPayment(ctx, p, inv); err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			log.Printf("[payment][usecase] lost version race invoice_id=%s", inv.ID)
			return entities.Payment{}, ErrPaymentRace
		}
		log.Printf("[payment][usecase] apply txn failed invoice_id=%s err=%v", inv.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] apply success invoice_id=%s payment_id=%s paid=%.2f due=%.2f status=%s",
		inv.ID, p.ID, inv.AmountPaid, inv.AmountDue, inv.Status)
	return p, nil
}

// Refund reverses a completed payment: the payment flips to refunded and
// the invoice balance moves back, leaving the invoice refunded when nothing
// paid remains and partial otherwise.
func (u *PaymentUseCase) Refund(ctx context.Context, paymentID, reason string) (entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	reason = strings.TrimSpace(reason)
	log.Printf("[payment][usecase] refund start payment_id=%s", paymentID)
	if paymentID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	if reason == "" {
		return entities.Payment{}, ErrRefundReasonMissing
	}

	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if p.Status != entities.PaymentStatusCompleted {
		log.Printf("[payment][usecase] refund rejected payment_id=%s status=%s", p.ID, p.Status)
		return entities.Payment{}, ErrPaymentNotRefundable
	}

	inv, err := u.invoices.GetByID(ctx, p.InvoiceID)
	if err != nil {
		return entities.Payment{}, err
	}
	if inv.ID == "" {
		return entities.Payment{}, ErrInvoiceNotFound
	}

	now := time.Now().UTC()
	p.Status = entities.PaymentStatusRefunded
	p.RefundReason = reason
	p.RefundedAt = &now

	inv.AmountPaid -= p.Amount
	if inv.AmountPaid <= 0 {
		inv.Status = entities.InvoiceStatusRefunded
	} else {
		inv.Status = entities.InvoiceStatusPartial
	}
	inv.RecomputeBalance(now)
	inv.UpdatedAt = now

	if err := u.txn.RefundPayment(ctx, p, inv); err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Payment{}, ErrPaymentRace
		}
		log.Printf("[payment][usecase] refund txn failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] refund success payment_id=%s invoice_id=%s invoice_status=%s", p.ID, inv.ID, inv.Status)
	return p, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}
