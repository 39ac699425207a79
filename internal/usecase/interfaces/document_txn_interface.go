package interfaces

import (
	"context"

	"autoshop/internal/domain/entities"
)

// IDocumentTxn runs the cross-document operations as single DynamoDB
// transactions: both documents commit or neither does.
//
// Every entity passed in carries the version the caller read; each write
// conditions on it and bumps it. The one-shot guard fields
// (Estimate.ConvertedToWorkOrderID, WorkOrder.InvoiceID) are additionally
// conditioned on being absent, so a retry after a partial failure is safe
// and a duplicate call surfaces as ErrGuardAlreadySet.

type IDocumentTxn interface {
	// ConvertEstimate persists a new work order and flips the estimate to
	// converted in one transaction.
	ConvertEstimate(ctx context.Context, est entities.Estimate, wo entities.WorkOrder) error

	// AttachInvoice persists a new invoice and writes the work order's
	// invoice back-reference in one transaction.
	AttachInvoice(ctx context.Context, wo entities.WorkOrder, inv entities.Invoice) error

	// ApplyPayment persists the payment, the recomputed invoice and the
	// customer spend/visit counters in one transaction.
	ApplyPayment(ctx context.Context, p entities.Payment, inv entities.Invoice) error

	// RefundPayment flips the payment to refunded, saves the reversed
	// invoice balance and decrements the customer counters in one
	// transaction.
	RefundPayment(ctx context.Context, p entities.Payment, inv entities.Invoice) error
}
