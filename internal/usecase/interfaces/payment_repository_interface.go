package interfaces

import (
	"context"

	"autoshop/internal/domain/entities"
)

// IPaymentRepository reads recorded payments. Writes go through IDocumentTxn
// so the payment and the invoice balance commit together.

type IPaymentRepository interface {
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}
