package entities

import "time"

// PaymentStatus represents the recorded outcome of a payment.
//
// Payments are recorded, not processed through an external provider; a
// completed payment's amount is immutable and only an explicit refund
// reverses its effect on the invoice.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod is how the customer paid.

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheck    PaymentMethod = "check"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodDebit, PaymentMethodTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// Payment is a monetary application against an invoice balance.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI invoice_id-index (PK: invoice_id)

type Payment struct {
	ID           string        `json:"id"`
	InvoiceID    string        `json:"invoice_id"`
	CustomerID   string        `json:"customer_id"`
	Amount       float64       `json:"amount"`
	Method       PaymentMethod `json:"method"`
	Status       PaymentStatus `json:"status"`
	Reference    string        `json:"reference,omitempty"`
	RefundReason string        `json:"refund_reason,omitempty"`
	ProcessedAt  time.Time     `json:"processed_at"`
	RefundedAt   *time.Time    `json:"refunded_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
