package entities

import "time"

// InvoiceStatus represents the billing state of an invoice.
//
// partial and paid are derived from the balance by RecomputeBalance; they are
// never set directly by callers.

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
)

// Closed reports whether the invoice can no longer accept payments.
func (s InvoiceStatus) Closed() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled || s == InvoiceStatusRefunded
}

// Invoice is the billing document generated from a completed work order (or
// created directly), tracking the amount owed.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI customer_id-index (PK: customer_id)
//
// Invariants kept by RecomputeBalance before every save:
//   - amount_due = total - amount_paid
//   - status = paid   iff amount_due <= 0 (and not cancelled/refunded)
//   - status = partial iff 0 < amount_paid < total

type Invoice struct {
	ID             string        `json:"id"`
	CustomerID     string        `json:"customer_id"`
	VehicleID      string        `json:"vehicle_id"`
	WorkOrderID    string        `json:"work_order_id,omitempty"`
	LineItems      []LineItem    `json:"line_items"`
	Subtotal       float64       `json:"subtotal"`
	DiscountAmount float64       `json:"discount_amount"`
	TaxRate        float64       `json:"tax_rate"`
	TaxAmount      float64       `json:"tax_amount"`
	Total          float64       `json:"total"`
	AmountPaid     float64       `json:"amount_paid"`
	AmountDue      float64       `json:"amount_due"`
	Status         InvoiceStatus `json:"status"`
	PaymentIDs     []string      `json:"payment_ids,omitempty"`
	CancelReason   string        `json:"cancel_reason,omitempty"`
	DueDate        *time.Time    `json:"due_date,omitempty"`
	SentAt         *time.Time    `json:"sent_at,omitempty"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	CreatedBy      string        `json:"created_by,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Version        int64         `json:"version"`
}

// RecomputeBalance derives AmountDue and the paid/partial status from the
// current Total and AmountPaid. Cancelled and refunded are sticky.
func (i *Invoice) RecomputeBalance(now time.Time) {
	i.AmountDue = i.Total - i.AmountPaid
	if i.Status == InvoiceStatusCancelled || i.Status == InvoiceStatusRefunded {
		return
	}
	switch {
	case i.AmountDue <= 0 && i.Total > 0:
		if i.Status != InvoiceStatusPaid {
			t := now
			i.PaidAt = &t
		}
		i.Status = InvoiceStatusPaid
	case i.AmountPaid > 0 && i.AmountPaid < i.Total:
		i.Status = InvoiceStatusPartial
	}
}
