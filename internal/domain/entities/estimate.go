package entities

import "time"

// EstimateStatus represents the lifecycle of a repair estimate.
//
// Domain notes:
//   - draft -> sent -> approved/rejected -> converted is the only forward path.
//   - converted is set exactly once, together with ConvertedToWorkOrderID.
//   - expired is a refusal derived from ValidUntil, never stored by a sweeper.

type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusSent      EstimateStatus = "sent"
	EstimateStatusApproved  EstimateStatus = "approved"
	EstimateStatusRejected  EstimateStatus = "rejected"
	EstimateStatusExpired   EstimateStatus = "expired"
	EstimateStatusConverted EstimateStatus = "converted"
)

// CanTransitionTo is the single source of truth for the estimate state machine.
func (s EstimateStatus) CanTransitionTo(target EstimateStatus) bool {
	switch s {
	case EstimateStatusDraft:
		return target == EstimateStatusSent
	case EstimateStatusSent:
		return target == EstimateStatusApproved || target == EstimateStatusRejected
	case EstimateStatusApproved:
		return target == EstimateStatusConverted
	}
	return false
}

// Editable reports whether line items and header fields may still change.
func (s EstimateStatus) Editable() bool {
	return s == EstimateStatusDraft || s == EstimateStatusSent
}

// Estimate is a priced proposal of work awaiting customer approval.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI customer_id-index (PK: customer_id)
//
// Version backs optimistic-concurrency saves; every write conditions on the
// version it read and bumps it.

type Estimate struct {
	ID                     string         `json:"id"`
	CustomerID             string         `json:"customer_id"`
	VehicleID              string         `json:"vehicle_id"`
	LineItems              []LineItem     `json:"line_items"`
	Subtotal               float64        `json:"subtotal"`
	DiscountAmount         float64        `json:"discount_amount"`
	TaxRate                float64        `json:"tax_rate"`
	TaxAmount              float64        `json:"tax_amount"`
	Total                  float64        `json:"total"`
	Status                 EstimateStatus `json:"status"`
	Notes                  string         `json:"notes,omitempty"`
	RejectReason           string         `json:"reject_reason,omitempty"`
	ValidUntil             *time.Time     `json:"valid_until,omitempty"`
	SentAt                 *time.Time     `json:"sent_at,omitempty"`
	ApprovedAt             *time.Time     `json:"approved_at,omitempty"`
	ApprovedBy             string         `json:"approved_by,omitempty"`
	RejectedAt             *time.Time     `json:"rejected_at,omitempty"`
	ConvertedToWorkOrderID string         `json:"converted_to_work_order_id,omitempty"`
	CreatedBy              string         `json:"created_by,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	Version                int64          `json:"version"`
}

// ExpiredAt reports whether the estimate validity window has passed at t.
func (e Estimate) ExpiredAt(t time.Time) bool {
	return e.ValidUntil != nil && t.After(*e.ValidUntil)
}
