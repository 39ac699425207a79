package entities

import "time"

// WorkOrderStatus represents the execution state of authorized shop work.

type WorkOrderStatus string

const (
	WorkOrderStatusCreated         WorkOrderStatus = "created"
	WorkOrderStatusInProgress      WorkOrderStatus = "in_progress"
	WorkOrderStatusWaitingParts    WorkOrderStatus = "waiting_parts"
	WorkOrderStatusWaitingApproval WorkOrderStatus = "waiting_approval"
	WorkOrderStatusReady           WorkOrderStatus = "ready"
	WorkOrderStatusCompleted       WorkOrderStatus = "completed"
	WorkOrderStatusCancelled       WorkOrderStatus = "cancelled"
)

// workOrderTransitions is the closed transition table; completed and
// cancelled are terminal.
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderStatusCreated:         {WorkOrderStatusInProgress, WorkOrderStatusCancelled},
	WorkOrderStatusInProgress:      {WorkOrderStatusWaitingParts, WorkOrderStatusWaitingApproval, WorkOrderStatusReady, WorkOrderStatusCancelled},
	WorkOrderStatusWaitingParts:    {WorkOrderStatusInProgress, WorkOrderStatusCancelled},
	WorkOrderStatusWaitingApproval: {WorkOrderStatusInProgress, WorkOrderStatusCancelled},
	WorkOrderStatusReady:           {WorkOrderStatusCompleted, WorkOrderStatusInProgress},
}

// CanTransitionTo is the single source of truth for the work-order state machine.
func (s WorkOrderStatus) CanTransitionTo(target WorkOrderStatus) bool {
	for _, t := range workOrderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s WorkOrderStatus) Terminal() bool {
	return s == WorkOrderStatusCompleted || s == WorkOrderStatusCancelled
}

// WorkOrderPriority orders the shop queue; informational only.

type WorkOrderPriority string

const (
	WorkOrderPriorityLow    WorkOrderPriority = "low"
	WorkOrderPriorityNormal WorkOrderPriority = "normal"
	WorkOrderPriorityHigh   WorkOrderPriority = "high"
	WorkOrderPriorityUrgent WorkOrderPriority = "urgent"
)

// JobStatus tracks a single labour task inside a work order.

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusDone       JobStatus = "done"
)

// Job is one labour task. ActualHours, when set, replaces EstimatedHours in
// the labour rollup.
type Job struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	EstimatedHours float64   `json:"estimated_hours"`
	ActualHours    *float64  `json:"actual_hours,omitempty"`
	Status         JobStatus `json:"status"`
}

// BilledHours returns the hours that enter the labour total.
func (j Job) BilledHours() float64 {
	if j.ActualHours != nil {
		return *j.ActualHours
	}
	return j.EstimatedHours
}

// Part is a material consumed by a work order. UnitCost is what the shop
// paid, UnitPrice what the customer is billed.
type Part struct {
	ID         string  `json:"id"`
	PartNumber string  `json:"part_number"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unit_cost"`
	UnitPrice  float64 `json:"unit_price"`
	Total      float64 `json:"total"`
}

// WorkOrder is the authorized, in-progress record of jobs and parts for a
// vehicle, created directly or converted from an approved estimate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI customer_id-index (PK: customer_id)
//
// EstimateID and InvoiceID are the idempotency guards for the two-document
// conversion/generation operations; each is written at most once.

type WorkOrder struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customer_id"`
	VehicleID   string            `json:"vehicle_id"`
	EstimateID  string            `json:"estimate_id,omitempty"`
	Jobs        []Job             `json:"jobs"`
	Parts       []Part            `json:"parts"`
	Status      WorkOrderStatus   `json:"status"`
	Priority    WorkOrderPriority `json:"priority"`
	MileageIn   int               `json:"mileage_in"`
	MileageOut  *int              `json:"mileage_out,omitempty"`
	LabourTotal float64           `json:"labour_total"`
	PartsTotal  float64           `json:"parts_total"`
	TaxAmount   float64           `json:"tax_amount"`
	Total       float64           `json:"total"`
	InvoiceID   string            `json:"invoice_id,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedBy   string            `json:"created_by,omitempty"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Version     int64             `json:"version"`
}
