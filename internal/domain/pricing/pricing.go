// Package pricing is the pure totals engine. Every rate it needs is passed
// in by the caller; nothing here reads configuration or clamps results.
package pricing

import "autoshop/internal/domain/entities"

// Totals is the monetary summary of a line-item document.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// WorkOrderTotals is the monetary summary of a work order rollup.
type WorkOrderTotals struct {
	LabourTotal float64
	PartsTotal  float64
	TaxAmount   float64
	Total       float64
}

// LineTotal computes quantity*unit_price - discount. A discount exceeding
// the line subtotal yields a negative total; the engine does not clamp.
func LineTotal(li entities.LineItem) float64 {
	return li.Quantity*li.UnitPrice - li.Discount
}

// PartTotal computes quantity*unit_price for a work-order part.
func PartTotal(p entities.Part) float64 {
	return p.Quantity * p.UnitPrice
}

// DocumentTotals recomputes line totals in place and derives the document
// summary:
//
//	subtotal   = sum of line totals
//	tax_amount = (subtotal - discount) * taxRate/100
//	total      = subtotal - discount + tax_amount
//
// Must run immediately before every save that follows a line-item, discount
// or tax-rate change.
func DocumentTotals(items []entities.LineItem, discountAmount, taxRate float64) Totals {
	subtotal := 0.0
	for idx := range items {
		items[idx].Total = LineTotal(items[idx])
		subtotal += items[idx].Total
	}
	taxAmount := (subtotal - discountAmount) * taxRate / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal - discountAmount + taxAmount,
	}
}

// WorkOrderRollup recomputes part totals in place and derives the work-order
// summary. Labour bills actual hours when recorded, estimated hours
// otherwise, at the injected labour rate.
func WorkOrderRollup(jobs []entities.Job, parts []entities.Part, labourRate, taxRate float64) WorkOrderTotals {
	labour := 0.0
	for _, j := range jobs {
		labour += j.BilledHours() * labourRate
	}
	partsTotal := 0.0
	for idx := range parts {
		parts[idx].Total = PartTotal(parts[idx])
		partsTotal += parts[idx].Total
	}
	taxAmount := (labour + partsTotal) * taxRate / 100
	return WorkOrderTotals{
		LabourTotal: labour,
		PartsTotal:  partsTotal,
		TaxAmount:   taxAmount,
		Total:       partsTotal + labour + taxAmount,
	}
}
