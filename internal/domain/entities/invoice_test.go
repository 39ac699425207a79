package entities

import (
	"testing"
	"time"
)

func TestInvoiceRecomputeBalance(t *testing.T) {
	now := time.Now()

	t.Run("partial then paid", func(t *testing.T) {
		inv := Invoice{Total: 237.30, Status: InvoiceStatusSent}
		inv.AmountPaid = 100
		inv.RecomputeBalance(now)
		if inv.AmountDue != 137.30 {
			t.Fatalf("amount_due = %v, want 137.30", inv.AmountDue)
		}
		if inv.Status != InvoiceStatusPartial {
			t.Fatalf("status = %s, want partial", inv.Status)
		}

		inv.AmountPaid += 137.30
		inv.RecomputeBalance(now)
		if inv.AmountDue != 0 {
			t.Fatalf("amount_due = %v, want 0", inv.AmountDue)
		}
		if inv.Status != InvoiceStatusPaid {
			t.Fatalf("status = %s, want paid", inv.Status)
		}
		if inv.PaidAt == nil {
			t.Fatal("paid_at must be stamped when reaching paid")
		}
	})

	t.Run("no payment keeps status", func(t *testing.T) {
		inv := Invoice{Total: 100, Status: InvoiceStatusSent}
		inv.RecomputeBalance(now)
		if inv.Status != InvoiceStatusSent || inv.AmountDue != 100 {
			t.Fatalf("unexpected: status=%s due=%v", inv.Status, inv.AmountDue)
		}
	})

	t.Run("cancelled is sticky", func(t *testing.T) {
		inv := Invoice{Total: 100, AmountPaid: 100, Status: InvoiceStatusCancelled}
		inv.RecomputeBalance(now)
		if inv.Status != InvoiceStatusCancelled {
			t.Fatalf("status = %s, want cancelled", inv.Status)
		}
		if inv.AmountDue != 0 {
			t.Fatalf("amount_due = %v, want 0", inv.AmountDue)
		}
	})

	t.Run("refund drops paid back to partial", func(t *testing.T) {
		inv := Invoice{Total: 200, AmountPaid: 200, Status: InvoiceStatusPaid}
		inv.AmountPaid -= 50
		inv.RecomputeBalance(now)
		if inv.Status != InvoiceStatusPartial {
			t.Fatalf("status = %s, want partial", inv.Status)
		}
		if inv.AmountDue != 50 {
			t.Fatalf("amount_due = %v, want 50", inv.AmountDue)
		}
	})
}

func TestInvoiceStatusClosed(t *testing.T) {
	for _, s := range []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusRefunded} {
		if !s.Closed() {
			t.Errorf("%s should be closed", s)
		}
	}
	for _, s := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartial} {
		if s.Closed() {
			t.Errorf("%s should accept payments", s)
		}
	}
}
