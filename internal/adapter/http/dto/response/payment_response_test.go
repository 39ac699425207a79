package response

import (
	"testing"
	"time"

	"autoshop/internal/domain/entities"
)

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	refunded := now.Add(time.Hour)
	p := entities.Payment{
		ID:           "pay-1",
		InvoiceID:    "inv-1",
		CustomerID:   "cus-1",
		Amount:       100,
		Method:       entities.PaymentMethodCard,
		Status:       entities.PaymentStatusRefunded,
		RefundReason: "duplicate charge",
		ProcessedAt:  now,
		RefundedAt:   &refunded,
		CreatedAt:    now,
	}

	res := FromPayment(p)
	if res.ID != "pay-1" || res.InvoiceID != "inv-1" || res.CustomerID != "cus-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Amount != 100 || res.Method != "card" || res.Status != "refunded" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.RefundedAt == nil || !res.RefundedAt.Equal(refunded) {
		t.Fatalf("unexpected refund date: %+v", res)
	}
}
