package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"
	mock_interfaces "autoshop/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func openInvoice() entities.Invoice {
	return entities.Invoice{
		ID:         "inv-1",
		CustomerID: "cus-1",
		Status:     entities.InvoiceStatusSent,
		Total:      237.30,
		AmountDue:  237.30,
		Version:    2,
	}
}

func TestPaymentUseCase_Apply(t *testing.T) {
	t.Run("validations", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)

		if _, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: " ", Amount: 10, Method: entities.PaymentMethodCash}); !errors.Is(err, ErrInvalidInvoiceID) {
			t.Fatalf("expected ErrInvalidInvoiceID, got %v", err)
		}
		if _, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 0, Method: entities.PaymentMethodCash}); !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
		}
		if _, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 10, Method: "crypto"}); !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("partial payment leaves a balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewPaymentUseCase(nil, invoices, txn)

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(openInvoice(), nil)

		var committed entities.Invoice
		txn.EXPECT().ApplyPayment(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Payment, inv entities.Invoice) error {
				committed = inv
				return nil
			})

		p, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 100, Method: entities.PaymentMethodCash})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusCompleted {
			t.Fatalf("expected completed payment, got %s", p.Status)
		}
		if committed.Status != entities.InvoiceStatusPartial {
			t.Fatalf("expected partial invoice, got %s", committed.Status)
		}
		if committed.AmountPaid != 100 || committed.AmountDue != 137.30 {
			t.Fatalf("unexpected balance: paid=%v due=%v", committed.AmountPaid, committed.AmountDue)
		}
		if len(committed.PaymentIDs) != 1 || committed.PaymentIDs[0] != p.ID {
			t.Fatalf("payment not linked: %v", committed.PaymentIDs)
		}
	})

	t.Run("final payment settles the invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewPaymentUseCase(nil, invoices, txn)

		inv := openInvoice()
		inv.Status = entities.InvoiceStatusPartial
		inv.AmountPaid = 100
		inv.AmountDue = 137.30
		inv.PaymentIDs = []string{"pay-1"}
		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		var committed entities.Invoice
		txn.EXPECT().ApplyPayment(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Payment, inv entities.Invoice) error {
				committed = inv
				return nil
			})

		_, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 137.30, Method: entities.PaymentMethodCard})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if committed.Status != entities.InvoiceStatusPaid || committed.PaidAt == nil {
			t.Fatalf("expected paid invoice, got %s %v", committed.Status, committed.PaidAt)
		}
		if committed.AmountDue != 0 {
			t.Fatalf("expected zero balance, got %v", committed.AmountDue)
		}
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewPaymentUseCase(nil, invoices, nil)

		inv := openInvoice()
		inv.AmountDue = 50
		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		_, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 50.01, Method: entities.PaymentMethodCash})
		if !errors.Is(err, ErrOverpayment) {
			t.Fatalf("expected ErrOverpayment, got %v", err)
		}
	})

	t.Run("closed invoice rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewPaymentUseCase(nil, invoices, nil)

		inv := openInvoice()
		inv.Status = entities.InvoiceStatusCancelled
		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		_, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 10, Method: entities.PaymentMethodCash})
		if !errors.Is(err, ErrInvoiceClosed) {
			t.Fatalf("expected ErrInvoiceClosed, got %v", err)
		}
	})

	t.Run("lost version race surfaces as payment race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewPaymentUseCase(nil, invoices, txn)

		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(openInvoice(), nil)
		txn.EXPECT().ApplyPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrVersionConflict)

		_, err := uc.Apply(context.Background(), ApplyPaymentInput{InvoiceID: "inv-1", Amount: 100, Method: entities.PaymentMethodCash})
		if !errors.Is(err, ErrPaymentRace) {
			t.Fatalf("expected ErrPaymentRace, got %v", err)
		}
	})
}

func TestPaymentUseCase_Refund(t *testing.T) {
	completedPayment := func() entities.Payment {
		return entities.Payment{
			ID:          "pay-1",
			InvoiceID:   "inv-1",
			CustomerID:  "cus-1",
			Amount:      100,
			Method:      entities.PaymentMethodCash,
			Status:      entities.PaymentStatusCompleted,
			ProcessedAt: time.Now().UTC().Add(-time.Hour),
		}
	}

	t.Run("requires reason", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.Refund(context.Background(), "pay-1", " ")
		if !errors.Is(err, ErrRefundReasonMissing) {
			t.Fatalf("expected ErrRefundReasonMissing, got %v", err)
		}
	})

	t.Run("only completed payments refund", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		p := completedPayment()
		p.Status = entities.PaymentStatusRefunded
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)

		_, err := uc.Refund(context.Background(), "pay-1", "wrong invoice")
		if !errors.Is(err, ErrPaymentNotRefundable) {
			t.Fatalf("expected ErrPaymentNotRefundable, got %v", err)
		}
	})

	t.Run("partial refund reopens the balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewPaymentUseCase(repo, invoices, txn)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(completedPayment(), nil)

		inv := openInvoice()
		inv.Status = entities.InvoiceStatusPaid
		inv.AmountPaid = 237.30
		inv.AmountDue = 0
		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		var committed entities.Invoice
		txn.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Payment, inv entities.Invoice) error {
				committed = inv
				return nil
			})

		p, err := uc.Refund(context.Background(), "pay-1", "billing mistake")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != entities.PaymentStatusRefunded || p.RefundedAt == nil {
			t.Fatalf("expected refunded payment, got %s %v", p.Status, p.RefundedAt)
		}
		if committed.Status != entities.InvoiceStatusPartial {
			t.Fatalf("expected partial invoice, got %s", committed.Status)
		}
		if committed.AmountDue != 100 {
			t.Fatalf("expected 100 due after refund, got %v", committed.AmountDue)
		}
	})

	t.Run("full refund flips the invoice to refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewPaymentUseCase(repo, invoices, txn)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(completedPayment(), nil)

		inv := openInvoice()
		inv.Status = entities.InvoiceStatusPartial
		inv.AmountPaid = 100
		inv.AmountDue = 137.30
		invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(inv, nil)

		var committed entities.Invoice
		txn.EXPECT().RefundPayment(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Payment, inv entities.Invoice) error {
				committed = inv
				return nil
			})

		_, err := uc.Refund(context.Background(), "pay-1", "customer dispute")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if committed.Status != entities.InvoiceStatusRefunded {
			t.Fatalf("expected refunded invoice, got %s", committed.Status)
		}
	})
}
