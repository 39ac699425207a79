package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoshop/internal/domain/entities"
	mock_interfaces "autoshop/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestWorkOrderUseCase_ChangeStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		uc := NewWorkOrderUseCase(nil, nil, nil, nil, testShopConfig())
		_, err := uc.ChangeStatus(context.Background(), "wo-1", "shipped")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("created cannot complete directly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCreated}, nil)

		_, err := uc.ChangeStatus(context.Background(), "wo-1", entities.WorkOrderStatusCompleted)
		var tErr *entities.InvalidTransitionError
		if !errors.As(err, &tErr) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
	})

	t.Run("first in_progress stamps StartedAt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCreated}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
				return wo, nil
			})

		out, err := uc.ChangeStatus(context.Background(), "wo-1", entities.WorkOrderStatusInProgress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.StartedAt == nil {
			t.Fatal("expected StartedAt to be stamped")
		}
	})

	t.Run("resume after ready keeps StartedAt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		started := time.Now().UTC().Add(-2 * time.Hour)
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusReady, StartedAt: &started}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
				return wo, nil
			})

		out, err := uc.ChangeStatus(context.Background(), "wo-1", entities.WorkOrderStatusInProgress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.StartedAt == nil || !out.StartedAt.Equal(started) {
			t.Fatalf("expected original StartedAt kept, got %v", out.StartedAt)
		}
	})

	t.Run("completed stamps CompletedAt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusReady}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
				return wo, nil
			})

		out, err := uc.ChangeStatus(context.Background(), "wo-1", entities.WorkOrderStatusCompleted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.CompletedAt == nil {
			t.Fatal("expected CompletedAt to be stamped")
		}
	})
}

func TestWorkOrderUseCase_JobsAndParts(t *testing.T) {
	t.Run("add job recomputes rollup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusInProgress}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
				return wo, nil
			})

		out, err := uc.AddJob(context.Background(), "wo-1", JobInput{Description: "replace timing belt", EstimatedHours: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.LabourTotal != 190 {
			t.Fatalf("expected labour total 190, got %v", out.LabourTotal)
		}
		if out.Total != out.LabourTotal+out.PartsTotal+out.TaxAmount {
			t.Fatalf("rollup mismatch: %v != %v+%v+%v", out.Total, out.LabourTotal, out.PartsTotal, out.TaxAmount)
		}
	})

	t.Run("actual hours override estimate in rollup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{
			ID:     "wo-1",
			Status: entities.WorkOrderStatusInProgress,
			Jobs:   []entities.Job{{ID: "job-1", Description: "diagnose misfire", EstimatedHours: 1, Status: entities.JobStatusInProgress}},
		}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
				return wo, nil
			})

		actual := 3.0
		out, err := uc.UpdateJob(context.Background(), "wo-1", "job-1", JobInput{Description: "diagnose misfire", EstimatedHours: 1, ActualHours: &actual, Status: entities.JobStatusDone})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.LabourTotal != 285 {
			t.Fatalf("expected labour total 285 from actual hours, got %v", out.LabourTotal)
		}
	})

	t.Run("mutation refused when cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCancelled}, nil)

		_, err := uc.AddPart(context.Background(), "wo-1", PartInput{PartNumber: "BP-1044", Quantity: 1, UnitCost: 40, UnitPrice: 56})
		if !errors.Is(err, ErrWorkOrderTerminal) {
			t.Fatalf("expected ErrWorkOrderTerminal, got %v", err)
		}
	})

	t.Run("unknown part", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusInProgress}, nil)

		_, err := uc.RemovePart(context.Background(), "wo-1", "part-9")
		if !errors.Is(err, ErrPartNotFound) {
			t.Fatalf("expected ErrPartNotFound, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_GenerateInvoice(t *testing.T) {
	completed := func() entities.WorkOrder {
		actual := 2.0
		return entities.WorkOrder{
			ID:         "wo-1",
			CustomerID: "cus-1",
			VehicleID:  "veh-1",
			Status:     entities.WorkOrderStatusCompleted,
			Jobs:       []entities.Job{{ID: "job-1", Description: "brake service", EstimatedHours: 1.5, ActualHours: &actual, Status: entities.JobStatusDone}},
			Parts:      []entities.Part{{ID: "part-1", PartNumber: "BP-1044", Quantity: 1, UnitCost: 40, UnitPrice: 56, Total: 56}},
			Version:    4,
		}
	}

	t.Run("derives line items and balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, txn, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(completed(), nil)

		var attached entities.WorkOrder
		txn.EXPECT().AttachInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, wo entities.WorkOrder, _ entities.Invoice) error {
				attached = wo
				return nil
			})

		inv, err := uc.GenerateInvoice(context.Background(), "wo-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inv.LineItems) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(inv.LineItems))
		}
		// 2h * 95 labour + 56 part = 246, 13% tax = 31.98
		if inv.Subtotal != 246 {
			t.Fatalf("expected subtotal 246, got %v", inv.Subtotal)
		}
		if inv.AmountDue != inv.Total {
			t.Fatalf("expected amount due %v, got %v", inv.Total, inv.AmountDue)
		}
		if inv.Status != entities.InvoiceStatusDraft || inv.WorkOrderID != "wo-1" {
			t.Fatalf("unexpected invoice linkage: %s %s", inv.Status, inv.WorkOrderID)
		}
		if inv.DueDate == nil {
			t.Fatal("expected due date")
		}
		if attached.InvoiceID != inv.ID {
			t.Fatalf("work order back-reference not set: %q", attached.InvoiceID)
		}
	})

	t.Run("refused before completion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		wo := completed()
		wo.Status = entities.WorkOrderStatusInProgress
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(wo, nil)

		_, err := uc.GenerateInvoice(context.Background(), "wo-1")
		if !errors.Is(err, ErrWorkOrderNotCompleted) {
			t.Fatalf("expected ErrWorkOrderNotCompleted, got %v", err)
		}
	})

	t.Run("refused when invoice already attached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		wo := completed()
		wo.InvoiceID = "inv-1"
		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(wo, nil)

		_, err := uc.GenerateInvoice(context.Background(), "wo-1")
		if !errors.Is(err, ErrWorkOrderHasInvoice) {
			t.Fatalf("expected ErrWorkOrderHasInvoice, got %v", err)
		}
	})
}

func TestWorkOrderUseCase_Delete(t *testing.T) {
	t.Run("invoiced work order is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
		uc := NewWorkOrderUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "wo-1").Return(entities.WorkOrder{ID: "wo-1", Status: entities.WorkOrderStatusCompleted, InvoiceID: "inv-1"}, nil)

		if err := uc.Delete(context.Background(), "wo-1"); !errors.Is(err, ErrWorkOrderHasInvoice) {
			t.Fatalf("expected ErrWorkOrderHasInvoice, got %v", err)
		}
	})
}
