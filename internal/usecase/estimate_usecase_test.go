package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoshop/internal/domain/entities"
	"autoshop/internal/infrastructure/config"
	"autoshop/internal/usecase/interfaces"
	mock_interfaces "autoshop/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testShopConfig() config.Shop {
	return config.Shop{
		LabourRate:             95,
		TaxRate:                13,
		InvoiceDueDays:         30,
		PartsMarkupFactor:      1.4,
		EstimateValidDays:      30,
		BusinessHoursStart:     "08:00",
		BusinessHoursEnd:       "18:00",
		SlotGranularityMinutes: 30,
	}
}

func TestEstimateUseCase_Create(t *testing.T) {
	t.Run("empty customer id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, testShopConfig())
		_, err := uc.Create(context.Background(), CreateEstimateInput{CustomerID: " ", VehicleID: "veh-1"})
		if !errors.Is(err, ErrInvalidCustomerID) {
			t.Fatalf("expected ErrInvalidCustomerID, got %v", err)
		}
	})

	t.Run("empty vehicle id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, testShopConfig())
		_, err := uc.Create(context.Background(), CreateEstimateInput{CustomerID: "cus-1"})
		if !errors.Is(err, ErrInvalidVehicleID) {
			t.Fatalf("expected ErrInvalidVehicleID, got %v", err)
		}
	})

	t.Run("customer not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerGateway(ctrl)
		uc := NewEstimateUseCase(nil, customers, nil, nil, testShopConfig())

		customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(entities.Customer{}, nil)

		_, err := uc.Create(context.Background(), CreateEstimateInput{CustomerID: "cus-1", VehicleID: "veh-1"})
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("vehicle owned by another customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerGateway(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleGateway(ctrl)
		uc := NewEstimateUseCase(nil, customers, vehicles, nil, testShopConfig())

		customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(entities.Customer{ID: "cus-1"}, nil)
		vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{ID: "veh-1", CustomerID: "cus-2"}, nil)

		_, err := uc.Create(context.Background(), CreateEstimateInput{CustomerID: "cus-1", VehicleID: "veh-1"})
		if !errors.Is(err, ErrVehicleNotOwned) {
			t.Fatalf("expected ErrVehicleNotOwned, got %v", err)
		}
	})

	t.Run("computes totals on create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerGateway(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleGateway(ctrl)
		uc := NewEstimateUseCase(repo, customers, vehicles, nil, testShopConfig())

		customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(entities.Customer{ID: "cus-1"}, nil)
		vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{ID: "veh-1", CustomerID: "cus-1"}, nil)

		var saved entities.Estimate
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				saved = e
				return e, nil
			})

		_, err := uc.Create(context.Background(), CreateEstimateInput{
			CustomerID: "cus-1",
			VehicleID:  "veh-1",
			LineItems: []LineItemInput{
				{Description: "brake pads", Kind: entities.LineItemKindPart, Quantity: 1, UnitPrice: 50},
				{Description: "brake service", Kind: entities.LineItemKindLabour, Quantity: 2, UnitPrice: 80},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Subtotal != 210 {
			t.Fatalf("expected subtotal 210, got %v", saved.Subtotal)
		}
		if saved.TaxAmount != 27.30 {
			t.Fatalf("expected tax 27.30, got %v", saved.TaxAmount)
		}
		if saved.Total != 237.30 {
			t.Fatalf("expected total 237.30, got %v", saved.Total)
		}
		if saved.Status != entities.EstimateStatusDraft {
			t.Fatalf("expected draft, got %s", saved.Status)
		}
		if saved.Version != 1 {
			t.Fatalf("expected version 1, got %d", saved.Version)
		}
		if saved.ValidUntil == nil {
			t.Fatal("expected default validity window")
		}
	})

	t.Run("rejects invalid line item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerGateway(ctrl)
		vehicles := mock_interfaces.NewMockIVehicleGateway(ctrl)
		uc := NewEstimateUseCase(nil, customers, vehicles, nil, testShopConfig())

		customers.EXPECT().GetByID(gomock.Any(), "cus-1").Return(entities.Customer{ID: "cus-1"}, nil)
		vehicles.EXPECT().GetByID(gomock.Any(), "veh-1").Return(entities.Vehicle{ID: "veh-1", CustomerID: "cus-1"}, nil)

		_, err := uc.Create(context.Background(), CreateEstimateInput{
			CustomerID: "cus-1",
			VehicleID:  "veh-1",
			LineItems:  []LineItemInput{{Description: "oil", Kind: "fuel", Quantity: 1, UnitPrice: 10}},
		})
		if !errors.Is(err, ErrInvalidLineItem) {
			t.Fatalf("expected ErrInvalidLineItem, got %v", err)
		}
	})
}

func TestEstimateUseCase_LineItemEditing(t *testing.T) {
	t.Run("add refused once approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusApproved}, nil)

		_, err := uc.AddLineItem(context.Background(), "est-1", LineItemInput{Description: "wipers", Kind: entities.LineItemKindPart, Quantity: 1, UnitPrice: 20})
		if !errors.Is(err, ErrEstimateNotEditable) {
			t.Fatalf("expected ErrEstimateNotEditable, got %v", err)
		}
	})

	t.Run("remove recomputes totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID:      "est-1",
			Status:  entities.EstimateStatusDraft,
			TaxRate: 13,
			LineItems: []entities.LineItem{
				{ID: "li-1", Description: "brake pads", Kind: entities.LineItemKindPart, Quantity: 1, UnitPrice: 50, Total: 50},
				{ID: "li-2", Description: "brake service", Kind: entities.LineItemKindLabour, Quantity: 2, UnitPrice: 80, Total: 160},
			},
		}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				return e, nil
			})

		out, err := uc.RemoveLineItem(context.Background(), "est-1", "li-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Subtotal != 50 || out.Total != 56.5 {
			t.Fatalf("expected 50/56.5 after removal, got %v/%v", out.Subtotal, out.Total)
		}
	})

	t.Run("unknown line item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusDraft}, nil)

		_, err := uc.RemoveLineItem(context.Background(), "est-1", "li-9")
		if !errors.Is(err, ErrLineItemNotFound) {
			t.Fatalf("expected ErrLineItemNotFound, got %v", err)
		}
	})
}

func TestEstimateUseCase_Lifecycle(t *testing.T) {
	t.Run("send stamps timestamp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusDraft}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				return e, nil
			})

		out, err := uc.Send(context.Background(), "est-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != entities.EstimateStatusSent || out.SentAt == nil {
			t.Fatalf("expected sent with timestamp, got %s %v", out.Status, out.SentAt)
		}
	})

	t.Run("approve from draft is invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusDraft}, nil)

		_, err := uc.Approve(context.Background(), "est-1", "advisor-1")
		var tErr *entities.InvalidTransitionError
		if !errors.As(err, &tErr) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
	})

	t.Run("approve refused after validity window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		past := time.Now().UTC().AddDate(0, 0, -1)
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusSent, ValidUntil: &past}, nil)

		_, err := uc.Approve(context.Background(), "est-1", "advisor-1")
		if !errors.Is(err, ErrEstimateExpired) {
			t.Fatalf("expected ErrEstimateExpired, got %v", err)
		}
	})

	t.Run("reject requires reason", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, testShopConfig())
		_, err := uc.Reject(context.Background(), "est-1", "  ")
		if !errors.Is(err, ErrRejectReasonRequired) {
			t.Fatalf("expected ErrRejectReasonRequired, got %v", err)
		}
	})

	t.Run("approve records actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusSent}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				return e, nil
			})

		out, err := uc.Approve(context.Background(), "est-1", "advisor-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ApprovedBy != "advisor-1" || out.ApprovedAt == nil {
			t.Fatalf("expected approval metadata, got %q %v", out.ApprovedBy, out.ApprovedAt)
		}
	})
}

func TestEstimateUseCase_Convert(t *testing.T) {
	approved := func() entities.Estimate {
		return entities.Estimate{
			ID:         "est-1",
			CustomerID: "cus-1",
			VehicleID:  "veh-1",
			Status:     entities.EstimateStatusApproved,
			TaxRate:    13,
			LineItems: []entities.LineItem{
				{ID: "li-1", Description: "brake pads", Kind: entities.LineItemKindPart, Quantity: 1, UnitPrice: 56, Total: 56},
				{ID: "li-2", Description: "brake service", Kind: entities.LineItemKindLabour, Quantity: 2, UnitPrice: 80, Total: 160},
			},
			Version: 3,
		}
	}

	t.Run("splits parts and jobs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, txn, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approved(), nil)

		var flipped entities.Estimate
		txn.EXPECT().ConvertEstimate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate, _ entities.WorkOrder) error {
				flipped = e
				return nil
			})

		wo, err := uc.Convert(context.Background(), "est-1", ConvertEstimateInput{MileageIn: 42000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(wo.Parts) != 1 || len(wo.Jobs) != 1 {
			t.Fatalf("expected 1 part and 1 job, got %d/%d", len(wo.Parts), len(wo.Jobs))
		}
		if wo.Parts[0].UnitCost != 40 {
			t.Fatalf("expected unit cost 40 from markup, got %v", wo.Parts[0].UnitCost)
		}
		if wo.Jobs[0].EstimatedHours != 2 {
			t.Fatalf("expected 2 estimated hours, got %v", wo.Jobs[0].EstimatedHours)
		}
		if wo.EstimateID != "est-1" || wo.Status != entities.WorkOrderStatusCreated {
			t.Fatalf("unexpected work order linkage: %s %s", wo.EstimateID, wo.Status)
		}
		if wo.Priority != entities.WorkOrderPriorityNormal {
			t.Fatalf("expected default priority, got %s", wo.Priority)
		}
		if flipped.Status != entities.EstimateStatusConverted || flipped.ConvertedToWorkOrderID != wo.ID {
			t.Fatalf("estimate not flipped: %s %s", flipped.Status, flipped.ConvertedToWorkOrderID)
		}
	})

	t.Run("already converted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		e := approved()
		e.Status = entities.EstimateStatusConverted
		e.ConvertedToWorkOrderID = "wo-1"
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(e, nil)

		_, err := uc.Convert(context.Background(), "est-1", ConvertEstimateInput{})
		if !errors.Is(err, ErrEstimateConverted) {
			t.Fatalf("expected ErrEstimateConverted, got %v", err)
		}
	})

	t.Run("duplicate call loses to guard", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		txn := mock_interfaces.NewMockIDocumentTxn(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, txn, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(approved(), nil)
		txn.EXPECT().ConvertEstimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrGuardAlreadySet)

		_, err := uc.Convert(context.Background(), "est-1", ConvertEstimateInput{})
		if !errors.Is(err, ErrEstimateConverted) {
			t.Fatalf("expected ErrEstimateConverted, got %v", err)
		}
	})

	t.Run("rejected estimate cannot convert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		e := approved()
		e.Status = entities.EstimateStatusRejected
		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(e, nil)

		_, err := uc.Convert(context.Background(), "est-1", ConvertEstimateInput{})
		var tErr *entities.InvalidTransitionError
		if !errors.As(err, &tErr) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
	})
}

func TestEstimateUseCase_Delete(t *testing.T) {
	t.Run("approved estimate is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusApproved}, nil)

		if err := uc.Delete(context.Background(), "est-1"); !errors.Is(err, ErrEstimateNotDeletable) {
			t.Fatalf("expected ErrEstimateNotDeletable, got %v", err)
		}
	})

	t.Run("draft estimate is removed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, testShopConfig())

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1", Status: entities.EstimateStatusDraft}, nil)
		repo.EXPECT().Delete(gomock.Any(), "est-1").Return(nil)

		if err := uc.Delete(context.Background(), "est-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
