package interfaces

import (
	"context"

	"autoshop/internal/domain/entities"
)

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
//
// Save follows the same versioned conditional-write contract as
// IEstimateRepository.Save.

type IWorkOrderRepository interface {
	Create(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error)
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	List(ctx context.Context, customerID string) ([]entities.WorkOrder, error)
	Save(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error)
	Delete(ctx context.Context, id string) error
}
