package interfaces

import (
	"context"

	"autoshop/internal/domain/entities"
)

// Customer and vehicle records are owned by the registration service; the
// document engines only need existence/ownership lookups. A zero-ID result
// means not found, matching the repository convention.

type ICustomerGateway interface {
	GetByID(ctx context.Context, id string) (entities.Customer, error)
}

type IVehicleGateway interface {
	GetByID(ctx context.Context, id string) (entities.Vehicle, error)
}
