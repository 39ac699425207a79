package repository

import (
	"context"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCustomersTableName = "customers"
	defaultVehiclesTableName  = "vehicles"
)

func customersTableName() string {
	return getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName)
}

func vehiclesTableName() string {
	return getenvDefault("VEHICLES_TABLE", defaultVehiclesTableName)
}

type customerItem struct {
	ID         string  `dynamodbav:"id"`
	Name       string  `dynamodbav:"name"`
	Email      string  `dynamodbav:"email,omitempty"`
	Phone      string  `dynamodbav:"phone,omitempty"`
	TotalSpent float64 `dynamodbav:"total_spent"`
	VisitCount int     `dynamodbav:"visit_count"`
	CreatedAt  string  `dynamodbav:"created_at"`
}

type vehicleItem struct {
	ID           string `dynamodbav:"id"`
	CustomerID   string `dynamodbav:"customer_id"`
	Make         string `dynamodbav:"make"`
	Model        string `dynamodbav:"model"`
	Year         int    `dynamodbav:"year"`
	LicensePlate string `dynamodbav:"license_plate,omitempty"`
	Mileage      int    `dynamodbav:"mileage"`
}

// CustomerDynamoGateway reads customer records owned by the registration
// service. Writes here are limited to the spend/visit counters, which the
// payment transaction updates.

type CustomerDynamoGateway struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICustomerGateway = (*CustomerDynamoGateway)(nil)

func NewCustomerDynamoGateway(ddb *dynamodb.Client) *CustomerDynamoGateway {
	return &CustomerDynamoGateway{ddb: ddb, tableName: customersTableName()}
}

func (g *CustomerDynamoGateway) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	out, err := g.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.tableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Customer{}, nil
	}
	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Customer{}, err
	}
	return entities.Customer{
		ID:         it.ID,
		Name:       it.Name,
		Email:      it.Email,
		Phone:      it.Phone,
		TotalSpent: it.TotalSpent,
		VisitCount: it.VisitCount,
		CreatedAt:  timeFromString(it.CreatedAt),
	}, nil
}

// VehicleDynamoGateway reads vehicle records owned by the registration
// service.

type VehicleDynamoGateway struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IVehicleGateway = (*VehicleDynamoGateway)(nil)

func NewVehicleDynamoGateway(ddb *dynamodb.Client) *VehicleDynamoGateway {
	return &VehicleDynamoGateway{ddb: ddb, tableName: vehiclesTableName()}
}

func (g *VehicleDynamoGateway) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	out, err := g.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(g.tableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	if len(out.Item) == 0 {
		return entities.Vehicle{}, nil
	}
	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Vehicle{}, err
	}
	return entities.Vehicle{
		ID:           it.ID,
		CustomerID:   it.CustomerID,
		Make:         it.Make,
		Model:        it.Model,
		Year:         it.Year,
		LicensePlate: it.LicensePlate,
		Mileage:      it.Mileage,
	}, nil
}
