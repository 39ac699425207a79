package repository

import (
	"context"
	"errors"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultWorkOrdersTableName = "work_orders"

func workOrdersTableName() string {
	return getenvDefault("WORK_ORDERS_TABLE", defaultWorkOrdersTableName)
}

type jobItem struct {
	ID             string   `dynamodbav:"id"`
	Description    string   `dynamodbav:"description"`
	EstimatedHours float64  `dynamodbav:"estimated_hours"`
	ActualHours    *float64 `dynamodbav:"actual_hours,omitempty"`
	Status         string   `dynamodbav:"status"`
}

type partItem struct {
	ID         string  `dynamodbav:"id"`
	PartNumber string  `dynamodbav:"part_number"`
	Quantity   float64 `dynamodbav:"quantity"`
	UnitCost   float64 `dynamodbav:"unit_cost"`
	UnitPrice  float64 `dynamodbav:"unit_price"`
	Total      float64 `dynamodbav:"total"`
}

type workOrderItem struct {
	ID          string     `dynamodbav:"id"`
	CustomerID  string     `dynamodbav:"customer_id"`
	VehicleID   string     `dynamodbav:"vehicle_id"`
	EstimateID  string     `dynamodbav:"estimate_id,omitempty"`
	Jobs        []jobItem  `dynamodbav:"jobs"`
	Parts       []partItem `dynamodbav:"parts"`
	Status      string     `dynamodbav:"status"`
	Priority    string     `dynamodbav:"priority"`
	MileageIn   int        `dynamodbav:"mileage_in"`
	MileageOut  *int       `dynamodbav:"mileage_out,omitempty"`
	LabourTotal float64    `dynamodbav:"labour_total"`
	PartsTotal  float64    `dynamodbav:"parts_total"`
	TaxAmount   float64    `dynamodbav:"tax_amount"`
	Total       float64    `dynamodbav:"total"`
	InvoiceID   string     `dynamodbav:"invoice_id,omitempty"`
	Notes       string     `dynamodbav:"notes,omitempty"`
	CreatedBy   string     `dynamodbav:"created_by,omitempty"`
	StartedAt   string     `dynamodbav:"started_at,omitempty"`
	CompletedAt string     `dynamodbav:"completed_at,omitempty"`
	CreatedAt   string     `dynamodbav:"created_at"`
	UpdatedAt   string     `dynamodbav:"updated_at"`
	Version     int64      `dynamodbav:"version"`
}

// WorkOrderDynamoRepository persists WorkOrder documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
//
// The invoice_id guard is only ever written through the invoice-generation
// transaction.

type WorkOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb *dynamodb.Client) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{ddb: ddb, tableName: workOrdersTableName()}
}

func (r *WorkOrderDynamoRepository) Create(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return entities.WorkOrder{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}
	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) List(ctx context.Context, customerID string) ([]entities.WorkOrder, error) {
	items, err := listItems(ctx, r.ddb, r.tableName, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.WorkOrder, 0, len(items))
	for _, raw := range items {
		var it workOrderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		out = append(out, fromWorkOrderItem(it))
	}
	return out, nil
}

func (r *WorkOrderDynamoRepository) Save(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	expected := wo.Version
	wo.Version++
	av, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return entities.WorkOrder{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{"#version": "version"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: formatInt(expected)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkOrder{}, interfaces.ErrVersionConflict
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderDynamoRepository) Delete(ctx context.Context, id string) error {
	// Deleting an invoiced work order is rejected at the storage level too;
	// the use case already refuses it.
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConditionExpression:      aws.String("attribute_not_exists(#inv)"),
		ExpressionAttributeNames: map[string]string{"#inv": "invoice_id"},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return interfaces.ErrGuardAlreadySet
		}
	}
	return err
}

func toWorkOrderItem(wo entities.WorkOrder) workOrderItem {
	jobs := make([]jobItem, 0, len(wo.Jobs))
	for _, j := range wo.Jobs {
		jobs = append(jobs, jobItem{
			ID:             j.ID,
			Description:    j.Description,
			EstimatedHours: j.EstimatedHours,
			ActualHours:    j.ActualHours,
			Status:         string(j.Status),
		})
	}
	parts := make([]partItem, 0, len(wo.Parts))
	for _, p := range wo.Parts {
		parts = append(parts, partItem{
			ID:         p.ID,
			PartNumber: p.PartNumber,
			Quantity:   p.Quantity,
			UnitCost:   p.UnitCost,
			UnitPrice:  p.UnitPrice,
			Total:      p.Total,
		})
	}
	return workOrderItem{
		ID:          wo.ID,
		CustomerID:  wo.CustomerID,
		VehicleID:   wo.VehicleID,
		EstimateID:  wo.EstimateID,
		Jobs:        jobs,
		Parts:       parts,
		Status:      string(wo.Status),
		Priority:    string(wo.Priority),
		MileageIn:   wo.MileageIn,
		MileageOut:  wo.MileageOut,
		LabourTotal: wo.LabourTotal,
		PartsTotal:  wo.PartsTotal,
		TaxAmount:   wo.TaxAmount,
		Total:       wo.Total,
		InvoiceID:   wo.InvoiceID,
		Notes:       wo.Notes,
		CreatedBy:   wo.CreatedBy,
		StartedAt:   timePtrToString(wo.StartedAt),
		CompletedAt: timePtrToString(wo.CompletedAt),
		CreatedAt:   timeToString(wo.CreatedAt),
		UpdatedAt:   timeToString(wo.UpdatedAt),
		Version:     wo.Version,
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	jobs := make([]entities.Job, 0, len(it.Jobs))
	for _, j := range it.Jobs {
		jobs = append(jobs, entities.Job{
			ID:             j.ID,
			Description:    j.Description,
			EstimatedHours: j.EstimatedHours,
			ActualHours:    j.ActualHours,
			Status:         entities.JobStatus(j.Status),
		})
	}
	parts := make([]entities.Part, 0, len(it.Parts))
	for _, p := range it.Parts {
		parts = append(parts, entities.Part{
			ID:         p.ID,
			PartNumber: p.PartNumber,
			Quantity:   p.Quantity,
			UnitCost:   p.UnitCost,
			UnitPrice:  p.UnitPrice,
			Total:      p.Total,
		})
	}
	return entities.WorkOrder{
		ID:          it.ID,
		CustomerID:  it.CustomerID,
		VehicleID:   it.VehicleID,
		EstimateID:  it.EstimateID,
		Jobs:        jobs,
		Parts:       parts,
		Status:      entities.WorkOrderStatus(it.Status),
		Priority:    entities.WorkOrderPriority(it.Priority),
		MileageIn:   it.MileageIn,
		MileageOut:  it.MileageOut,
		LabourTotal: it.LabourTotal,
		PartsTotal:  it.PartsTotal,
		TaxAmount:   it.TaxAmount,
		Total:       it.Total,
		InvoiceID:   it.InvoiceID,
		Notes:       it.Notes,
		CreatedBy:   it.CreatedBy,
		StartedAt:   timePtrFromString(it.StartedAt),
		CompletedAt: timePtrFromString(it.CompletedAt),
		CreatedAt:   timeFromString(it.CreatedAt),
		UpdatedAt:   timeFromString(it.UpdatedAt),
		Version:     it.Version,
	}
}
