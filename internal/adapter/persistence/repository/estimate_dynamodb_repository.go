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

const (
	defaultEstimatesTableName = "estimates"
	customerIDIndex           = "customer_id-index"
)

func estimatesTableName() string {
	return getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName)
}

type lineItemItem struct {
	ID          string  `dynamodbav:"id"`
	Description string  `dynamodbav:"description"`
	Kind        string  `dynamodbav:"kind"`
	Quantity    float64 `dynamodbav:"quantity"`
	UnitPrice   float64 `dynamodbav:"unit_price"`
	Discount    float64 `dynamodbav:"discount"`
	Total       float64 `dynamodbav:"total"`
}

type estimateItem struct {
	ID                     string         `dynamodbav:"id"`
	CustomerID             string         `dynamodbav:"customer_id"`
	VehicleID              string         `dynamodbav:"vehicle_id"`
	LineItems              []lineItemItem `dynamodbav:"line_items"`
	Subtotal               float64        `dynamodbav:"subtotal"`
	DiscountAmount         float64        `dynamodbav:"discount_amount"`
	TaxRate                float64        `dynamodbav:"tax_rate"`
	TaxAmount              float64        `dynamodbav:"tax_amount"`
	Total                  float64        `dynamodbav:"total"`
	Status                 string         `dynamodbav:"status"`
	Notes                  string         `dynamodbav:"notes,omitempty"`
	RejectReason           string         `dynamodbav:"reject_reason,omitempty"`
	ValidUntil             string         `dynamodbav:"valid_until,omitempty"`
	SentAt                 string         `dynamodbav:"sent_at,omitempty"`
	ApprovedAt             string         `dynamodbav:"approved_at,omitempty"`
	ApprovedBy             string         `dynamodbav:"approved_by,omitempty"`
	RejectedAt             string         `dynamodbav:"rejected_at,omitempty"`
	ConvertedToWorkOrderID string         `dynamodbav:"converted_to_work_order_id,omitempty"`
	CreatedBy              string         `dynamodbav:"created_by,omitempty"`
	CreatedAt              string         `dynamodbav:"created_at"`
	UpdatedAt              string         `dynamodbav:"updated_at"`
	Version                int64          `dynamodbav:"version"`
}

// EstimateDynamoRepository persists Estimate documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
//
// Save is a whole-document conditional put keyed on the version the caller
// read; the converted_to_work_order_id guard is only ever written through
// the conversion transaction.

type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{ddb: ddb, tableName: estimatesTableName()}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}
	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) List(ctx context.Context, customerID string) ([]entities.Estimate, error) {
	items, err := listItems(ctx, r.ddb, r.tableName, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Estimate, 0, len(items))
	for _, raw := range items {
		var it estimateItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		out = append(out, fromEstimateItem(it))
	}
	return out, nil
}

func (r *EstimateDynamoRepository) Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	expected := e.Version
	e.Version++
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
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
			return entities.Estimate{}, interfaces.ErrVersionConflict
		}
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	return err
}

func toLineItemItems(items []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemItem{
			ID:          li.ID,
			Description: li.Description,
			Kind:        string(li.Kind),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Discount:    li.Discount,
			Total:       li.Total,
		})
	}
	return out
}

func fromLineItemItems(items []lineItemItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, entities.LineItem{
			ID:          it.ID,
			Description: it.Description,
			Kind:        entities.LineItemKind(it.Kind),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Total:       it.Total,
		})
	}
	return out
}

func toEstimateItem(e entities.Estimate) estimateItem {
	return estimateItem{
		ID:                     e.ID,
		CustomerID:             e.CustomerID,
		VehicleID:              e.VehicleID,
		LineItems:              toLineItemItems(e.LineItems),
		Subtotal:               e.Subtotal,
		DiscountAmount:         e.DiscountAmount,
		TaxRate:                e.TaxRate,
		TaxAmount:              e.TaxAmount,
		Total:                  e.Total,
		Status:                 string(e.Status),
		Notes:                  e.Notes,
		RejectReason:           e.RejectReason,
		ValidUntil:             timePtrToString(e.ValidUntil),
		SentAt:                 timePtrToString(e.SentAt),
		ApprovedAt:             timePtrToString(e.ApprovedAt),
		ApprovedBy:             e.ApprovedBy,
		RejectedAt:             timePtrToString(e.RejectedAt),
		ConvertedToWorkOrderID: e.ConvertedToWorkOrderID,
		CreatedBy:              e.CreatedBy,
		CreatedAt:              timeToString(e.CreatedAt),
		UpdatedAt:              timeToString(e.UpdatedAt),
		Version:                e.Version,
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	return entities.Estimate{
		ID:                     it.ID,
		CustomerID:             it.CustomerID,
		VehicleID:              it.VehicleID,
		LineItems:              fromLineItemItems(it.LineItems),
		Subtotal:               it.Subtotal,
		DiscountAmount:         it.DiscountAmount,
		TaxRate:                it.TaxRate,
		TaxAmount:              it.TaxAmount,
		Total:                  it.Total,
		Status:                 entities.EstimateStatus(it.Status),
		Notes:                  it.Notes,
		RejectReason:           it.RejectReason,
		ValidUntil:             timePtrFromString(it.ValidUntil),
		SentAt:                 timePtrFromString(it.SentAt),
		ApprovedAt:             timePtrFromString(it.ApprovedAt),
		ApprovedBy:             it.ApprovedBy,
		RejectedAt:             timePtrFromString(it.RejectedAt),
		ConvertedToWorkOrderID: it.ConvertedToWorkOrderID,
		CreatedBy:              it.CreatedBy,
		CreatedAt:              timeFromString(it.CreatedAt),
		UpdatedAt:              timeFromString(it.UpdatedAt),
		Version:                it.Version,
	}
}
