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

const defaultInvoicesTableName = "invoices"

func invoicesTableName() string {
	return getenvDefault("INVOICES_TABLE", defaultInvoicesTableName)
}

type invoiceItem struct {
	ID             string         `dynamodbav:"id"`
	CustomerID     string         `dynamodbav:"customer_id"`
	VehicleID      string         `dynamodbav:"vehicle_id"`
	WorkOrderID    string         `dynamodbav:"work_order_id,omitempty"`
	LineItems      []lineItemItem `dynamodbav:"line_items"`
	Subtotal       float64        `dynamodbav:"subtotal"`
	DiscountAmount float64        `dynamodbav:"discount_amount"`
	TaxRate        float64        `dynamodbav:"tax_rate"`
	TaxAmount      float64        `dynamodbav:"tax_amount"`
	Total          float64        `dynamodbav:"total"`
	AmountPaid     float64        `dynamodbav:"amount_paid"`
	AmountDue      float64        `dynamodbav:"amount_due"`
	Status         string         `dynamodbav:"status"`
	PaymentIDs     []string       `dynamodbav:"payment_ids,omitempty"`
	CancelReason   string         `dynamodbav:"cancel_reason,omitempty"`
	DueDate        string         `dynamodbav:"due_date,omitempty"`
	SentAt         string         `dynamodbav:"sent_at,omitempty"`
	PaidAt         string         `dynamodbav:"paid_at,omitempty"`
	CreatedBy      string         `dynamodbav:"created_by,omitempty"`
	CreatedAt      string         `dynamodbav:"created_at"`
	UpdatedAt      string         `dynamodbav:"updated_at"`
	Version        int64          `dynamodbav:"version"`
}

// InvoiceDynamoRepository persists Invoice documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id)
//
// Balance-moving writes (payments, refunds) bypass Save and go through the
// payment transaction so the balance and the payment record commit
// together.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{ddb: ddb, tableName: invoicesTableName()}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}
	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) List(ctx context.Context, customerID string) ([]entities.Invoice, error) {
	items, err := listItems(ctx, r.ddb, r.tableName, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(items))
	for _, raw := range items {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		out = append(out, fromInvoiceItem(it))
	}
	return out, nil
}

func (r *InvoiceDynamoRepository) Save(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	expected := inv.Version
	inv.Version++
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
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
			return entities.Invoice{}, interfaces.ErrVersionConflict
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	return err
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		VehicleID:      inv.VehicleID,
		WorkOrderID:    inv.WorkOrderID,
		LineItems:      toLineItemItems(inv.LineItems),
		Subtotal:       inv.Subtotal,
		DiscountAmount: inv.DiscountAmount,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		AmountPaid:     inv.AmountPaid,
		AmountDue:      inv.AmountDue,
		Status:         string(inv.Status),
		PaymentIDs:     inv.PaymentIDs,
		CancelReason:   inv.CancelReason,
		DueDate:        timePtrToString(inv.DueDate),
		SentAt:         timePtrToString(inv.SentAt),
		PaidAt:         timePtrToString(inv.PaidAt),
		CreatedBy:      inv.CreatedBy,
		CreatedAt:      timeToString(inv.CreatedAt),
		UpdatedAt:      timeToString(inv.UpdatedAt),
		Version:        inv.Version,
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:             it.ID,
		CustomerID:     it.CustomerID,
		VehicleID:      it.VehicleID,
		WorkOrderID:    it.WorkOrderID,
		LineItems:      fromLineItemItems(it.LineItems),
		Subtotal:       it.Subtotal,
		DiscountAmount: it.DiscountAmount,
		TaxRate:        it.TaxRate,
		TaxAmount:      it.TaxAmount,
		Total:          it.Total,
		AmountPaid:     it.AmountPaid,
		AmountDue:      it.AmountDue,
		Status:         entities.InvoiceStatus(it.Status),
		PaymentIDs:     it.PaymentIDs,
		CancelReason:   it.CancelReason,
		DueDate:        timePtrFromString(it.DueDate),
		SentAt:         timePtrFromString(it.SentAt),
		PaidAt:         timePtrFromString(it.PaidAt),
		CreatedBy:      it.CreatedBy,
		CreatedAt:      timeFromString(it.CreatedAt),
		UpdatedAt:      timeFromString(it.UpdatedAt),
		Version:        it.Version,
	}
}
