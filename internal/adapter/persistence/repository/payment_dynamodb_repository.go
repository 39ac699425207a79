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
	defaultPaymentsTableName = "payments"
	invoiceIDIndex           = "invoice_id-index"
)

func paymentsTableName() string {
	return getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName)
}

type paymentItem struct {
	ID           string  `dynamodbav:"id"`
	InvoiceID    string  `dynamodbav:"invoice_id"`
	CustomerID   string  `dynamodbav:"customer_id"`
	Amount       float64 `dynamodbav:"amount"`
	Method       string  `dynamodbav:"method"`
	Status       string  `dynamodbav:"status"`
	Reference    string  `dynamodbav:"reference,omitempty"`
	RefundReason string  `dynamodbav:"refund_reason,omitempty"`
	ProcessedAt  string  `dynamodbav:"processed_at,omitempty"`
	RefundedAt   string  `dynamodbav:"refunded_at,omitempty"`
	CreatedAt    string  `dynamodbav:"created_at"`
}

// PaymentDynamoRepository reads Payment records from DynamoDB. Writes go
// through the payment transaction so the payment and the invoice balance
// commit together.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id)

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: paymentsTableName()}
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	var (
		payments  []entities.Payment
		exclusive map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			IndexName:                aws.String(invoiceIDIndex),
			KeyConditionExpression:   aws.String("#iid = :iid"),
			ExpressionAttributeNames: map[string]string{"#iid": "invoice_id"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":iid": &types.AttributeValueMemberS{Value: invoiceID},
			},
			ExclusiveStartKey: exclusive,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			payments = append(payments, fromPaymentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		exclusive = out.LastEvaluatedKey
	}
	return payments, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		CustomerID:   p.CustomerID,
		Amount:       p.Amount,
		Method:       string(p.Method),
		Status:       string(p.Status),
		Reference:    p.Reference,
		RefundReason: p.RefundReason,
		ProcessedAt:  timeToString(p.ProcessedAt),
		RefundedAt:   timePtrToString(p.RefundedAt),
		CreatedAt:    timeToString(p.CreatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:           it.ID,
		InvoiceID:    it.InvoiceID,
		CustomerID:   it.CustomerID,
		Amount:       it.Amount,
		Method:       entities.PaymentMethod(it.Method),
		Status:       entities.PaymentStatus(it.Status),
		Reference:    it.Reference,
		RefundReason: it.RefundReason,
		ProcessedAt:  timeFromString(it.ProcessedAt),
		RefundedAt:   timePtrFromString(it.RefundedAt),
		CreatedAt:    timeFromString(it.CreatedAt),
	}
}
