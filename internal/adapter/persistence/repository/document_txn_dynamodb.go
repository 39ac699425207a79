package repository

import (
	"context"
	"strconv"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DocumentTxn runs the cross-document writes as DynamoDB transactions.
// Each document put is conditioned on the version the caller read, and the
// one-shot guard attributes (converted_to_work_order_id, invoice_id) are
// conditioned on being absent before the flip.

type DocumentTxn struct {
	ddb             *dynamodb.Client
	estimatesTable  string
	workOrdersTable string
	invoicesTable   string
	paymentsTable   string
	customersTable  string
}

var _ interfaces.IDocumentTxn = (*DocumentTxn)(nil)

func NewDocumentTxn(ddb *dynamodb.Client) *DocumentTxn {
	return &DocumentTxn{
		ddb:             ddb,
		estimatesTable:  estimatesTableName(),
		workOrdersTable: workOrdersTableName(),
		invoicesTable:   invoicesTableName(),
		paymentsTable:   paymentsTableName(),
		customersTable:  customersTableName(),
	}
}

func (t *DocumentTxn) ConvertEstimate(ctx context.Context, est entities.Estimate, wo entities.WorkOrder) error {
	expected := est.Version
	est.Version++
	estAV, err := attributevalue.MarshalMap(toEstimateItem(est))
	if err != nil {
		return err
	}
	woAV, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return err
	}
	_, err = t.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(t.workOrdersTable),
				Item:                     woAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:           aws.String(t.estimatesTable),
				Item:                estAV,
				ConditionExpression: aws.String("#version = :expected AND attribute_not_exists(#wo)"),
				ExpressionAttributeNames: map[string]string{
					"#version": "version",
					"#wo":      "converted_to_work_order_id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":expected": &types.AttributeValueMemberN{Value: formatInt(expected)},
				},
			}},
		},
	})
	if err != nil {
		return t.mapCancellation(ctx, err, func(ctx context.Context) (bool, error) {
			out, gerr := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
				TableName:      aws.String(t.estimatesTable),
				Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: est.ID}},
				ConsistentRead: aws.Bool(true),
			})
			if gerr != nil {
				return false, gerr
			}
			var it estimateItem
			if uerr := attributevalue.UnmarshalMap(out.Item, &it); uerr != nil {
				return false, uerr
			}
			return it.ConvertedToWorkOrderID != "", nil
		})
	}
	return nil
}

func (t *DocumentTxn) AttachInvoice(ctx context.Context, wo entities.WorkOrder, inv entities.Invoice) error {
	expected := wo.Version
	wo.Version++
	woAV, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return err
	}
	invAV, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return err
	}
	_, err = t.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(t.invoicesTable),
				Item:                     invAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:           aws.String(t.workOrdersTable),
				Item:                woAV,
				ConditionExpression: aws.String("#version = :expected AND attribute_not_exists(#inv)"),
				ExpressionAttributeNames: map[string]string{
					"#version": "version",
					"#inv":     "invoice_id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":expected": &types.AttributeValueMemberN{Value: formatInt(expected)},
				},
			}},
		},
	})
	if err != nil {
		return t.mapCancellation(ctx, err, func(ctx context.Context) (bool, error) {
			out, gerr := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
				TableName:      aws.String(t.workOrdersTable),
				Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: wo.ID}},
				ConsistentRead: aws.Bool(true),
			})
			if gerr != nil {
				return false, gerr
			}
			var it workOrderItem
			if uerr := attributevalue.UnmarshalMap(out.Item, &it); uerr != nil {
				return false, uerr
			}
			return it.InvoiceID != "", nil
		})
	}
	return nil
}

func (t *DocumentTxn) ApplyPayment(ctx context.Context, p entities.Payment, inv entities.Invoice) error {
	return t.writePayment(ctx, p, inv, 1)
}

func (t *DocumentTxn) RefundPayment(ctx context.Context, p entities.Payment, inv entities.Invoice) error {
	return t.writePayment(ctx, p, inv, -1)
}

// writePayment commits the payment record, the invoice balance and the
// customer spend/visit counters together. sign is +1 for a payment and -1
// for a refund.
func (t *DocumentTxn) writePayment(ctx context.Context, p entities.Payment, inv entities.Invoice, sign float64) error {
	expected := inv.Version
	inv.Version++
	invAV, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return err
	}
	payAV, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return err
	}

	spentDelta := sign * p.Amount
	visitDelta := int64(1)
	if sign < 0 {
		visitDelta = -1
	}

	_, err = t.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName: aws.String(t.paymentsTable),
				Item:      payAV,
			}},
			{Put: &types.Put{
				TableName:                aws.String(t.invoicesTable),
				Item:                     invAV,
				ConditionExpression:      aws.String("#version = :expected"),
				ExpressionAttributeNames: map[string]string{"#version": "version"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":expected": &types.AttributeValueMemberN{Value: formatInt(expected)},
				},
			}},
			{Update: &types.Update{
				TableName:        aws.String(t.customersTable),
				Key:              map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: p.CustomerID}},
				UpdateExpression: aws.String("ADD #spent :spent, #visits :visits"),
				ExpressionAttributeNames: map[string]string{
					"#spent":  "total_spent",
					"#visits": "visit_count",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":spent":  &types.AttributeValueMemberN{Value: strconv.FormatFloat(spentDelta, 'f', -1, 64)},
					":visits": &types.AttributeValueMemberN{Value: formatInt(visitDelta)},
				},
			}},
		},
	})
	if err != nil {
		if transactionConditionFailed(err) {
			return interfaces.ErrVersionConflict
		}
		return err
	}
	return nil
}

// mapCancellation turns a transaction cancellation into ErrGuardAlreadySet
// when the guard attribute is already written, or ErrVersionConflict when
// the document merely moved under the caller.
func (t *DocumentTxn) mapCancellation(ctx context.Context, err error, guardSet func(context.Context) (bool, error)) error {
	if !transactionConditionFailed(err) {
		return err
	}
	set, gerr := guardSet(ctx)
	if gerr != nil {
		return err
	}
	if set {
		return interfaces.ErrGuardAlreadySet
	}
	return interfaces.ErrVersionConflict
}
