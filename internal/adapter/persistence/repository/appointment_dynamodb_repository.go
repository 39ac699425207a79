package repository

import (
	"context"
	"errors"
	"strings"

	"autoshop/internal/domain/entities"
	"autoshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAppointmentsTableName = "appointments"
	scheduledDateIndex           = "scheduled_date-index"
	slotLockPrefix               = "SLOT#"
)

func appointmentsTableName() string {
	return getenvDefault("APPOINTMENTS_TABLE", defaultAppointmentsTableName)
}

func slotLockID(date, slot string) string {
	return slotLockPrefix + date + "#" + slot
}

type appointmentItem struct {
	ID               string `dynamodbav:"id"`
	CustomerID       string `dynamodbav:"customer_id"`
	VehicleID        string `dynamodbav:"vehicle_id"`
	ScheduledDate    string `dynamodbav:"scheduled_date"`
	ScheduledTime    string `dynamodbav:"scheduled_time"`
	EstimatedMinutes int    `dynamodbav:"estimated_minutes"`
	Status           string `dynamodbav:"status"`
	CancelReason     string `dynamodbav:"cancel_reason,omitempty"`
	WorkOrderID      string `dynamodbav:"work_order_id,omitempty"`
	Notes            string `dynamodbav:"notes,omitempty"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
	Version          int64  `dynamodbav:"version"`
}

type slotLockItem struct {
	ID            string `dynamodbav:"id"`
	AppointmentID string `dynamodbav:"appointment_id"`
}

// AppointmentDynamoRepository persists appointments along with slot lock
// items in the same table. A lock item keyed "SLOT#<date>#<time>" is written
// with attribute_not_exists in the same transaction as the appointment, so
// two bookings racing for the same slot cannot both commit.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: scheduled_date-index (PK: scheduled_date)

type AppointmentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAppointmentRepository = (*AppointmentDynamoRepository)(nil)

func NewAppointmentDynamoRepository(ddb *dynamodb.Client) *AppointmentDynamoRepository {
	return &AppointmentDynamoRepository{ddb: ddb, tableName: appointmentsTableName()}
}

func (r *AppointmentDynamoRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	apptAV, err := attributevalue.MarshalMap(toAppointmentItem(a))
	if err != nil {
		return entities.Appointment{}, err
	}
	lockAV, err := attributevalue.MarshalMap(slotLockItem{
		ID:            slotLockID(a.ScheduledDate, a.ScheduledTime),
		AppointmentID: a.ID,
	})
	if err != nil {
		return entities.Appointment{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     apptAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     lockAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if transactionConditionFailed(err) {
			return entities.Appointment{}, interfaces.ErrSlotUnavailable
		}
		return entities.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Appointment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Appointment{}, nil
	}
	var it appointmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func (r *AppointmentDynamoRepository) ListByDate(ctx context.Context, date string) ([]entities.Appointment, error) {
	var (
		appointments []entities.Appointment
		exclusive    map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			IndexName:                aws.String(scheduledDateIndex),
			KeyConditionExpression:   aws.String("#sd = :sd"),
			ExpressionAttributeNames: map[string]string{"#sd": "scheduled_date"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sd": &types.AttributeValueMemberS{Value: date},
			},
			ExclusiveStartKey: exclusive,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it appointmentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			appointments = append(appointments, fromAppointmentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		exclusive = out.LastEvaluatedKey
	}
	return appointments, nil
}

func (r *AppointmentDynamoRepository) List(ctx context.Context, customerID string) ([]entities.Appointment, error) {
	items, err := listItems(ctx, r.ddb, r.tableName, customerID)
	if err != nil {
		return nil, err
	}
	appointments := make([]entities.Appointment, 0, len(items))
	for _, raw := range items {
		var it appointmentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		a := fromAppointmentItem(it)
		if strings.HasPrefix(a.ID, slotLockPrefix) {
			continue
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// Update writes the new appointment state and moves or releases the slot
// lock, depending on how the slot occupancy changed against prev. All
// writes happen in one transaction conditioned on the stored version.
func (r *AppointmentDynamoRepository) Update(ctx context.Context, a entities.Appointment, prev entities.Appointment) (entities.Appointment, error) {
	expected := a.Version
	a.Version++
	apptAV, err := attributevalue.MarshalMap(toAppointmentItem(a))
	if err != nil {
		return entities.Appointment{}, err
	}

	items := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     apptAV,
			ConditionExpression:      aws.String("#version = :expected"),
			ExpressionAttributeNames: map[string]string{"#version": "version"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expected": &types.AttributeValueMemberN{Value: formatInt(expected)},
			},
		}},
	}

	prevLock := slotLockID(prev.ScheduledDate, prev.ScheduledTime)
	newLock := slotLockID(a.ScheduledDate, a.ScheduledTime)
	prevHeld := prev.Status.OccupiesSlot()
	newHeld := a.Status.OccupiesSlot()

	if prevHeld && (!newHeld || prevLock != newLock) {
		items = append(items, types.TransactWriteItem{Delete: &types.Delete{
			TableName: aws.String(r.tableName),
			Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: prevLock}},
		}})
	}
	if newHeld && (!prevHeld || prevLock != newLock) {
		lockAV, err := attributevalue.MarshalMap(slotLockItem{ID: newLock, AppointmentID: a.ID})
		if err != nil {
			return entities.Appointment{}, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     lockAV,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if transactionConditionFailed(err) {
			// The version put and the lock put share the same cancellation
			// code, so re-read to tell the two races apart.
			current, gerr := r.GetByID(ctx, a.ID)
			if gerr == nil && current.Version != expected {
				return entities.Appointment{}, interfaces.ErrVersionConflict
			}
			return entities.Appointment{}, interfaces.ErrSlotUnavailable
		}
		return entities.Appointment{}, err
	}
	return a, nil
}

func transactionConditionFailed(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func toAppointmentItem(a entities.Appointment) appointmentItem {
	return appointmentItem{
		ID:               a.ID,
		CustomerID:       a.CustomerID,
		VehicleID:        a.VehicleID,
		ScheduledDate:    a.ScheduledDate,
		ScheduledTime:    a.ScheduledTime,
		EstimatedMinutes: a.EstimatedMinutes,
		Status:           string(a.Status),
		CancelReason:     a.CancelReason,
		WorkOrderID:      a.WorkOrderID,
		Notes:            a.Notes,
		CreatedAt:        timeToString(a.CreatedAt),
		UpdatedAt:        timeToString(a.UpdatedAt),
		Version:          a.Version,
	}
}

func fromAppointmentItem(it appointmentItem) entities.Appointment {
	return entities.Appointment{
		ID:               it.ID,
		CustomerID:       it.CustomerID,
		VehicleID:        it.VehicleID,
		ScheduledDate:    it.ScheduledDate,
		ScheduledTime:    it.ScheduledTime,
		EstimatedMinutes: it.EstimatedMinutes,
		Status:           entities.AppointmentStatus(it.Status),
		CancelReason:     it.CancelReason,
		WorkOrderID:      it.WorkOrderID,
		Notes:            it.Notes,
		CreatedAt:        timeFromString(it.CreatedAt),
		UpdatedAt:        timeFromString(it.UpdatedAt),
		Version:          it.Version,
	}
}
