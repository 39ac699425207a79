package repository

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func timeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func timeFromString(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func timePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeToString(*t)
}

func timePtrFromString(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := timeFromString(s)
	return &t
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// listItems fetches every raw item of a table, via the customer_id-index
// when a customer filter is given and a paginated scan otherwise.
func listItems(ctx context.Context, ddb *dynamodb.Client, tableName, customerID string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		if customerID != "" {
			out, err := ddb.Query(ctx, &dynamodb.QueryInput{
				TableName:                aws.String(tableName),
				IndexName:                aws.String(customerIDIndex),
				KeyConditionExpression:   aws.String("#cid = :cid"),
				ExpressionAttributeNames: map[string]string{"#cid": "customer_id"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":cid": &types.AttributeValueMemberS{Value: customerID},
				},
				ExclusiveStartKey: startKey,
			})
			if err != nil {
				return nil, err
			}
			items = append(items, out.Items...)
			startKey = out.LastEvaluatedKey
		} else {
			out, err := ddb.Scan(ctx, &dynamodb.ScanInput{
				TableName:         aws.String(tableName),
				ExclusiveStartKey: startKey,
			})
			if err != nil {
				return nil, err
			}
			items = append(items, out.Items...)
			startKey = out.LastEvaluatedKey
		}
		if len(startKey) == 0 {
			return items, nil
		}
	}
}
