package repository

import (
	"context"
	"fmt"
	"time"

	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrderLogsTableName = "order_logs"

type orderLogItem struct {
	OrderCode string         `dynamodbav:"order_code"`
	SortKey   string         `dynamodbav:"sk"`
	ID        string         `dynamodbav:"id"`
	Action    string         `dynamodbav:"action"`
	Data      map[string]any `dynamodbav:"data,omitempty"`
	CreatedAt string         `dynamodbav:"created_at"`
}

// OrderLogDynamoRepository persists order audit entries.
//
// Table requirements:
//   - PK: order_code (string)
//   - SK: sk (string, "<created_at>#<id>")
//
// The timestamp-prefixed sort key keeps entries unique and time ordered.

type OrderLogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderLogRepository = (*OrderLogDynamoRepository)(nil)

func NewOrderLogDynamoRepository(ddb *dynamodb.Client) *OrderLogDynamoRepository {
	return &OrderLogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDER_LOGS_TABLE", defaultOrderLogsTableName),
	}
}

func (r *OrderLogDynamoRepository) Append(ctx context.Context, entry interfaces.OrderLogEntry) error {
	createdAt := entry.CreatedAt.UTC().Format(time.RFC3339Nano)
	it := orderLogItem{
		OrderCode: entry.OrderCode,
		SortKey:   fmt.Sprintf("%s#%s", createdAt, entry.ID),
		ID:        entry.ID,
		Action:    entry.Action,
		Data:      entry.Data,
		CreatedAt: createdAt,
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *OrderLogDynamoRepository) ListByOrderCode(ctx context.Context, orderCode string) ([]interfaces.OrderLogEntry, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("order_code = :oc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oc": &types.AttributeValueMemberS{Value: orderCode},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]interfaces.OrderLogEntry, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderLogItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
		entries = append(entries, interfaces.OrderLogEntry{
			ID:        it.ID,
			OrderCode: it.OrderCode,
			Action:    it.Action,
			Data:      it.Data,
			CreatedAt: createdAt,
		})
	}
	return entries, nil
}
