package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	defaultQuotasTableName = "event_quotas"
)

type orderItem struct {
	Code       string `dynamodbav:"code"`
	Organizer  string `dynamodbav:"organizer"`
	Event      string `dynamodbav:"event"`
	Status     string `dynamodbav:"status"`
	Secret     string `dynamodbav:"secret"`
	Email      string `dynamodbav:"email"`
	TotalCents int64  `dynamodbav:"total_cents"`
	Currency   string `dynamodbav:"currency"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// OrderDynamoRepository persists Order entities and the per-event ticket
// quota in DynamoDB.
//
// Table requirements:
//   - orders: PK code (string); order codes are globally unique
//   - event_quotas: PK scope (string, "<organizer>/<event>"), attribute
//     remaining (number)
//
// An event with no quota item sells unlimited tickets.

type OrderDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	quotasTable string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		quotasTable: getenvDefault("QUOTAS_TABLE", defaultQuotasTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it := toOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#code)"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByCode(ctx context.Context, organizer, event, code string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	// Codes are globally unique; the tenant check stops cross-event probing.
	if it.Organizer != organizer || it.Event != event {
		return entities.Order{}, nil
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, code string, status entities.OrderStatus) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConditionExpression: aws.String("attribute_exists(#code)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		ExpressionAttributeNames: map[string]string{
			"#code":       "code",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

// DecrementQuota atomically consumes one unit of the event's remaining
// capacity. A missing quota item means the event is uncapped.
func (r *OrderDynamoRepository) DecrementQuota(ctx context.Context, organizer, event string) error {
	scope := fmt.Sprintf("%s/%s", organizer, event)

	existing, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.quotasTable),
		Key: map[string]types.AttributeValue{
			"scope": &types.AttributeValueMemberS{Value: scope},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return err
	}
	if len(existing.Item) == 0 {
		return nil
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.quotasTable),
		Key: map[string]types.AttributeValue{
			"scope": &types.AttributeValueMemberS{Value: scope},
		},
		ConditionExpression: aws.String("#remaining >= :one"),
		UpdateExpression:    aws.String("SET #remaining = #remaining - :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ExpressionAttributeNames: map[string]string{
			"#remaining": "remaining",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return interfaces.ErrQuotaExceeded
		}
		return err
	}
	return nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		Code:       o.Code,
		Organizer:  o.Organizer,
		Event:      o.Event,
		Status:     string(o.Status),
		Secret:     o.Secret,
		Email:      o.Email,
		TotalCents: o.TotalCents,
		Currency:   o.Currency,
		CreatedAt:  o.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Order{
		Code:       it.Code,
		Organizer:  it.Organizer,
		Event:      it.Event,
		Status:     entities.OrderStatus(it.Status),
		Secret:     it.Secret,
		Email:      it.Email,
		TotalCents: it.TotalCents,
		Currency:   it.Currency,
		CreatedAt:  createdAt,
	}
}
