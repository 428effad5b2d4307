package repository

import (
	"context"
	"errors"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsOrderCodeIndex   = "order_code-index"
	paymentsCheckoutIDIndex  = "checkout_id-index"
)

type paymentItem struct {
	ID          string         `dynamodbav:"id"`
	OrderCode   string         `dynamodbav:"order_code"`
	Organizer   string         `dynamodbav:"organizer"`
	Event       string         `dynamodbav:"event"`
	Provider    string         `dynamodbav:"provider"`
	State       string         `dynamodbav:"state"`
	AmountCents int64          `dynamodbav:"amount_cents"`
	Currency    string         `dynamodbav:"currency"`
	CheckoutID  string         `dynamodbav:"checkout_id,omitempty"`
	Info        map[string]any `dynamodbav:"info,omitempty"`
	CreatedAt   string         `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_code-index (PK: order_code, SK: created_at)
//   - GSI: checkout_id-index (PK: checkout_id, SK: created_at)
//
// The GSI sort keys let the list queries return payments newest first, which
// the record locator's "latest pending" fallback depends on. checkout_id is
// mirrored out of the info map into a top-level attribute on every write so
// the index stays in sync with the stored metadata.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	it := toPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
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

func (r *PaymentDynamoRepository) ListByOrderCode(ctx context.Context, orderCode string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderCodeIndex),
		KeyConditionExpression: aws.String("order_code = :oc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oc": &types.AttributeValueMemberS{Value: orderCode},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	payments := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		payments = append(payments, fromPaymentItem(it))
	}
	return payments, nil
}

func (r *PaymentDynamoRepository) ListByCheckoutID(ctx context.Context, organizer, event, checkoutID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsCheckoutIDIndex),
		KeyConditionExpression: aws.String("checkout_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: checkoutID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	// Checkout ids are globally unique at the gateway; the tenant check after
	// the fetch follows the same pattern as order lookup by code.
	payments := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		if it.Organizer != organizer || it.Event != event {
			continue
		}
		payments = append(payments, fromPaymentItem(it))
	}
	return payments, nil
}

func (r *PaymentDynamoRepository) UpdateInfo(ctx context.Context, id string, info map[string]any) (entities.Payment, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		infoAV, err := attributevalue.Marshal(info)
		if err != nil {
			infoAV = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{}}
		}
		expr := "SET #info = :info, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":info":       infoAV,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#info":       "info",
			"#updated_at": "updated_at",
		}
		if cid := checkoutIDFromInfo(info); cid != "" {
			expr += ", #checkout_id = :checkout_id"
			vals[":checkout_id"] = &types.AttributeValueMemberS{Value: cid}
			names["#checkout_id"] = "checkout_id"
		}
		return expr, vals, names
	})
}

func (r *PaymentDynamoRepository) UpdateState(ctx context.Context, id string, state entities.PaymentState, info map[string]any) (entities.Payment, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		infoAV, err := attributevalue.Marshal(info)
		if err != nil {
			infoAV = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{}}
		}
		expr := "SET #state = :state, #info = :info, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":state":      &types.AttributeValueMemberS{Value: string(state)},
			":info":       infoAV,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#state":      "state",
			"#info":       "info",
			"#updated_at": "updated_at",
		}
		if cid := checkoutIDFromInfo(info); cid != "" {
			expr += ", #checkout_id = :checkout_id"
			vals[":checkout_id"] = &types.AttributeValueMemberS{Value: cid}
			names["#checkout_id"] = "checkout_id"
		}
		return expr, vals, names
	})
}

func (r *PaymentDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Payment{}, nil
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:          p.ID,
		OrderCode:   p.OrderCode,
		Organizer:   p.Organizer,
		Event:       p.Event,
		Provider:    p.Provider,
		State:       string(p.State),
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		CheckoutID:  checkoutIDFromInfo(p.Info),
		Info:        p.Info,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func checkoutIDFromInfo(info map[string]any) string {
	cid, _ := info["checkout_id"].(string)
	return cid
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:          it.ID,
		OrderCode:   it.OrderCode,
		Organizer:   it.Organizer,
		Event:       it.Event,
		Provider:    it.Provider,
		State:       entities.PaymentState(it.State),
		AmountCents: it.AmountCents,
		Currency:    it.Currency,
		Info:        it.Info,
		CreatedAt:   createdAt,
	}
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
