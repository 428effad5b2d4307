package repository

import (
	"context"
	"fmt"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSettingsTableName = "provider_settings"

type settingsItem struct {
	Scope                   string `dynamodbav:"scope"`
	Organizer               string `dynamodbav:"organizer"`
	Event                   string `dynamodbav:"event,omitempty"`
	APIKey                  string `dynamodbav:"api_key,omitempty"`
	APISecret               string `dynamodbav:"api_secret,omitempty"`
	WebhookSecret           string `dynamodbav:"webhook_secret,omitempty"`
	TestMode                bool   `dynamodbav:"test_mode"`
	ProductionAPIURL        string `dynamodbav:"production_api_url,omitempty"`
	SandboxAPIURL           string `dynamodbav:"sandbox_api_url,omitempty"`
	PaymentDescription      string `dynamodbav:"payment_description,omitempty"`
	DisableAnyStateFallback bool   `dynamodbav:"disable_any_state_fallback"`
}

// SettingsDynamoRepository persists per-tenant Recurrente configuration.
//
// Table requirements:
//   - PK: scope (string)
//
// Scope is "<organizer>/<event>" for event-level settings and "<organizer>"
// for organizer-level defaults (used today for the shared webhook secret).

type SettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb *dynamodb.Client) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SETTINGS_TABLE", defaultSettingsTableName),
	}
}

func (r *SettingsDynamoRepository) Put(ctx context.Context, s entities.EventSettings) (entities.EventSettings, error) {
	it := toSettingsItem(s)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.EventSettings{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.EventSettings{}, err
	}
	return s, nil
}

func (r *SettingsDynamoRepository) GetEventSettings(ctx context.Context, organizer, event string) (entities.EventSettings, error) {
	return r.getByScope(ctx, settingsScope(organizer, event))
}

func (r *SettingsDynamoRepository) GetOrganizerSettings(ctx context.Context, organizer string) (entities.EventSettings, error) {
	return r.getByScope(ctx, organizer)
}

func (r *SettingsDynamoRepository) getByScope(ctx context.Context, scope string) (entities.EventSettings, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"scope": &types.AttributeValueMemberS{Value: scope},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.EventSettings{}, err
	}
	if len(out.Item) == 0 {
		return entities.EventSettings{}, nil
	}

	var it settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.EventSettings{}, err
	}
	return fromSettingsItem(it), nil
}

func settingsScope(organizer, event string) string {
	if event == "" {
		return organizer
	}
	return fmt.Sprintf("%s/%s", organizer, event)
}

func toSettingsItem(s entities.EventSettings) settingsItem {
	return settingsItem{
		Scope:                   settingsScope(s.Organizer, s.Event),
		Organizer:               s.Organizer,
		Event:                   s.Event,
		APIKey:                  s.APIKey,
		APISecret:               s.APISecret,
		WebhookSecret:           s.WebhookSecret,
		TestMode:                s.TestMode,
		ProductionAPIURL:        s.ProductionAPIURL,
		SandboxAPIURL:           s.SandboxAPIURL,
		PaymentDescription:      s.PaymentDescription,
		DisableAnyStateFallback: s.DisableAnyStateFallback,
	}
}

func fromSettingsItem(it settingsItem) entities.EventSettings {
	return entities.EventSettings{
		Organizer:               it.Organizer,
		Event:                   it.Event,
		APIKey:                  it.APIKey,
		APISecret:               it.APISecret,
		WebhookSecret:           it.WebhookSecret,
		TestMode:                it.TestMode,
		ProductionAPIURL:        it.ProductionAPIURL,
		SandboxAPIURL:           it.SandboxAPIURL,
		PaymentDescription:      it.PaymentDescription,
		DisableAnyStateFallback: it.DisableAnyStateFallback,
	}
}
