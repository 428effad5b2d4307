package interfaces

import (
	"context"

	"ticketing_recurrente/internal/domain/entities"
)

// ISettingsRepository abstracts DynamoDB persistence for per-tenant
// Recurrente configuration.
//
// Both getters return a zero-value EventSettings (empty Organizer) when no
// record exists; callers fall back from event-level to organizer-level
// settings themselves.

type ISettingsRepository interface {
	Put(ctx context.Context, s entities.EventSettings) (entities.EventSettings, error)
	GetEventSettings(ctx context.Context, organizer, event string) (entities.EventSettings, error)
	GetOrganizerSettings(ctx context.Context, organizer string) (entities.EventSettings, error)
}
