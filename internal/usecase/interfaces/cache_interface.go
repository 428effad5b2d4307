package interfaces

import (
	"context"
	"time"
)

// ICache is the keyed shared cache used for duplicate-suppression
// fingerprints and confirmation locks.
//
// SetIfAbsent must be atomic (redis SETNX); the duplicate suppressor and the
// confirmation lock both rely on its check-and-set not being split into two
// steps. Get reports presence via the ok return; a missing key is not an
// error.

type ICache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}
