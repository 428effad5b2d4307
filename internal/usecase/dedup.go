package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/spf13/cast"
)

const (
	dedupKeyPrefix = "recurrente:webhook:processed:"
	dedupTTL       = 24 * time.Hour
)

// WebhookDeduper suppresses redelivered notifications by fingerprinting each
// payload and marking it seen in the shared cache.
//
// The check-and-set is a single atomic SetIfAbsent; even so the fingerprint is
// a best-effort guard, not the correctness backstop. The confirmation lock
// plus absorbing states make a fingerprint race harmless.

type WebhookDeduper struct {
	cache interfaces.ICache
	ttl   time.Duration
}

func NewWebhookDeduper(cache interfaces.ICache) *WebhookDeduper {
	return &WebhookDeduper{cache: cache, ttl: dedupTTL}
}

// IsDuplicate reports whether this payload was already processed within the
// retention window, marking it processed when it was not. Cache failures are
// logged and treated as "not a duplicate" so a degraded cache never drops
// notifications.
func (d *WebhookDeduper) IsDuplicate(ctx context.Context, payload map[string]any) bool {
	key := d.key(payload)

	stored, err := d.cache.SetIfAbsent(ctx, key, "1", d.ttl)
	if err != nil {
		log.Printf("[webhook][dedup] cache error, processing anyway key=%s err=%v", key, err)
		return false
	}
	if !stored {
		log.Printf("[webhook][dedup] duplicate notification suppressed key=%s", key)
		return true
	}
	return false
}

// Forget releases a fingerprint recorded by IsDuplicate. Called when
// processing ends in a retryable failure, so the gateway's redelivery is not
// answered "already processed".
func (d *WebhookDeduper) Forget(ctx context.Context, payload map[string]any) {
	key := d.key(payload)
	if err := d.cache.Delete(ctx, key); err != nil {
		log.Printf("[webhook][dedup] fingerprint release failed key=%s err=%v", key, err)
	}
}

func (d *WebhookDeduper) key(payload map[string]any) string {
	eventType := cast.ToString(payload["event_type"])
	if eventType == "" {
		eventType = cast.ToString(payload["type"])
	}
	if eventType == "" {
		eventType = "unknown"
	}
	return dedupKeyPrefix + Fingerprint(payload, eventType) + ":" + eventType
}

// Fingerprint derives a stable identifier for a notification, in priority
// order: explicit event id, nested payment/data/checkout id, a composite of
// order code + local payment id + event kind, and as a last resort an MD5 of
// the canonical JSON encoding.
func Fingerprint(payload map[string]any, eventType string) string {
	for _, path := range [][]string{{"id"}, {"payment", "id"}, {"data", "id"}, {"checkout", "id"}} {
		if id := digString(payload, path...); id != "" {
			return id
		}
	}

	for _, path := range metadataProbes {
		meta, ok := digMap(payload, path...)
		if !ok {
			continue
		}
		orderCode := cast.ToString(meta["order_code"])
		paymentID := cast.ToString(meta["payment_id"])
		if orderCode != "" && paymentID != "" {
			return fmt.Sprintf("%s_%s_%s", orderCode, paymentID, eventType)
		}
		break
	}

	// encoding/json sorts map keys, so the hash is stable across deliveries.
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", payload))
	}
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}
