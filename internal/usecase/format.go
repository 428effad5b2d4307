package usecase

import (
	"strings"
	"time"
)

// statusUnavailable is the sentinel shown when the gateway never supplied a
// usable timestamp or status.
const statusUnavailable = "unavailable"

var statusLabels = map[string]string{
	"pending":   "Pending",
	"paid":      "Paid",
	"succeeded": "Paid",
	"failed":    "Failed",
	"canceled":  "Canceled",
	"refunded":  "Refunded",
	"expired":   "Expired",
}

// descriptiveStatus maps a raw gateway status to a human-readable label shown
// in the payment's metadata. Unknown statuses pass through unchanged.
func descriptiveStatus(status string) string {
	if status == "" {
		return statusLabels["pending"]
	}
	if label, ok := statusLabels[strings.ToLower(status)]; ok {
		return label
	}
	return status
}

// isoTimeLayouts covers the timestamp shapes the gateway has been seen to
// emit: with or without fractional seconds, with or without timezone.
var isoTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseGatewayTime parses an ISO-8601 timestamp leniently. Formatting
// failures never abort webhook processing; callers fall back to now or the
// unavailable sentinel.
func parseGatewayTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	value = strings.Replace(value, "Z", "+00:00", 1)
	for _, layout := range isoTimeLayouts {
		// RFC3339 layouts expect the original Z form as well.
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
		if t, err := time.Parse(layout, strings.Replace(value, "+00:00", "Z", 1)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatGatewayDate renders a gateway timestamp for display, or the
// unavailable sentinel when it cannot be parsed.
func formatGatewayDate(value string) string {
	t, ok := parseGatewayTime(value)
	if !ok {
		return statusUnavailable
	}
	return t.Format("02/01/2006 15:04")
}
