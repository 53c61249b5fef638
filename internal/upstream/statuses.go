package upstream

import (
	"strings"

	"job-calendar-feed/internal/models"
)

// statusTable maps friendly query-string names to the upstream status
// enum. Lookups are case-insensitive.
var statusTable = map[string]string{
	"unscheduled": models.StatusUnscheduled,
	"scheduled":   models.StatusScheduled,
	"in_progress": models.StatusInProgress,
	"inprogress":  models.StatusInProgress,
	"on_hold":     models.StatusOnHold,
	"onhold":      models.StatusOnHold,
	"completed":   models.StatusCompleted,
	"closed":      models.StatusClosed,
	"cancelled":   models.StatusCancelled,
	"canceled":    models.StatusCancelled,
}

// DefaultStatuses is the filter applied when the caller names no usable
// status.
func DefaultStatuses() []string {
	return []string{models.StatusScheduled, models.StatusInProgress}
}

// NormalizeStatuses maps friendly names to upstream enums, dropping
// unknown tokens. When nothing maps, the default set applies.
func NormalizeStatuses(raw []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, token := range raw {
		key := strings.ToLower(strings.TrimSpace(token))
		mapped, ok := statusTable[key]
		if !ok || seen[mapped] {
			continue
		}
		seen[mapped] = true
		out = append(out, mapped)
	}
	if len(out) == 0 {
		return DefaultStatuses()
	}
	return out
}
