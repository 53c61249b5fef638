package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"job-calendar-feed/internal/config"
	"job-calendar-feed/internal/upstream"
)

const queryDateFormat = "2006-01-02"

type feedParams struct {
	windowStart *time.Time
	windowEnd   *time.Time
	enrich      bool
	allDay      bool
	statuses    []string
	limit       int
}

// parseFeedQuery interprets the feed query string. All parameters are
// optional; malformed values fall back to defaults rather than erroring.
func parseFeedQuery(r *http.Request, cfg config.Config) feedParams {
	q := r.URL.Query()

	params := feedParams{
		enrich:   q.Get("ops") == "1",
		allDay:   q.Get("allday") != "0",
		statuses: upstream.DefaultStatuses(),
		limit:    cfg.DefaultJobLimit,
	}

	if raw := q.Get("statuses"); raw != "" {
		params.statuses = upstream.NormalizeStatuses(strings.Split(raw, ","))
	}

	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			params.limit = n
		}
	}

	if t, err := time.ParseInLocation(queryDateFormat, q.Get("s"), time.UTC); err == nil {
		params.windowStart = &t
	}
	if t, err := time.ParseInLocation(queryDateFormat, q.Get("u"), time.UTC); err == nil {
		// The end date is inclusive; extend it to the last instant of
		// that day before comparing event starts.
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		params.windowEnd = &end
	}

	return params
}
