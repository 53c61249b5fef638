package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"job-calendar-feed/internal/models"
)

const (
	timedDefaultLength  = 30 * time.Minute
	allDayDefaultLength = 24 * time.Hour
)

// MapOptions controls event construction.
type MapOptions struct {
	// AllDay switches the synthesized end from start+30m to start+1d.
	AllDay bool
	// WindowStart/WindowEnd, when set, exclude events starting outside
	// the window.
	WindowStart *time.Time
	WindowEnd   *time.Time
}

// ToEvent maps a job, its primary operation, and the operation's
// produced item to a calendar event. Pure; absent fields degrade to
// omission, never to an error. The caller must ensure the job has a
// derivable start (directly or through the operation).
func ToEvent(job models.Job, op *models.Operation, item *models.ProducedItem, opts MapOptions) models.CalendarEvent {
	var start time.Time
	if op != nil && op.EffectiveStart() != nil {
		start = *op.EffectiveStart()
	} else if s := job.EffectiveStart(); s != nil {
		start = *s
	}

	var end time.Time
	switch {
	case op != nil && op.EffectiveEnd() != nil:
		end = *op.EffectiveEnd()
	case job.EffectiveEnd() != nil:
		end = *job.EffectiveEnd()
	case opts.AllDay:
		end = start.Add(allDayDefaultLength)
	default:
		end = start.Add(timedDefaultLength)
	}
	if end.Before(start) {
		end = start
	}

	return models.CalendarEvent{
		ID:          job.ID,
		Start:       start,
		End:         end,
		Summary:     summaryFor(job, op),
		Location:    locationFor(op),
		Description: descriptionFor(job, op, item),
		Categories:  categoriesFor(job, op),
	}
}

// BuildEvents maps every job with a resolvable start, in input order.
// opsByJob carries the enriched operation lists; jobs without an entry
// are mapped on job-level fields alone.
func BuildEvents(jobs []models.Job, opsByJob map[string][]models.Operation, opts MapOptions) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0, len(jobs))
	for _, job := range jobs {
		op, _ := PickPrimary(job, opsByJob[job.ID])
		if job.EffectiveStart() == nil && (op == nil || op.EffectiveStart() == nil) {
			// No derivable schedule; the job is silently excluded.
			continue
		}
		var item *models.ProducedItem
		if op != nil {
			item = op.Item
		}
		ev := ToEvent(job, op, item, opts)
		if opts.WindowStart != nil && ev.Start.Before(*opts.WindowStart) {
			continue
		}
		if opts.WindowEnd != nil && ev.Start.After(*opts.WindowEnd) {
			continue
		}
		events = append(events, ev)
	}
	return events
}

func summaryFor(job models.Job, op *models.Operation) string {
	var parts []string
	switch {
	case job.Name != "":
		parts = append(parts, job.Name)
		if job.Number != 0 {
			parts = append(parts, strconv.Itoa(job.Number))
		}
	case job.Number != 0:
		parts = append(parts, fmt.Sprintf("Job #%d", job.Number))
	default:
		parts = append(parts, "Scheduled Work")
	}
	if op != nil && op.Name != "" {
		parts = append(parts, "("+op.Name+")")
	}
	return strings.Join(parts, " ")
}

func locationFor(op *models.Operation) string {
	if op == nil {
		return ""
	}
	return op.ScheduledEquipmentName
}

func descriptionFor(job models.Job, op *models.Operation, item *models.ProducedItem) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+value)
		}
	}
	add("Status: ", job.Status)
	add("Sales Order: ", job.SalesOrderNumber)
	if op != nil {
		add("Equipment: ", op.ScheduledEquipmentName)
		add("Operation: ", op.Name)
	}
	if item != nil {
		name := item.Name
		if name == "" {
			name = item.Number
		}
		add("Item: ", name)
		add("", item.Description)
		if item.QuantityToMake > 0 {
			lines = append(lines, fmt.Sprintf("Qty: %g", item.QuantityToMake))
		}
	}
	add("Job ID: ", job.ID)
	return strings.Join(lines, "\n")
}

func categoriesFor(job models.Job, op *models.Operation) []string {
	var raw []string
	if op != nil {
		raw = append(raw, op.ScheduledEquipmentName, op.Name)
	}
	raw = append(raw, job.Status)

	var out []string
	seen := map[string]bool{}
	for _, c := range raw {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
