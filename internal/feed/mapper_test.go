package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-calendar-feed/internal/models"
)

func TestToEventSummaryFallbacks(t *testing.T) {
	start := ts("2024-06-01T10:00:00Z")

	named := models.Job{ID: "J1", Name: "CNC Bracket", Number: 42, ScheduledStartUtc: start}
	op := &models.Operation{Name: "Milling", ScheduledStartUtc: start}
	assert.Equal(t, "CNC Bracket 42 (Milling)", ToEvent(named, op, nil, MapOptions{}).Summary)

	numbered := models.Job{ID: "J1", Number: 7, ScheduledStartUtc: start}
	assert.Equal(t, "Job #7", ToEvent(numbered, nil, nil, MapOptions{}).Summary)

	anonymous := models.Job{ID: "J1", ScheduledStartUtc: start}
	assert.Equal(t, "Scheduled Work", ToEvent(anonymous, nil, nil, MapOptions{}).Summary)
}

func TestToEventEndSynthesis(t *testing.T) {
	job := models.Job{ID: "J1", ScheduledStartUtc: ts("2024-06-01T10:00:00Z")}

	timed := ToEvent(job, nil, nil, MapOptions{})
	assert.Equal(t, 30*time.Minute, timed.End.Sub(timed.Start))

	allDay := ToEvent(job, nil, nil, MapOptions{AllDay: true})
	assert.Equal(t, 24*time.Hour, allDay.End.Sub(allDay.Start))
}

func TestToEventEndNeverPrecedesStart(t *testing.T) {
	job := models.Job{
		ID:                "J1",
		ScheduledStartUtc: ts("2024-06-01T10:00:00Z"),
		ScheduledEndUtc:   ts("2024-06-01T09:00:00Z"),
	}
	ev := ToEvent(job, nil, nil, MapOptions{})
	assert.False(t, ev.End.Before(ev.Start))
}

func TestToEventOperationTakesPriority(t *testing.T) {
	job := models.Job{
		ID:                "J1",
		ScheduledStartUtc: ts("2024-06-01T08:00:00Z"),
		ScheduledEndUtc:   ts("2024-06-01T17:00:00Z"),
	}
	op := &models.Operation{
		Name:                   "Milling",
		ScheduledEquipmentName: "Mill 2",
		ScheduledStartUtc:      ts("2024-06-01T09:00:00Z"),
		ScheduledEndUtc:        ts("2024-06-01T12:00:00Z"),
	}

	ev := ToEvent(job, op, nil, MapOptions{})
	assert.Equal(t, *op.ScheduledStartUtc, ev.Start)
	assert.Equal(t, *op.ScheduledEndUtc, ev.End)
	assert.Equal(t, "Mill 2", ev.Location)
}

func TestToEventDescriptionOrderAndOmission(t *testing.T) {
	job := models.Job{
		ID:                "J1",
		Name:              "CNC Bracket",
		Number:            42,
		Status:            "scheduled",
		SalesOrderNumber:  "SO-1001",
		ScheduledStartUtc: ts("2024-06-01T08:00:00Z"),
	}
	op := &models.Operation{
		Name:                   "Milling",
		ScheduledEquipmentName: "Mill 2",
		ScheduledStartUtc:      ts("2024-06-01T09:00:00Z"),
	}
	item := &models.ProducedItem{
		Number:         "ITM-9",
		Description:    "Aluminum bracket",
		QuantityToMake: 50,
	}

	ev := ToEvent(job, op, item, MapOptions{})
	assert.Equal(t,
		"Status: scheduled\n"+
			"Sales Order: SO-1001\n"+
			"Equipment: Mill 2\n"+
			"Operation: Milling\n"+
			"Item: ITM-9\n"+
			"Aluminum bracket\n"+
			"Qty: 50\n"+
			"Job ID: J1",
		ev.Description)

	bare := ToEvent(models.Job{ID: "J1", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")}, nil, nil, MapOptions{})
	assert.Equal(t, "Job ID: J1", bare.Description)
}

func TestToEventCategoriesDedupAndOmitEmpty(t *testing.T) {
	job := models.Job{ID: "J1", Status: "scheduled", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")}
	op := &models.Operation{
		Name:                   "scheduled", // collides with status on purpose
		ScheduledEquipmentName: "",
		ScheduledStartUtc:      ts("2024-06-01T09:00:00Z"),
	}

	ev := ToEvent(job, op, nil, MapOptions{})
	assert.Equal(t, []string{"scheduled"}, ev.Categories)
}

func TestBuildEventsExcludesJobsWithoutStart(t *testing.T) {
	jobs := []models.Job{
		{ID: "J1", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")},
		{ID: "noSchedule"},
	}

	events := BuildEvents(jobs, nil, MapOptions{})
	require.Len(t, events, 1)
	assert.Equal(t, "J1", events[0].ID)
}

func TestBuildEventsDueDateFallbackKeepsJob(t *testing.T) {
	jobs := []models.Job{{ID: "J1", ProductionDueDateUtc: ts("2024-06-15T00:00:00Z")}}

	events := BuildEvents(jobs, nil, MapOptions{})
	require.Len(t, events, 1)
	assert.Equal(t, *jobs[0].ProductionDueDateUtc, events[0].Start)
}

func TestBuildEventsAppliesWindow(t *testing.T) {
	jobs := []models.Job{
		{ID: "early", ScheduledStartUtc: ts("2024-05-01T08:00:00Z")},
		{ID: "inWindow", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")},
		{ID: "late", ScheduledStartUtc: ts("2024-07-01T08:00:00Z")},
	}
	opts := MapOptions{
		WindowStart: ts("2024-06-01T00:00:00Z"),
		WindowEnd:   ts("2024-06-30T23:59:59Z"),
	}

	events := BuildEvents(jobs, nil, opts)
	require.Len(t, events, 1)
	assert.Equal(t, "inWindow", events[0].ID)
}
