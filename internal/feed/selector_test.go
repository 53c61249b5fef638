package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-calendar-feed/internal/models"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestPickPrimaryReturnsNoneWithoutSchedulableCandidates(t *testing.T) {
	job := models.Job{ID: "J1", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")}

	op, mode := PickPrimary(job, nil)
	assert.Nil(t, op)
	assert.Equal(t, SelectionNone, mode)

	op, mode = PickPrimary(job, []models.Operation{{ID: "OP1"}})
	assert.Nil(t, op)
	assert.Equal(t, SelectionNone, mode)
}

func TestPickPrimaryPrefersOverlappingWindow(t *testing.T) {
	job := models.Job{
		ID:                "J1",
		ScheduledStartUtc: ts("2024-06-01T08:00:00Z"),
		ScheduledEndUtc:   ts("2024-06-01T17:00:00Z"),
	}
	ops := []models.Operation{
		{ID: "before", ScheduledStartUtc: ts("2024-05-20T08:00:00Z"), ScheduledEndUtc: ts("2024-05-20T10:00:00Z")},
		{ID: "inside", ScheduledStartUtc: ts("2024-06-01T09:00:00Z"), ScheduledEndUtc: ts("2024-06-01T12:00:00Z")},
		{ID: "after", ScheduledStartUtc: ts("2024-06-05T09:00:00Z")},
	}

	op, mode := PickPrimary(job, ops)
	require.NotNil(t, op)
	assert.Equal(t, "inside", op.ID)
	assert.Equal(t, SelectionOverlap, mode)
}

func TestPickPrimaryFallsBackToEarliest(t *testing.T) {
	job := models.Job{
		ID:                "J1",
		ScheduledStartUtc: ts("2024-06-10T08:00:00Z"),
		ScheduledEndUtc:   ts("2024-06-10T17:00:00Z"),
	}
	ops := []models.Operation{
		{ID: "late", ScheduledStartUtc: ts("2024-05-22T08:00:00Z"), ScheduledEndUtc: ts("2024-05-22T10:00:00Z")},
		{ID: "early", OriginalScheduledStartUtc: ts("2024-05-20T08:00:00Z"), OriginalScheduledEndUtc: ts("2024-05-20T10:00:00Z")},
	}

	op, mode := PickPrimary(job, ops)
	require.NotNil(t, op)
	assert.Equal(t, "early", op.ID)
	assert.Equal(t, SelectionEarliest, mode)
}

func TestPickPrimaryWithoutJobStartReturnsEarliest(t *testing.T) {
	job := models.Job{ID: "J1"}
	ops := []models.Operation{
		{ID: "second", ScheduledStartUtc: ts("2024-06-02T08:00:00Z")},
		{ID: "first", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")},
	}

	op, mode := PickPrimary(job, ops)
	require.NotNil(t, op)
	assert.Equal(t, "first", op.ID)
	assert.Equal(t, SelectionEarliest, mode)
}

func TestPickPrimaryOpenEndedJobMatchesStartOnOrAfter(t *testing.T) {
	job := models.Job{ID: "J1", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")}
	ops := []models.Operation{
		{ID: "before", ScheduledStartUtc: ts("2024-05-30T08:00:00Z")},
		{ID: "onOrAfter", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")},
	}

	op, mode := PickPrimary(job, ops)
	require.NotNil(t, op)
	assert.Equal(t, "onOrAfter", op.ID)
	assert.Equal(t, SelectionOverlap, mode)
}

func TestPickPrimaryIsDeterministic(t *testing.T) {
	job := models.Job{ID: "J1", ScheduledStartUtc: ts("2024-06-01T08:00:00Z")}
	// Equal starts; stable sort must keep input order.
	ops := []models.Operation{
		{ID: "a", ScheduledStartUtc: ts("2024-06-02T08:00:00Z")},
		{ID: "b", ScheduledStartUtc: ts("2024-06-02T08:00:00Z")},
	}

	for i := 0; i < 5; i++ {
		op, mode := PickPrimary(job, ops)
		require.NotNil(t, op)
		assert.Equal(t, "a", op.ID)
		assert.Equal(t, SelectionOverlap, mode)
	}
}
