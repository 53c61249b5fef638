package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatuses(t *testing.T) {
	assert.Equal(t, []string{"inProgress"}, NormalizeStatuses([]string{"in_progress"}))
	assert.Equal(t, []string{"inProgress"}, NormalizeStatuses([]string{"InProgress"}))
	assert.Equal(t, []string{"scheduled", "onHold"}, NormalizeStatuses([]string{" scheduled ", "on_hold"}))
	assert.Equal(t, []string{"cancelled"}, NormalizeStatuses([]string{"canceled", "cancelled"}))
}

func TestNormalizeStatusesFallsBackToDefaults(t *testing.T) {
	defaults := DefaultStatuses()
	assert.Equal(t, defaults, NormalizeStatuses(nil))
	assert.Equal(t, defaults, NormalizeStatuses([]string{"bogus", ""}))
}

func TestNormalizeStatusesDropsOnlyUnknownTokens(t *testing.T) {
	assert.Equal(t, []string{"completed"}, NormalizeStatuses([]string{"bogus", "completed"}))
}
