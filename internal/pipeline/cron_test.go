package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCron_Valid(t *testing.T) {
	cron, err := parseCron("0 3 * * *")
	require.NoError(t, err)

	assert.True(t, cron.matchesTime(time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC)))
	assert.False(t, cron.matchesTime(time.Date(2026, 8, 28, 3, 1, 0, 0, time.UTC)))
	assert.False(t, cron.matchesTime(time.Date(2026, 8, 28, 4, 0, 0, 0, time.UTC)))
}

func TestParseCron_Lists(t *testing.T) {
	cron, err := parseCron("0,30 * * * *")
	require.NoError(t, err)

	assert.True(t, cron.matchesTime(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)))
	assert.True(t, cron.matchesTime(time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)))
	assert.False(t, cron.matchesTime(time.Date(2026, 8, 28, 10, 15, 0, 0, time.UTC)))
}

func TestParseCron_DayOfWeek(t *testing.T) {
	// Sundays at midnight. 2026-08-30 is a Sunday.
	cron, err := parseCron("0 0 * * 0")
	require.NoError(t, err)

	assert.True(t, cron.matchesTime(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cron.matchesTime(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
}

func TestParseCron_Invalid(t *testing.T) {
	_, err := parseCron("0 3 * *")
	assert.Error(t, err)

	_, err = parseCron("0 3 * * * *")
	assert.Error(t, err)

	_, err = parseCron("x 3 * * *")
	assert.Error(t, err)
}

func TestNextCronTime(t *testing.T) {
	after := time.Date(2026, 8, 28, 2, 15, 0, 0, time.UTC)

	next, err := nextCronTime("0 3 * * *", after)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC), next)
}

func TestNextCronTime_RollsToNextDay(t *testing.T) {
	after := time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC)

	next, err := nextCronTime("0 3 * * *", after)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC), next)
}

func TestNextCronTime_StrictlyAfter(t *testing.T) {
	after := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	next, err := nextCronTime("* * * * *", after)
	require.NoError(t, err)
	assert.Equal(t, after.Add(time.Minute), next)
}
