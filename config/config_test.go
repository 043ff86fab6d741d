package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, time.Monday, cfg.WeekStartDay)
	assert.True(t, cfg.LockPastWeeks)
	assert.False(t, cfg.LockFutureWeeks)
}

func TestLoadWeekStartOverride(t *testing.T) {
	t.Setenv("TIMESHEET_WEEK_START", "Sunday")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, cfg.WeekStartDay)
}

func TestLoadRejectsBadWeekday(t *testing.T) {
	t.Setenv("TIMESHEET_WEEK_START", "someday")
	_, err := Load()
	assert.Error(t, err)
}
