package utils_test

import (
	"testing"
	"time"

	"debtflow-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day ignores time of day", base, base.Add(-20 * time.Hour), 0},
		{"three days ahead", base, base.AddDate(0, 0, 3), 3},
		{"three days before is negative", base, base.AddDate(0, 0, -3), -3},
		{"late evening to early morning next day", base, time.Date(2026, 3, 16, 0, 30, 0, 0, time.UTC), 1},
		{"across a month boundary", time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.DaysBetween(tt.start, tt.end))
		})
	}
}

func TestBeginningOfMonth(t *testing.T) {
	got := utils.BeginningOfMonth(time.Date(2026, 3, 15, 17, 45, 12, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestBeginningOfDay(t *testing.T) {
	got := utils.BeginningOfDay(time.Date(2026, 3, 15, 17, 45, 12, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
}
