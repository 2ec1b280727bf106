package models_test

import (
	"testing"

	"debtflow-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestOffsetListSorted(t *testing.T) {
	offsets := models.OffsetList{7, -3, 0, 7, -3}
	assert.Equal(t, []int{-3, 0, 7}, offsets.Sorted())
	assert.Empty(t, models.OffsetList{}.Sorted())
}

func TestOffsetListRoundTrip(t *testing.T) {
	offsets := models.OffsetList{-3, 0, 7}

	value, err := offsets.Value()
	assert.NoError(t, err)

	var decoded models.OffsetList
	assert.NoError(t, decoded.Scan(value))
	assert.Equal(t, offsets, decoded)
}

func TestReminderStatusRank(t *testing.T) {
	assert.Less(t, models.ReminderQueued.Rank(), models.ReminderSent.Rank())
	assert.Less(t, models.ReminderSent.Rank(), models.ReminderDelivered.Rank())
	assert.Less(t, models.ReminderDelivered.Rank(), models.ReminderRead.Rank())
	assert.Equal(t, -1, models.ReminderFailed.Rank())
}

func TestNormalizePlan(t *testing.T) {
	assert.Equal(t, models.PlanStarter, models.NormalizePlan("starter"))
	assert.Equal(t, models.PlanBusiness, models.NormalizePlan("business"))
	assert.Equal(t, models.PlanFree, models.NormalizePlan("free"))
	assert.Equal(t, models.PlanFree, models.NormalizePlan("enterprise"))
}
