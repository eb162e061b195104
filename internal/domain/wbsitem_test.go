package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func ptr(f float64) *float64 { return &f }

func TestIsWork(t *testing.T) {
	cases := []struct {
		typ  ItemType
		work bool
	}{
		{ItemTypeProject, false},
		{ItemTypePhase, false},
		{ItemTypeTask, true},
		{ItemTypeSubtask, true},
	}
	for _, tc := range cases {
		w := &WBSItem{Type: tc.typ}
		assert.Equal(t, tc.work, w.IsWork(), "type=%s", tc.typ)
	}
}

func TestDurations_FallBackToEstimate(t *testing.T) {
	w := &WBSItem{EstimatedHours: ptr(10)}
	assert.Equal(t, 10.0, w.AggressiveDuration())
	assert.Equal(t, 10.0, w.SafeDuration())

	w.AggressiveHours = ptr(6)
	w.SafeHours = ptr(14)
	assert.Equal(t, 6.0, w.AggressiveDuration())
	assert.Equal(t, 14.0, w.SafeDuration())

	w.AggressiveHours = ptr(0)
	assert.Equal(t, 10.0, w.AggressiveDuration(), "zero counts as unset")

	assert.Equal(t, 0.0, (&WBSItem{}).AggressiveDuration())
}

func TestReschedule(t *testing.T) {
	w := &WBSItem{}
	start, end := testNow, testNow.AddDate(0, 0, 3)
	w.Reschedule(start, end, testNow)
	assert.Equal(t, start, *w.PlannedStart)
	assert.Equal(t, end, *w.PlannedEnd)
	assert.Equal(t, testNow, w.UpdatedAt)
}

func TestChildCode(t *testing.T) {
	assert.Equal(t, "1", ChildCode("", 0))
	assert.Equal(t, "3", ChildCode("", 2))
	assert.Equal(t, "1.2.1", ChildCode("1.2", 0))
}

func TestParentIDValue(t *testing.T) {
	assert.Equal(t, "", (&WBSItem{}).ParentIDValue())
	p := "abc"
	assert.Equal(t, "abc", (&WBSItem{ParentID: &p}).ParentIDValue())
}

func TestFirstPositive(t *testing.T) {
	assert.Equal(t, 0.0, FirstPositive())
	assert.Equal(t, 3.0, FirstPositive(nil, ptr(-1), ptr(3), ptr(4)))
}

func TestCoalesceAndValueOr(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, ItemTypeTask, Coalesce(ItemType(""), ItemTypeTask))
	assert.Equal(t, 2.0, ValueOr(nil, 2.0))
	assert.Equal(t, 0.25, ValueOr(ptr(0.25), 2.0))
}
