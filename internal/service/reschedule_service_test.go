package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gantry/internal/app"
	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescheduleService_ExplicitDates(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, byCode := importWebsite(t, r)
	svc := NewRescheduleService(r.items)

	resp, err := svc.Reschedule(ctx, app.RescheduleRequest{
		ItemID: byCode["1.1"].ID,
		Start:  testutil.Date(2026, 3, 10),
		End:    testutil.Date(2026, 3, 12),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PreviousStart)
	assert.Equal(t, "2026-03-02", resp.PreviousStart.Format(dateLayout))

	stored, err := r.items.GetByID(ctx, byCode["1.1"].ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", stored.PlannedStart.Format(dateLayout))
	assert.Equal(t, "2026-03-12", stored.PlannedEnd.Format(dateLayout))
}

func TestRescheduleService_Shift(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, byCode := importWebsite(t, r)
	svc := NewRescheduleService(r.items)
	now := testutil.Date(2026, 3, 2)

	resp, err := svc.Reschedule(ctx, app.RescheduleRequest{ItemID: byCode["1.1"].ID, Shift: 2, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", resp.Item.PlannedStart.Format(dateLayout))
	assert.Equal(t, "2026-03-06", resp.Item.PlannedEnd.Format(dateLayout))

	// Undated items shift from the span the chart derives for them.
	resp, err = svc.Reschedule(ctx, app.RescheduleRequest{ItemID: byCode["2.1"].ID, Shift: -1, Now: &now})
	require.NoError(t, err)
	assert.Nil(t, resp.PreviousStart)
	require.NotNil(t, resp.Item.PlannedStart)
	assert.Equal(t, 5*gantt.Day, resp.Item.PlannedEnd.Sub(*resp.Item.PlannedStart), "40h estimate spans five days")
}

func TestRescheduleService_Rejects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	_, byCode := importWebsite(t, r)
	svc := NewRescheduleService(r.items)

	var ucErr *app.UseCaseError
	_, err := svc.Reschedule(ctx, app.RescheduleRequest{})
	require.True(t, errors.As(err, &ucErr))

	_, err = svc.Reschedule(ctx, app.RescheduleRequest{ItemID: byCode["1.1"].ID})
	require.True(t, errors.As(err, &ucErr), "no dates and no shift")

	_, err = svc.Reschedule(ctx, app.RescheduleRequest{
		ItemID: byCode["1.1"].ID,
		Start:  testutil.Date(2026, 3, 5),
		End:    testutil.Date(2026, 3, 5),
	})
	require.True(t, errors.As(err, &ucErr))
	assert.Contains(t, ucErr.Message, "must be after")

	_, err = svc.Reschedule(ctx, app.RescheduleRequest{ItemID: "ghost", Shift: 1})
	assert.Error(t, err)
}
