package gantt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHost struct {
	activated  []string
	toggled    []string
	reschedule []string
	start, end time.Time
}

func (h *recordingHost) OnItemActivate(id string) { h.activated = append(h.activated, id) }
func (h *recordingHost) OnToggleExpand(id string) { h.toggled = append(h.toggled, id) }
func (h *recordingHost) OnRescheduleRequest(id string, start, end time.Time) {
	h.reschedule = append(h.reschedule, id)
	h.start, h.end = start, end
}

func TestHitTest_Regions(t *testing.T) {
	l := abcLayout(t, nil)

	hit, ok := HitTest(l.Commands, 360, 68)
	require.True(t, ok)
	assert.Equal(t, Hit{ItemID: "A", Action: ActionActivate, Role: RoleBar, Command: hit.Command}, hit)

	hit, ok = HitTest(l.Commands, 10, 68)
	require.True(t, ok)
	assert.Equal(t, "A", hit.ItemID)
	assert.Equal(t, ActionToggleExpand, hit.Action)

	hit, ok = HitTest(l.Commands, 100, 50+36+14)
	require.True(t, ok)
	assert.Equal(t, "B", hit.ItemID)
	assert.Equal(t, RoleLabel, hit.Role)

	_, ok = HitTest(l.Commands, 500, 20)
	assert.False(t, ok, "header is not interactive")
	_, ok = HitTest(l.Commands, 560, 68)
	assert.False(t, ok, "empty row area")
}

func TestHitTest_Handles(t *testing.T) {
	l := abcLayout(t, func(in *Input) { in.Reschedulable = true })

	hit, ok := HitTest(l.Commands, 342, 68)
	require.True(t, ok)
	assert.Equal(t, ActionResizeStart, hit.Action)

	hit, ok = HitTest(l.Commands, 378, 68)
	require.True(t, ok)
	assert.Equal(t, ActionResizeEnd, hit.Action)

	hit, ok = HitTest(l.Commands, 360, 68)
	require.True(t, ok)
	assert.Equal(t, ActionMove, hit.Action)
}

func TestDispatch(t *testing.T) {
	host := &recordingHost{}
	Dispatch(host, Hit{ItemID: "A", Action: ActionActivate})
	Dispatch(host, Hit{ItemID: "B", Action: ActionMove})
	Dispatch(host, Hit{ItemID: "A", Action: ActionToggleExpand})
	Dispatch(host, Hit{ItemID: "A", Action: ActionResizeEnd})

	assert.Equal(t, []string{"A", "B"}, host.activated)
	assert.Equal(t, []string{"A"}, host.toggled)
	assert.Empty(t, host.reschedule)
}

func TestDispatchDrag(t *testing.T) {
	l := abcLayout(t, func(in *Input) { in.Reschedulable = true })
	a := l.Model.Get("A")
	host := &recordingHost{}

	hit, ok := HitTest(l.Commands, 378, 68)
	require.True(t, ok)
	assert.True(t, DispatchDrag(host, hit, a, 40, l.Mapper.UnitWidth()))
	assert.Equal(t, []string{"A"}, host.reschedule)
	assert.Equal(t, a.Start, host.start)
	assert.Equal(t, a.End.AddDate(0, 0, 2), host.end)

	assert.False(t, DispatchDrag(host, Hit{ItemID: "A", Action: ActionActivate}, a, 40, 20))
	assert.False(t, DispatchDrag(host, hit, l.Model.Get("B"), 40, 20), "item must match the hit")
}
