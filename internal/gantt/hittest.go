package gantt

import "time"

// Host receives the interaction callbacks a surface resolves through
// Dispatch. The engine never calls a host on its own.
type Host interface {
	OnItemActivate(id string)
	OnToggleExpand(id string)
	OnRescheduleRequest(id string, start, end time.Time)
}

// Hit is the interactive region found under a point.
type Hit struct {
	ItemID  string
	Action  Action
	Role    Role
	Command int // index into the command list
}

// HitTest returns the topmost interactive command containing (x, y).
// Commands later in the list are drawn above earlier ones.
func HitTest(cmds []DrawCommand, x, y float64) (Hit, bool) {
	for i := len(cmds) - 1; i >= 0; i-- {
		c := cmds[i]
		if c.Action == ActionNone || c.ItemID == "" {
			continue
		}
		if c.Contains(x, y) {
			return Hit{ItemID: c.ItemID, Action: c.Action, Role: c.Role, Command: i}, true
		}
	}
	return Hit{}, false
}

// Dispatch forwards a click on hit to the host. A click on a move region is
// an activation; resize hits only reach the host through DispatchDrag.
func Dispatch(host Host, hit Hit) {
	switch hit.Action {
	case ActionActivate, ActionMove:
		host.OnItemActivate(hit.ItemID)
	case ActionToggleExpand:
		host.OnToggleExpand(hit.ItemID)
	}
}

// DispatchDrag completes a drag that started on hit and moved deltaX units,
// proposing new dates to the host. Non-drag hits are ignored and reported
// as false.
func DispatchDrag(host Host, hit Hit, item *ScheduleItem, deltaX, unitWidth float64) bool {
	kind, ok := DragKindFor(hit.Action)
	if !ok || item == nil || item.ID != hit.ItemID {
		return false
	}
	start, end := DragPreview(kind, item.Start, item.End, deltaX, unitWidth)
	host.OnRescheduleRequest(item.ID, start, end)
	return true
}
