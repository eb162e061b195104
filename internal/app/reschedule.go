package app

import (
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// RescheduleRequest sets new planned dates on a WBS item. When Shift is set
// the item's current span moves by that many days instead.
type RescheduleRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
	Shift  int
	Now    *time.Time
}

type RescheduleResponse struct {
	Item          *domain.WBSItem
	PreviousStart *time.Time
	PreviousEnd   *time.Time
}
