package domain

import "slices"

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

// ItemStatus tracks execution of a WBS item.
type ItemStatus string

const (
	ItemPending    ItemStatus = "pending"
	ItemInProgress ItemStatus = "in_progress"
	ItemCompleted  ItemStatus = "completed"
	ItemBlocked    ItemStatus = "blocked"
)

var itemStatuses = []ItemStatus{ItemPending, ItemInProgress, ItemCompleted, ItemBlocked}

func (s ItemStatus) Valid() bool { return slices.Contains(itemStatuses, s) }

// ItemType is the level of a WBS item. Projects and phases are summaries;
// tasks and subtasks carry estimates and are scheduled.
type ItemType string

const (
	ItemTypeProject ItemType = "project"
	ItemTypePhase   ItemType = "phase"
	ItemTypeTask    ItemType = "task"
	ItemTypeSubtask ItemType = "subtask"
)

var itemTypes = []ItemType{ItemTypeProject, ItemTypePhase, ItemTypeTask, ItemTypeSubtask}

func (t ItemType) Valid() bool { return slices.Contains(itemTypes, t) }

// Work reports whether items of this type are leaf work rather than summaries.
func (t ItemType) Work() bool { return t == ItemTypeTask || t == ItemTypeSubtask }
