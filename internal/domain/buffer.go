package domain

import "time"

// BufferSnapshot is one recorded point of a project's buffer fever chart.
type BufferSnapshot struct {
	ID              string
	ProjectID       string
	ConsumedPercent int
	ProgressPercent int
	Fever           string
	RecordedAt      time.Time
}
