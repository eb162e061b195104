package ccpm

import (
	"math"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Fever is the traffic-light state of the project buffer.
type Fever string

const (
	FeverGreen  Fever = "green"
	FeverYellow Fever = "yellow"
	FeverRed    Fever = "red"
)

// BufferStatus summarizes project buffer consumption against progress.
// Hours are rounded to whole hours, percentages to whole percents.
type BufferStatus struct {
	SizeHours       float64
	ConsumedHours   float64
	ConsumedPercent int
	RemainingHours  float64

	CompletedHours  float64
	AggressiveHours float64
	ProgressPercent int

	SafeHours   float64
	ActualHours float64

	Fever Fever
}

// Buffers sizes the project buffer as ratio * (safe - aggressive) over all
// work items and measures how much of it actual effort has eaten.
func Buffers(items []domain.WBSItem, ratio float64) BufferStatus {
	var s BufferStatus
	for i := range items {
		it := &items[i]
		if !it.IsWork() {
			continue
		}
		aggressive := it.AggressiveDuration()
		s.SafeHours += it.SafeDuration()
		s.AggressiveHours += aggressive

		actual := domain.FirstPositive(it.ActualHours)
		switch it.Status {
		case domain.ItemCompleted:
			if actual > 0 {
				s.CompletedHours += actual
			} else {
				s.CompletedHours += aggressive
			}
			s.ActualHours += actual
		case domain.ItemInProgress:
			s.ActualHours += actual
		}
	}

	s.SizeHours = math.Round((s.SafeHours - s.AggressiveHours) * ratio)
	s.ConsumedHours = math.Max(0, s.ActualHours-s.AggressiveHours)
	if s.SizeHours > 0 {
		s.ConsumedPercent = int(math.Round(s.ConsumedHours / s.SizeHours * 100))
	}
	s.RemainingHours = math.Max(0, s.SizeHours-s.ConsumedHours)
	if s.AggressiveHours > 0 {
		s.ProgressPercent = int(math.Round(s.CompletedHours / s.AggressiveHours * 100))
	}
	s.Fever = FeverFor(s.ConsumedPercent, s.ProgressPercent)
	return s
}

// FeverFor classifies buffer consumption against schedule progress: red once
// consumption has caught up with progress, yellow past half of it. An
// untouched buffer is always green.
func FeverFor(consumedPercent, progressPercent int) Fever {
	switch {
	case consumedPercent <= 0:
		return FeverGreen
	case consumedPercent >= progressPercent:
		return FeverRed
	case float64(consumedPercent) >= float64(progressPercent)*0.5:
		return FeverYellow
	}
	return FeverGreen
}
