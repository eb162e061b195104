package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// DefaultBufferRatio sizes the project buffer as half of the safety removed
// from task estimates.
const DefaultBufferRatio = 0.5

type Project struct {
	ID           string
	ShortID      string
	Name         string
	Description  string
	Status       ProjectStatus
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	BufferRatio  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize upper-cases the short ID and fills the default buffer ratio and
// status.
func (p *Project) Normalize() {
	p.ShortID = strings.ToUpper(strings.TrimSpace(p.ShortID))
	if p.BufferRatio == 0 {
		p.BufferRatio = DefaultBufferRatio
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
}

// Validate reports every problem with the project's editable fields.
func (p *Project) Validate() error {
	var errs []error
	if err := p.ValidateShortID(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("project name is required"))
	}
	if p.BufferRatio < 0 || p.BufferRatio > 1 {
		errs = append(errs, fmt.Errorf("buffer ratio must be between 0 and 1, got %v", p.BufferRatio))
	}
	if p.PlannedStart != nil && p.PlannedEnd != nil && p.PlannedEnd.Before(*p.PlannedStart) {
		errs = append(errs, fmt.Errorf("planned end %s is before planned start %s",
			p.PlannedEnd.Format(time.DateOnly), p.PlannedStart.Format(time.DateOnly)))
	}
	return errors.Join(errs...)
}

// ValidateShortID checks the 3-6 uppercase letters + 2-4 digits format
// (WEB01, INFRA0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return errors.New("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. WEB01)", p.ShortID)
	}
	return nil
}

// DisplayID prefers the short ID and falls back to the first 8 characters of
// the UUID.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	return p.ID[:min(8, len(p.ID))]
}
