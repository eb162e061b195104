package importer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

const dateLayout = "2006-01-02"

// ErrValidation wraps the joined problems of a rejected import.
var ErrValidation = errors.New("invalid import file")

// ValidationError is one problem found in an import file.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// JoinValidationErrors folds the problems returned by ValidateImportSchema into
// one error wrapping ErrValidation, or nil when there are none.
func JoinValidationErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "  - " + e.Error()
	}
	return fmt.Errorf("%w (%d problems):\n%s", ErrValidation, len(errs), strings.Join(msgs, "\n"))
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	refs := make(map[string]bool)
	errs = append(errs, validateItems(schema.Items, refs)...)

	errs = append(errs, validateDependencies(schema.Dependencies, refs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, invalid("project.short_id", "is required"))
	} else {
		probe := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, invalid("project.short_id", "%v", err))
		}
	}
	if p.Name == "" {
		errs = append(errs, invalid("project.name", "is required"))
	}
	if p.BufferRatio != nil && (*p.BufferRatio < 0 || *p.BufferRatio > 1) {
		errs = append(errs, invalid("project.buffer_ratio", "must be between 0 and 1, got %v", *p.BufferRatio))
	}
	errs = append(errs, validateDateRange("project", "planned_start", "planned_end", p.PlannedStart, p.PlannedEnd)...)

	return errs
}

func validateItems(items []ItemImport, refs map[string]bool) []error {
	var errs []error
	codes := make(map[string]bool)

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, invalid(prefix+".ref", "is required"))
		} else if refs[it.Ref] {
			errs = append(errs, invalid(prefix+".ref", "duplicate ref %q", it.Ref))
		} else {
			refs[it.Ref] = true
		}

		if it.ParentRef != nil && *it.ParentRef != "" && !refs[*it.ParentRef] {
			errs = append(errs, invalid(prefix+".parent_ref", "ref %q not found (must appear earlier in items list)", *it.ParentRef))
		}

		if it.Code != "" {
			if codes[it.Code] {
				errs = append(errs, invalid(prefix+".code", "duplicate code %q", it.Code))
			}
			codes[it.Code] = true
		}

		if it.Title == "" {
			errs = append(errs, invalid(prefix+".title", "is required"))
		}
		if it.Type != "" && !domain.ItemType(it.Type).Valid() {
			errs = append(errs, invalid(prefix+".type", "invalid value %q", it.Type))
		}
		if it.Status != "" && !domain.ItemStatus(it.Status).Valid() {
			errs = append(errs, invalid(prefix+".status", "invalid value %q", it.Status))
		}

		errs = append(errs, validateHours(prefix+".estimated_hours", it.EstimatedHours)...)
		errs = append(errs, validateHours(prefix+".aggressive_hours", it.AggressiveHours)...)
		errs = append(errs, validateHours(prefix+".safe_hours", it.SafeHours)...)
		errs = append(errs, validateHours(prefix+".actual_hours", it.ActualHours)...)
		if it.AggressiveHours != nil && it.SafeHours != nil && *it.SafeHours < *it.AggressiveHours {
			errs = append(errs, invalid(prefix, "safe_hours (%v) must be >= aggressive_hours (%v)", *it.SafeHours, *it.AggressiveHours))
		}

		errs = append(errs, validateDateRange(prefix, "start", "end", it.Start, it.End)...)
	}

	return errs
}

func validateDependencies(deps []DependencyImport, refs map[string]bool) []error {
	var errs []error

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if d.PredecessorRef == "" {
			errs = append(errs, invalid(prefix+".predecessor_ref", "is required"))
		} else if !refs[d.PredecessorRef] {
			errs = append(errs, invalid(prefix+".predecessor_ref", "ref %q not found in items", d.PredecessorRef))
		}

		if d.SuccessorRef == "" {
			errs = append(errs, invalid(prefix+".successor_ref", "is required"))
		} else if !refs[d.SuccessorRef] {
			errs = append(errs, invalid(prefix+".successor_ref", "ref %q not found in items", d.SuccessorRef))
		}

		if d.PredecessorRef != "" && d.PredecessorRef == d.SuccessorRef {
			errs = append(errs, invalid(prefix, "self-dependency on %q", d.PredecessorRef))
		}
	}

	if len(deps) > 1 {
		errs = append(errs, detectCycles(deps)...)
	}

	return errs
}

func detectCycles(deps []DependencyImport) []error {
	graph := make(map[string][]string)
	var nodes []string
	seen := make(map[string]bool)
	for _, d := range deps {
		if d.PredecessorRef == "" || d.SuccessorRef == "" || d.PredecessorRef == d.SuccessorRef {
			continue
		}
		graph[d.PredecessorRef] = append(graph[d.PredecessorRef], d.SuccessorRef)
		for _, n := range []string{d.PredecessorRef, d.SuccessorRef} {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	sort.Strings(nodes)

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range graph[node] {
			if color[next] == gray {
				errs = append(errs, invalid("dependencies", "circular dependency detected involving %q and %q", node, next))
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		color[node] = black
		return false
	}

	for _, node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}

func validateHours(field string, h *float64) []error {
	switch {
	case h == nil:
		return nil
	case math.IsNaN(*h) || math.IsInf(*h, 0):
		return []error{invalid(field, "must be a finite number, got %v", *h)}
	case *h < 0:
		return []error{invalid(field, "must not be negative, got %v", *h)}
	}
	return nil
}

func validateDateRange(prefix, startName, endName string, start, end *string) []error {
	var errs []error
	s, sErr := parseDateField(prefix+"."+startName, start)
	if sErr != nil {
		errs = append(errs, sErr)
	}
	e, eErr := parseDateField(prefix+"."+endName, end)
	if eErr != nil {
		errs = append(errs, eErr)
	}
	if s != nil && e != nil && e.Before(*s) {
		errs = append(errs, invalid(prefix+"."+endName, "%s must not be before %s %s", *end, startName, *start))
	}
	return errs
}

func parseDateField(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, invalid(field, "invalid date format %q (expected YYYY-MM-DD)", *s)
	}
	return &t, nil
}
