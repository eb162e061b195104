package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// granularityValue is a pflag.Value restricted to the chart zoom levels.
type granularityValue gantt.Granularity

var _ pflag.Value = (*granularityValue)(nil)

func newGranularityValue(def gantt.Granularity, p *gantt.Granularity) *granularityValue {
	*p = def
	return (*granularityValue)(p)
}

func (g *granularityValue) String() string { return string(*g) }

func (g *granularityValue) Set(s string) error {
	parsed, err := gantt.ParseGranularity(s)
	if err != nil {
		return err
	}
	*g = granularityValue(parsed)
	return nil
}

func (g *granularityValue) Type() string { return "day|week|month" }

// dateValue is a pflag.Value holding an optional YYYY-MM-DD date.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = dateValue{}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d dateValue) Set(s string) error {
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	*d.t = t
	return nil
}

func (d dateValue) Type() string { return "YYYY-MM-DD" }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// optionalHours parses an hours flag; empty means unset.
func optionalHours(name, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("--%s must be a non-negative number of hours", name)
	}
	return &v, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
