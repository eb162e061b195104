package gantt

import (
	"sort"
	"strconv"
	"strings"
)

type resolveConfig struct {
	lexical bool
}

// ResolveOption configures Resolve.
type ResolveOption func(*resolveConfig)

// WithLexicalOrder sorts root codes by plain string comparison, so "1.10"
// comes before "1.2". This matches dashboards that predate numeric ordering.
func WithLexicalOrder() ResolveOption {
	return func(c *resolveConfig) {
		c.lexical = true
	}
}

// Resolve flattens the model into the ordered list of rows to draw. Roots are
// sorted by code; children follow their parent depth-first in encounter order
// when the parent is expanded. Leaves are always shown once reached.
func Resolve(m *Model, expanded IDSet, opts ...ResolveOption) []*ScheduleItem {
	if m.Len() == 0 {
		return nil
	}
	cfg := resolveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var roots []*ScheduleItem
	for _, id := range m.Order {
		if item := m.Items[id]; item.ParentID == "" {
			roots = append(roots, item)
		}
	}

	less := func(a, b string) bool { return CompareCodes(a, b) < 0 }
	if cfg.lexical {
		less = func(a, b string) bool { return a < b }
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return less(roots[i].Code, roots[j].Code)
	})

	rows := make([]*ScheduleItem, 0, len(m.Order))
	visited := make(map[string]bool, len(m.Order))
	var add func(item *ScheduleItem)
	add = func(item *ScheduleItem) {
		if visited[item.ID] {
			return
		}
		visited[item.ID] = true
		rows = append(rows, item)
		if !item.HasChildren() || !expanded.Has(item.ID) {
			return
		}
		for _, childID := range item.Children {
			if child := m.Items[childID]; child != nil {
				add(child)
			}
		}
	}
	for _, root := range roots {
		add(root)
	}
	return rows
}

// CompareCodes compares dotted WBS codes segment by segment. Segments that are
// both integers compare numerically ("1.2" < "1.10"); anything else compares
// as strings. A code that is a prefix of another sorts first.
func CompareCodes(a, b string) int {
	if a == b {
		return 0
	}
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return strings.Compare(a, b)
}

func compareSegment(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		// "01" vs "1": fall through to the string tie-break.
	}
	return strings.Compare(a, b)
}
