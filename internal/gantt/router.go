package gantt

import "fmt"

// Dependency is a predecessor -> successor edge.
type Dependency struct {
	PredecessorID string
	SuccessorID   string
}

// Point is a coordinate pair in drawing units.
type Point struct {
	X, Y float64
}

// ArrowLength and ArrowHalfWidth size the triangle at a connector's target.
const (
	ArrowLength    = 6.0
	ArrowHalfWidth = 4.0
)

// Connector is the routed geometry of one dependency edge.
type Connector struct {
	PredecessorID string
	SuccessorID   string

	From     Point
	Control1 Point
	Control2 Point
	To       Point

	// Critical is true when both endpoints are on the critical chain.
	Critical bool
}

// Path renders the connector as an SVG-style path string: a cubic curve
// through two control points at the horizontal midpoint.
func (c Connector) Path() string {
	return fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
		num(c.From.X), num(c.From.Y),
		num(c.Control1.X), num(c.Control1.Y),
		num(c.Control2.X), num(c.Control2.Y),
		num(c.To.X), num(c.To.Y))
}

// Arrowhead returns the triangle drawn at the target endpoint.
func (c Connector) Arrowhead() []Point {
	return []Point{
		{c.To.X, c.To.Y},
		{c.To.X - ArrowLength, c.To.Y - ArrowHalfWidth},
		{c.To.X - ArrowLength, c.To.Y + ArrowHalfWidth},
	}
}

// Route synthesizes the connector for dep. It returns nil when either endpoint
// is unknown to the model or not among the visible rows; dependencies never
// force their endpoints to become visible.
func Route(dep Dependency, m *Model, mapper *Mapper) *Connector {
	pred, succ := m.Get(dep.PredecessorID), m.Get(dep.SuccessorID)
	if pred == nil || succ == nil {
		return nil
	}
	pi, si := mapper.IndexOf(pred.ID), mapper.IndexOf(succ.ID)
	if pi < 0 || si < 0 {
		return nil
	}

	x1, y1 := mapper.DateToX(pred.End), mapper.RowCenterY(pi)
	x2, y2 := mapper.DateToX(succ.Start), mapper.RowCenterY(si)
	mid := (x1 + x2) / 2

	return &Connector{
		PredecessorID: pred.ID,
		SuccessorID:   succ.ID,
		From:          Point{x1, y1},
		Control1:      Point{mid, y1},
		Control2:      Point{mid, y2},
		To:            Point{x2, y2},
		Critical:      pred.IsCritical && succ.IsCritical,
	}
}

// RouteAll routes every dependency, in input order, skipping the ones Route
// rejects.
func RouteAll(deps []Dependency, m *Model, mapper *Mapper) []Connector {
	out := make([]Connector, 0, len(deps))
	for _, dep := range deps {
		if c := Route(dep, m, mapper); c != nil {
			out = append(out, *c)
		}
	}
	return out
}
