package gantt

import (
	"fmt"
	"log/slog"
	"time"
)

// Input is everything one chart computation needs. Interaction state
// (Expanded, ScrollOffset, Granularity, Overlay) belongs to the caller.
type Input struct {
	Items        []RawItem
	Dependencies []Dependency
	Critical     IDSet
	Expanded     IDSet

	Granularity  Granularity
	ScrollOffset float64
	Dimensions   Dimensions
	Now          time.Time

	Theme         Theme
	Overlay       Overlay
	Reschedulable bool
	LexicalOrder  bool
	Logger        *slog.Logger
}

// Layout holds every product of the pipeline.
type Layout struct {
	Model      *Model
	Rows       []*ScheduleItem
	Window     Window
	Headers    []HeaderCell
	Mapper     *Mapper
	Connectors []Connector
	Commands   []DrawCommand
	Width      float64
	Height     float64
}

// Compute runs the full pipeline: build the model, resolve visible rows,
// derive the window and headers, map coordinates, route connectors and emit
// draw commands.
func Compute(in Input) (*Layout, error) {
	var buildOpts []BuildOption
	if in.Logger != nil {
		buildOpts = append(buildOpts, WithLogger(in.Logger))
	}
	model, err := Build(in.Items, in.Critical, in.Now, buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("building schedule model: %w", err)
	}

	var resolveOpts []ResolveOption
	if in.LexicalOrder {
		resolveOpts = append(resolveOpts, WithLexicalOrder())
	}
	rows := Resolve(model, in.Expanded, resolveOpts...)

	g := in.Granularity
	if g == "" {
		g = GranularityWeek
	}
	window := ComputeWindow(rows, in.Now)
	headers := BuildHeaders(window, g)
	mapper := NewMapper(window, g, in.ScrollOffset, in.Dimensions, rows)

	cmds := Render(RenderInput{
		Model:         model,
		Rows:          rows,
		Headers:       headers,
		Dependencies:  in.Dependencies,
		Mapper:        mapper,
		Expanded:      in.Expanded,
		Now:           in.Now,
		Theme:         in.Theme,
		Overlay:       in.Overlay,
		Reschedulable: in.Reschedulable,
	})
	width, height := SurfaceSize(mapper)

	return &Layout{
		Model:      model,
		Rows:       rows,
		Window:     window,
		Headers:    headers,
		Mapper:     mapper,
		Connectors: RouteAll(in.Dependencies, model, mapper),
		Commands:   cmds,
		Width:      width,
		Height:     height,
	}, nil
}

// ExpandAll returns the set of every item that has children.
func ExpandAll(m *Model) IDSet {
	set := IDSet{}
	for _, id := range m.Order {
		if m.Items[id].HasChildren() {
			set[id] = struct{}{}
		}
	}
	return set
}
