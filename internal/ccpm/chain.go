// Package ccpm computes critical-chain project management figures for a WBS:
// the longest dependency chain through the work items and the state of the
// project buffer.
package ccpm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/gantry/internal/domain"
)

// HoursPerDay converts dependency lag days into the hour scale of estimates.
const HoursPerDay = 8.0

// ErrCycle is returned when the dependency graph between work items loops.
var ErrCycle = errors.New("dependency cycle")

// TaskSchedule holds the forward/backward pass figures for one work item,
// in hours from the project start.
type TaskSchedule struct {
	ItemID   string
	Duration float64
	ES, EF   float64 // earliest start/finish
	LS, LF   float64 // latest start/finish
	Slack    float64
}

// Analysis is the result of Analyze.
type Analysis struct {
	Tasks     map[string]*TaskSchedule
	TopoOrder []string

	// Chain is the longest path, source first. TotalHours is its length.
	Chain      []string
	TotalHours float64
}

// OnChain reports whether id is part of the critical chain.
func (a *Analysis) OnChain(id string) bool {
	for _, c := range a.Chain {
		if c == id {
			return true
		}
	}
	return false
}

type graph struct {
	ids  []string
	adj  map[string][]domain.Dependency // predecessor -> outgoing edges
	rev  map[string][]domain.Dependency // successor -> incoming edges
	dur  map[string]float64
	sink map[string]bool
}

// Analyze finds the critical chain through the work items (tasks and
// subtasks) of a project. Durations are the aggressive estimates, falling back
// to plain estimates. Dependencies touching non-work or unknown items are
// ignored. Lag days extend an edge by HoursPerDay each.
func Analyze(items []domain.WBSItem, deps []domain.Dependency) (*Analysis, error) {
	g := buildGraph(items, deps)

	order, err := topoSort(g)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Tasks:     make(map[string]*TaskSchedule, len(order)),
		TopoOrder: order,
	}
	best := make(map[string]string, len(order)) // item -> predecessor on its longest path

	// Forward pass.
	for _, id := range order {
		ts := &TaskSchedule{ItemID: id, Duration: g.dur[id]}
		for _, e := range g.rev[id] {
			start := a.Tasks[e.PredecessorID].EF + float64(e.LagDays)*HoursPerDay
			if start > ts.ES {
				ts.ES = start
				best[id] = e.PredecessorID
			}
		}
		ts.EF = ts.ES + ts.Duration
		a.Tasks[id] = ts
	}

	end := ""
	for _, id := range order {
		if g.sink[id] && a.Tasks[id].EF > a.TotalHours {
			a.TotalHours = a.Tasks[id].EF
			end = id
		}
	}

	// Backward pass.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		ts := a.Tasks[id]
		ts.LF = a.TotalHours
		for _, e := range g.adj[id] {
			finish := a.Tasks[e.SuccessorID].LS - float64(e.LagDays)*HoursPerDay
			if finish < ts.LF {
				ts.LF = finish
			}
		}
		ts.LS = ts.LF - ts.Duration
		ts.Slack = ts.LS - ts.ES
	}

	for cur := end; cur != ""; cur = best[cur] {
		a.Chain = append(a.Chain, cur)
	}
	for i, j := 0, len(a.Chain)-1; i < j; i, j = i+1, j-1 {
		a.Chain[i], a.Chain[j] = a.Chain[j], a.Chain[i]
	}
	return a, nil
}

func buildGraph(items []domain.WBSItem, deps []domain.Dependency) *graph {
	g := &graph{
		adj:  make(map[string][]domain.Dependency),
		rev:  make(map[string][]domain.Dependency),
		dur:  make(map[string]float64),
		sink: make(map[string]bool),
	}
	for i := range items {
		it := &items[i]
		if !it.IsWork() {
			continue
		}
		g.ids = append(g.ids, it.ID)
		g.dur[it.ID] = it.AggressiveDuration()
		g.sink[it.ID] = true
	}
	for _, d := range deps {
		_, okP := g.dur[d.PredecessorID]
		_, okS := g.dur[d.SuccessorID]
		if !okP || !okS {
			continue
		}
		g.adj[d.PredecessorID] = append(g.adj[d.PredecessorID], d)
		g.rev[d.SuccessorID] = append(g.rev[d.SuccessorID], d)
		g.sink[d.PredecessorID] = false
	}
	return g
}

// topoSort performs Kahn's algorithm, keeping ready items sorted by id so the
// order is deterministic.
func topoSort(g *graph) ([]string, error) {
	inDegree := make(map[string]int, len(g.ids))
	var queue []string
	for _, id := range g.ids {
		inDegree[id] = len(g.rev[id])
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.ids))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var ready []string
		for _, e := range g.adj[node] {
			inDegree[e.SuccessorID]--
			if inDegree[e.SuccessorID] == 0 {
				ready = append(ready, e.SuccessorID)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(g.ids) {
		return nil, fmt.Errorf("sorting %d work items (%d placed): %w", len(g.ids), len(order), ErrCycle)
	}
	return order, nil
}
