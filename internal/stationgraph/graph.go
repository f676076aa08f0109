// Package stationgraph builds the navigation graph of a game: stations are
// nodes, and "opens" entries and event targets are edges.
package stationgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sagaworks/sagalint/internal/game"
)

// EdgeKind tells where an edge came from.
type EdgeKind int

const (
	// EdgeOpens comes from a station's "opens" list.
	EdgeOpens EdgeKind = iota
	// EdgeEvent comes from an event target (goToStation, switch cases and so on).
	EdgeEvent
)

// String returns the string representation of an EdgeKind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeOpens:
		return "opens"
	case EdgeEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Edge is a directed link between two stations.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// StationNode represents a station in the graph.
type StationNode struct {
	ID    string   // Station identifier
	Type  string   // Station type (story, choice, ...)
	Out   []string // Stations this one leads to, first-seen order
	In    []string // Stations leading here, first-seen order
	Level int      // BFS distance from the nearest entry station, 1-based; 0 when unreachable
}

// Graph is the station navigation graph of one game.
type Graph struct {
	nodes       map[string]*StationNode
	order       []string // Station IDs in stationPaths order
	edges       []Edge
	dangling    []Edge // Edges to identifiers that are not loaded stations
	entries     []string
	levels      []Level
	unreachable []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*StationNode)}
}

// Build constructs the graph of every loaded station in g and computes
// entry stations and levels. Duplicate, unloadable and id-less entries are
// skipped.
func Build(g *game.GameConfig) *Graph {
	graph := NewGraph()

	for _, entry := range g.Entries {
		if !graphable(entry) {
			continue
		}
		graph.AddStation(entry.Station.ID, entry.Station.Type)
	}

	for _, entry := range g.Entries {
		if !graphable(entry) {
			continue
		}
		s := entry.Station
		for _, id := range s.Opens {
			graph.AddEdge(s.ID, id, EdgeOpens)
		}
		for _, root := range s.Events {
			root.Walk(func(ev *game.Event) bool {
				for _, ref := range game.StationTargets(ev) {
					if ref.Value != "" {
						graph.AddEdge(s.ID, ref.Value, EdgeEvent)
					}
				}
				return true
			})
		}
	}

	graph.ComputeLevels()
	return graph
}

// graphable reports whether entry holds a station that can be a node. A
// station without an id cannot be linked to.
func graphable(entry game.StationEntry) bool {
	return entry.Station != nil && !entry.Duplicate && entry.Station.ID != ""
}

// AddStation adds a node. Adding an existing identifier is a no-op.
func (g *Graph) AddStation(id, typ string) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	g.nodes[id] = &StationNode{ID: id, Type: typ}
	g.order = append(g.order, id)
}

// AddEdge links from to to. Edges to unknown stations are kept apart as
// dangling; repeated links between the same pair are recorded once per kind.
func (g *Graph) AddEdge(from, to string, kind EdgeKind) {
	src, ok := g.nodes[from]
	if !ok {
		return
	}
	edge := Edge{From: from, To: to, Kind: kind}

	dst, ok := g.nodes[to]
	if !ok {
		for _, d := range g.dangling {
			if d == edge {
				return
			}
		}
		g.dangling = append(g.dangling, edge)
		return
	}

	for _, e := range g.edges {
		if e == edge {
			return
		}
	}
	g.edges = append(g.edges, edge)

	if !contains(src.Out, to) {
		src.Out = append(src.Out, to)
	}
	if from != to && !contains(dst.In, from) {
		dst.In = append(dst.In, from)
	}
}

// Node returns a station node by ID, or nil if not found.
func (g *Graph) Node(id string) *StationNode {
	return g.nodes[id]
}

// Stations returns station IDs in stationPaths order.
func (g *Graph) Stations() []string {
	return g.order
}

// Edges returns every edge between known stations, in discovery order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Dangling returns edges whose target is not a loaded station.
func (g *Graph) Dangling() []Edge {
	return g.dangling
}

// Size returns the number of stations in the graph.
func (g *Graph) Size() int {
	return len(g.nodes)
}

// FindCycle returns one navigation loop as a path that starts and ends on
// the same station, or nil. Loops are legal in a game; this is informational.
func (g *Graph) FindCycle() []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	ids := make([]string, len(g.order))
	copy(ids, g.order)
	sort.Strings(ids)

	for _, id := range ids {
		if visited[id] {
			continue
		}
		if cycle := g.findCycleDFS(id, visited, onStack, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *Graph) findCycleDFS(id string, visited, onStack map[string]bool, path []string) []string {
	visited[id] = true
	onStack[id] = true
	path = append(path, id)

	for _, next := range g.nodes[id].Out {
		if !visited[next] {
			if cycle := g.findCycleDFS(next, visited, onStack, path); cycle != nil {
				return cycle
			}
		} else if onStack[next] {
			return buildCyclePath(path, next)
		}
	}

	onStack[id] = false
	return nil
}

// buildCyclePath cuts path at the first visit of start and closes the loop.
func buildCyclePath(path []string, start string) []string {
	for i, id := range path {
		if id == start {
			cycle := make([]string, 0, len(path)-i+1)
			cycle = append(cycle, path[i:]...)
			return append(cycle, start)
		}
	}
	return append(path, start)
}

// FormatCycle renders a cycle path as "a -> b -> a".
func FormatCycle(cycle []string) string {
	return strings.Join(cycle, " -> ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// String summarizes the graph for debug logs.
func (g *Graph) String() string {
	return fmt.Sprintf("stations=%d edges=%d dangling=%d entries=%d unreachable=%d",
		len(g.nodes), len(g.edges), len(g.dangling), len(g.entries), len(g.unreachable))
}
