package stationgraph

import "sort"

// Level groups the stations at the same BFS distance from the entry stations.
type Level struct {
	Number     int      // Level number (1 for entry stations)
	StationIDs []string // Stations on this level, sorted
}

// Size returns the number of stations on the level.
func (l Level) Size() int {
	return len(l.StationIDs)
}

// ComputeLevels finds entry stations (no incoming edge from another station),
// assigns every station its shortest distance from an entry, and records the
// stations no entry reaches. Those are only reachable through a loop.
func (g *Graph) ComputeLevels() []Level {
	g.entries = nil
	g.levels = nil
	g.unreachable = nil

	for _, id := range g.order {
		node := g.nodes[id]
		node.Level = 0
		if len(node.In) == 0 {
			g.entries = append(g.entries, id)
		}
	}

	queue := make([]string, 0, len(g.entries))
	for _, id := range g.entries {
		g.nodes[id].Level = 1
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node := g.nodes[id]

		for _, next := range node.Out {
			nextNode := g.nodes[next]
			if nextNode.Level != 0 {
				continue
			}
			nextNode.Level = node.Level + 1
			queue = append(queue, next)
		}
	}

	groups := make(map[int][]string)
	for _, id := range g.order {
		node := g.nodes[id]
		if node.Level == 0 {
			g.unreachable = append(g.unreachable, id)
			continue
		}
		groups[node.Level] = append(groups[node.Level], id)
	}

	numbers := make([]int, 0, len(groups))
	for n := range groups {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		ids := groups[n]
		sort.Strings(ids)
		g.levels = append(g.levels, Level{Number: n, StationIDs: ids})
	}
	sort.Strings(g.unreachable)

	return g.levels
}

// Entries returns the entry stations in stationPaths order.
func (g *Graph) Entries() []string {
	return g.entries
}

// Levels returns the computed levels.
func (g *Graph) Levels() []Level {
	return g.levels
}

// Unreachable returns the stations no entry station leads to, sorted.
func (g *Graph) Unreachable() []string {
	return g.unreachable
}

// LevelOf returns the level number of a station, or 0 if it is unreachable
// or unknown.
func (g *Graph) LevelOf(id string) int {
	if node := g.nodes[id]; node != nil {
		return node.Level
	}
	return 0
}

// Stats summarizes the graph.
type Stats struct {
	TotalStations int `json:"stations" yaml:"stations"`             // Number of stations
	TotalEdges    int `json:"links" yaml:"links"`                   // Edges between known stations
	Entries       int `json:"entries" yaml:"entries"`               // Stations with no incoming edge
	TotalLevels   int `json:"levels" yaml:"levels"`                 // Number of levels
	MaxLevelSize  int `json:"max_level_size" yaml:"max_level_size"` // Size of the widest level
	Unreachable   int `json:"unreachable" yaml:"unreachable"`       // Stations no entry leads to
	Dangling      int `json:"dangling" yaml:"dangling"`             // Edges to unknown stations
}

// GetStats returns statistics about the computed levels.
func (g *Graph) GetStats() Stats {
	stats := Stats{
		TotalStations: len(g.nodes),
		TotalEdges:    len(g.edges),
		Entries:       len(g.entries),
		TotalLevels:   len(g.levels),
		Unreachable:   len(g.unreachable),
		Dangling:      len(g.dangling),
	}
	for _, l := range g.levels {
		if l.Size() > stats.MaxLevelSize {
			stats.MaxLevelSize = l.Size()
		}
	}
	return stats
}
