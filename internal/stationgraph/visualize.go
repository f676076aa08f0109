package stationgraph

import (
	"fmt"
	"sort"
	"strings"
)

// RenderASCII draws the graph level by level with portable ASCII only.
func (g *Graph) RenderASCII() string {
	if len(g.nodes) == 0 {
		return "No stations loaded.\n"
	}

	var sb strings.Builder
	sb.WriteString("Station Graph\n")
	sb.WriteString("=============\n\n")

	for i, level := range g.levels {
		sb.WriteString(renderLevelHeader(fmt.Sprintf("Level %d", level.Number), level.Size()))
		sb.WriteString(g.renderStations(level.StationIDs))

		if i < len(g.levels)-1 {
			sb.WriteString(renderLevelConnector())
		}
	}

	if len(g.unreachable) > 0 {
		if len(g.levels) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderLevelHeader("Unreachable", len(g.unreachable)))
		sb.WriteString(g.renderStations(g.unreachable))
	}

	if len(g.dangling) > 0 {
		sb.WriteString("\nUnknown targets:\n")
		for _, e := range g.dangling {
			sb.WriteString(fmt.Sprintf("  %s -> %s (%s)\n", e.From, e.To, e.Kind))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(renderSummary(g))

	return sb.String()
}

// renderLevelHeader renders the header for a level.
func renderLevelHeader(title string, count int) string {
	plural := "s"
	if count == 1 {
		plural = ""
	}
	return fmt.Sprintf("%s (%d station%s)\n", title, count, plural)
}

// renderStations renders one line per station with its outgoing links.
func (g *Graph) renderStations(ids []string) string {
	if len(ids) == 0 {
		return "  (empty)\n"
	}

	var sb strings.Builder
	for i, id := range ids {
		prefix := "  |-"
		if i == len(ids)-1 {
			prefix = "  +-"
		}
		sb.WriteString(fmt.Sprintf("%s [%s]", prefix, id))
		if out := sorted(g.nodes[id].Out); len(out) > 0 {
			sb.WriteString(" -> " + strings.Join(out, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderLevelConnector renders the connector between levels.
func renderLevelConnector() string {
	return "    |\n    v\n"
}

// renderSummary renders the summary statistics.
func renderSummary(g *Graph) string {
	stats := g.GetStats()
	var sb strings.Builder
	sb.WriteString("Summary:\n")
	sb.WriteString(fmt.Sprintf("  Stations: %d\n", stats.TotalStations))
	sb.WriteString(fmt.Sprintf("  Links: %d\n", stats.TotalEdges))
	sb.WriteString(fmt.Sprintf("  Entry Stations: %d\n", stats.Entries))
	sb.WriteString(fmt.Sprintf("  Levels: %d\n", stats.TotalLevels))
	sb.WriteString(fmt.Sprintf("  Unreachable: %d\n", stats.Unreachable))
	if cycle := g.FindCycle(); cycle != nil {
		sb.WriteString(fmt.Sprintf("  Loop: %s\n", FormatCycle(cycle)))
	}
	return sb.String()
}

// RenderCompact generates a single-line representation.
// Format: Level 1: [a] -> Level 2: [b, c] | Unreachable: [d]
func (g *Graph) RenderCompact() string {
	if len(g.nodes) == 0 {
		return "No stations loaded"
	}

	parts := make([]string, len(g.levels))
	for i, level := range g.levels {
		parts[i] = fmt.Sprintf("Level %d: [%s]", level.Number, strings.Join(level.StationIDs, ", "))
	}

	out := strings.Join(parts, " -> ")
	if len(g.unreachable) > 0 {
		if out != "" {
			out += " | "
		}
		out += fmt.Sprintf("Unreachable: [%s]", strings.Join(g.unreachable, ", "))
	}
	return out
}

// RenderDetailed lists every station with its links in both directions.
func (g *Graph) RenderDetailed() string {
	if len(g.nodes) == 0 {
		return "No stations loaded.\n"
	}

	var sb strings.Builder
	sb.WriteString("Station Details\n")
	sb.WriteString("===============\n\n")

	for _, id := range g.order {
		node := g.nodes[id]
		level := "unreachable"
		if node.Level > 0 {
			level = fmt.Sprintf("level %d", node.Level)
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s, %s\n", node.ID, node.Type, level))
		if len(node.Out) > 0 {
			sb.WriteString(fmt.Sprintf("    Leads to: %s\n", strings.Join(sorted(node.Out), ", ")))
		}
		if len(node.In) > 0 {
			sb.WriteString(fmt.Sprintf("    Reached from: %s\n", strings.Join(sorted(node.In), ", ")))
		}
	}

	return sb.String()
}

func sorted(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
