// Package stationgraph_test tests graph construction from a loaded game.
// Related: internal/stationgraph/graph.go, internal/stationgraph/levels.go
// Tags: stationgraph, graph, levels, cycles
package stationgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagaworks/sagalint/internal/game"
)

type stationSpec struct {
	id     string
	opens  []string
	events []string
}

func buildGame(specs ...stationSpec) *game.GameConfig {
	g := &game.GameConfig{Stations: make(map[string]*game.Station)}
	for _, sp := range specs {
		raws := make([]json.RawMessage, 0, len(sp.events))
		for _, e := range sp.events {
			raws = append(raws, json.RawMessage(e))
		}
		s := &game.Station{
			ID:        sp.id,
			Type:      game.StationTypeStory,
			Opens:     sp.opens,
			RawEvents: raws,
			Events:    game.DecodeEvents(raws),
		}
		entry := game.StationEntry{Path: sp.id + ".json", Station: s}
		if _, taken := g.Stations[sp.id]; taken && sp.id != "" {
			entry.Duplicate = true
		} else if sp.id != "" {
			g.Stations[sp.id] = s
		}
		g.Entries = append(g.Entries, entry)
	}
	return g
}

func TestBuild_SkipsStationsWithoutID(t *testing.T) {
	t.Parallel()

	g := Build(buildGame(
		stationSpec{id: "a", opens: []string{"b"}},
		stationSpec{id: "b"},
		stationSpec{opens: []string{"a"}},
		stationSpec{events: []string{`{"action":"goToStation","toStation":"b"}`}},
	))

	assert.Equal(t, 2, g.Size())
	assert.Nil(t, g.Node(""))
	assert.Equal(t, []string{"a"}, g.Entries())
	assert.Empty(t, g.Dangling())
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stations        []stationSpec
		wantEntries     []string
		wantLevels      []Level
		wantUnreachable []string
		wantDangling    int
	}{
		"linear chain": {
			stations: []stationSpec{
				{id: "a", opens: []string{"b"}},
				{id: "b", events: []string{`{"action":"goToStation","toStation":"c"}`}},
				{id: "c"},
			},
			wantEntries: []string{"a"},
			wantLevels: []Level{
				{Number: 1, StationIDs: []string{"a"}},
				{Number: 2, StationIDs: []string{"b"}},
				{Number: 3, StationIDs: []string{"c"}},
			},
		},
		"shortest distance wins": {
			stations: []stationSpec{
				{id: "a", opens: []string{"b", "c"}},
				{id: "b", opens: []string{"c"}},
				{id: "c"},
			},
			wantEntries: []string{"a"},
			wantLevels: []Level{
				{Number: 1, StationIDs: []string{"a"}},
				{Number: 2, StationIDs: []string{"b", "c"}},
			},
		},
		"nested event targets": {
			stations: []stationSpec{
				{id: "a", events: []string{`{"action":"choiceBasedOnTags","tags":["t"],
					"eventIfPresent":{"action":"openStations","toStations":["b"]},
					"eventIfNotPresent":{"action":"noop"},
					"then":{"action":"goToStation","toStation":"c"}}`}},
				{id: "b"},
				{id: "c"},
			},
			wantEntries: []string{"a"},
			wantLevels: []Level{
				{Number: 1, StationIDs: []string{"a"}},
				{Number: 2, StationIDs: []string{"b", "c"}},
			},
		},
		"loop only": {
			stations: []stationSpec{
				{id: "start"},
				{id: "x", opens: []string{"y"}},
				{id: "y", opens: []string{"x"}},
			},
			wantEntries:     []string{"start"},
			wantLevels:      []Level{{Number: 1, StationIDs: []string{"start"}}},
			wantUnreachable: []string{"x", "y"},
		},
		"self loop keeps entry": {
			stations: []stationSpec{
				{id: "a", opens: []string{"a"}},
			},
			wantEntries: []string{"a"},
			wantLevels:  []Level{{Number: 1, StationIDs: []string{"a"}}},
		},
		"unknown targets are dangling": {
			stations: []stationSpec{
				{id: "a", opens: []string{"ghost"}, events: []string{`{"action":"openStation","toStation":"ghost"}`}},
			},
			wantEntries:  []string{"a"},
			wantLevels:   []Level{{Number: 1, StationIDs: []string{"a"}}},
			wantDangling: 2,
		},
		"duplicates are skipped": {
			stations: []stationSpec{
				{id: "a"},
				{id: "a", opens: []string{"b"}},
				{id: "b"},
			},
			wantEntries: []string{"a", "b"},
			wantLevels:  []Level{{Number: 1, StationIDs: []string{"a", "b"}}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := Build(buildGame(tc.stations...))

			assert.Equal(t, tc.wantEntries, g.Entries())
			assert.Equal(t, tc.wantLevels, g.Levels())
			assert.Equal(t, tc.wantUnreachable, g.Unreachable())
			assert.Len(t, g.Dangling(), tc.wantDangling)
		})
	}
}

func TestAddEdge_Deduplicates(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.AddStation("a", game.StationTypeStory)
	g.AddStation("b", game.StationTypeStory)
	g.AddStation("a", game.StationTypeChoice)

	g.AddEdge("a", "b", EdgeOpens)
	g.AddEdge("a", "b", EdgeOpens)
	g.AddEdge("a", "b", EdgeEvent)
	g.AddEdge("zzz", "b", EdgeOpens)

	assert.Equal(t, 2, g.Size())
	assert.Equal(t, game.StationTypeStory, g.Node("a").Type)
	assert.Len(t, g.Edges(), 2)
	assert.Equal(t, []string{"b"}, g.Node("a").Out)
	assert.Equal(t, []string{"a"}, g.Node("b").In)
}

func TestFindCycle(t *testing.T) {
	t.Parallel()

	acyclic := Build(buildGame(
		stationSpec{id: "a", opens: []string{"b"}},
		stationSpec{id: "b"},
	))
	assert.Nil(t, acyclic.FindCycle())

	looped := Build(buildGame(
		stationSpec{id: "a", opens: []string{"b"}},
		stationSpec{id: "b", opens: []string{"c"}},
		stationSpec{id: "c", opens: []string{"b"}},
	))
	cycle := looped.FindCycle()
	require.NotNil(t, cycle)
	assert.Equal(t, "b -> c -> b", FormatCycle(cycle))
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	g := Build(buildGame(
		stationSpec{id: "a", opens: []string{"b", "c", "nope"}},
		stationSpec{id: "b"},
		stationSpec{id: "c"},
		stationSpec{id: "x", opens: []string{"x"}},
	))

	assert.Equal(t, Stats{
		TotalStations: 4,
		TotalEdges:    3,
		Entries:       2,
		TotalLevels:   2,
		MaxLevelSize:  2,
		Dangling:      1,
	}, g.GetStats())
	assert.Equal(t, 2, g.LevelOf("b"))
	assert.Equal(t, 0, g.LevelOf("missing"))
}
