package validation

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagaworks/sagalint/internal/game"
)

func newTestChecker(g *game.GameConfig, fsys game.FS) *Checker {
	return NewChecker(g, ResolveIdentifiers(g), fsys)
}

func TestCheckStation_ChoiceNaming(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id       string
		typ      string
		names    []string
		wantDiag bool
	}{
		"per-station choice":       {id: "cave-c-red", typ: game.StationTypeChoice},
		"global choice":            {id: "-c-blue", typ: game.StationTypeChoice},
		"unknown choice name":      {id: "cave-c-green", typ: game.StationTypeChoice, wantDiag: true},
		"missing infix":            {id: "cave-red", typ: game.StationTypeChoice, wantDiag: true},
		"bare choice name":         {id: "red", typ: game.StationTypeChoice, wantDiag: true},
		"story station is ignored": {id: "cave-c-green", typ: game.StationTypeStory},
		"hyphenated choice name":   {id: "q-c-light-blue", typ: game.StationTypeChoice, names: []string{"light-blue"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := testGame(tc.id)
			if tc.names != nil {
				g.ChoiceNames = tc.names
			}
			s := g.Stations[tc.id]
			s.Type = tc.typ

			diags := newTestChecker(g, fakeFS{}).CheckStation(s)

			if !tc.wantDiag {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, CodeChoiceNaming, diags[0].Code)
			assert.Equal(t, tc.id, diags[0].Reference)
			assert.Equal(t, s.SourcePath, diags[0].File)
		})
	}
}

func TestCheckStation_HelpPairing(t *testing.T) {
	t.Parallel()

	cost := 2.0
	tests := map[string]struct {
		audio    []string
		cost     *float64
		wantPath string
	}{
		"neither":             {},
		"both":                {audio: []string{"help.mp3"}, cost: &cost},
		"only cost":           {cost: &cost, wantPath: "helpAudioFilenames"},
		"only audio":          {audio: []string{"help.mp3"}, wantPath: "helpCost"},
		"empty audio list":    {audio: []string{}, wantPath: "helpCost"},
		"empty list and cost": {audio: []string{}, cost: &cost},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := testGame("a")
			s := g.Stations["a"]
			s.HelpAudioFilenames = tc.audio
			s.HelpCost = tc.cost

			diags := newTestChecker(g, fakeFS{}).CheckStation(s)

			if tc.wantPath == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, CodeHelpPairing, diags[0].Code)
			assert.Equal(t, tc.wantPath, diags[0].Path)
		})
	}
}

func TestCheckStation_Opens(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opens []string
		want  []brief
	}{
		"existing station": {
			opens: []string{"b"},
			want:  []brief{},
		},
		"unknown station": {
			opens: []string{"b", "zzz"},
			want:  []brief{{CodeMissingOpens, "opens[1]", "zzz"}},
		},
		"own choice": {
			opens: []string{"a-c-red"},
			want:  []brief{},
		},
		"global choice is not the station's own": {
			opens: []string{"-c-red"},
			want:  []brief{{CodeMalformedChoiceRef, "opens[0]", "-c-red"}},
		},
		"another station's choice": {
			opens: []string{"b-c-red"},
			want:  []brief{{CodeMalformedChoiceRef, "opens[0]", "b-c-red"}},
		},
		"unknown choice is reported once": {
			opens: []string{"a-c-green"},
			want:  []brief{{CodeMissingOpens, "opens[0]", "a-c-green"}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := testGame("a", "b", "a-c-red", "b-c-red")
			s := g.Stations["a"]
			s.Opens = tc.opens

			got := briefs(newTestChecker(g, fakeFS{}).CheckStation(s))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckStation_Provenance(t *testing.T) {
	t.Parallel()

	g := testGame("a")
	s := &game.Station{ID: "zeta", Type: game.StationTypeStory, SourcePath: filepath.Join("root", "stations", "a.json")}

	diags := newTestChecker(g, fakeFS{}).CheckStation(s)

	require.Len(t, diags, 1)
	assert.Equal(t, CodeProvenance, diags[0].Code)
	assert.Equal(t, "zeta", diags[0].StationID)
}

func TestCheckStation_Order(t *testing.T) {
	t.Parallel()

	g := testGame("cave-c-green")
	s := g.Stations["cave-c-green"]
	s.Type = game.StationTypeChoice
	s.Opens = []string{"nope"}
	s.HelpAudioFilenames = []string{"h.mp3"}
	s.SourcePath = filepath.Join("root", "stations", "cave.json")

	var codes []Code
	for _, d := range newTestChecker(g, fakeFS{}).CheckStation(s) {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []Code{CodeChoiceNaming, CodeHelpPairing, CodeMissingOpens, CodeProvenance}, codes)
}

func TestCheckGlobalAssets(t *testing.T) {
	t.Parallel()

	g := testGame()
	g.GlobalAudioFilenames = map[string]string{
		"win":   "audio/win.mp3",
		"lose":  "audio/lose.mp3",
		"intro": "audio/intro.mp3",
	}
	fsys := fakeFS{filepath.Join("root", "audio", "win.mp3"): true}

	got := briefs(newTestChecker(g, fsys).CheckGlobalAssets())

	assert.Equal(t, []brief{
		{CodeMissingGlobalAsset, "globalAudioFilenames.intro", "audio/intro.mp3"},
		{CodeMissingGlobalAsset, "globalAudioFilenames.lose", "audio/lose.mp3"},
	}, got)
}

func TestResolveIdentifiers(t *testing.T) {
	t.Parallel()

	g := testGame("a", "b")
	u := ResolveIdentifiers(g)

	assert.Equal(t, []string{"-c-blue", "-c-red", "a", "b"}, u.IDs())
	assert.Equal(t, 4, u.Len())
	assert.True(t, u.Contains("a"))
	assert.False(t, u.Contains("red"))
	assert.True(t, u.IsGlobalChoice("-c-red"))
	assert.False(t, u.IsGlobalChoice("a"))
	assert.True(t, u.IsStationChoice("a", "a-c-blue"))
	assert.False(t, u.IsStationChoice("a", "b-c-blue"))
	assert.False(t, u.IsStationChoice("a", "a-c-green"))
	assert.True(t, u.HasInfix("x-c-y"))
	assert.False(t, u.HasInfix("xy"))
}

func TestResolveIdentifiers_NoInfix(t *testing.T) {
	t.Parallel()

	g := testGame("a")
	g.ChoiceInfix = ""
	u := ResolveIdentifiers(g)

	assert.Equal(t, []string{"a"}, u.IDs())
	assert.False(t, u.HasInfix("a"))
}
