package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sagaworks/sagalint/internal/game"
)

// CheckStation runs the station-level checks in a fixed order: choice
// naming, help pairing, opens integrity and provenance.
func (c *Checker) CheckStation(s *game.Station) []Diagnostic {
	var diags []Diagnostic
	diags = append(diags, c.checkChoiceNaming(s)...)
	diags = append(diags, checkHelpPairing(s)...)
	diags = append(diags, c.checkOpens(s)...)
	diags = append(diags, checkProvenance(s)...)
	return diags
}

// checkChoiceNaming requires a choice station's identifier to end with
// choiceInfix followed by a configured choice name.
func (c *Checker) checkChoiceNaming(s *game.Station) []Diagnostic {
	if !s.IsChoice() || c.game == nil {
		return nil
	}

	infix := c.game.ChoiceInfix
	suffix := game.ChoiceSuffix(s.ID, infix)
	if c.game.HasChoiceName(suffix) && strings.HasSuffix(s.ID, infix+suffix) {
		return nil
	}

	return []Diagnostic{{
		Code:      CodeChoiceNaming,
		Message:   fmt.Sprintf("choice station %q must end with %q followed by one of: %s", s.ID, infix, strings.Join(c.game.ChoiceNames, ", ")),
		File:      s.SourcePath,
		StationID: s.ID,
		Path:      "id",
		Reference: s.ID,
		Hint:      "Rename the station or add its suffix to choiceNames",
	}}
}

// checkHelpPairing requires helpAudioFilenames and helpCost to be both
// present or both absent.
func checkHelpPairing(s *game.Station) []Diagnostic {
	if s.HasHelpAudio() == s.HasHelpCost() {
		return nil
	}

	present, missing := "helpCost", "helpAudioFilenames"
	if s.HasHelpAudio() {
		present, missing = missing, present
	}
	return []Diagnostic{{
		Code:      CodeHelpPairing,
		Message:   fmt.Sprintf("station %q has %s but no %s", s.ID, present, missing),
		File:      s.SourcePath,
		StationID: s.ID,
		Path:      missing,
		Hint:      "Help options need both helpAudioFilenames and helpCost",
	}}
}

// checkOpens requires every opened identifier to exist. An existing
// identifier containing the choice infix must be a global choice or a
// choice namespaced under the opening station.
func (c *Checker) checkOpens(s *game.Station) []Diagnostic {
	if c.universe == nil {
		return nil
	}

	var diags []Diagnostic
	for i, id := range s.Opens {
		path := fmt.Sprintf("opens[%d]", i)
		switch {
		case !c.universe.Contains(id):
			diags = append(diags, Diagnostic{
				Code:      CodeMissingOpens,
				Message:   fmt.Sprintf("station %q opens unknown station %q", s.ID, id),
				File:      s.SourcePath,
				StationID: s.ID,
				Path:      path,
				Reference: id,
			})
		case c.universe.HasInfix(id) && !c.universe.IsStationChoice(s.ID, id):
			diags = append(diags, Diagnostic{
				Code:      CodeMalformedChoiceRef,
				Message:   fmt.Sprintf("station %q opens choice %q, expected %q followed by a choice name", s.ID, id, s.ID+c.game.ChoiceInfix),
				File:      s.SourcePath,
				StationID: s.ID,
				Path:      path,
				Reference: id,
			})
		}
	}
	return diags
}

// checkProvenance requires the station identifier to appear in its own file
// path.
func checkProvenance(s *game.Station) []Diagnostic {
	if s.ID == "" || strings.Contains(s.SourcePath, s.ID) {
		return nil
	}
	return []Diagnostic{{
		Code:      CodeProvenance,
		Message:   fmt.Sprintf("station %q is declared in a file whose path does not contain its id", s.ID),
		File:      s.SourcePath,
		StationID: s.ID,
		Path:      "id",
		Reference: s.ID,
		Hint:      "Rename the file or fix the station id",
	}}
}

// CheckGlobalAssets requires every global audio file to exist. Slots are
// checked in sorted order.
func (c *Checker) CheckGlobalAssets() []Diagnostic {
	if c.game == nil {
		return nil
	}

	slots := make([]string, 0, len(c.game.GlobalAudioFilenames))
	for slot := range c.game.GlobalAudioFilenames {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	var diags []Diagnostic
	for _, slot := range slots {
		file := c.game.GlobalAudioFilenames[slot]
		if c.fs.Exists(c.game.Resolve(file)) {
			continue
		}
		diags = append(diags, Diagnostic{
			Code:      CodeMissingGlobalAsset,
			Message:   fmt.Sprintf("global audio %q points at missing file %q", slot, file),
			File:      c.game.Path,
			Path:      "globalAudioFilenames." + slot,
			Reference: file,
		})
	}
	return diags
}
