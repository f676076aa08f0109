package validation

import (
	"sort"
	"strings"

	"github.com/sagaworks/sagalint/internal/game"
)

// Universe is the set of station identifiers references may point at: every
// loaded station plus one global choice identifier (choiceInfix + name) per
// configured choice name.
type Universe struct {
	ids     map[string]struct{}
	global  map[string]struct{}
	infix   string
	choices []string
}

// ResolveIdentifiers builds the identifier universe of g.
func ResolveIdentifiers(g *game.GameConfig) *Universe {
	u := &Universe{
		ids:     make(map[string]struct{}, len(g.Stations)+len(g.ChoiceNames)),
		global:  make(map[string]struct{}, len(g.ChoiceNames)),
		infix:   g.ChoiceInfix,
		choices: g.ChoiceNames,
	}

	for id := range g.Stations {
		u.ids[id] = struct{}{}
	}
	if g.ChoiceInfix != "" {
		for _, name := range g.ChoiceNames {
			id := g.ChoiceInfix + name
			u.ids[id] = struct{}{}
			u.global[id] = struct{}{}
		}
	}

	return u
}

// Contains reports whether id is a known station identifier.
func (u *Universe) Contains(id string) bool {
	_, ok := u.ids[id]
	return ok
}

// IsGlobalChoice reports whether id is a synthetic global choice identifier.
func (u *Universe) IsGlobalChoice(id string) bool {
	_, ok := u.global[id]
	return ok
}

// IsStationChoice reports whether id names a choice of owner, that is
// owner + choiceInfix + one of the choice names.
func (u *Universe) IsStationChoice(owner, id string) bool {
	prefix := owner + u.infix
	if !strings.HasPrefix(id, prefix) {
		return false
	}
	name := strings.TrimPrefix(id, prefix)
	for _, choice := range u.choices {
		if choice == name {
			return true
		}
	}
	return false
}

// HasInfix reports whether id contains the choice infix.
func (u *Universe) HasInfix(id string) bool {
	return u.infix != "" && strings.Contains(id, u.infix)
}

// Len returns the number of identifiers.
func (u *Universe) Len() int {
	return len(u.ids)
}

// IDs returns every identifier in sorted order.
func (u *Universe) IDs() []string {
	ids := make([]string, 0, len(u.ids))
	for id := range u.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
