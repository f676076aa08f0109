package game

import (
	"encoding/json"
	"fmt"
)

// Event action tags understood by the runtime.
const (
	ActionPlayAudio                  = "playAudio"
	ActionPlayBackgroundAudio        = "playBackgroundAudio"
	ActionPlayAudioBasedOnAdHocValue = "playAudioBasedOnAdHocValue"
	ActionGoToStation                = "goToStation"
	ActionOpenStation                = "openStation"
	ActionOpenStations               = "openStations"
	ActionSwitchGotoStation          = "switchGotoStation"
	ActionChoiceBasedOnTags          = "choiceBasedOnTags"
	ActionChoiceBasedOnAbsenceOfTags = "choiceBasedOnAbsenceOfTags"
	ActionPowerNameChoice            = "powerNameChoice"
	ActionStartTimer                 = "startTimer"
	ActionCancelTimer                = "cancelTimer"
	ActionPickRandomSample           = "pickRandomSample"
	ActionSetAdHocData               = "setAdHocData"
	ActionPushToAdHocArray           = "pushToAdHocArray"
	ActionNoop                       = "noop"
)

// Event is one node of a station's event tree.
//
// Exactly one of Action or Condition carries the variant tag. Kind holds the
// decoded variant and is nil when the tag is unknown or the node is not an
// object. Problems lists everything that went wrong while the node was built;
// children that could be decoded are still attached.
type Event struct {
	Action    string
	Condition string
	// Path locates the node inside its station document, e.g. "events[2].then".
	Path     string
	Kind     Variant
	Then     *Event
	Problems []Problem
}

// Problem is a construction-time defect of a single event node.
type Problem struct {
	Key     string // offending key, empty when the whole node is affected
	Message string
}

// Tag returns the variant tag of the event.
func (e *Event) Tag() string {
	if e.Action != "" {
		return e.Action
	}
	return e.Condition
}

// Children returns the nested events in traversal order: variant branches
// first, then the "then" continuation.
func (e *Event) Children() []*Event {
	var children []*Event
	if b, ok := e.Kind.(branching); ok {
		for _, child := range b.branches() {
			if child != nil {
				children = append(children, child)
			}
		}
	}
	if e.Then != nil {
		children = append(children, e.Then)
	}
	return children
}

// Walk calls fn for e and every descendant, parent before children. Returning
// false from fn skips the node's children.
func (e *Event) Walk(fn func(*Event) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, child := range e.Children() {
		child.Walk(fn)
	}
}

func (e *Event) addProblem(key, format string, args ...any) {
	e.Problems = append(e.Problems, Problem{Key: key, Message: fmt.Sprintf(format, args...)})
}

// Variant is the closed set of event payloads. Only types in this package
// implement it.
type Variant interface {
	variant()
}

// branching is implemented by variants that embed further events.
type branching interface {
	branches() []*Event
	decodeBranches(path string, dec *decoder)
}

// PlayAudio plays a sequence of foreground audio files.
type PlayAudio struct {
	AudioFilenames []string `json:"audioFilenames" validate:"required,dive,required"`
	Wait           float64  `json:"wait"`
}

// PlayBackgroundAudio plays a single background track.
type PlayBackgroundAudio struct {
	AudioFilename string  `json:"audioFilename" validate:"required"`
	Wait          float64 `json:"wait"`
	CancelOnLeave bool    `json:"cancelOnLeave"`
	Loop          bool    `json:"loop"`
}

// PlayAudioBasedOnAdHocValue picks a file by the ad-hoc value stored under Key.
type PlayAudioBasedOnAdHocValue struct {
	Key              string            `json:"key" validate:"required"`
	AudioFilenameMap map[string]string `json:"audioFilenameMap" validate:"required,dive,required"`
}

// GoToStation opens and runs a station.
type GoToStation struct {
	ToStation string `json:"toStation" validate:"required"`
}

// OpenStation unlocks a station.
type OpenStation struct {
	ToStation string `json:"toStation" validate:"required"`
}

// OpenStations unlocks several stations.
type OpenStations struct {
	ToStations []string `json:"toStations" validate:"required,dive,required"`
}

// SwitchGotoStation goes to the station of the first matching case.
type SwitchGotoStation struct {
	Switch []SwitchCase `json:"switch" validate:"required,dive"`
}

// SwitchCase is one (condition, target) pair of a switch list.
type SwitchCase struct {
	Condition  string           `json:"condition" validate:"required,oneof=adHocKeysAreEqual adHocKeysAreNotEqual adHocKeyEquals"`
	Parameters SwitchParameters `json:"parameters"`
}

// SwitchParameters carries the operands and the target of a switch case.
type SwitchParameters struct {
	Key       string `json:"key,omitempty"`
	Value     any    `json:"value,omitempty"`
	FirstKey  string `json:"firstKey,omitempty"`
	SecondKey string `json:"secondKey,omitempty"`
	ToStation string `json:"toStation" validate:"required"`
}

// ChoiceBasedOnTags runs EventIfPresent when the player has seen every tag.
type ChoiceBasedOnTags struct {
	Tags              []string        `json:"tags" validate:"required"`
	EventIfPresent    json.RawMessage `json:"eventIfPresent" validate:"required"`
	EventIfNotPresent json.RawMessage `json:"eventIfNotPresent" validate:"required"`

	IfPresent    *Event `json:"-" validate:"-"`
	IfNotPresent *Event `json:"-" validate:"-"`
}

// ChoiceBasedOnAbsenceOfTags runs EventIfNotPresent when the player has seen
// none of the tags.
type ChoiceBasedOnAbsenceOfTags struct {
	Tags              []string        `json:"tags" validate:"required"`
	EventIfPresent    json.RawMessage `json:"eventIfPresent" validate:"required"`
	EventIfNotPresent json.RawMessage `json:"eventIfNotPresent" validate:"required"`

	IfPresent    *Event `json:"-" validate:"-"`
	IfNotPresent *Event `json:"-" validate:"-"`
}

// PowerNameChoice scores one half of a power name pick, for the player or for
// the ghost helping them.
type PowerNameChoice struct {
	Part  *int   `json:"part" validate:"required"`
	Value string `json:"value" validate:"required"`

	OnSuccessOpen       []string `json:"onSuccessOpen" validate:"required,dive,required"`
	OnSuccessPlay       string   `json:"onSuccessPlay" validate:"required"`
	OnFirstFailurePlay  string   `json:"onFirstFailurePlay" validate:"required"`
	OnSecondFailurePlay string   `json:"onSecondFailurePlay" validate:"required"`
	OnSecondFailureGoTo string   `json:"onSecondFailureGoTo" validate:"required"`

	GhostOnSuccessOpen       []string `json:"ghostOnSuccessOpen" validate:"required,dive,required"`
	GhostOnSuccessPlay       string   `json:"ghostOnSuccessPlay" validate:"required"`
	GhostOnFirstFailurePlay  string   `json:"ghostOnFirstFailurePlay" validate:"required"`
	GhostOnSecondFailurePlay string   `json:"ghostOnSecondFailurePlay" validate:"required"`
	GhostOnSecondFailureGoTo string   `json:"ghostOnSecondFailureGoTo" validate:"required"`
}

// NamedRef is a keyed reference inside a variant, used for reporting.
type NamedRef struct {
	Key   string
	Value string
}

// AudioRefs returns the six outcome audio references in a fixed order.
func (p *PowerNameChoice) AudioRefs() []NamedRef {
	return []NamedRef{
		{"onSuccessPlay", p.OnSuccessPlay},
		{"onFirstFailurePlay", p.OnFirstFailurePlay},
		{"onSecondFailurePlay", p.OnSecondFailurePlay},
		{"ghostOnSuccessPlay", p.GhostOnSuccessPlay},
		{"ghostOnFirstFailurePlay", p.GhostOnFirstFailurePlay},
		{"ghostOnSecondFailurePlay", p.GhostOnSecondFailurePlay},
	}
}

// StationRefs returns the success and failure targets in a fixed order.
func (p *PowerNameChoice) StationRefs() []NamedRef {
	var refs []NamedRef
	for i, id := range p.OnSuccessOpen {
		refs = append(refs, NamedRef{fmt.Sprintf("onSuccessOpen[%d]", i), id})
	}
	refs = append(refs, NamedRef{"onSecondFailureGoTo", p.OnSecondFailureGoTo})
	for i, id := range p.GhostOnSuccessOpen {
		refs = append(refs, NamedRef{fmt.Sprintf("ghostOnSuccessOpen[%d]", i), id})
	}
	refs = append(refs, NamedRef{"ghostOnSecondFailureGoTo", p.GhostOnSecondFailureGoTo})
	return refs
}

// StartTimer schedules its "then" continuation after Time seconds.
type StartTimer struct {
	Name string          `json:"name" validate:"required"`
	Time *float64        `json:"time" validate:"required"`
	Then json.RawMessage `json:"then" validate:"required"`
}

// CancelTimer stops a running timer. Older content uses timerName.
type CancelTimer struct {
	Name      string `json:"name" validate:"required_without=TimerName"`
	TimerName string `json:"timerName" validate:"required_without=Name"`
}

// PickRandomSample stores a random element of Population under Key.
type PickRandomSample struct {
	Population []any  `json:"population" validate:"required"`
	Key        string `json:"key" validate:"required"`
}

// SetAdHocData stores Value under Key.
type SetAdHocData struct {
	Key   string `json:"key" validate:"required"`
	Value any    `json:"value"`
}

// PushToAdHocArray appends Value to the array stored under Key.
type PushToAdHocArray struct {
	Key   string `json:"key" validate:"required"`
	Value any    `json:"value"`
}

// Noop does nothing.
type Noop struct{}

// ConditionNode is an event tagged by "condition" instead of "action".
type ConditionNode struct {
	Condition     string       `json:"condition" validate:"required,oneof=hasTag adHocKeysAreEqual adHocKeysAreNotEqual adHocKeyEquals"`
	ConditionArgs any          `json:"conditionArgs,omitempty"`
	Switch        []SwitchCase `json:"switch,omitempty" validate:"omitempty,dive"`
}

func (*PlayAudio) variant()                  {}
func (*PlayBackgroundAudio) variant()        {}
func (*PlayAudioBasedOnAdHocValue) variant() {}
func (*GoToStation) variant()                {}
func (*OpenStation) variant()                {}
func (*OpenStations) variant()               {}
func (*SwitchGotoStation) variant()          {}
func (*ChoiceBasedOnTags) variant()          {}
func (*ChoiceBasedOnAbsenceOfTags) variant() {}
func (*PowerNameChoice) variant()            {}
func (*StartTimer) variant()                 {}
func (*CancelTimer) variant()                {}
func (*PickRandomSample) variant()           {}
func (*SetAdHocData) variant()               {}
func (*PushToAdHocArray) variant()           {}
func (*Noop) variant()                       {}
func (*ConditionNode) variant()              {}

func (c *ChoiceBasedOnTags) branches() []*Event {
	return []*Event{c.IfPresent, c.IfNotPresent}
}

func (c *ChoiceBasedOnTags) decodeBranches(path string, dec *decoder) {
	c.IfPresent = dec.decodeChild(c.EventIfPresent, path+".eventIfPresent")
	c.IfNotPresent = dec.decodeChild(c.EventIfNotPresent, path+".eventIfNotPresent")
}

func (c *ChoiceBasedOnAbsenceOfTags) branches() []*Event {
	return []*Event{c.IfPresent, c.IfNotPresent}
}

func (c *ChoiceBasedOnAbsenceOfTags) decodeBranches(path string, dec *decoder) {
	c.IfPresent = dec.decodeChild(c.EventIfPresent, path+".eventIfPresent")
	c.IfNotPresent = dec.decodeChild(c.EventIfNotPresent, path+".eventIfNotPresent")
}

// StationTargets returns every station identifier the event itself refers to,
// without descending into children.
func StationTargets(e *Event) []NamedRef {
	switch v := e.Kind.(type) {
	case *GoToStation:
		return []NamedRef{{"toStation", v.ToStation}}
	case *OpenStation:
		return []NamedRef{{"toStation", v.ToStation}}
	case *OpenStations:
		refs := make([]NamedRef, 0, len(v.ToStations))
		for i, id := range v.ToStations {
			refs = append(refs, NamedRef{fmt.Sprintf("toStations[%d]", i), id})
		}
		return refs
	case *SwitchGotoStation:
		return switchTargets(v.Switch)
	case *ConditionNode:
		return switchTargets(v.Switch)
	case *PowerNameChoice:
		return v.StationRefs()
	}
	return nil
}

func switchTargets(cases []SwitchCase) []NamedRef {
	refs := make([]NamedRef, 0, len(cases))
	for i, c := range cases {
		refs = append(refs, NamedRef{fmt.Sprintf("switch[%d].parameters.toStation", i), c.Parameters.ToStation})
	}
	return refs
}
