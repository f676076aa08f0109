package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// definition describes how one variant tag is constructed.
type definition struct {
	Tag string
	New func() Variant
}

var actionRegistry = map[string]definition{}

func register(tag string, ctor func() Variant) {
	actionRegistry[tag] = definition{Tag: tag, New: ctor}
}

func init() {
	register(ActionPlayAudio, func() Variant { return &PlayAudio{} })
	register(ActionPlayBackgroundAudio, func() Variant { return &PlayBackgroundAudio{} })
	register(ActionPlayAudioBasedOnAdHocValue, func() Variant { return &PlayAudioBasedOnAdHocValue{} })
	register(ActionGoToStation, func() Variant { return &GoToStation{} })
	register(ActionOpenStation, func() Variant { return &OpenStation{} })
	register(ActionOpenStations, func() Variant { return &OpenStations{} })
	register(ActionSwitchGotoStation, func() Variant { return &SwitchGotoStation{} })
	register(ActionChoiceBasedOnTags, func() Variant { return &ChoiceBasedOnTags{} })
	register(ActionChoiceBasedOnAbsenceOfTags, func() Variant { return &ChoiceBasedOnAbsenceOfTags{} })
	register(ActionPowerNameChoice, func() Variant { return &PowerNameChoice{} })
	register(ActionStartTimer, func() Variant { return &StartTimer{} })
	register(ActionCancelTimer, func() Variant { return &CancelTimer{} })
	register(ActionPickRandomSample, func() Variant { return &PickRandomSample{} })
	register(ActionSetAdHocData, func() Variant { return &SetAdHocData{} })
	register(ActionPushToAdHocArray, func() Variant { return &PushToAdHocArray{} })
	register(ActionNoop, func() Variant { return &Noop{} })
}

// KnownActions returns the registered action tags.
func KnownActions() []string {
	tags := make([]string, 0, len(actionRegistry))
	for tag := range actionRegistry {
		tags = append(tags, tag)
	}
	return tags
}

// decoder builds event trees.
type decoder struct {
	validate *validator.Validate
}

func newDecoder() *decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so problems match the document.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &decoder{validate: v}
}

// DecodeEvent builds a single event tree from raw JSON. path is the location
// of the node inside its document and prefixes every nested path.
func DecodeEvent(raw json.RawMessage, path string) *Event {
	return newDecoder().decode(raw, path)
}

// DecodeEvents builds every top-level event of a station's "events" list.
func DecodeEvents(raws []json.RawMessage) []*Event {
	dec := newDecoder()
	events := make([]*Event, 0, len(raws))
	for i, raw := range raws {
		events = append(events, dec.decode(raw, fmt.Sprintf("events[%d]", i)))
	}
	return events
}

// decodeChild decodes a nested event. A missing child has already been
// reported by the parent's required-key validation.
func (d *decoder) decodeChild(raw json.RawMessage, path string) *Event {
	if len(raw) == 0 {
		return nil
	}
	return d.decode(raw, path)
}

func (d *decoder) decode(raw json.RawMessage, path string) *Event {
	ev := &Event{Path: path}

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		ev.addProblem("", "event is null")
		return ev
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		ev.addProblem("", "event is not an object")
		return ev
	}

	ev.Action = stringField(fields, "action")
	if ev.Action == "" {
		ev.Condition = stringField(fields, "condition")
	}

	if then, ok := fields["then"]; ok {
		ev.Then = d.decode(then, path+".then")
	}

	var variant Variant
	switch {
	case ev.Action != "":
		def, ok := actionRegistry[ev.Action]
		if !ok {
			ev.addProblem("action", "unknown action %q", ev.Action)
			return ev
		}
		variant = def.New()
	case ev.Condition != "":
		variant = &ConditionNode{}
	default:
		ev.addProblem("action", "missing required key \"action\"")
		return ev
	}

	if err := json.Unmarshal(raw, variant); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			ev.addProblem(typeErr.Field, "key %q has type %s, expected %s", typeErr.Field, typeErr.Value, typeErr.Type)
		} else {
			ev.addProblem("", "decoding %s: %v", ev.Tag(), err)
		}
	}

	d.checkRequired(ev, variant)
	ev.Kind = variant

	if b, ok := variant.(branching); ok {
		b.decodeBranches(path, d)
	}

	return ev
}

// checkRequired turns validator failures into problems keyed by the json path
// of the offending field.
func (d *decoder) checkRequired(ev *Event, variant Variant) {
	err := d.validate.Struct(variant)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ev.addProblem("", "validating %s: %v", ev.Tag(), err)
		return
	}

	for _, fe := range fieldErrs {
		key := fieldPath(fe.Namespace())
		switch fe.Tag() {
		case "required", "required_without":
			if strings.HasSuffix(key, "]") {
				ev.addProblem(key, "entry %q is empty", key)
				continue
			}
			ev.addProblem(key, "missing required key %q", key)
		case "oneof":
			ev.addProblem(key, "key %q has unsupported value %q (expected one of: %s)", key, fmt.Sprint(fe.Value()), fe.Param())
		default:
			ev.addProblem(key, "key %q failed %q check", key, fe.Tag())
		}
	}
}

// fieldPath strips the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
