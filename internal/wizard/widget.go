// Package wizard holds the client-facing half of the onboarding flow: the
// widget descriptors a frontend renders each schema field with, and the
// debounced username availability checker.
package wizard

import (
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
)

type WidgetKind string

const (
	WidgetInput    WidgetKind = "input"
	WidgetNumber   WidgetKind = "number"
	WidgetTextarea WidgetKind = "textarea"
	WidgetSelect   WidgetKind = "select"
	WidgetChips    WidgetKind = "chips"
)

// Widget is a ready-to-render description of one field: which control to
// draw and the props it needs. The schema stays the single source of truth;
// the frontend never hardcodes per-role fields.
type Widget struct {
	Field       string            `json:"field"`
	Kind        WidgetKind        `json:"kind"`
	InputType   string            `json:"input_type,omitempty"`
	Label       string            `json:"label"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required"`
	Options     []usertype.Option `json:"options,omitempty"`
	Min         *float64          `json:"min,omitempty"`
	Max         *float64          `json:"max,omitempty"`
}

// WidgetFor maps one FieldSpec to its widget.
func WidgetFor(spec usertype.FieldSpec) Widget {
	w := Widget{
		Field:       spec.Name,
		Label:       spec.Label,
		Placeholder: spec.Placeholder,
		Description: spec.Description,
		Required:    spec.Required,
		Min:         spec.Rules.Min,
		Max:         spec.Rules.Max,
	}

	switch spec.Type {
	case usertype.TypeNumber:
		w.Kind = WidgetNumber
	case usertype.TypeTextarea:
		w.Kind = WidgetTextarea
	case usertype.TypeSelect:
		w.Kind = WidgetSelect
		w.Options = spec.Options
	case usertype.TypeArray:
		w.Kind = WidgetChips
	default:
		w.Kind = WidgetInput
		w.InputType = string(spec.Type)
	}
	return w
}

func WidgetsFor(fields []usertype.FieldSpec) []Widget {
	widgets := make([]Widget, len(fields))
	for i, f := range fields {
		widgets[i] = WidgetFor(f)
	}
	return widgets
}
