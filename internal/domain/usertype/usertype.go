package usertype

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// FieldType is the closed set of input kinds a schema field can declare.
// It drives both widget selection and value validation.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeURL      FieldType = "url"
	TypeNumber   FieldType = "number"
	TypeTextarea FieldType = "textarea"
	TypeSelect   FieldType = "select"
	TypeArray    FieldType = "array"
)

var (
	ErrUnknownUserType = errors.New("unknown user type")
	ErrInvalidSchema   = errors.New("invalid user type schema")
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Rules are the structured constraints parsed out of catalog rule strings
// such as "required|min:3|max:50" or "url".
type Rules struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Email   bool     `json:"email,omitempty"`
	URL     bool     `json:"url,omitempty"`

	// pattern holds Pattern compiled once by Schema.Validate.
	pattern *regexp.Regexp
}

type FieldSpec struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Rules       Rules     `json:"rules,omitempty"`
}

// SkillTiers groups the skill suggestions shown on the skills step. Primary
// tiers are pre-selected in the UI, suggested ones are just visible.
type SkillTiers struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Suggested []string `json:"suggested"`
}

// Schema describes everything role-specific about onboarding: which profile
// fields to collect, what the first-activity prompt looks like, and which
// skills to suggest. Immutable once loaded.
type Schema struct {
	Slug           string      `json:"slug"`
	Label          string      `json:"label"`
	Description    string      `json:"description"`
	ActivityLabel  string      `json:"activity_label"`
	ProfileFields  []FieldSpec `json:"profile_fields"`
	ActivityFields []FieldSpec `json:"activity_fields"`
	SkillTiers     SkillTiers  `json:"skill_tiers"`
}

// Registry resolves a role slug to its schema. Implementations may be backed
// by the catalog table or by the compiled-in fallback.
type Registry interface {
	GetSchema(ctx context.Context, slug string) (*Schema, error)
	List(ctx context.Context) ([]*Schema, error)
}

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	urlRegex   = regexp.MustCompile(`^https?://\S+$`)
)

// Validate enforces the structural invariants every schema must hold: unique
// field names per list and agreement between type and constraints (a select
// without options cannot be rendered or validated). Pattern rules are
// compiled here, once per load, and a pattern that does not compile rejects
// the schema instead of silently disabling the constraint.
func (s *Schema) Validate() error {
	if s.Slug == "" {
		return fmt.Errorf("%w: empty slug", ErrInvalidSchema)
	}
	for listName, fields := range map[string][]FieldSpec{
		"profile_fields":  s.ProfileFields,
		"activity_fields": s.ActivityFields,
	} {
		seen := make(map[string]bool, len(fields))
		for i := range fields {
			f := &fields[i]
			if f.Name == "" {
				return fmt.Errorf("%w: %s in '%s' has a field without a name", ErrInvalidSchema, s.Slug, listName)
			}
			if seen[f.Name] {
				return fmt.Errorf("%w: %s declares '%s' twice in %s", ErrInvalidSchema, s.Slug, f.Name, listName)
			}
			seen[f.Name] = true

			switch f.Type {
			case TypeText, TypeEmail, TypeURL, TypeNumber, TypeTextarea, TypeArray:
			case TypeSelect:
				if len(f.Options) == 0 {
					return fmt.Errorf("%w: select field '%s' of %s has no options", ErrInvalidSchema, f.Name, s.Slug)
				}
			default:
				return fmt.Errorf("%w: field '%s' of %s has unsupported type '%s'", ErrInvalidSchema, f.Name, s.Slug, f.Type)
			}

			if f.Rules.Pattern != "" {
				re, err := regexp.Compile(f.Rules.Pattern)
				if err != nil {
					return fmt.Errorf("%w: field '%s' of %s has an invalid pattern: %v", ErrInvalidSchema, f.Name, s.Slug, err)
				}
				f.Rules.pattern = re
			}
		}
	}
	return nil
}

// Check validates one submitted value against the field's constraints. It returns an empty
// string when the value passes, otherwise a user-facing message. Values come
// straight from decoded JSON, so numbers arrive as float64 and arrays as []any.
func (f *FieldSpec) Check(value any) string {
	if isEmptyValue(value) {
		if f.Required {
			return fmt.Sprintf("%s is required", f.Label)
		}
		return ""
	}

	switch f.Type {
	case TypeText, TypeEmail, TypeURL:
		str, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be text", f.Label)
		}
		return f.checkString(str)
	case TypeTextarea:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("%s must be text", f.Label)
		}
		return ""
	case TypeNumber:
		num, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
		if f.Rules.Min != nil && num < *f.Rules.Min {
			return fmt.Sprintf("%s must be at least %v", f.Label, *f.Rules.Min)
		}
		if f.Rules.Max != nil && num > *f.Rules.Max {
			return fmt.Sprintf("%s must be at most %v", f.Label, *f.Rules.Max)
		}
		return ""
	case TypeSelect:
		str, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be one of the listed options", f.Label)
		}
		for _, opt := range f.Options {
			if opt.Value == str {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of the listed options", f.Label)
	case TypeArray:
		items, ok := toStringSlice(value)
		if !ok {
			return fmt.Sprintf("%s must be a list", f.Label)
		}
		if f.Rules.Max != nil && float64(len(items)) > *f.Rules.Max {
			return fmt.Sprintf("%s allows at most %v selections", f.Label, *f.Rules.Max)
		}
		return ""
	}
	return ""
}

func (f *FieldSpec) checkString(str string) string {
	// Min/max count characters, not bytes.
	length := float64(utf8.RuneCountInString(str))
	if f.Rules.Min != nil && length < *f.Rules.Min {
		return fmt.Sprintf("%s must be at least %v characters", f.Label, *f.Rules.Min)
	}
	if f.Rules.Max != nil && length > *f.Rules.Max {
		return fmt.Sprintf("%s must be at most %v characters", f.Label, *f.Rules.Max)
	}
	if f.Rules.Pattern != "" {
		re := f.Rules.pattern
		if re == nil {
			// Spec built without going through Schema.Validate. A pattern
			// that does not compile fails the value rather than waving it
			// through.
			var err error
			re, err = regexp.Compile(f.Rules.Pattern)
			if err != nil {
				return fmt.Sprintf("%s has an invalid format", f.Label)
			}
		}
		if !re.MatchString(str) {
			return fmt.Sprintf("%s has an invalid format", f.Label)
		}
	}
	if (f.Rules.Email || f.Type == TypeEmail) && !emailRegex.MatchString(str) {
		return fmt.Sprintf("%s must be a valid email address", f.Label)
	}
	if (f.Rules.URL || f.Type == TypeURL) && !urlRegex.MatchString(str) {
		return fmt.Sprintf("%s must be a valid URL", f.Label)
	}
	return ""
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}
