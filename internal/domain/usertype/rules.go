package usertype

import (
	"strconv"
	"strings"
)

// ParseRules turns a catalog rule string like "required|min:3|max:50|url"
// into structured constraints. Unknown directives are ignored so a newer
// catalog row cannot break an older binary. The "required" directive is
// reported separately because it lives on FieldSpec, not Rules.
func ParseRules(raw string) (Rules, bool) {
	var rules Rules
	var required bool

	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		directive, arg, _ := strings.Cut(part, ":")

		switch directive {
		case "required":
			required = true
		case "min":
			if v, err := strconv.ParseFloat(arg, 64); err == nil {
				rules.Min = &v
			}
		case "max":
			if v, err := strconv.ParseFloat(arg, 64); err == nil {
				rules.Max = &v
			}
		case "pattern", "regex":
			rules.Pattern = arg
		case "email":
			rules.Email = true
		case "url":
			rules.URL = true
		}
	}
	return rules, required
}
