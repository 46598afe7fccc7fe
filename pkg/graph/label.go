package graph

import (
	"strings"
	"unicode/utf8"
)

// LabelRule derives display text from a raw node identifier.
// The steps run in field order: trim, split, upper-case.
type LabelRule struct {
	TrimPrefix int    `json:"trim_prefix,omitempty" toml:"trim_prefix" yaml:"trim_prefix"` // characters dropped from the front
	Separator  string `json:"separator,omitempty" toml:"separator" yaml:"separator"`       // keep only the text after the last separator
	Upper      bool   `json:"upper,omitempty" toml:"upper" yaml:"upper"`
}

// DefaultLabelRule keeps the suffix after the last ":" in upper case.
func DefaultLabelRule() LabelRule {
	return LabelRule{Separator: ":", Upper: true}
}

// Apply returns the display text for id.
func (r LabelRule) Apply(id string) string {
	s := id
	for n := 0; n < r.TrimPrefix && s != ""; n++ {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	if r.Separator != "" {
		if i := strings.LastIndex(s, r.Separator); i >= 0 {
			s = s[i+len(r.Separator):]
		}
	}
	if r.Upper {
		s = strings.ToUpper(s)
	}
	return s
}
