// Package catalog builds candidate asset URLs for a pair of emoji.
//
// A catalog is described by a URL template and an ordered list of catalog
// revisions (dated snapshots of the mixed-emoji asset set). The template is
// parsed once when the configuration is loaded; an unknown placeholder is a
// configuration error (model.TemplateError), never a per-request failure.
//
// Recognised placeholders:
//
//	{revision}   catalog revision (legacy name: {date_code})
//	{hex1}       identifier of the first emoji
//	{hex2}       identifier of the second emoji
//
// Literal braces are written as "{{" and "}}".
package catalog

import (
	"strings"

	"github.com/mmr-tortoise/emojimix/internal/model"
)

// Placeholder keys understood by Template.
const (
	KeyRevision = "revision"
	KeyDateCode = "date_code"
	KeyHex1     = "hex1"
	KeyHex2     = "hex2"
)

// segment is either a literal run of text or a placeholder key.
type segment struct {
	literal string
	key     string
}

// Template is a parsed URL template. It is immutable and safe for
// concurrent use.
type Template struct {
	raw      string
	segments []segment
	keys     map[string]bool
}

// NewTemplate parses raw and returns a *model.TemplateError when it
// references an unknown placeholder or has an unbalanced brace.
func NewTemplate(raw string) (*Template, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &model.TemplateError{Template: raw, Reason: "template is empty"}
	}

	t := &Template{raw: raw, keys: make(map[string]bool)}
	var lit strings.Builder

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, &model.TemplateError{Template: raw, Reason: "unclosed '{'"}
			}
			key := raw[i+1 : i+1+end]
			if !isKnownKey(key) {
				return nil, &model.TemplateError{Template: raw, Key: key, Reason: "unknown placeholder"}
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{literal: lit.String()})
				lit.Reset()
			}
			if key == KeyDateCode {
				key = KeyRevision
			}
			t.segments = append(t.segments, segment{key: key})
			t.keys[key] = true
			i += end + 1

		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &model.TemplateError{Template: raw, Reason: "single '}' encountered"}

		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}

	return t, nil
}

// MustTemplate is like NewTemplate but panics on error. It is intended for
// package-level defaults and tests.
func MustTemplate(raw string) *Template {
	t, err := NewTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the raw template text.
func (t *Template) String() string {
	return t.raw
}

// Uses reports whether the template references key. The legacy
// {date_code} counts as {revision}.
func (t *Template) Uses(key string) bool {
	if key == KeyDateCode {
		key = KeyRevision
	}
	return t.keys[key]
}

// Expand substitutes the revision and identifiers into the template.
func (t *Template) Expand(rev model.CatalogRevision, hex1, hex2 model.HexIdentifier) string {
	var b strings.Builder
	b.Grow(len(t.raw) + len(rev) + len(hex1) + len(hex2))
	for _, s := range t.segments {
		switch s.key {
		case "":
			b.WriteString(s.literal)
		case KeyRevision:
			b.WriteString(string(rev))
		case KeyHex1:
			b.WriteString(string(hex1))
		case KeyHex2:
			b.WriteString(string(hex2))
		}
	}
	return b.String()
}

func isKnownKey(key string) bool {
	switch key {
	case KeyRevision, KeyDateCode, KeyHex1, KeyHex2:
		return true
	default:
		return false
	}
}
