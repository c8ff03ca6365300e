// Package frontmatter serializes flat key/value records into the YAML
// preamble block that prefixes every Markdown document we emit.
//
// The output contract is deliberately narrow and byte-stable: fields are
// emitted in insertion order, plain strings are double-quoted, strings
// containing a newline or a double quote switch to the block-literal
// form, and slices become block lists of quoted items. Any conforming
// YAML parser recovers the original record.
package frontmatter

import (
	"fmt"
	"strings"
)

// Delimiter wraps the encoded block on both sides.
const Delimiter = "---"

// Field is one key/value pair. A nil value marks the field as absent and
// it is skipped during encoding.
type Field struct {
	Key   string
	Value any
}

// Doc is an ordered field list. Unlike a map, iteration order is the
// insertion order, which keeps document output deterministic.
type Doc struct {
	fields []Field
}

// New creates an empty frontmatter document.
func New() *Doc {
	return &Doc{}
}

// Set appends a field. Keys are not deduplicated; callers own key
// uniqueness the same way they own document structure.
func (d *Doc) Set(key string, value any) *Doc {
	d.fields = append(d.fields, Field{Key: key, Value: value})
	return d
}

// SetNonEmpty appends a string field, or a nil placeholder when the
// value is empty, which Encode then omits.
func (d *Doc) SetNonEmpty(key, value string) *Doc {
	if value == "" {
		return d.Set(key, nil)
	}
	return d.Set(key, value)
}

// Encode renders the document wrapped in delimiter lines.
func (d *Doc) Encode() string {
	lines := []string{Delimiter}
	for _, f := range d.fields {
		if f.Value == nil {
			continue
		}
		lines = appendField(lines, f)
	}
	lines = append(lines, Delimiter)
	return strings.Join(lines, "\n")
}

func appendField(lines []string, f Field) []string {
	switch v := f.Value.(type) {
	case string:
		if strings.ContainsAny(v, "\"\n") {
			// Block literal: survives embedded quotes and newlines
			// without escaping games.
			lines = append(lines, f.Key+": |")
			for _, line := range strings.Split(v, "\n") {
				lines = append(lines, "  "+line)
			}
			return lines
		}
		return append(lines, fmt.Sprintf("%s: %q", f.Key, v))
	case []string:
		lines = append(lines, f.Key+":")
		for _, item := range v {
			lines = append(lines, fmt.Sprintf("  - %q", item))
		}
		return lines
	default:
		// Scalars (bool, ints, floats) render unquoted.
		return append(lines, fmt.Sprintf("%s: %v", f.Key, v))
	}
}
