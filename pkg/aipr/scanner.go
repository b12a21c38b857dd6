// scanner.go implements the directive marker scanning pass.
package aipr

import (
	"regexp"
	"strings"
)

// directiveRegex recognizes directive markers. The escaped alternative
// comes first so it wins at the same start position; its .* is greedy,
// so an escaped marker swallows everything up to the last }} on the
// line. In the open form the identifier must be followed by at least
// one whitespace character (which may be a newline) before the
// optional parameter blob.
var directiveRegex = regexp.MustCompile(`\\\{\{#.*\}\}|\{\{\s*#([a-zA-Z0-9_]+)\s+([^}]+)?\}\}`)

// Marker is one located directive candidate in the source text.
type Marker struct {
	Start   int    // byte offset of the first matched byte
	End     int    // byte offset just past the match
	Raw     string // exact matched text
	Name    string // directive identifier, empty for escaped markers
	Params  string // raw parameter blob, empty when absent
	Escaped bool   // true for the \{{#...}} form
}

// ScanMarkers finds every directive candidate in source, in order.
// Matches are non-overlapping and never revisit matched text.
func ScanMarkers(source string) []Marker {
	var markers []Marker
	for _, m := range directiveRegex.FindAllStringSubmatchIndex(source, -1) {
		marker := Marker{Start: m[0], End: m[1], Raw: source[m[0]:m[1]]}
		if m[2] < 0 {
			// Group 1 does not participate in the escaped alternative.
			marker.Escaped = true
		} else {
			marker.Name = source[m[2]:m[3]]
			if m[4] >= 0 {
				marker.Params = source[m[4]:m[5]]
			}
		}
		markers = append(markers, marker)
	}
	return markers
}

// FindDirectives resolves scanned markers into directives. Escaped
// markers and unknown identifiers are dropped; their spans fall
// through to the output as ordinary text.
func FindDirectives(source string) []Directive {
	var directives []Directive
	for _, m := range ScanMarkers(source) {
		if m.Escaped {
			continue
		}
		kind, ok := LookupDirective(m.Name)
		if !ok {
			continue
		}
		directive := Directive{Start: m.Start, End: m.End, Raw: m.Raw, Kind: kind}
		if kind == DirectiveHeader {
			if params := strings.TrimSpace(m.Params); params != "" {
				directive.Header = HeaderSettingsFromParams(params)
			} else {
				directive.Header = DefaultHeaderSettings()
			}
		}
		directives = append(directives, directive)
	}
	return directives
}
