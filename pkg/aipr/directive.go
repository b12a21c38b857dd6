// directive.go defines the directive kinds and their settings records.
package aipr

import "strings"

// DirectiveKind identifies a known directive name.
type DirectiveKind string

// DirectiveHeader is the {{ #aipr_header }} directive.
const DirectiveHeader DirectiveKind = "aipr_header"

// DirectiveRegistry maps directive identifiers to their kinds.
// Adding a new directive = adding one entry here plus a settings shape.
var DirectiveRegistry = map[string]DirectiveKind{
	"aipr_header": DirectiveHeader,
}

// LookupDirective returns the DirectiveKind for an identifier.
// Matching is exact; directive names are case-sensitive.
func LookupDirective(name string) (DirectiveKind, bool) {
	kind, ok := DirectiveRegistry[name]
	return kind, ok
}

// Directive is a marker that resolved to a known directive kind.
type Directive struct {
	Start  int    // byte offset of the first matched byte
	End    int    // byte offset just past the match
	Raw    string // exact matched text
	Kind   DirectiveKind
	Header HeaderSettings // settings when Kind is DirectiveHeader
}

// HeaderSettings controls what the header directive renders.
type HeaderSettings struct {
	ReadingTime bool    // show the reading time estimate
	SubmitIssue bool    // show the "Suggest an Edit" badge
	Colab       *string // notebook path for the Colab badge, nil when absent
}

// DefaultHeaderSettings returns the settings used when a header
// directive carries no parameters.
func DefaultHeaderSettings() HeaderSettings {
	return HeaderSettings{ReadingTime: true, SubmitIssue: true}
}

// HeaderSettingsFromParams parses a parameter string into settings.
// Unknown keys are ignored. A boolean default flips only on the exact
// value "false"; any other value, including typos and case variants,
// keeps the default. The colab value is taken verbatim, so an empty
// value still sets the field.
func HeaderSettingsFromParams(paramStr string) HeaderSettings {
	params := parseParams(paramStr)
	settings := DefaultHeaderSettings()
	if v, ok := params["colab"]; ok {
		settings.Colab = &v
	}
	if params["reading_time"] == "false" {
		settings.ReadingTime = false
	}
	if params["submit_issue"] == "false" {
		settings.SubmitIssue = false
	}
	return settings
}

// parseParams splits "key1=value1,key2=value2" into a map. Pairs are
// cut at the first "=", keys and values are trimmed, and pairs without
// "=" are dropped.
func parseParams(paramStr string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(paramStr, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}
