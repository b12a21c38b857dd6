// Package aipr expands AI Pocket Reference markers in chapter text.
//
// Two scanning passes run in fixed order: the directive pass replaces
// {{ #name params }} markers with rendered HTML, then the link pass
// replaces [text](url) markers over the directive pass's output. Both
// passes splice rendered output over matched spans and copy all other
// text through verbatim. Escaped markers and unrecognized markers are
// left byte-identical to their source form.
package aipr

import "strings"

// Options configures Expand.
type Options struct {
	// Renderer produces markup for matched directives and links.
	// Defaults to the built-in Handlebars renderer.
	Renderer Renderer
	// WordsPerMinute overrides the reading speed divisor used for
	// reading time estimates. Defaults to WordsPerMinute.
	WordsPerMinute int
}

// Expand transforms source with the built-in renderer. wordCount is
// the precomputed word count of the document, consumed by the header
// directive's reading time estimate.
func Expand(source string, wordCount int) (string, error) {
	return ExpandWithOptions(source, wordCount, Options{})
}

// ExpandWithOptions transforms source. A render failure aborts the
// whole transform; no partial output is returned.
func ExpandWithOptions(source string, wordCount int, opts Options) (string, error) {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = defaultRenderer
	}
	wpm := opts.WordsPerMinute
	if wpm <= 0 {
		wpm = WordsPerMinute
	}

	expanded, err := expandDirectives(source, wordCount, wpm, renderer)
	if err != nil {
		return "", err
	}
	return expandLinks(expanded, renderer)
}

// expandDirectives splices rendered markup over every resolved
// directive, copying intervening text verbatim.
func expandDirectives(source string, wordCount, wordsPerMinute int, renderer Renderer) (string, error) {
	var out strings.Builder
	prevEnd := 0
	for _, directive := range FindDirectives(source) {
		out.WriteString(source[prevEnd:directive.Start])
		rendered, err := renderDirective(renderer, directive, wordCount, wordsPerMinute)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
		prevEnd = directive.End
	}
	out.WriteString(source[prevEnd:])
	return out.String(), nil
}

// renderDirective renders one directive by kind.
func renderDirective(renderer Renderer, directive Directive, wordCount, wordsPerMinute int) (string, error) {
	switch directive.Kind {
	case DirectiveHeader:
		return renderer.Render(TemplateHeader, headerData(directive.Header, wordCount, wordsPerMinute))
	}
	return "", &RenderError{Template: string(directive.Kind), Message: "no renderer registered"}
}

// expandLinks renders matched links, leaving escaped ones verbatim.
// A link is escaped when the copied text before it ends with a
// backslash or an exclamation mark (image syntax).
func expandLinks(source string, renderer Renderer) (string, error) {
	var out strings.Builder
	prevEnd := 0
	for _, link := range FindLinks(source) {
		prefix := source[prevEnd:link.Start]
		out.WriteString(prefix)
		if isEscapedLink(prefix) {
			out.WriteString(source[link.Start:link.End])
		} else {
			rendered, err := renderer.Render(TemplateMDLink, linkData(link))
			if err != nil {
				return "", err
			}
			out.WriteString(rendered)
		}
		prevEnd = link.End
	}
	out.WriteString(source[prevEnd:])
	return out.String(), nil
}

func isEscapedLink(prefix string) bool {
	if prefix == "" {
		return false
	}
	last := prefix[len(prefix)-1]
	return last == '\\' || last == '!'
}
