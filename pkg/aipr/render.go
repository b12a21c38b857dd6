// render.go provides the template renderer for directive and link markup.
package aipr

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/aymerick/raymond"
)

// WordsPerMinute is the default reading speed divisor.
const WordsPerMinute = 200

// Template names understood by the built-in renderer.
const (
	TemplateHeader = "aipr_header"
	TemplateMDLink = "md_link_expansion"
)

//go:embed templates/header.hbs
var headerTemplate string

//go:embed templates/md_link.hbs
var mdLinkTemplate string

// Renderer turns a named template and a data record into markup text.
type Renderer interface {
	Render(name string, data map[string]interface{}) (string, error)
}

// RenderError reports a template failure. A render failure aborts the
// whole document transform; there is no partial-output recovery.
type RenderError struct {
	Template string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template %s: %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template %s: %s", e.Template, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// htmlRenderer renders Handlebars templates. The built-in templates
// are parsed once at init and never mutated afterwards.
type htmlRenderer struct {
	templates map[string]*raymond.Template
}

var defaultRenderer = &htmlRenderer{
	templates: map[string]*raymond.Template{
		TemplateHeader: raymond.MustParse(headerTemplate),
		TemplateMDLink: raymond.MustParse(mdLinkTemplate),
	},
}

// NewRenderer returns the built-in template renderer.
func NewRenderer() Renderer {
	return defaultRenderer
}

// NewRendererWithTemplates builds a renderer from custom Handlebars
// sources. An empty source keeps the corresponding built-in template.
func NewRendererWithTemplates(headerSource, mdLinkSource string) (Renderer, error) {
	r := &htmlRenderer{templates: map[string]*raymond.Template{
		TemplateHeader: defaultRenderer.templates[TemplateHeader],
		TemplateMDLink: defaultRenderer.templates[TemplateMDLink],
	}}
	if headerSource != "" {
		tpl, err := raymond.Parse(headerSource)
		if err != nil {
			return nil, &RenderError{Template: TemplateHeader, Message: "parse failed", Cause: err}
		}
		r.templates[TemplateHeader] = tpl
	}
	if mdLinkSource != "" {
		tpl, err := raymond.Parse(mdLinkSource)
		if err != nil {
			return nil, &RenderError{Template: TemplateMDLink, Message: "parse failed", Cause: err}
		}
		r.templates[TemplateMDLink] = tpl
	}
	return r, nil
}

// Render executes the named template against data.
func (r *htmlRenderer) Render(name string, data map[string]interface{}) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", &RenderError{Template: name, Message: "unknown template"}
	}
	out, err := tpl.Exec(data)
	if err != nil {
		return "", &RenderError{Template: name, Message: "execution failed", Cause: err}
	}
	return out, nil
}

// ReadingTime formats a reading time estimate. The minute count is the
// word count divided by the reading speed, rounded half away from zero.
func ReadingTime(wordCount, wordsPerMinute int) string {
	minutes := math.Round(float64(wordCount) / float64(wordsPerMinute))
	return fmt.Sprintf("%.0f min", minutes)
}

// headerData builds the template data record for a header directive.
// Optional sections are driven by key presence: the template shows the
// Colab badge and the reading time only when their records exist.
func headerData(settings HeaderSettings, wordCount, wordsPerMinute int) map[string]interface{} {
	data := map[string]interface{}{
		"submit_issue": settings.SubmitIssue,
	}
	if settings.Colab != nil {
		data["colab_nb"] = map[string]interface{}{"path": *settings.Colab}
	}
	if settings.ReadingTime {
		data["reading_time"] = map[string]interface{}{"value": ReadingTime(wordCount, wordsPerMinute)}
	}
	return data
}

// linkData builds the template data record for a markdown link.
func linkData(link Link) map[string]interface{} {
	return map[string]interface{}{
		"text": link.Text,
		"url":  link.URL,
	}
}
