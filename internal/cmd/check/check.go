// Package check provides the check command, a lint pass over markdown
// sources that previews what the preprocessor will do to each marker.
package check

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/mdbook-aipr/internal/view"
	"github.com/vectorinstitute/mdbook-aipr/pkg/aipr"
)

type checkOptions struct {
	paths []string

	output  string
	noColor bool
}

// finding is one classified marker occurrence in a file.
type finding struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Finding kinds, in rough severity order.
const (
	kindDirective        = "directive"
	kindUnknownDirective = "unknown-directive"
	kindEscapedDirective = "escaped-directive"
	kindLink             = "link"
	kindSkippedLink      = "skipped-link"
	kindEscapedLink      = "escaped-link"
)

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Lint markdown files for marker problems",
		Long: `Scan markdown files and report every marker the preprocessor would
touch: directives that will render, unknown directive names, escaped
markers, and links that will or will not be rewritten.

Unknown directive names are almost always typos ({{ #aipr_headr }}
silently stays literal in the built book), so check exits 1 when it
finds any. Use it as a CI step next to mdbook build.`,
		Example: `  # Check a book's source tree
  mdbook-aipr check src/

  # Check individual chapters
  mdbook-aipr check src/nlp/lora.md src/nlp/qlora.md

  # Machine-readable report
  mdbook-aipr check src/ -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.paths = args
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runCheck(opts)
		},
	}

	return cmd
}

func runCheck(opts *checkOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	files, err := markdownFiles(opts.paths)
	if err != nil {
		return err
	}

	var findings []finding
	unknown := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		for _, f := range checkContent(string(data)) {
			f.File = file
			if f.Kind == kindUnknownDirective {
				unknown++
			}
			findings = append(findings, f)
		}
	}

	renderFindings(renderer, opts.output, findings)

	if unknown > 0 {
		return fmt.Errorf("%d unknown directive name(s) found", unknown)
	}
	return nil
}

// checkContent classifies every marker in one document. Directive
// findings come before link findings, each group in source order,
// matching the preprocessor's two-pass order.
func checkContent(source string) []finding {
	var findings []finding

	for _, m := range aipr.ScanMarkers(source) {
		f := finding{Line: lineOf(source, m.Start), Detail: m.Raw}
		switch {
		case m.Escaped:
			f.Kind = kindEscapedDirective
		default:
			if _, ok := aipr.LookupDirective(m.Name); ok {
				f.Kind = kindDirective
			} else {
				f.Kind = kindUnknownDirective
			}
		}
		findings = append(findings, f)
	}

	for _, l := range aipr.ScanLinks(source) {
		f := finding{Line: lineOf(source, l.Start), Detail: l.URL}
		switch {
		case isEscapedAt(source, l.Start):
			f.Kind = kindEscapedLink
		case strings.HasPrefix(l.URL, "https://") || strings.HasPrefix(l.URL, "http://"):
			f.Kind = kindLink
		default:
			f.Kind = kindSkippedLink
		}
		findings = append(findings, f)
	}

	return findings
}

// isEscapedAt reports whether the byte before offset escapes a link.
// The "!" case covers image syntax, which must stay markdown.
func isEscapedAt(source string, offset int) bool {
	if offset == 0 {
		return false
	}
	return source[offset-1] == '\\' || source[offset-1] == '!'
}

// lineOf returns the 1-based line number of a byte offset.
func lineOf(source string, offset int) int {
	return strings.Count(source[:offset], "\n") + 1
}

func renderFindings(renderer *view.Renderer, output string, findings []finding) {
	if output == "json" {
		if findings == nil {
			findings = []finding{}
		}
		_ = renderer.RenderJSON(findings)
		return
	}

	if len(findings) == 0 {
		renderer.Success("No markers found.")
		return
	}

	headers := []string{"FILE", "LINE", "KIND", "DETAIL"}
	var rows [][]string
	for _, f := range findings {
		rows = append(rows, []string{
			f.File,
			fmt.Sprintf("%d", f.Line),
			f.Kind,
			view.Truncate(f.Detail, 60),
		})
	}
	renderer.RenderTable(headers, rows)
}

// markdownFiles expands paths into a list of markdown files.
// Directories are walked recursively; explicit file arguments are
// taken as-is regardless of extension.
func markdownFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".md") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
