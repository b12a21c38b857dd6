// Package words estimates the prose size of markdown documents.
package words

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// mdParser is a pre-configured goldmark instance with GFM table extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Count returns the number of words in s. Words are runs of
// non-whitespace characters, except that each CJK character counts as
// a word of its own.
func Count(s string) int {
	words := 0
	inRun := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if inRun {
				words++
				inRun = false
			}
		case isCJK(r):
			if inRun {
				words++
				inRun = false
			}
			words++
		default:
			inRun = true
		}
	}
	if inRun {
		words++
	}
	return words
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// CountMarkdown parses source as markdown and counts the words of its
// text content. Markup, link targets and raw HTML do not count toward
// the total; code block contents do.
func CountMarkdown(source string) int {
	src := []byte(source)
	doc := mdParser.Parser().Parse(text.NewReader(src))

	// Text nodes are separated with newlines so that words split
	// across inline boundaries do not merge.
	var buf strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			buf.WriteByte('\n')
		case *ast.String:
			buf.Write(node.Value)
			buf.WriteByte('\n')
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				buf.Write(segment.Value(src))
			}
		case *ast.AutoLink:
			buf.Write(node.Label(src))
			buf.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})
	return Count(buf.String())
}
