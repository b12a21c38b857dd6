// link.go implements the markdown link scanning pass.
package aipr

import (
	"regexp"
	"strings"
)

// linkRegex matches [text](url). Backslash-escaped characters are
// allowed inside both delimiters.
var linkRegex = regexp.MustCompile(`\[([^\]]*(?:\\.[^\]]*)*)\]\(([^)]*(?:\\.[^)]*)*)\)`)

// Link is one located markdown link.
type Link struct {
	Start int // byte offset of the opening bracket
	End   int // byte offset just past the closing paren
	Text  string
	URL   string
}

// ScanLinks finds every [text](url) occurrence in source regardless of
// URL scheme.
func ScanLinks(source string) []Link {
	var links []Link
	for _, m := range linkRegex.FindAllStringSubmatchIndex(source, -1) {
		links = append(links, Link{
			Start: m[0],
			End:   m[1],
			Text:  source[m[2]:m[3]],
			URL:   source[m[4]:m[5]],
		})
	}
	return links
}

// FindLinks returns the scanned links whose URL uses an https or http
// scheme. Links with other schemes are unmatched rather than escaped:
// they never enter the replacement stream and stay plain text.
func FindLinks(source string) []Link {
	var links []Link
	for _, link := range ScanLinks(source) {
		if !strings.HasPrefix(link.URL, "https://") && !strings.HasPrefix(link.URL, "http://") {
			continue
		}
		links = append(links, link)
	}
	return links
}
