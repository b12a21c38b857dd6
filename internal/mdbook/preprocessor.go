package mdbook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Context is the preprocessor context mdBook sends ahead of the book.
type Context struct {
	Root          string `json:"root"`
	Config        Config `json:"config"`
	Renderer      string `json:"renderer"`
	MdbookVersion string `json:"mdbook_version"`
}

// Config is the subset of book.toml the preprocessor reads.
type Config struct {
	Book         BookConfig                        `json:"book"`
	Preprocessor map[string]map[string]interface{} `json:"preprocessor"`
}

// BookConfig holds the [book] table.
type BookConfig struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
}

// PreprocessorConfig returns this preprocessor's book.toml table, or
// nil when the table is absent.
func (c *Context) PreprocessorConfig(name string) map[string]interface{} {
	return c.Config.Preprocessor[name]
}

// ParseInput decodes the [context, book] pair mdBook writes to the
// preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var input []json.RawMessage
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, nil, fmt.Errorf("parse preprocessor input: %w", err)
	}
	if len(input) != 2 {
		return nil, nil, fmt.Errorf("preprocessor input must be a [context, book] pair, got %d elements", len(input))
	}

	var ctx Context
	if err := json.Unmarshal(input[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("parse context: %w", err)
	}
	var book Book
	if err := json.Unmarshal(input[1], &book); err != nil {
		return nil, nil, fmt.Errorf("parse book: %w", err)
	}
	return &ctx, &book, nil
}

// WriteBook encodes the transformed book to w. HTML escaping is off;
// the output flows back into markdown content, not into a browser.
func WriteBook(w io.Writer, book *Book) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(book); err != nil {
		return fmt.Errorf("write book: %w", err)
	}
	return nil
}
