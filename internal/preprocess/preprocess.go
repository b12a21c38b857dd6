// Package preprocess wires the marker engine into the mdBook build:
// it expands every chapter's markers and appends the footer trailer.
package preprocess

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/vectorinstitute/mdbook-aipr/internal/config"
	"github.com/vectorinstitute/mdbook-aipr/internal/mdbook"
	"github.com/vectorinstitute/mdbook-aipr/internal/words"
	"github.com/vectorinstitute/mdbook-aipr/pkg/aipr"
)

// Name is the preprocessor name mdBook uses in book.toml.
const Name = "ai-pocket-reference"

//go:embed footer.html
var defaultFooter string

// logger writes diagnostics to stderr; stdout carries the protocol.
var logger = log.New(os.Stderr, "[mdbook-aipr] ", 0)

// Preprocessor applies the marker transform to a parsed book.
type Preprocessor struct {
	cfg *config.Config
}

// New creates a Preprocessor. A nil config uses the defaults.
func New(cfg *config.Config) *Preprocessor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Preprocessor{cfg: cfg}
}

// Run transforms every chapter of book in place. The preprocessor's
// book.toml table from ctx overrides the loaded configuration for
// this run. The first chapter that fails to render aborts the run.
func (p *Preprocessor) Run(ctx *mdbook.Context, book *mdbook.Book) error {
	cfg := p.cfg.Clone()
	if err := cfg.FromTable(ctx.PreprocessorConfig(Name)); err != nil {
		return fmt.Errorf("invalid [preprocessor.%s] table: %w", Name, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if ctx.Renderer != "" && ctx.Renderer != "html" {
		logger.Printf("renderer %q is untested, proceeding anyway", ctx.Renderer)
	}

	renderer, err := buildRenderer(ctx.Root, cfg)
	if err != nil {
		return err
	}
	footer, err := loadFooter(ctx.Root, cfg)
	if err != nil {
		return err
	}

	opts := aipr.Options{Renderer: renderer, WordsPerMinute: cfg.WordsPerMinute}
	return book.EachChapter(func(ch *mdbook.Chapter) error {
		wordCount := words.CountMarkdown(ch.Content)
		content, err := aipr.ExpandWithOptions(ch.Content, wordCount, opts)
		if err != nil {
			return fmt.Errorf("chapter %q: %w", ch.Name, err)
		}
		ch.Content = content + footer
		return nil
	})
}

// buildRenderer returns the template renderer, honoring custom
// template paths from the configuration.
func buildRenderer(root string, cfg *config.Config) (aipr.Renderer, error) {
	if cfg.HeaderTemplate == "" && cfg.LinkTemplate == "" {
		return aipr.NewRenderer(), nil
	}
	headerSource, err := readConfigFile(root, cfg.HeaderTemplate)
	if err != nil {
		return nil, fmt.Errorf("header template: %w", err)
	}
	linkSource, err := readConfigFile(root, cfg.LinkTemplate)
	if err != nil {
		return nil, fmt.Errorf("link template: %w", err)
	}
	return aipr.NewRendererWithTemplates(headerSource, linkSource)
}

// loadFooter returns the trailer appended to every chapter.
func loadFooter(root string, cfg *config.Config) (string, error) {
	if !cfg.FooterEnabled() {
		return "", nil
	}
	if cfg.FooterPath == "" {
		return defaultFooter, nil
	}
	footer, err := readConfigFile(root, cfg.FooterPath)
	if err != nil {
		return "", fmt.Errorf("footer: %w", err)
	}
	return footer, nil
}

// readConfigFile reads a configured path, resolving relative paths
// against the book root.
func readConfigFile(root, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if !filepath.IsAbs(path) && root != "" {
		path = filepath.Join(root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
