// Package stats provides the stats command, reporting word counts and
// reading time for markdown files.
package stats

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/mdbook-aipr/internal/config"
	"github.com/vectorinstitute/mdbook-aipr/internal/view"
	"github.com/vectorinstitute/mdbook-aipr/internal/words"
	"github.com/vectorinstitute/mdbook-aipr/pkg/aipr"
)

type statsOptions struct {
	paths          []string
	wordsPerMinute int

	output  string
	noColor bool
}

// fileStats holds the per-file numbers shown in the report.
type fileStats struct {
	File        string `json:"file"`
	Words       int    `json:"words"`
	ReadingTime string `json:"reading_time"`
	Directives  int    `json:"directives"`
	Links       int    `json:"links"`
}

// NewCmdStats creates the stats command.
func NewCmdStats() *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <path>...",
		Short: "Report word counts and reading time",
		Long: `Report per-file word count, estimated reading time, and the number
of directives and rewritable links the preprocessor will expand.

The word count uses the same markdown-aware counter as the build, so
the reading time shown here matches the one rendered into the chapter
header.`,
		Example: `  # Stats for a book's source tree
  mdbook-aipr stats src/

  # Assume a faster reader
  mdbook-aipr stats src/ --wpm 300

  # JSON for scripting
  mdbook-aipr stats src/ -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.paths = args
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			if !cmd.Flags().Changed("wpm") {
				configPath, _ := cmd.Flags().GetString("config")
				if configPath == "" {
					configPath = config.DefaultConfigPath()
				}
				if cfg, err := config.LoadWithEnv(configPath); err == nil {
					opts.wordsPerMinute = cfg.WordsPerMinute
				}
			}
			return runStats(opts)
		},
	}

	cmd.Flags().IntVar(&opts.wordsPerMinute, "wpm", aipr.WordsPerMinute, "Reading speed in words per minute")

	return cmd
}

func runStats(opts *statsOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.wordsPerMinute <= 0 {
		return fmt.Errorf("invalid reading speed: %d (must be positive)", opts.wordsPerMinute)
	}
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	files, err := markdownFiles(opts.paths)
	if err != nil {
		return err
	}

	var stats []fileStats
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		stats = append(stats, statsFor(file, string(data), opts.wordsPerMinute))
	}

	if opts.output == "json" {
		if stats == nil {
			stats = []fileStats{}
		}
		return renderer.RenderJSON(stats)
	}

	headers := []string{"FILE", "WORDS", "TIME", "DIRECTIVES", "LINKS"}
	var rows [][]string
	for _, s := range stats {
		rows = append(rows, []string{
			s.File,
			fmt.Sprintf("%d", s.Words),
			s.ReadingTime,
			fmt.Sprintf("%d", s.Directives),
			fmt.Sprintf("%d", s.Links),
		})
	}
	renderer.RenderTable(headers, rows)
	return nil
}

// statsFor computes the report line for one document. The link count
// only includes links the preprocessor would rewrite.
func statsFor(file, source string, wordsPerMinute int) fileStats {
	wordCount := words.CountMarkdown(source)
	return fileStats{
		File:        file,
		Words:       wordCount,
		ReadingTime: aipr.ReadingTime(wordCount, wordsPerMinute),
		Directives:  len(aipr.FindDirectives(source)),
		Links:       len(aipr.FindLinks(source)),
	}
}

// markdownFiles expands paths into a list of markdown files, walking
// directories recursively.
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
