// Package root provides the root command for mdbook-aipr.
package root

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vectorinstitute/mdbook-aipr/internal/cmd/check"
	"github.com/vectorinstitute/mdbook-aipr/internal/cmd/completion"
	"github.com/vectorinstitute/mdbook-aipr/internal/cmd/initcmd"
	"github.com/vectorinstitute/mdbook-aipr/internal/cmd/stats"
	"github.com/vectorinstitute/mdbook-aipr/internal/cmd/supports"
	"github.com/vectorinstitute/mdbook-aipr/internal/config"
	"github.com/vectorinstitute/mdbook-aipr/internal/mdbook"
	"github.com/vectorinstitute/mdbook-aipr/internal/preprocess"
	"github.com/vectorinstitute/mdbook-aipr/internal/version"
)

// NewCmdRoot creates the root command for mdbook-aipr. Run without a
// subcommand it speaks the preprocessor protocol over stdin/stdout,
// which is how mdBook invokes it during a build.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdbook-aipr",
		Short: "An mdBook preprocessor for the AI Pocket Reference series",
		Long: `mdbook-aipr expands AI Pocket Reference helpers in book chapters.

Supported helpers:

  {{ #aipr_header }}                        chapter header with reading time
  {{ #aipr_header colab=nlp/lora.ipynb }}   header with a Colab badge

Markdown links with absolute http(s) targets are rewritten to open in
a new tab, and every chapter gets the series footer appended.

mdBook runs this binary automatically once book.toml contains:

  [preprocessor.ai-pocket-reference]
  command = "mdbook-aipr"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runPreprocess(configPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mdbook-aipr/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("mdbook-aipr version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(supports.NewCmdSupports())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(stats.NewCmdStats())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// runPreprocess handles one round of the preprocessor protocol: read
// the [context, book] pair from in, transform the book, write it to
// out.
func runPreprocess(configPath string, in io.Reader, out io.Writer) error {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	ctx, book, err := mdbook.ParseInput(in)
	if err != nil {
		return err
	}
	if err := preprocess.New(cfg).Run(ctx, book); err != nil {
		return err
	}
	return mdbook.WriteBook(out, book)
}
