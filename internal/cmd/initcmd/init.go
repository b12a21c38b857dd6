// Package initcmd provides the init command for mdbook-aipr.
package initcmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vectorinstitute/mdbook-aipr/internal/config"
	"github.com/vectorinstitute/mdbook-aipr/internal/preprocess"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mdbook-aipr configuration",
		Long: `Initialize the mdbook-aipr configuration file.

This command walks you through the reading speed and footer settings
and saves them to ~/.config/mdbook-aipr/config.yml. It also prints the
book.toml snippet that tells mdBook to run the preprocessor.

All settings have sensible defaults; running a book without a config
file works fine. Use init when you want a different reading speed or
custom templates.`,
		Example: `  # Interactive setup
  mdbook-aipr init

  # Overwrite an existing config without asking
  mdbook-aipr init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}
			return runInit(configPath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file without asking")

	return cmd
}

func runInit(configPath string, force bool) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	wpm := strconv.Itoa(cfg.WordsPerMinute)
	footer := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reading speed").
				Description("Words per minute used for reading time estimates").
				Placeholder("200").
				Value(&wpm).
				Validate(validateWPM),

			huh.NewConfirm().
				Title("Append footer").
				Description("Append the AI Pocket Reference footer to every chapter").
				Value(&footer),

			huh.NewInput().
				Title("Header template (optional)").
				Description("Path to a custom Handlebars template for the chapter header").
				Placeholder("templates/header.hbs").
				Value(&cfg.HeaderTemplate),

			huh.NewInput().
				Title("Link template (optional)").
				Description("Path to a custom Handlebars template for rewritten links").
				Placeholder("templates/md_link.hbs").
				Value(&cfg.LinkTemplate),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	// validateWPM already ran on every edit, so this cannot fail.
	cfg.WordsPerMinute, _ = strconv.Atoi(wpm)
	if !footer {
		cfg.Footer = &footer
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nAdd this to your book.toml to enable the preprocessor:")
	fmt.Printf("\n  [preprocessor.%s]\n  command = \"mdbook-aipr\"\n", preprocess.Name)

	return nil
}

func validateWPM(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
