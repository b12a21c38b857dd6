package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for mdbook-aipr.

To load completions in your current shell session:

  mdbook-aipr completion fish | source

To load completions for every new session:

  mdbook-aipr completion fish > ~/.config/fish/completions/mdbook-aipr.fish`,
		Example: `  # Load in current session
  mdbook-aipr completion fish | source

  # Install permanently
  mdbook-aipr completion fish > ~/.config/fish/completions/mdbook-aipr.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
