package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for mdbook-aipr.

To load completions in your current shell session:

  source <(mdbook-aipr completion bash)

To load completions for every new session:

  # Linux
  mdbook-aipr completion bash > /etc/bash_completion.d/mdbook-aipr

  # macOS (requires bash-completion)
  mdbook-aipr completion bash > $(brew --prefix)/etc/bash_completion.d/mdbook-aipr`,
		Example: `  # Load in current session
  source <(mdbook-aipr completion bash)

  # Install permanently (Linux)
  mdbook-aipr completion bash | sudo tee /etc/bash_completion.d/mdbook-aipr > /dev/null

  # Install permanently (macOS with Homebrew)
  mdbook-aipr completion bash > $(brew --prefix)/etc/bash_completion.d/mdbook-aipr`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
