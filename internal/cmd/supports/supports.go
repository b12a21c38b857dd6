// Package supports provides the renderer-support probe mdBook calls
// before a build.
package supports

import (
	"github.com/spf13/cobra"
)

// NewCmdSupports creates the supports command. mdBook invokes
// "mdbook-aipr supports <renderer>" and reads the exit code: zero
// means the preprocessor should run for that renderer. The marker
// transform is renderer-agnostic, so every renderer is supported.
func NewCmdSupports() *cobra.Command {
	return &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Check whether a renderer is supported",
		Long: `Check whether mdbook-aipr supports the given mdBook renderer.

mdBook calls this before every build. mdbook-aipr rewrites chapter
markdown without depending on the output format, so it reports support
for any renderer by exiting 0.`,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
}
