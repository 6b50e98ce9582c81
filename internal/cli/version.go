package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wareki/pkg/wareki"
)

const modulePath = "github.com/mesh-intelligence/wareki"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wareki version",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, argv []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wareki v%s\nmodule: %s\n", wareki.Version, modulePath)
			return err
		},
	}
}
