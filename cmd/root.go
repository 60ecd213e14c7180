package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slidecat",
		Short: "Local catalog for image collections with per-image analysis state",
		Long: `Slidecat tracks a collection of images belonging to a project, keeps
editable metadata per image, and persists everything to a descriptor
file that survives relocating the project folder on disk.

Container formats that expose multiple image series are expanded into
sibling entries when added.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newMaskCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
