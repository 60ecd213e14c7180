package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slidecat/slidecat/internal/describe"
)

func newDescribeCmd() *cobra.Command {
	var provider string
	var model string
	var apply bool

	cmd := &cobra.Command{
		Use:   "describe <descriptor> <entry-id>",
		Short: "Suggest a description for an entry using a vision model",
		Long: `Shows the entry's image to a vision-capable model (Ollama or Gemini)
and prints a suggested catalog description. With --apply the suggestion
is stored as the entry's description and the project is synced.`,
		Example: `  # Print a suggestion using a local Ollama model
  slidecat describe project.scproj 4cf3…

  # Store a Gemini suggestion on the entry
  slidecat describe project.scproj 4cf3… --provider gemini --apply`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}
			entry, ok := p.EntryByID(args[1])
			if !ok {
				return fmt.Errorf("no entry with identity %s", args[1])
			}

			service := describe.NewService()
			description, err := service.SuggestDescription(cmd.Context(), entry, provider, model)
			if err != nil {
				return err
			}

			fmt.Println(description)
			if apply {
				entry.SetDescription(description)
				return p.Sync()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Vision provider: ollama or gemini")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name (provider default if empty)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Store the suggestion as the entry description")

	return cmd
}
