package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/slidecat/slidecat/internal/export"
)

func newExportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export <descriptor>",
		Short: "Export the entry listing",
		Long: `Exports the project's entries to a flat file for downstream analysis.

Supported formats: parquet (columnar, one row per entry) and yaml
(human-readable project summary).`,
		Example: `  # Entry listing as Parquet
  slidecat export project.scproj --format parquet --output entries.parquet

  # Project summary as YAML
  slidecat export project.scproj --format yaml --output summary.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}

			switch format {
			case "parquet":
				err = export.WriteParquet(output, p)
			case "yaml":
				err = export.WriteYAML(output, p)
			default:
				return fmt.Errorf("unsupported format: %s (supported: parquet, yaml)", format)
			}
			if err != nil {
				return err
			}
			slog.Info("Export written", "format", format, "output", output, "entries", p.Size())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Export format: parquet or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "export.yaml", "Output file path")

	return cmd
}
