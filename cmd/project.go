package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/slidecat/slidecat/internal/imageserver"
	"github.com/slidecat/slidecat/internal/project"
)

// defaultRegistry holds the image backends the CLI ships with.
func defaultRegistry() *imageserver.Registry {
	return imageserver.NewRegistry(imageserver.FileBuilder{})
}

func openProject(path string) (*project.Project, error) {
	p, err := project.Load(path, defaultRegistry())
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	return p, nil
}

func newCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <dir-or-descriptor>",
		Short: "Create a new project",
		Long: `Creates a project descriptor. Given a directory, a fresh descriptor
name is chosen inside it; given a file path, that file becomes the
descriptor and its parent directory the project base.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.New(args[0], defaultRegistry())
			if err != nil {
				return err
			}
			if name != "" {
				p.SetName(name)
			}
			if err := p.Sync(); err != nil {
				return err
			}
			slog.Info("Project created", "file", p.File())
			fmt.Println(p.File())
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project display name")

	return cmd
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <descriptor> <image>...",
		Short: "Add images to a project",
		Long: `Adds one entry per image, plus one entry per sub-image for container
formats exposing multiple series. Images already in the project are
skipped silently; a failure on one image does not stop the rest.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}
			before := p.Size()
			p.AddImages(args[1:])
			if err := p.Sync(); err != nil {
				return err
			}
			slog.Info("Images added", "new_entries", p.Size()-before, "total", p.Size())
			return nil
		},
	}

	return cmd
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <descriptor> <id-or-path>...",
		Short: "Remove entries from a project",
		Long: `Removes entries by identity or path. Removing an entry that is not
present is a no-op. Analysis-state files are left on disk.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}
			p.RemoveImages(args[1:])
			if err := p.Sync(); err != nil {
				return err
			}
			slog.Info("Entries removed", "remaining", p.Size())
			return nil
		},
	}

	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <descriptor>",
		Short: "List project entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPATH\tDATA")
			for _, entry := range p.Entries() {
				data := "-"
				if entry.HasData() {
					data = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.ID(), entry.Name(), entry.StoredPath(), data)
			}
			return w.Flush()
		},
	}

	return cmd
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <descriptor> [entry-id]",
		Short: "Show project or entry details",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				entry, ok := p.EntryByID(args[1])
				if !ok {
					return fmt.Errorf("no entry with identity %s", args[1])
				}
				fmt.Println(entry.Summary())
				return nil
			}

			fmt.Printf("Project:\t%s\n", p.Name())
			fmt.Printf("Base dir:\t%s\n", p.BaseDir())
			fmt.Printf("Entries:\t%d\n", p.Size())
			fmt.Printf("Masked:\t%v\n", p.MaskNames())
			if labels := p.Labels(); len(labels) > 0 {
				fmt.Printf("Labels:\t%v\n", labels)
			}
			return nil
		},
	}

	return cmd
}

func newMaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mask <descriptor> <on|off>",
		Short: "Toggle name masking for blinded review",
		Long: `With masking on, every entry is listed under a stable pseudo-random
label instead of its real name. Each entry keeps the same label no
matter how often masking is toggled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(args[0])
			if err != nil {
				return err
			}
			switch args[1] {
			case "on":
				p.SetMaskNames(true)
			case "off":
				p.SetMaskNames(false)
			default:
				return fmt.Errorf("expected on or off, got %q", args[1])
			}
			return p.Sync()
		},
	}

	return cmd
}
