package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/study"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.md>",
		Short: "Replace the stored plan with a Markdown plan",
		Long: `Parse a Markdown plan and replace the stored plan with it.

The document uses "# Title", "## Week N: Title" and "- [x] Day N: Topic" lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			p := study.Parse(string(content))
			if len(p.Weeks) == 0 {
				return fmt.Errorf("no weeks found in %s", args[0])
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := mutationContext(cmd.Context())
			defer cancel()

			if err := s.Save(ctx, p); err != nil {
				return err
			}

			_, total := p.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q: %d weeks, %d days (%d%% complete)\n",
				p.Title, len(p.Weeks), total, p.Progress())
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored plan as Markdown or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "md" && format != "json" {
				return fmt.Errorf("unknown format %q: expected md or json", format)
			}
			return a.withPlan(cmd.Context(), func(p study.Plan) error {
				if format == "json" {
					return writeJSON(cmd.OutOrStdout(), p)
				}
				_, err := fmt.Fprint(cmd.OutOrStdout(), study.Render(p))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "output format: md|json")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default plan as a Markdown document",
		Long:  `Write the built-in plan to the plan path so it can be edited and imported.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfg.PlanPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
			}
			if err := os.WriteFile(path, []byte(study.Render(study.DefaultPlan())), 0644); err != nil {
				return fmt.Errorf("failed to write plan: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Wrote default plan to", path)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Edit the plan")
			fmt.Fprintf(out, "  2. Run: study import %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing plan document")
	return cmd
}
