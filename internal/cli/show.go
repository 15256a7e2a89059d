package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/study"
	"github.com/pablasso/study/internal/tui/components"
)

const progressBarWidth = 20

func newShowCmd(a *app) *cobra.Command {
	var byDate, asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the study plan",
		Long:  `Show every week and day of the plan with its status and notes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withPlan(cmd.Context(), func(p study.Plan) error {
				if byDate {
					start, ok := a.cfg.Start()
					if !ok {
						return errors.New("--by-date needs start_date in the config or STUDY_START_DATE")
					}
					p = p.AlignToDate(start, time.Now().In(a.cfg.Location()))
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), p)
				}

				out := cmd.OutOrStdout()
				printSummary(out, p.Summary())
				fmt.Fprintln(out)

				v := components.NewPlanView(p)
				v.ShowNotes = true
				fmt.Fprint(out, v.View())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&byDate, "by-date", false, "derive statuses from the calendar and start_date")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the current topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withPlan(cmd.Context(), func(p study.Plan) error {
				out := cmd.OutOrStdout()

				d, ok := p.CurrentTopic()
				if !ok {
					fmt.Fprintln(out, "All days completed. The plan is finished.")
					return nil
				}

				s := p.Summary()
				fmt.Fprintf(out, "Week %d, Day %d: %s\n", s.CurrentWeek, s.CurrentDay, d.Topic)
				if d.Notes != "" {
					fmt.Fprintf(out, "\n%s\n", d.Notes)
				}
				return nil
			})
		},
	}
}

func newProgressCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withPlan(cmd.Context(), func(p study.Plan) error {
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), p.Summary())
				}
				printSummary(cmd.OutOrStdout(), p.Summary())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// printSummary writes the title, progress bar and current topic.
func printSummary(w io.Writer, s study.Summary) {
	fmt.Fprintf(w, "%s (target %s)\n", s.Title, s.TargetDate)
	fmt.Fprintf(w, "Progress: %s (%d/%d days)\n",
		components.NewProgress(s.Progress, progressBarWidth).View(), s.Completed, s.Total)
	fmt.Fprintf(w, "Current:  Week %d, Day %d: %s\n", s.CurrentWeek, s.CurrentDay, s.CurrentTopic)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
