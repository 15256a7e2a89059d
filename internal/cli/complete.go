package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/study"
)

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <week> <day>",
		Short: "Mark a day completed",
		Long:  `Mark a day completed. The first upcoming day of the plan becomes current.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, day, err := parseWeekDay(args)
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := mutationContext(cmd.Context())
			defer cancel()

			p, err := s.CompleteDay(ctx, week, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Completed week %d day %d (%d%%)\n", week, day, p.Progress())
			if d, ok := p.CurrentTopic(); ok {
				fmt.Fprintf(out, "Next: Week %d, Day %d: %s\n", p.CurrentWeek, p.CurrentDay, d.Topic)
			} else {
				fmt.Fprintln(out, "All days completed. The plan is finished.")
			}
			return nil
		},
	}
}

func newNotesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <week> <day> [text...]",
		Short: "Show or set the notes of a day",
		Long:  `With text, replace the notes of a day. Without, print them.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, day, err := parseWeekDay(args[:2])
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(args) > 2 {
				text := strings.Join(args[2:], " ")
				ctx, cancel := mutationContext(cmd.Context())
				defer cancel()
				if _, err := s.SetNotes(ctx, week, day, text); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved notes for week %d day %d\n", week, day)
				return nil
			}

			p, err := s.Load(cmd.Context())
			if err != nil {
				return err
			}
			d, ok := p.Day(week, day)
			if !ok {
				return fmt.Errorf("week %d day %d: %w", week, day, study.ErrDayNotFound)
			}
			if d.Notes == "" {
				fmt.Fprintf(out, "No notes for week %d day %d\n", week, day)
				return nil
			}
			fmt.Fprintln(out, d.Notes)
			return nil
		},
	}
}

// parseWeekDay parses positional <week> <day> arguments.
func parseWeekDay(args []string) (week, day int, err error) {
	week, err = strconv.Atoi(args[0])
	if err != nil || week < 1 {
		return 0, 0, fmt.Errorf("invalid week %q: expected a positive number", args[0])
	}
	day, err = strconv.Atoi(args[1])
	if err != nil || day < 1 {
		return 0, 0, fmt.Errorf("invalid day %q: expected a positive number", args[1])
	}
	return week, day, nil
}
