package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/notes"
	"github.com/pablasso/study/internal/study"
)

func newJournalCmd(a *app) *cobra.Command {
	journal := &cobra.Command{
		Use:   "journal",
		Short: "Keep dated study notes",
		Long:  `Save and read study notes kept as one Markdown file per day.`,
	}
	journal.AddCommand(newJournalSaveCmd(a), newJournalShowCmd(a), newJournalListCmd(a))
	return journal
}

func newJournalSaveCmd(a *app) *cobra.Command {
	var topic, date string

	cmd := &cobra.Command{
		Use:   "save <text...>",
		Short: "Save the notes for a date",
		Long:  `Save the notes for a date (default today), replacing earlier notes for it. The topic defaults to the current topic of the plan.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = notes.Today()
			}
			if topic == "" {
				err := a.withPlan(cmd.Context(), func(p study.Plan) error {
					topic = p.Summary().CurrentTopic
					return nil
				})
				if err != nil {
					return err
				}
			}

			n := notes.Note{
				Date:    date,
				Topic:   topic,
				Content: strings.Join(args, " "),
			}
			if err := notes.NewStore(a.cfg.NotesDir).Save(n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved notes for %s: %s\n", n.Date, n.Topic)
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "topic of the notes (default current topic)")
	cmd.Flags().StringVar(&date, "date", "", "date of the notes as YYYY-MM-DD (default today)")
	return cmd
}

func newJournalShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Print the notes for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := notes.Today()
			if len(args) == 1 {
				date = args[0]
			}

			n, err := notes.NewStore(a.cfg.NotesDir).Load(date)
			if errors.Is(err, notes.ErrNotFound) {
				return fmt.Errorf("no study notes for %s", date)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n%s\n", n.Topic, n.Date, n.Content)
			return nil
		},
	}
}

func newJournalListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the dates with notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dates, err := notes.NewStore(a.cfg.NotesDir).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(dates) == 0 {
				fmt.Fprintln(out, "No study notes yet.")
				return nil
			}
			for _, d := range dates {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}
