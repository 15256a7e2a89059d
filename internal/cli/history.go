package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/study/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List changes made to the plan",
		Long:  `List imports, completions and notes changes recorded by the file store.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			fs, ok := s.(*store.FileStore)
			if !ok {
				return errors.New("history is only recorded by the file store")
			}

			events, err := fs.History().Read()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No history yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tEVENT\tDETAILS")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), e.Event, formatData(e.Data))
			}
			return w.Flush()
		},
	}
}

// formatData renders event data as sorted key=value pairs.
func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " ")
}
