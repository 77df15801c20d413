package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var field string

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show a course's change history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			course, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if course == nil {
				return fmt.Errorf("course %d not found", id)
			}

			entries, err := store.History(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			if field != "" {
				entries, err = store.HistoryForField(cmd.Context(), id, field)
				if err != nil {
					return err
				}
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					entry.ChangedAt.Format("2006-01-02 15:04"),
					string(entry.ChangeType),
					entry.Field,
					entry.OldValue,
					entry.NewValue,
					entry.ChangedBy,
				})
			}

			out := cmd.OutOrStdout()
			writeRows(out,
				[]string{"ID", "When", "Type", "Field", "Old", "New", "By"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft})
			fmt.Fprintf(out, "%d changes for %s/%s\n", len(entries), course.Code, course.Edition)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries (0 for all)")
	cmd.Flags().StringVar(&field, "field", "", "Only changes to one field")
	return cmd
}
