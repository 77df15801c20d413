package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andyfreed/master-course-list/internal/normalize"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one course with every field and its match state",
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

			rows := make([][]string, 0, 44)
			rows = append(rows, []string{"id", strconv.FormatInt(course.ID, 10)})
			for _, field := range normalize.Fields() {
				value := course.Values.Canonical(field)
				if value == "" {
					value = "-"
				}
				rows = append(rows, []string{field, value})
			}
			rows = append(rows, []string{"match", matchStateLabel(course)})
			rows = append(rows, []string{"updated_at", course.UpdatedAt.Format("2006-01-02 15:04:05")})

			out := cmd.OutOrStdout()
			writeRows(out, []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})

			record, err := store.MatchForCourse(cmd.Context(), course.ID)
			if err != nil {
				return err
			}
			if record != nil {
				fmt.Fprintf(out, "Matched to LMS course %d (%s, confidence %d) on %s\n",
					record.LMSCourseID, record.Method, record.Confidence,
					record.MatchedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}
