package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/logging"
	"github.com/andyfreed/master-course-list/internal/normalize"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var sets []string
	var actor string
	var note string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Manually update catalog fields on a course",
		Long: `Apply one or more field updates to a course. Every change is recorded
in the course history as a manual update. Values are normalized the
same way CSV cells are; setting a field to "" clears it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				return fmt.Errorf("nothing to update: pass at least one --set field=value")
			}

			values := make(catalog.FieldValues, len(sets))
			for _, assignment := range sets {
				field, raw, ok := strings.Cut(assignment, "=")
				if !ok {
					return fmt.Errorf("invalid assignment %q, expected field=value", assignment)
				}
				field = strings.TrimSpace(field)
				if !normalize.IsKnownField(field) {
					return fmt.Errorf("unknown field %q", field)
				}
				values[field] = normalize.Normalize(field, raw)
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			course, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if course == nil {
				return fmt.Errorf("course %d not found", id)
			}

			for field, value := range values {
				logger.Debug("manual field update requested",
					logging.Int64(logging.FieldCourseID, id),
					logging.String(logging.FieldField, field),
					logging.String("value", value.Canonical()))
			}

			changed, err := store.UpdateWithHistory(cmd.Context(), id, values, actor, catalog.ChangeManual, note)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if changed == 0 {
				fmt.Fprintf(out, "No changes for %s/%s\n", course.Code, course.Edition)
				return nil
			}
			fmt.Fprintf(out, "Updated %d fields for %s/%s\n", changed, course.Code, course.Edition)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field assignment as field=value (repeatable)")
	cmd.Flags().StringVar(&actor, "actor", "cli", "Actor recorded on history entries")
	cmd.Flags().StringVar(&note, "note", "", "Note recorded on history entries")
	return cmd
}
