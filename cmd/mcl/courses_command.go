package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andyfreed/master-course-list/internal/catalog"
)

func newCoursesCommand(ctx *commandContext) *cobra.Command {
	var (
		search        string
		matchedOnly   bool
		unmatchedOnly bool
		certification string
		limit         int
		offset        int
	)

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List catalog courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if matchedOnly && unmatchedOnly {
				return errors.New("--matched and --unmatched are mutually exclusive")
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			query := catalog.SearchQuery{
				Search:        search,
				Certification: certification,
				Limit:         limit,
				Offset:        offset,
			}
			if matchedOnly {
				query.Matched = "matched"
			}
			if unmatchedOnly {
				query.Matched = "unmatched"
			}

			courses, err := store.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(courses))
			for _, course := range courses {
				rows = append(rows, []string{
					strconv.FormatInt(course.ID, 10),
					course.Code,
					course.Edition,
					course.Title,
					formatCredits(course),
					matchStateLabel(course),
				})
			}

			out := cmd.OutOrStdout()
			writeRows(out,
				[]string{"ID", "Code", "Edition", "Title", "Credits", "Match"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft})

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d courses (%d matched, %d unmatched)\n",
				stats.Courses, stats.Matched, stats.Unmatched)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by code, edition, or title substring")
	cmd.Flags().BoolVar(&matchedOnly, "matched", false, "Only courses linked to an LMS course")
	cmd.Flags().BoolVar(&unmatchedOnly, "unmatched", false, "Only courses without an LMS link")
	cmd.Flags().StringVar(&certification, "certification", "", "Only courses with credits in a category (cfp, cpa, ea, erpa, cdfa, iar)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	return cmd
}
