package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/lms"
	"github.com/andyfreed/master-course-list/internal/matcher"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Find, create, and remove LMS course matches",
	}

	matchCmd.AddCommand(newMatchFindCommand(ctx))
	matchCmd.AddCommand(newMatchCreateCommand(ctx))
	matchCmd.AddCommand(newMatchRemoveCommand(ctx))
	matchCmd.AddCommand(newMatchAutoCommand(ctx))

	return matchCmd
}

func (c *commandContext) withMatcher(fn func(m *matcher.Matcher, store *catalog.Store, lmsDB *lms.DB) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	lmsDB, err := c.openLMS()
	if err != nil {
		return err
	}
	defer lmsDB.Close()

	logger, err := c.newLogger()
	if err != nil {
		return err
	}
	m, err := c.newMatcher(store, lmsDB, logger)
	if err != nil {
		return err
	}
	return fn(m, store, lmsDB)
}

func newMatchFindCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "find <id>",
		Short: "List scored LMS candidates for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withMatcher(func(m *matcher.Matcher, store *catalog.Store, _ *lms.DB) error {
				course, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if course == nil {
					return fmt.Errorf("course %d not found", id)
				}

				candidates, err := m.FindMatches(cmd.Context(), course)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(candidates) == 0 {
					fmt.Fprintf(out, "No candidates for %s/%s\n", course.Code, course.Edition)
					return nil
				}

				rows := make([][]string, 0, len(candidates))
				for _, candidate := range candidates {
					rows = append(rows, []string{
						strconv.FormatInt(candidate.LMS.ID, 10),
						candidate.LMS.Title,
						candidate.LMS.SKU,
						candidate.LMS.Type,
						string(candidate.Method),
						strconv.Itoa(candidate.Confidence),
					})
				}
				writeRows(out,
					[]string{"LMS ID", "Title", "SKU", "Type", "Method", "Confidence"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight})
				return nil
			})
		},
	}
}

func newMatchCreateCommand(ctx *commandContext) *cobra.Command {
	var confidence int
	var actor string

	cmd := &cobra.Command{
		Use:   "create <courseID> <lmsCourseID>",
		Short: "Manually link a course to an LMS course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			lmsCourseID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return ctx.withMatcher(func(m *matcher.Matcher, _ *catalog.Store, _ *lms.DB) error {
				created, err := m.CreateMatch(cmd.Context(), courseID, lmsCourseID, catalog.MatchManual, confidence, actor)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !created {
					fmt.Fprintf(out, "Course %d is already matched to LMS course %d\n", courseID, lmsCourseID)
					return nil
				}
				fmt.Fprintf(out, "Matched course %d to LMS course %d\n", courseID, lmsCourseID)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&confidence, "confidence", 100, "Confidence to record on the match")
	cmd.Flags().StringVar(&actor, "actor", "cli", "Actor recorded on the match")
	return cmd
}

func newMatchRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <courseID>",
		Short: "Remove a course's LMS link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withMatcher(func(m *matcher.Matcher, _ *catalog.Store, _ *lms.DB) error {
				if err := m.RemoveMatch(cmd.Context(), courseID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed match for course %d\n", courseID)
				return nil
			})
		},
	}
}

func newMatchAutoCommand(ctx *commandContext) *cobra.Command {
	var minConfidence int

	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Auto-match every unmatched course with one confident candidate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-confidence") {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				cfg.Matching.MinAutoConfidence = minConfidence
			}
			return ctx.withMatcher(func(m *matcher.Matcher, _ *catalog.Store, _ *lms.DB) error {
				result, err := m.AutoMatchAll(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Examined: %d  Matched: %d  Skipped: %d\n",
					result.Examined, result.Matched, result.Skipped)

				rows := make([][]string, 0, len(result.Decisions))
				for _, decision := range result.Decisions {
					target := "-"
					if decision.LMSCourseID != 0 {
						target = strconv.FormatInt(decision.LMSCourseID, 10)
					}
					rows = append(rows, []string{
						decision.Code,
						decision.Edition,
						decision.Outcome,
						strconv.Itoa(decision.Candidates),
						target,
						strconv.Itoa(decision.Confidence),
					})
				}
				writeRows(out,
					[]string{"Code", "Edition", "Outcome", "Candidates", "LMS ID", "Confidence"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight})
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&minConfidence, "min-confidence", 0, "Override the configured auto-match confidence floor")
	return cmd
}
