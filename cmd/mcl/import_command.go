package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyfreed/master-course-list/internal/config"
	"github.com/andyfreed/master-course-list/internal/csvimport"
)

const debugPreviewCap = 20

func newImportCommand(ctx *commandContext) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import the master course spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer file.Close()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			importer := csvimport.New(store, cfg.ImportLockPath(), logger)
			result, err := importer.Import(cmd.Context(), file, actor)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Batch %s\n", result.BatchID)
			fmt.Fprintf(out, "Imported: %d  Updated: %d  Skipped: %d  Errors: %d\n",
				result.Imported, result.Updated, result.Skipped, len(result.Errors))
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "error: %s\n", msg)
			}
			preview := result.Debug
			if len(preview) > debugPreviewCap {
				preview = preview[:debugPreviewCap]
			}
			for _, msg := range preview {
				fmt.Fprintf(out, "note: %s\n", msg)
			}
			if extra := len(result.Debug) - len(preview); extra > 0 {
				fmt.Fprintf(out, "... %d more notes\n", extra)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "cli", "Actor recorded on history entries")
	return cmd
}
