package csvimport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/logging"
	"github.com/andyfreed/master-course-list/internal/normalize"
)

// Result tallies one import batch.
type Result struct {
	BatchID  string
	Imported int
	Updated  int
	Skipped  int
	Errors   []string
	Debug    []string
}

// Importer runs CSV batches against the catalog store.
type Importer struct {
	store    *catalog.Store
	lockPath string
	logger   *slog.Logger
}

// New builds an Importer. lockPath guards against concurrent batches.
func New(store *catalog.Store, lockPath string, logger *slog.Logger) *Importer {
	return &Importer{
		store:    store,
		lockPath: lockPath,
		logger:   logging.NewComponentLogger(logger, "csvimport"),
	}
}

var titleCaser = cases.Title(language.AmericanEnglish)

// synthesizeTitle fills a missing title from the course code so the row
// still carries a display identity.
func synthesizeTitle(code string) string {
	return titleCaser.String("course " + code)
}

// Import reads the spreadsheet and upserts every row inside one transaction.
// Row-level problems (missing natural key, rejected insert) are tallied and
// the batch continues; reader or storage failures roll the whole batch back.
func (i *Importer) Import(ctx context.Context, r io.Reader, actor string) (*Result, error) {
	lock := flock.New(i.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another import is already running (lock %s)", i.lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	result := &Result{BatchID: uuid.New().String()}
	logger := i.logger.With(logging.String(logging.FieldBatchID, result.BatchID))

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	columns := make([]string, len(header))
	for idx, heading := range header {
		if field, ok := ResolveHeader(heading); ok {
			columns[idx] = field
		}
	}

	err = i.store.WithTx(ctx, func(tx *catalog.Tx) error {
		row := 1
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read row %d: %w", row+1, err)
			}
			row++

			if allEmpty(record) {
				continue
			}
			i.importRow(ctx, tx, logger, result, columns, record, row, actor)
		}
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		logger.Error("import aborted", logging.Error(err),
			logging.Int("imported", result.Imported),
			logging.Int("updated", result.Updated))
		return result, err
	}

	logger.Info("import complete",
		logging.Int("imported", result.Imported),
		logging.Int("updated", result.Updated),
		logging.Int("skipped", result.Skipped),
		logging.Int("errors", len(result.Errors)))
	return result, nil
}

func (i *Importer) importRow(ctx context.Context, tx *catalog.Tx, logger *slog.Logger, result *Result, columns []string, record []string, row int, actor string) {
	values := make(catalog.FieldValues)
	for idx, field := range columns {
		if field == "" || idx >= len(record) {
			continue
		}
		values[field] = normalize.Normalize(field, record[idx])
	}

	// The source workbook leaves edition and current-year inconsistently
	// filled; either one can stand in for the other. A missing title gets a
	// placeholder derived from the code.
	edition := values.Canonical(normalize.FieldEdition)
	currentYear := values.Canonical(normalize.FieldCurrentYear)
	if edition == "" && currentYear != "" {
		values[normalize.FieldEdition] = normalize.Normalize(normalize.FieldEdition, currentYear)
		edition = currentYear
	} else if currentYear == "" && edition != "" {
		values[normalize.FieldCurrentYear] = normalize.Normalize(normalize.FieldCurrentYear, edition)
	}

	code := values.Canonical(normalize.FieldCode)
	if code != "" && values.Canonical(normalize.FieldTitle) == "" {
		values[normalize.FieldTitle] = normalize.Normalize(normalize.FieldTitle, synthesizeTitle(code))
	}

	if code == "" {
		result.Skipped++
		result.Debug = append(result.Debug, fmt.Sprintf("row %d: no course code, skipped", row))
		return
	}
	if edition == "" {
		result.Skipped++
		result.Debug = append(result.Debug, fmt.Sprintf("row %d: code %s has no edition or current year, skipped", row, code))
		return
	}

	existing, err := tx.GetByCodeEdition(ctx, code, edition)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: lookup %s/%s: %v", row, code, edition, err))
		result.Skipped++
		return
	}

	if existing != nil {
		changed, err := tx.UpdateWithHistory(ctx, existing.ID, values, actor, catalog.ChangeCSVImport, "batch "+result.BatchID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: update %s/%s: %v", row, code, edition, err))
			result.Skipped++
			return
		}
		result.Updated++
		if changed > 0 {
			logger.Debug("course updated",
				logging.Int64(logging.FieldCourseID, existing.ID),
				logging.Int(logging.FieldRow, row),
				logging.Int("changed_fields", changed))
		}
		return
	}

	id, err := tx.InsertCourse(ctx, values)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: insert %s/%s: %v", row, code, edition, err))
		result.Debug = append(result.Debug, fmt.Sprintf("row %d: rejected values code=%q edition=%q title=%q", row, code, edition, values.Canonical(normalize.FieldTitle)))
		result.Skipped++
		return
	}
	result.Imported++
	logger.Debug("course inserted",
		logging.Int64(logging.FieldCourseID, id),
		logging.Int(logging.FieldRow, row))
}

func allEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
