package csvimport_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/csvimport"
	"github.com/andyfreed/master-course-list/internal/logging"
	"github.com/andyfreed/master-course-list/internal/normalize"
	"github.com/andyfreed/master-course-list/internal/testsupport"
)

const sampleCSV = `Four Digit,Previous Edition,Current Year,Course (Shaded by author),CFP,CPA,$ PDF or Exam Only,Annual Update (Launch)
1234,2024,2024,Estate Planning Essentials,8,12.5,"$49.00",3/15/2024
5678,,2025,Tax Updates,,,,-
,,2025,Orphan Row Without Code,,,,
`

func newImporter(t *testing.T) (*csvimport.Importer, *catalog.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	importer := csvimport.New(store, cfg.ImportLockPath(), logging.NewNop())
	return importer, store, cfg.ImportLockPath()
}

func TestImportInsertsAndSkips(t *testing.T) {
	importer, store, _ := newImporter(t)
	ctx := context.Background()

	result, err := importer.Import(ctx, strings.NewReader(sampleCSV), "tester")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 2 || result.Updated != 0 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.BatchID == "" {
		t.Fatal("expected a batch id")
	}
	if len(result.Debug) != 1 || !strings.Contains(result.Debug[0], "no course code") {
		t.Fatalf("unexpected debug log %v", result.Debug)
	}

	estate, err := store.GetByCodeEdition(ctx, "1234", "2024")
	if err != nil {
		t.Fatalf("GetByCodeEdition: %v", err)
	}
	if estate == nil {
		t.Fatal("expected course 1234/2024")
	}
	if estate.Title != "Estate Planning Essentials" {
		t.Fatalf("title = %q", estate.Title)
	}
	if got := estate.Credit(normalize.FieldCPACredits); got != 12.5 {
		t.Fatalf("cpa credits = %v", got)
	}
	if got := estate.Credit(normalize.FieldPricePDF); got != 49 {
		t.Fatalf("pdf price = %v", got)
	}
	if got := estate.Values.Canonical(normalize.FieldAnnualUpdate); got != "2024-03-15" {
		t.Fatalf("annual update = %q", got)
	}

	// New inserts carry no history.
	entries, err := store.History(ctx, estate.ID, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("history = %d entries after insert, want 0", len(entries))
	}
}

func TestImportEditionFallsBackToCurrentYear(t *testing.T) {
	importer, store, _ := newImporter(t)
	ctx := context.Background()

	if _, err := importer.Import(ctx, strings.NewReader(sampleCSV), "tester"); err != nil {
		t.Fatalf("Import: %v", err)
	}

	tax, err := store.GetByCodeEdition(ctx, "5678", "2025")
	if err != nil {
		t.Fatalf("GetByCodeEdition: %v", err)
	}
	if tax == nil {
		t.Fatal("expected edition to fall back to current year")
	}
	if tax.Title != "Tax Updates" {
		t.Fatalf("title = %q", tax.Title)
	}
}

func TestImportSynthesizesMissingTitle(t *testing.T) {
	importer, store, _ := newImporter(t)
	ctx := context.Background()

	csvData := "Four Digit,Previous Edition,Course (Shaded by author)\n9012,2024,\n"
	if _, err := importer.Import(ctx, strings.NewReader(csvData), "tester"); err != nil {
		t.Fatalf("Import: %v", err)
	}

	course, err := store.GetByCodeEdition(ctx, "9012", "2024")
	if err != nil {
		t.Fatalf("GetByCodeEdition: %v", err)
	}
	if course == nil {
		t.Fatal("expected course 9012/2024")
	}
	if course.Title != "Course 9012" {
		t.Fatalf("synthesized title = %q", course.Title)
	}
}

func TestImportSkipsRowsWithoutEdition(t *testing.T) {
	importer, _, _ := newImporter(t)

	csvData := "Four Digit,Previous Edition,Current Year\n4444,,\n"
	result, err := importer.Import(context.Background(), strings.NewReader(csvData), "tester")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 0 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Debug) != 1 || !strings.Contains(result.Debug[0], "no edition") {
		t.Fatalf("unexpected debug log %v", result.Debug)
	}
}

func TestReimportIdenticalDataWritesNoHistory(t *testing.T) {
	importer, store, _ := newImporter(t)
	ctx := context.Background()

	if _, err := importer.Import(ctx, strings.NewReader(sampleCSV), "tester"); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	result, err := importer.Import(ctx, strings.NewReader(sampleCSV), "tester")
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if result.Imported != 0 || result.Updated != 2 {
		t.Fatalf("unexpected result %+v", result)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Courses != 2 {
		t.Fatalf("courses = %d after re-import, want 2", stats.Courses)
	}
	if stats.History != 0 {
		t.Fatalf("history = %d after identical re-import, want 0", stats.History)
	}
}

func TestReimportChangedCellRecordsHistory(t *testing.T) {
	importer, store, _ := newImporter(t)
	ctx := context.Background()

	if _, err := importer.Import(ctx, strings.NewReader(sampleCSV), "tester"); err != nil {
		t.Fatalf("first Import: %v", err)
	}

	changed := strings.Replace(sampleCSV, "12.5", "15", 1)
	if _, err := importer.Import(ctx, strings.NewReader(changed), "tester"); err != nil {
		t.Fatalf("second Import: %v", err)
	}

	course, err := store.GetByCodeEdition(ctx, "1234", "2024")
	if err != nil {
		t.Fatalf("GetByCodeEdition: %v", err)
	}
	entries, err := store.HistoryForField(ctx, course.ID, normalize.FieldCPACredits)
	if err != nil {
		t.Fatalf("HistoryForField: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history = %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.ChangeType != catalog.ChangeCSVImport {
		t.Fatalf("change type = %q", entry.ChangeType)
	}
	if entry.OldValue != "12.5" || entry.NewValue != "15" {
		t.Fatalf("change %q -> %q", entry.OldValue, entry.NewValue)
	}
	if entry.ChangedBy != "tester" {
		t.Fatalf("changed by = %q", entry.ChangedBy)
	}
	if got := course.Credit(normalize.FieldCPACredits); got != 15 {
		t.Fatalf("cpa credits = %v after change", got)
	}
}

func TestImportRefusesConcurrentBatches(t *testing.T) {
	importer, _, lockPath := newImporter(t)

	held := flock.New(lockPath)
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	_, err = importer.Import(context.Background(), strings.NewReader(sampleCSV), "tester")
	if err == nil || !strings.Contains(err.Error(), "another import") {
		t.Fatalf("expected lock contention error, got %v", err)
	}
}

func TestResolveHeaderToleratesSpacingAndBOM(t *testing.T) {
	cases := []struct {
		header string
		field  string
		known  bool
	}{
		{"Four Digit", normalize.FieldCode, true},
		{"\ufeffFour Digit", normalize.FieldCode, true},
		{"CFP  Subj", normalize.FieldCFPSubject, true},
		{"CFP CE  Calc", normalize.FieldCFPCECalc, true},
		{"  Rev Q  ", normalize.FieldRevQuestions, true},
		{"Mystery Column", "", false},
	}

	for _, tc := range cases {
		field, known := csvimport.ResolveHeader(tc.header)
		if known != tc.known || field != tc.field {
			t.Errorf("ResolveHeader(%q) = %q, %v; want %q, %v", tc.header, field, known, tc.field, tc.known)
		}
	}
}
