package csvimport

import (
	"strings"

	"github.com/andyfreed/master-course-list/internal/normalize"
)

// headerAliases maps the spreadsheet's column headings onto catalog fields.
// The headings come straight from the source workbook, quirks and all; lookup
// collapses runs of whitespace so sloppy spacing still resolves.
var headerAliases = map[string]string{
	"Four Digit":                 normalize.FieldCode,
	"Previous Edition":           normalize.FieldEdition,
	"Current Year":               normalize.FieldCurrentYear,
	"Course (Shaded by author)":  normalize.FieldTitle,
	"2025 Pages":                 normalize.FieldPages,
	"NOTES":                      normalize.FieldNotes,
	"Santucci Title:":            normalize.FieldSantucciTitle,
	"CFP":                        normalize.FieldCFPCredits,
	"CPA":                        normalize.FieldCPACredits,
	"EA OTRP":                    normalize.FieldEAOTRPCredits,
	"ERPA":                       normalize.FieldERPACredits,
	"CDFA":                       normalize.FieldCDFACredits,
	"CIMA CPWA RMA":              normalize.FieldCIMACPWARMACredits,
	"IAR":                        normalize.FieldIARCredits,
	"IAR #":                      normalize.FieldIARNumber,
	"$ PDF or Exam Only":         normalize.FieldPricePDF,
	"$ Print":                    normalize.FieldPricePrint,
	"$ per PDF CPE":              normalize.FieldPricePerPDFCPE,
	"Annual Update (Launch)":     normalize.FieldAnnualUpdate,
	"Exam Changes?":              normalize.FieldExamChanges,
	"Subs Updates":               normalize.FieldSubsUpdates,
	"CFP Board #":                normalize.FieldCFPBoardNumber,
	"EA #":                       normalize.FieldEANumber,
	"ERPA #":                     normalize.FieldERPANumber,
	"CFP CE Calc":                normalize.FieldCFPCECalc,
	"CPA CPE Calc":               normalize.FieldCPACPECalc,
	"CFP Words":                  normalize.FieldCFPWords,
	"CPA words":                  normalize.FieldCPAWords,
	"Rev Q":                      normalize.FieldRevQuestions,
	"Exam Q":                     normalize.FieldExamQuestions,
	"Min. No. Exam Q":            normalize.FieldMinExamQ,
	"IAR Words":                  normalize.FieldIARWords,
	"IAR Q":                      normalize.FieldIARQuestions,
	"CFP Subj":                   normalize.FieldCFPSubject,
	"CPA Subj":                   normalize.FieldCPASubject,
	"TX Subject Code":            normalize.FieldTXSubjectCode,
	"Previous CFP Cr":            normalize.FieldPreviousCFPCredits,
	"Previous CPA Cr":            normalize.FieldPreviousCPACredits,
	"Previous EA OTRP ERP Cr":    normalize.FieldPreviousEAOTRPERPCredits,
	"Previous CDFA Cr":           normalize.FieldPreviousCDFACredits,
	"Notes":                      normalize.FieldNotesSecondary,
}

// headerLookup is headerAliases keyed by whitespace-collapsed heading.
var headerLookup = func() map[string]string {
	lookup := make(map[string]string, len(headerAliases))
	for alias, field := range headerAliases {
		lookup[collapseSpaces(alias)] = field
	}
	return lookup
}()

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveHeader maps one spreadsheet heading to its catalog field. The second
// return reports whether the heading is recognized; unknown columns are
// carried through the import as ignored.
func ResolveHeader(header string) (string, bool) {
	field, ok := headerLookup[collapseSpaces(normalize.TrimBOM(header))]
	return field, ok
}
