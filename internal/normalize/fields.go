package normalize

// Kind describes how a catalog field's raw cell value is interpreted.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDate
)

// Catalog field names. These double as column names in the catalog store.
const (
	FieldCode        = "code"
	FieldEdition     = "edition"
	FieldCurrentYear = "current_year"
	FieldTitle       = "title"

	FieldPages         = "pages"
	FieldNotes         = "notes"
	FieldSantucciTitle = "santucci_title"

	FieldCFPCredits         = "cfp_credits"
	FieldCPACredits         = "cpa_credits"
	FieldEAOTRPCredits      = "ea_otrp_credits"
	FieldERPACredits        = "erpa_credits"
	FieldCDFACredits        = "cdfa_credits"
	FieldCIMACPWARMACredits = "cima_cpwa_rma_credits"
	FieldIARCredits         = "iar_credits"

	FieldIARNumber      = "iar_number"
	FieldPricePDF       = "price_pdf"
	FieldPricePrint     = "price_print"
	FieldPricePerPDFCPE = "price_per_pdf_cpe"
	FieldAnnualUpdate   = "annual_update"
	FieldExamChanges    = "exam_changes"
	FieldSubsUpdates    = "subs_updates"
	FieldCFPBoardNumber = "cfp_board_number"
	FieldEANumber       = "ea_number"
	FieldERPANumber     = "erpa_number"
	FieldCFPCECalc      = "cfp_ce_calc"
	FieldCPACPECalc     = "cpa_cpe_calc"
	FieldCFPWords       = "cfp_words"
	FieldCPAWords       = "cpa_words"
	FieldRevQuestions   = "rev_questions"
	FieldExamQuestions  = "exam_questions"
	FieldMinExamQ       = "min_exam_questions"
	FieldIARWords       = "iar_words"
	FieldIARQuestions   = "iar_questions"
	FieldCFPSubject     = "cfp_subject"
	FieldCPASubject     = "cpa_subject"
	FieldTXSubjectCode  = "tx_subject_code"

	FieldPreviousCFPCredits       = "previous_cfp_credits"
	FieldPreviousCPACredits       = "previous_cpa_credits"
	FieldPreviousEAOTRPERPCredits = "previous_ea_otrp_erp_credits"
	FieldPreviousCDFACredits      = "previous_cdfa_credits"
	FieldNotesSecondary           = "notes_secondary"
)

// fieldKinds registers every catalog field with its interpretation.
var fieldKinds = map[string]Kind{
	FieldCode:        KindText,
	FieldEdition:     KindText,
	FieldCurrentYear: KindText,
	FieldTitle:       KindText,

	FieldPages:         KindNumeric,
	FieldNotes:         KindText,
	FieldSantucciTitle: KindText,

	FieldCFPCredits:         KindNumeric,
	FieldCPACredits:         KindNumeric,
	FieldEAOTRPCredits:      KindNumeric,
	FieldERPACredits:        KindNumeric,
	FieldCDFACredits:        KindNumeric,
	FieldCIMACPWARMACredits: KindNumeric,
	FieldIARCredits:         KindNumeric,

	FieldIARNumber:      KindText,
	FieldPricePDF:       KindNumeric,
	FieldPricePrint:     KindNumeric,
	FieldPricePerPDFCPE: KindNumeric,
	FieldAnnualUpdate:   KindDate,
	FieldExamChanges:    KindText,
	FieldSubsUpdates:    KindText,
	FieldCFPBoardNumber: KindText,
	FieldEANumber:       KindText,
	FieldERPANumber:     KindText,
	FieldCFPCECalc:      KindNumeric,
	FieldCPACPECalc:     KindNumeric,
	FieldCFPWords:       KindNumeric,
	FieldCPAWords:       KindNumeric,
	FieldRevQuestions:   KindNumeric,
	FieldExamQuestions:  KindNumeric,
	FieldMinExamQ:       KindNumeric,
	FieldIARWords:       KindNumeric,
	FieldIARQuestions:   KindNumeric,
	FieldCFPSubject:     KindText,
	FieldCPASubject:     KindText,
	FieldTXSubjectCode:  KindText,

	FieldPreviousCFPCredits:       KindNumeric,
	FieldPreviousCPACredits:       KindNumeric,
	FieldPreviousEAOTRPERPCredits: KindNumeric,
	FieldPreviousCDFACredits:      KindNumeric,
	FieldNotesSecondary:           KindText,
}

// fieldOrder fixes a stable iteration order for store columns and history.
var fieldOrder = []string{
	FieldCode,
	FieldEdition,
	FieldCurrentYear,
	FieldTitle,
	FieldPages,
	FieldNotes,
	FieldSantucciTitle,
	FieldCFPCredits,
	FieldCPACredits,
	FieldEAOTRPCredits,
	FieldERPACredits,
	FieldCDFACredits,
	FieldCIMACPWARMACredits,
	FieldIARCredits,
	FieldIARNumber,
	FieldPricePDF,
	FieldPricePrint,
	FieldPricePerPDFCPE,
	FieldAnnualUpdate,
	FieldExamChanges,
	FieldSubsUpdates,
	FieldCFPBoardNumber,
	FieldEANumber,
	FieldERPANumber,
	FieldCFPCECalc,
	FieldCPACPECalc,
	FieldCFPWords,
	FieldCPAWords,
	FieldRevQuestions,
	FieldExamQuestions,
	FieldMinExamQ,
	FieldIARWords,
	FieldIARQuestions,
	FieldCFPSubject,
	FieldCPASubject,
	FieldTXSubjectCode,
	FieldPreviousCFPCredits,
	FieldPreviousCPACredits,
	FieldPreviousEAOTRPERPCredits,
	FieldPreviousCDFACredits,
	FieldNotesSecondary,
}

// Fields returns every catalog field name in stable order.
func Fields() []string {
	cp := make([]string, len(fieldOrder))
	copy(cp, fieldOrder)
	return cp
}

// KindOf reports the registered kind for a field. Unknown fields are text.
func KindOf(field string) Kind {
	if kind, ok := fieldKinds[field]; ok {
		return kind
	}
	return KindText
}

// IsKnownField reports whether the field name is registered.
func IsKnownField(field string) bool {
	_, ok := fieldKinds[field]
	return ok
}
