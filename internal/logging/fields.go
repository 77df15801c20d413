package logging

const (
	// FieldComponent identifies the subsystem emitting a record.
	FieldComponent = "component"

	// FieldCourseID carries the catalog course identifier.
	FieldCourseID = "course_id"

	// FieldCandidateID carries the external LMS candidate identifier.
	FieldCandidateID = "candidate_id"

	// FieldBatchID carries the import batch identifier.
	FieldBatchID = "batch_id"

	// FieldRow carries the 1-based CSV row number.
	FieldRow = "row"

	// FieldField carries a catalog field name.
	FieldField = "field"

	// FieldDecisionType tags records describing a matching decision.
	FieldDecisionType = "decision_type"
)
