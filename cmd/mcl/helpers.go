package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/normalize"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// creditLabels pairs credit fields with their display abbreviations, in the
// order they appear on a formatted credits line.
var creditLabels = []struct {
	field string
	label string
}{
	{normalize.FieldCFPCredits, "CFP"},
	{normalize.FieldCPACredits, "CPA"},
	{normalize.FieldEAOTRPCredits, "EA/OTRP"},
	{normalize.FieldERPACredits, "ERPA"},
	{normalize.FieldCDFACredits, "CDFA"},
	{normalize.FieldCIMACPWARMACredits, "CIMA"},
	{normalize.FieldIARCredits, "IAR"},
}

// formatCredits renders a course's non-zero credit hours as a compact
// summary, e.g. "CFP 8, CPA 12.5". Returns "-" when no category has credits.
func formatCredits(course *catalog.Course) string {
	var parts []string
	for _, c := range creditLabels {
		if hours := course.Credit(c.field); hours > 0 {
			parts = append(parts, c.label+" "+strconv.FormatFloat(hours, 'f', -1, 64))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func matchStateLabel(course *catalog.Course) string {
	if course.LMSCourseID == nil {
		return "unmatched"
	}
	return "lms:" + strconv.FormatInt(*course.LMSCourseID, 10)
}
