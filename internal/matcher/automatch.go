package matcher

import (
	"context"

	"github.com/andyfreed/master-course-list/internal/logging"
)

// AutoMatchDecision explains what the driver did with one course.
type AutoMatchDecision struct {
	CourseID    int64
	Code        string
	Edition     string
	LMSCourseID int64
	Confidence  int
	Outcome     string
	Candidates  int
}

// Auto-match outcomes.
const (
	OutcomeMatched       = "matched"
	OutcomeNoCandidates  = "no-candidates"
	OutcomeAmbiguous     = "ambiguous"
	OutcomeLowConfidence = "low-confidence"
)

// AutoMatchResult tallies one auto-match run.
type AutoMatchResult struct {
	Examined  int
	Matched   int
	Skipped   int
	Decisions []AutoMatchDecision
}

// AutoMatchAll walks every unmatched course and links the ones with exactly
// one candidate at or above the configured confidence floor. Anything
// ambiguous or weak is left for manual review.
func (m *Matcher) AutoMatchAll(ctx context.Context) (*AutoMatchResult, error) {
	courses, err := m.store.Unmatched(ctx)
	if err != nil {
		return nil, err
	}

	result := &AutoMatchResult{}
	for _, course := range courses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Examined++

		candidates, err := m.FindMatches(ctx, course)
		if err != nil {
			return nil, err
		}

		decision := AutoMatchDecision{
			CourseID:   course.ID,
			Code:       course.Code,
			Edition:    course.Edition,
			Candidates: len(candidates),
		}

		switch {
		case len(candidates) == 0:
			decision.Outcome = OutcomeNoCandidates
		case len(candidates) > 1:
			decision.Outcome = OutcomeAmbiguous
		case candidates[0].Confidence < m.opts.MinAutoConfidence:
			decision.Outcome = OutcomeLowConfidence
			decision.LMSCourseID = candidates[0].LMS.ID
			decision.Confidence = candidates[0].Confidence
		default:
			best := candidates[0]
			if _, err := m.CreateMatch(ctx, course.ID, best.LMS.ID, best.Method, best.Confidence, "auto-match"); err != nil {
				return nil, err
			}
			decision.Outcome = OutcomeMatched
			decision.LMSCourseID = best.LMS.ID
			decision.Confidence = best.Confidence
		}

		if decision.Outcome == OutcomeMatched {
			result.Matched++
		} else {
			result.Skipped++
		}
		result.Decisions = append(result.Decisions, decision)

		m.logger.Debug("auto-match decision",
			logging.Int64(logging.FieldCourseID, course.ID),
			logging.String(logging.FieldDecisionType, decision.Outcome),
			logging.Int("candidates", decision.Candidates),
			logging.Int("confidence", decision.Confidence))
	}

	m.logger.Info("auto-match complete",
		logging.Int("examined", result.Examined),
		logging.Int("matched", result.Matched),
		logging.Int("skipped", result.Skipped))
	return result, nil
}
