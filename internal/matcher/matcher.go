package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/lms"
	"github.com/andyfreed/master-course-list/internal/logging"
	"github.com/andyfreed/master-course-list/internal/textutil"
)

// Candidate is one scored LMS course for a local course.
type Candidate struct {
	LMS        lms.Candidate
	Confidence int
	Method     catalog.MatchMethod
}

// Options hold the matcher policy thresholds and LMS record-type mapping.
type Options struct {
	PrimaryType          string
	SecondaryTypes       []string
	MinAutoConfidence    int
	TitleSimilarityMin   float64
	TitleMaxEditDistance int
	TitleConfidenceCap   int
}

// Matcher finds and records links between catalog courses and LMS courses.
type Matcher struct {
	store   *catalog.Store
	catalog lms.Catalog
	opts    Options
	logger  *slog.Logger
}

// New builds a Matcher over the given stores.
func New(store *catalog.Store, lmsCatalog lms.Catalog, opts Options, logger *slog.Logger) *Matcher {
	return &Matcher{
		store:   store,
		catalog: lmsCatalog,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "matcher"),
	}
}

func (m *Matcher) postTypes() []string {
	return append([]string{m.opts.PrimaryType}, m.opts.SecondaryTypes...)
}

// FindMatches returns scored candidates for a course, highest confidence
// first. A candidate found by both strategies keeps its higher score but
// stays tagged with the code method, since the code strategy runs first.
// Equal-confidence candidates order code-found ahead of title-found, then
// by discovery order.
func (m *Matcher) FindMatches(ctx context.Context, course *catalog.Course) ([]Candidate, error) {
	merged := make(map[int64]*Candidate)
	var order []int64

	add := func(candidate Candidate) {
		existing, ok := merged[candidate.LMS.ID]
		if !ok {
			copied := candidate
			merged[candidate.LMS.ID] = &copied
			order = append(order, candidate.LMS.ID)
			return
		}
		if candidate.Confidence > existing.Confidence {
			existing.Confidence = candidate.Confidence
		}
		if candidate.Method == catalog.MatchAutoCode {
			existing.Method = catalog.MatchAutoCode
		}
	}

	// The external catalog is queried for both halves of the natural key:
	// a candidate can carry the edition without ever mentioning the code.
	for _, term := range searchTerms(course) {
		found, err := m.catalog.Search(ctx, term, m.postTypes())
		if err != nil {
			return nil, fmt.Errorf("search for %q: %w", term, err)
		}
		for _, c := range found {
			add(Candidate{
				LMS:        c,
				Confidence: m.scoreCode(course, c),
				Method:     catalog.MatchAutoCode,
			})
		}
	}

	if strings.TrimSpace(course.Title) != "" {
		titleCandidates, err := m.findByTitle(ctx, course)
		if err != nil {
			return nil, err
		}
		for _, candidate := range titleCandidates {
			add(candidate)
		}
	}

	candidates := make([]Candidate, 0, len(order))
	for _, id := range order {
		candidates = append(candidates, *merged[id])
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].Method == catalog.MatchAutoCode &&
			candidates[j].Method != catalog.MatchAutoCode
	})
	return candidates, nil
}

func searchTerms(course *catalog.Course) []string {
	var terms []string
	if code := strings.TrimSpace(course.Code); code != "" {
		terms = append(terms, code)
	}
	if edition := strings.TrimSpace(course.Edition); edition != "" && !strings.EqualFold(edition, course.Code) {
		terms = append(terms, edition)
	}
	return terms
}

// scoreCode grades a code-search candidate. Primary-type records are trusted
// more than secondary types, and SKU agreement more than title agreement.
// Rules are ordered; the first that applies wins.
func (m *Matcher) scoreCode(course *catalog.Course, c lms.Candidate) int {
	code := strings.ToLower(strings.TrimSpace(course.Code))
	edition := strings.ToLower(strings.TrimSpace(course.Edition))
	sku := strings.ToLower(strings.TrimSpace(c.SKU))
	title := strings.ToLower(c.Title)

	if c.Type == m.opts.PrimaryType {
		switch {
		case sku != "" && (sku == code || (edition != "" && sku == edition)):
			return 95
		case sku != "" && strings.Contains(sku, code):
			return 80
		case edition != "" && strings.Contains(title, edition):
			return 85
		case strings.Contains(title, code):
			return 70
		default:
			return 50
		}
	}

	switch {
	case edition != "" && strings.Contains(title, edition):
		return 75
	case strings.Contains(title, code):
		return 60
	default:
		return 40
	}
}

// findByTitle compares the cleaned course title against every published LMS
// title. A candidate qualifies when its similarity percentage clears the
// configured minimum or its edit distance stays under the cap; confidence is
// the similarity percentage, never above the title confidence cap.
func (m *Matcher) findByTitle(ctx context.Context, course *catalog.Course) ([]Candidate, error) {
	cleaned := textutil.NormalizeTitle(course.Title)
	if cleaned == "" {
		return nil, nil
	}
	cleaned = textutil.Truncate(cleaned, 255)

	all, err := m.catalog.List(ctx, m.postTypes())
	if err != nil {
		return nil, fmt.Errorf("list lms courses: %w", err)
	}

	var candidates []Candidate
	for _, c := range all {
		other := textutil.Truncate(textutil.NormalizeTitle(c.Title), 255)
		if other == "" {
			continue
		}
		similarity := textutil.SimilarityPercent(cleaned, other)
		distance := textutil.Levenshtein(cleaned, other)
		if similarity <= m.opts.TitleSimilarityMin && distance >= m.opts.TitleMaxEditDistance {
			continue
		}
		confidence := int(similarity)
		if confidence > m.opts.TitleConfidenceCap {
			confidence = m.opts.TitleConfidenceCap
		}
		candidates = append(candidates, Candidate{
			LMS:        c,
			Confidence: confidence,
			Method:     catalog.MatchAutoTitle,
		})
	}
	return candidates, nil
}

// CreateMatch links a course to an LMS course after verifying both exist.
// Returns false when the exact pair is already recorded.
func (m *Matcher) CreateMatch(ctx context.Context, courseID, lmsCourseID int64, method catalog.MatchMethod, confidence int, matchedBy string) (bool, error) {
	course, err := m.store.GetByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	if course == nil {
		return false, fmt.Errorf("course %d not found", courseID)
	}
	target, err := m.catalog.Get(ctx, lmsCourseID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, fmt.Errorf("lms course %d not found", lmsCourseID)
	}

	created, err := m.store.CreateMatch(ctx, courseID, lmsCourseID, method, confidence, matchedBy)
	if err != nil {
		return false, err
	}
	if created {
		m.logger.Info("match created",
			logging.Int64(logging.FieldCourseID, courseID),
			logging.Int64(logging.FieldCandidateID, lmsCourseID),
			logging.String("method", string(method)),
			logging.Int("confidence", confidence))
	} else {
		m.logger.Debug("match already recorded",
			logging.Int64(logging.FieldCourseID, courseID),
			logging.Int64(logging.FieldCandidateID, lmsCourseID))
	}
	return created, nil
}

// RemoveMatch clears a course's LMS link. Removing an unmatched course is a
// no-op.
func (m *Matcher) RemoveMatch(ctx context.Context, courseID int64) error {
	if err := m.store.RemoveMatch(ctx, courseID); err != nil {
		return err
	}
	m.logger.Info("match removed", logging.Int64(logging.FieldCourseID, courseID))
	return nil
}
