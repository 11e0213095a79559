package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/pkg/export"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
)

// preModificationWarning is shown before the instructor edits enrolled
// students of a course that already collected feedback responses.
const preModificationWarning = "There are existing feedback responses for this course. Modifying records of enrolled students will result in some existing responses from those modified students to be deleted. You may wish to download the data before you make the changes."

// RosterAPI is the slice of the platform client the roster service needs.
type RosterAPI interface {
	GetStudents(ctx context.Context, courseID string) ([]models.Student, error)
	HasResponsesForCourse(ctx context.Context, courseID string) (map[string]bool, error)
}

// RosterService serves course roster snapshots with a cache in front of
// the platform, and renders roster exports.
type RosterService struct {
	api      RosterAPI
	cache    *CacheService
	cacheTTL time.Duration
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(api RosterAPI, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		api:      api,
		cache:    cache,
		cacheTTL: cacheTTL,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

func rosterCacheKey(courseID string) string {
	return "roster:" + courseID
}

// Snapshot returns the roster of a course, served from cache when fresh.
func (s *RosterService) Snapshot(ctx context.Context, courseID string) ([]models.Student, error) {
	var students []models.Student
	if hit, err := s.cache.Get(ctx, rosterCacheKey(courseID), &students); err == nil && hit {
		return students, nil
	}
	return s.Refresh(ctx, courseID)
}

// Refresh re-fetches the roster from the platform and replaces the cached
// snapshot.
func (s *RosterService) Refresh(ctx context.Context, courseID string) ([]models.Student, error) {
	students, err := s.api.GetStudents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, rosterCacheKey(courseID), students, s.cacheTTL); err != nil {
		s.logger.Warn("roster cache write failed",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
	}
	return students, nil
}

// Invalidate drops the cached roster snapshot of a course.
func (s *RosterService) Invalidate(ctx context.Context, courseID string) error {
	return s.cache.Invalidate(ctx, rosterCacheKey(courseID))
}

// Export renders the current roster in the requested format and returns
// the document, its content type, and a suggested file name.
func (s *RosterService) Export(ctx context.Context, courseID, format string) ([]byte, string, string, error) {
	students, err := s.Snapshot(ctx, courseID)
	if err != nil {
		return nil, "", "", err
	}

	data := export.Dataset{
		Headers: []string{"Section", "Team", "Name", "Email", "Comments", "Status"},
		Rows:    make([]map[string]string, 0, len(students)),
	}
	for _, student := range students {
		data.Rows = append(data.Rows, map[string]string{
			"Section":  student.SectionName,
			"Team":     student.TeamName,
			"Name":     student.Name,
			"Email":    student.Email,
			"Comments": student.Comments,
			"Status":   string(student.JoinState),
		})
	}

	switch format {
	case "csv", "":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render roster csv")
		}
		return payload, "text/csv", fmt.Sprintf("%s_students.csv", courseID), nil
	case "pdf":
		payload, err := s.pdf.Render(data, fmt.Sprintf("Student list of %s", courseID))
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render roster pdf")
		}
		return payload, "application/pdf", fmt.Sprintf("%s_students.pdf", courseID), nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// CheckResponses reports whether any session of the course already holds
// feedback responses, with the warning the client should surface before
// record modifications.
func (s *RosterService) CheckResponses(ctx context.Context, courseID string) (*dto.ResponsesCheck, error) {
	bySession, err := s.api.HasResponsesForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	check := &dto.ResponsesCheck{HasResponsesBySession: bySession}
	for _, has := range bySession {
		if has {
			check.HasResponses = true
			check.Warning = preModificationWarning
			break
		}
	}
	return check, nil
}
