package service

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/internal/upstream"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
)

// studentsPerChunk bounds the number of enroll requests in a single
// platform call. The platform rejects larger payloads, so this is an
// invariant of the wire contract rather than configuration.
const studentsPerChunk = 50

// User-facing outcome messages.
const (
	emptyTableErrorMessage     = "Empty table"
	noModifiedRowsErrorMessage = "Please select a student to modify."
	enrollSuccessMessage       = "Enrollment successful. Summary given below."
	modifySuccessMessage       = "Modification successful. Summary given below."
)

// EnrollAPI is the slice of the platform client the submission cycle needs.
type EnrollAPI interface {
	EnrollStudents(ctx context.Context, courseID string, requests []models.EnrollRequest) (*upstream.EnrollStudentsResult, error)
}

// RosterSnapshots supplies the pre-submission roster state and refreshes
// it once the platform has accepted changes.
type RosterSnapshots interface {
	Snapshot(ctx context.Context, courseID string) ([]models.Student, error)
	Refresh(ctx context.Context, courseID string) ([]models.Student, error)
}

// AuditStore persists submission audit records. It is optional; a nil
// store disables auditing.
type AuditStore interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListByCourse(ctx context.Context, courseID string, limit int) ([]models.AuditLog, error)
}

// EnrollService runs the parse, validate, partition, submit, and reconcile
// cycle for spreadsheet submissions, and tracks in-place edits of the
// existing-students grid.
type EnrollService struct {
	api       EnrollAPI
	roster    RosterSnapshots
	audit     AuditStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
	trackers map[string]*editTracker
}

// NewEnrollService constructs an EnrollService.
func NewEnrollService(api EnrollAPI, roster RosterSnapshots, audit AuditStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollService{
		api:       api,
		roster:    roster,
		audit:     audit,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		inflight:  make(map[string]struct{}),
		trackers:  make(map[string]*editTracker),
	}
}

// SubmitEnrollData processes the full new-students grid for a course.
func (s *EnrollService) SubmitEnrollData(ctx context.Context, courseID string, req dto.SubmitEnrollRequest, actor *models.JWTClaims) (*dto.EnrollOutcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enroll payload")
	}

	requests := ParseGrid(req.Rows, req.ColumnHeaders)
	if len(requests) == 0 {
		outcome := emptyOutcome()
		outcome.ErrorMessage = emptyTableErrorMessage
		return outcome, nil
	}

	return s.submit(ctx, courseID, requests, actor, models.AuditActionEnrollSubmit, enrollSuccessMessage)
}

// SubmitModifiedData submits only the rows tracked by the existing
// students edit mode. Tracked edits survive a failed submission so the
// instructor can retry.
func (s *EnrollService) SubmitModifiedData(ctx context.Context, courseID string, actor *models.JWTClaims) (*dto.EnrollOutcome, error) {
	tracker := s.tracker(courseID)
	requests := tracker.rows()
	if len(requests) == 0 {
		outcome := emptyOutcome()
		outcome.ErrorMessage = noModifiedRowsErrorMessage
		return outcome, nil
	}

	outcome, err := s.submit(ctx, courseID, requests, actor, models.AuditActionEnrollModify, modifySuccessMessage)
	if err == nil && outcome.Submitted && outcome.ErrorMessage == "" {
		tracker.reset()
	}
	return outcome, err
}

// RecordCellEdit folds one grid cell change into the per-course edit
// tracker and returns the currently tracked row indices.
func (s *EnrollService) RecordCellEdit(courseID string, event dto.CellEditEvent) ([]int, error) {
	if err := s.validator.Struct(event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cell edit")
	}
	tracker := s.tracker(courseID)
	tracker.apply(event)
	return tracker.indices(), nil
}

// ResetEdits discards all tracked edits for a course.
func (s *EnrollService) ResetEdits(courseID string) {
	s.tracker(courseID).reset()
}

// SubmissionHistory lists recent enrollment audit entries for a course.
func (s *EnrollService) SubmissionHistory(ctx context.Context, courseID string, limit int) ([]models.AuditLog, error) {
	if s.audit == nil {
		return []models.AuditLog{}, nil
	}
	logs, err := s.audit.ListByCourse(ctx, courseID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list submission history")
	}
	return logs, nil
}

func (s *EnrollService) submit(ctx context.Context, courseID string, requests map[int]models.EnrollRequest, actor *models.JWTClaims, auditAction, successMessage string) (*dto.EnrollOutcome, error) {
	if !s.begin(courseID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an enrollment is already in progress for this course")
	}
	defer s.end(courseID)

	outcome := emptyOutcome()
	outcome.Attempted = len(requests)

	check := CheckDataFields(requests)
	if len(check.InvalidRows) > 0 {
		outcome.InvalidRows = check.InvalidRows.sorted()
		outcome.ErrorMessage = check.ErrorMessage
		return outcome, nil
	}

	// Reconciliation diffs against the roster as it stood before any
	// chunk went out. A snapshot failure is not fatal to the cycle.
	existing, err := s.roster.Snapshot(ctx, courseID)
	if err != nil {
		s.logger.Warn("roster snapshot unavailable",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		existing = nil
	}

	ordered := make([]models.EnrollRequest, 0, len(requests))
	for _, index := range sortedKeys(requests) {
		ordered = append(ordered, requests[index])
	}
	chunks := partitionEnrollRequests(ordered)

	invalid := rowSet{}
	var students []models.Student
	var transportErr string

	// Chunks go out strictly one at a time. The platform gives no
	// idempotency guarantee under concurrent partial submission, and
	// progress reporting needs a deterministic order.
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			transportErr = err.Error()
			break
		}

		result, err := s.api.EnrollStudents(ctx, courseID, chunk)
		if err != nil {
			transportErr = appErrors.FromError(err).Message
			break
		}

		outcome.Submitted = true
		students = append(students, result.Students...)
		for _, failure := range result.UnsuccessfulEnrolls {
			markFailedRow(requests, failure, invalid)
		}

		outcome.Progress = int(math.Round(100 * float64(len(students)) / float64(len(requests))))
		if s.metrics != nil {
			s.metrics.RecordEnrollChunk(len(result.Students), len(result.UnsuccessfulEnrolls))
			s.metrics.SetEnrollProgress(courseID, outcome.Progress)
		}
	}

	outcome.Enrolled = len(students)
	outcome.InvalidRows = invalid.sorted()

	// Partial successes still get reconciled so the instructor sees what
	// the platform did accept before the failure.
	if transportErr == "" || len(students) > 0 {
		summary := buildEnrollResultPanels(courseID, students, existing, requests)
		outcome.Panels = summary.panels
		outcome.NewRows = summary.newRows.sorted()
		outcome.ModifiedRows = summary.modifiedRows.sorted()
		outcome.UnchangedRows = summary.unchangedRows.sorted()
		outcome.ErrorMessage = summary.errorMessage
		outcome.Notices = summary.notices
	}

	if transportErr != "" {
		// The platform's own message takes precedence over the general
		// guidance text.
		outcome.ErrorMessage = transportErr
		s.logger.Warn("enrollment halted",
			zap.String("course_id", courseID),
			zap.Int("enrolled", outcome.Enrolled),
			zap.Int("attempted", outcome.Attempted),
			zap.String("message", transportErr),
		)
		if outcome.Submitted {
			s.refreshRoster(ctx, courseID)
		}
		return outcome, nil
	}

	outcome.Notices = append([]dto.Notice{{Level: dto.NoticeSuccess, Message: successMessage}}, outcome.Notices...)

	s.refreshRoster(ctx, courseID)
	s.recordAudit(ctx, courseID, actor, auditAction, outcome)

	s.logger.Info("enrollment completed",
		zap.String("course_id", courseID),
		zap.Int("enrolled", outcome.Enrolled),
		zap.Int("attempted", outcome.Attempted),
		zap.Int("failed", len(outcome.InvalidRows)),
	)
	return outcome, nil
}

// partitionEnrollRequests splits the batch into submission chunks of at
// most studentsPerChunk, preserving order. An empty batch yields no chunks.
func partitionEnrollRequests(requests []models.EnrollRequest) [][]models.EnrollRequest {
	var chunks [][]models.EnrollRequest
	var current []models.EnrollRequest
	for _, request := range requests {
		current = append(current, request)
		if len(current) == studentsPerChunk {
			chunks = append(chunks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// markFailedRow maps a per-student rejection back onto the grid row that
// produced the email. The first matching row wins; unknown emails are
// skipped without complaint.
func markFailedRow(requests map[int]models.EnrollRequest, failure models.UnsuccessfulEnroll, invalid rowSet) {
	for _, index := range sortedKeys(requests) {
		if requests[index].Email == failure.StudentEmail {
			invalid.add(index)
			return
		}
	}
}

func (s *EnrollService) refreshRoster(ctx context.Context, courseID string) {
	if _, err := s.roster.Refresh(ctx, courseID); err != nil {
		s.logger.Warn("roster refresh failed",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
	}
}

func (s *EnrollService) recordAudit(ctx context.Context, courseID string, actor *models.JWTClaims, action string, outcome *dto.EnrollOutcome) {
	if s.audit == nil {
		return
	}
	var userID *string
	if actor != nil && actor.UserID != "" {
		id := actor.UserID
		userID = &id
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"attempted": outcome.Attempted,
		"enrolled":  outcome.Enrolled,
		"failed":    len(outcome.InvalidRows),
	})
	resourceID := courseID
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   "enrollment",
		ResourceID: &resourceID,
		NewValues:  payload,
	}
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record enrollment audit log",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
	}
}

func (s *EnrollService) tracker(courseID string) *editTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	tracker, ok := s.trackers[courseID]
	if !ok {
		tracker = newEditTracker()
		s.trackers[courseID] = tracker
	}
	return tracker
}

func (s *EnrollService) begin(courseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[courseID]; busy {
		return false
	}
	s.inflight[courseID] = struct{}{}
	return true
}

func (s *EnrollService) end(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, courseID)
}

func emptyOutcome() *dto.EnrollOutcome {
	return &dto.EnrollOutcome{
		InvalidRows:   []int{},
		NewRows:       []int{},
		ModifiedRows:  []int{},
		UnchangedRows: []int{},
	}
}
