package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Zxun2/teammates/internal/dto"
	"github.com/Zxun2/teammates/internal/models"
)

// SessionsAPI is the slice of the platform client the sessions table needs.
type SessionsAPI interface {
	GetSessions(ctx context.Context, courseID string) ([]models.FeedbackSession, error)
}

// SessionsService assembles the display model of the course sessions table.
type SessionsService struct {
	api    SessionsAPI
	logger *zap.Logger
}

// NewSessionsService constructs a SessionsService.
func NewSessionsService(api SessionsAPI, logger *zap.Logger) *SessionsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionsService{api: api, logger: logger}
}

// CourseTable fetches the active sessions of a course and renders them as
// a sorted table. Response rates load lazily on the client, so rows start
// out in the loading state.
func (s *SessionsService) CourseTable(ctx context.Context, courseID string, by models.SortBy, order models.SortOrder) (*dto.SessionsTable, error) {
	sessions, err := s.api.GetSessions(ctx, courseID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.SessionsTableRow, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, models.SessionsTableRow{
			Session:               session,
			IsLoadingResponseRate: true,
		})
	}
	return s.BuildTable(rows, by, order), nil
}

// BuildTable renders the sessions of a course into a sorted display table.
// The sort is stable: ties keep their incoming order.
func (s *SessionsService) BuildTable(rows []models.SessionsTableRow, by models.SortBy, order models.SortOrder) *dto.SessionsTable {
	sorted := make([]models.SessionsTableRow, len(rows))
	copy(sorted, rows)

	if less := sessionComparator(by); less != nil {
		sort.SliceStable(sorted, func(i, j int) bool {
			if order == models.SortOrderDesc {
				return less(sorted[j], sorted[i])
			}
			return less(sorted[i], sorted[j])
		})
	}

	table := &dto.SessionsTable{
		Columns: sessionsTableColumns(),
		Rows:    make([]dto.SessionsTableRowView, 0, len(sorted)),
		SortBy:  by,
		Order:   order,
	}
	for _, row := range sorted {
		table.Rows = append(table.Rows, buildSessionsTableRow(row))
	}
	return table
}

func sessionsTableColumns() []dto.SessionsTableColumn {
	return []dto.SessionsTableColumn{
		{Header: "Session Name", SortBy: models.SortBySessionName},
		{Header: "Start Date", SortBy: models.SortBySessionStartDate},
		{Header: "End Date", SortBy: models.SortBySessionEndDate},
		{Header: "Submissions"},
		{Header: "Responses"},
		{Header: "Response Rate", Tooltip: "Number of students submitted / Class size"},
		{Header: "Action(s)"},
	}
}

func sessionComparator(by models.SortBy) func(a, b models.SessionsTableRow) bool {
	switch by {
	case models.SortBySessionName:
		return func(a, b models.SessionsTableRow) bool {
			return a.Session.FeedbackSessionName < b.Session.FeedbackSessionName
		}
	case models.SortBySessionStartDate:
		return func(a, b models.SessionsTableRow) bool {
			return a.Session.SubmissionStartTimestamp < b.Session.SubmissionStartTimestamp
		}
	case models.SortBySessionEndDate:
		return func(a, b models.SessionsTableRow) bool {
			return a.Session.SubmissionEndTimestamp < b.Session.SubmissionEndTimestamp
		}
	default:
		return nil
	}
}

func buildSessionsTableRow(row models.SessionsTableRow) dto.SessionsTableRowView {
	session := row.Session
	responseRate := row.ResponseRate
	if row.IsLoadingResponseRate {
		responseRate = "Loading..."
	}

	return dto.SessionsTableRowView{
		Cells: []dto.SessionsTableCell{
			{Value: session.FeedbackSessionName},
			{
				Value:   formatSessionDate(session.SubmissionStartTimestamp, session.TimeZone),
				Tooltip: formatSessionDateDetail(session.SubmissionStartTimestamp, session.TimeZone),
			},
			{
				Value:   formatSessionDate(session.SubmissionEndTimestamp, session.TimeZone),
				Tooltip: formatSessionDateDetail(session.SubmissionEndTimestamp, session.TimeZone),
			},
			{
				Value:   submissionStatusName(session.SubmissionStatus),
				Tooltip: submissionStatusTooltip(session.SubmissionStatus),
			},
			{
				Value:   publishStatusName(session.PublishStatus),
				Tooltip: publishStatusTooltip(session.PublishStatus),
			},
			{Value: responseRate},
		},
		Actions: sessionActions(session),
	}
}

// sessionActions lists the row actions valid for the session's current
// lifecycle state.
func sessionActions(session models.FeedbackSession) []models.SessionAction {
	actions := []models.SessionAction{
		models.SessionActionCopy,
		models.SessionActionMoveToRecycle,
		models.SessionActionDownloadResult,
	}
	switch session.SubmissionStatus {
	case models.SubmissionStatusOpen, models.SubmissionStatusGracePeriod:
		actions = append(actions, models.SessionActionRemind)
	}
	if session.PublishStatus == models.PublishStatusPublished {
		actions = append(actions, models.SessionActionUnpublish)
	} else {
		actions = append(actions, models.SessionActionPublish)
	}
	return actions
}

func submissionStatusName(status models.FeedbackSessionSubmissionStatus) string {
	switch status {
	case models.SubmissionStatusOpen, models.SubmissionStatusGracePeriod:
		return "Open"
	case models.SubmissionStatusClosed:
		return "Closed"
	default:
		return "Awaiting"
	}
}

func submissionStatusTooltip(status models.FeedbackSessionSubmissionStatus) string {
	switch status {
	case models.SubmissionStatusOpen, models.SubmissionStatusGracePeriod:
		return "The session is open for submissions."
	case models.SubmissionStatusClosed:
		return "The session has closed for submissions."
	default:
		return "The session is not yet open for submissions."
	}
}

func publishStatusName(status models.FeedbackSessionPublishStatus) string {
	if status == models.PublishStatusPublished {
		return "Published"
	}
	return "Not Published"
}

func publishStatusTooltip(status models.FeedbackSessionPublishStatus) string {
	if status == models.PublishStatusPublished {
		return "The responses for the session are visible."
	}
	return "The responses for the session are not visible."
}

func formatSessionDate(timestamp int64, timeZone string) string {
	return sessionTime(timestamp, timeZone).Format("2 Jan 2006")
}

func formatSessionDateDetail(timestamp int64, timeZone string) string {
	return sessionTime(timestamp, timeZone).Format("Mon, 02 Jan 2006, 03:04 PM MST")
}

func sessionTime(timestamp int64, timeZone string) time.Time {
	t := time.UnixMilli(timestamp)
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return t.UTC()
	}
	return t.In(loc)
}
