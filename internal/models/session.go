package models

// FeedbackSessionSubmissionStatus is the lifecycle state of a session's
// submission window.
type FeedbackSessionSubmissionStatus string

// Submission statuses.
const (
	SubmissionStatusNotVisible     FeedbackSessionSubmissionStatus = "NOT_VISIBLE"
	SubmissionStatusVisibleNotOpen FeedbackSessionSubmissionStatus = "VISIBLE_NOT_OPEN"
	SubmissionStatusOpen           FeedbackSessionSubmissionStatus = "OPEN"
	SubmissionStatusGracePeriod    FeedbackSessionSubmissionStatus = "GRACE_PERIOD"
	SubmissionStatusClosed         FeedbackSessionSubmissionStatus = "CLOSED"
)

// FeedbackSessionPublishStatus tells whether results are visible to students.
type FeedbackSessionPublishStatus string

// Publish statuses.
const (
	PublishStatusPublished    FeedbackSessionPublishStatus = "PUBLISHED"
	PublishStatusNotPublished FeedbackSessionPublishStatus = "NOT_PUBLISHED"
)

// FeedbackSession is a feedback collection window within a course.
type FeedbackSession struct {
	CourseID                 string                          `json:"courseId"`
	FeedbackSessionName      string                          `json:"feedbackSessionName"`
	SubmissionStartTimestamp int64                           `json:"submissionStartTimestamp"`
	SubmissionEndTimestamp   int64                           `json:"submissionEndTimestamp"`
	TimeZone                 string                          `json:"timeZone"`
	SubmissionStatus         FeedbackSessionSubmissionStatus `json:"submissionStatus"`
	PublishStatus            FeedbackSessionPublishStatus    `json:"publishStatus"`
}

// SessionsTableRow is one session plus its display-only companions.
type SessionsTableRow struct {
	Session               FeedbackSession `json:"session"`
	ResponseRate          string          `json:"responseRate"`
	IsLoadingResponseRate bool            `json:"isLoadingResponseRate"`
}

// SortBy names a sortable sessions-table column.
type SortBy string

// Sortable columns.
const (
	SortByNone             SortBy = "NONE"
	SortBySessionName      SortBy = "SESSION_NAME"
	SortBySessionStartDate SortBy = "SESSION_START_DATE"
	SortBySessionEndDate   SortBy = "SESSION_END_DATE"
)

// SortOrder is the direction of a column sort.
type SortOrder string

// Sort directions.
const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// SessionAction is a row-level action the table can emit for a session.
type SessionAction string

// Row actions.
const (
	SessionActionPublish        SessionAction = "PUBLISH"
	SessionActionUnpublish      SessionAction = "UNPUBLISH"
	SessionActionMoveToRecycle  SessionAction = "MOVE_TO_RECYCLE_BIN"
	SessionActionRemind         SessionAction = "SEND_REMINDERS"
	SessionActionDownloadResult SessionAction = "DOWNLOAD_RESULTS"
	SessionActionCopy           SessionAction = "COPY"
)
