package dto

import "github.com/Zxun2/teammates/internal/models"

// SubmitEnrollRequest carries the raw spreadsheet state of the grid.
// ColumnHeaders declares which cell position maps to which enroll field,
// independent of the on-screen column order.
type SubmitEnrollRequest struct {
	ColumnHeaders []string   `json:"columnHeaders" validate:"required,min=1"`
	Rows          [][]string `json:"rows" validate:"required"`
}

// CellEditEvent describes a single cell change made in the existing
// students grid. RowCells is the full row content after the edit.
type CellEditEvent struct {
	RowIndex    int      `json:"rowIndex" validate:"min=0"`
	ColumnIndex int      `json:"columnIndex" validate:"min=0"`
	OldValue    string   `json:"oldValue"`
	NewValue    string   `json:"newValue"`
	RowCells    []string `json:"rowCells" validate:"required"`
}

// NoticeLevel grades a status message.
type NoticeLevel string

// Notice levels.
const (
	NoticeSuccess NoticeLevel = "SUCCESS"
	NoticeWarning NoticeLevel = "WARNING"
)

// Notice is a toast-style status message for the client to display.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// EnrollOutcome is the full result of one submission cycle. When the batch
// fails validation, Submitted is false and only InvalidRows/ErrorMessage
// are populated; panels exist whenever at least one chunk reached the
// platform.
type EnrollOutcome struct {
	Submitted    bool                       `json:"submitted"`
	Attempted    int                        `json:"attempted"`
	Enrolled     int                        `json:"enrolled"`
	Progress     int                        `json:"progress"`
	ErrorMessage string                     `json:"errorMessage,omitempty"`
	Notices      []Notice                   `json:"notices,omitempty"`
	Panels       []models.EnrollResultPanel `json:"panels,omitempty"`

	InvalidRows   []int `json:"invalidRowsIndex"`
	NewRows       []int `json:"newStudentRowsIndex"`
	ModifiedRows  []int `json:"modifiedStudentRowsIndex"`
	UnchangedRows []int `json:"unchangedStudentRowsIndex"`
}

// ResponsesCheck reports which sessions of a course already hold feedback
// responses, so the client can warn before modifying enrolled students.
type ResponsesCheck struct {
	HasResponses          bool            `json:"hasResponses"`
	HasResponsesBySession map[string]bool `json:"hasResponsesBySession"`
	Warning               string          `json:"warning,omitempty"`
}
