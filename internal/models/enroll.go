package models

// EnrollRequest is one candidate student row parsed from the spreadsheet
// grid. All fields are trimmed; the empty string is the canonical absent
// value. A request is keyed in flight by its originating grid row index.
type EnrollRequest struct {
	Section  string `json:"section"`
	Team     string `json:"team"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Comments string `json:"comments"`
}

// IsBlank reports whether every field of the request is empty.
func (r EnrollRequest) IsBlank() bool {
	return r.Section == "" && r.Team == "" && r.Name == "" && r.Email == "" && r.Comments == ""
}

// EnrollStatus classifies the outcome of one student in a submission.
type EnrollStatus string

// Outcome categories, mutually exclusive per student.
const (
	EnrollStatusError             EnrollStatus = "ERROR"
	EnrollStatusNew               EnrollStatus = "NEW"
	EnrollStatusModified          EnrollStatus = "MODIFIED"
	EnrollStatusModifiedUnchanged EnrollStatus = "MODIFIED_UNCHANGED"
	EnrollStatusUnmodified        EnrollStatus = "UNMODIFIED"
)

// EnrollStatusOrder fixes the presentation order of result panels.
var EnrollStatusOrder = []EnrollStatus{
	EnrollStatusError,
	EnrollStatusNew,
	EnrollStatusModified,
	EnrollStatusModifiedUnchanged,
	EnrollStatusUnmodified,
}

// EnrollResultPanel pairs an outcome category with its affected students
// and a count-prefixed display message. Panels exist even when empty.
type EnrollResultPanel struct {
	Status   EnrollStatus `json:"status"`
	Message  string       `json:"message"`
	Students []Student    `json:"students"`
}

// RowClass is the style class the grid applies to a row.
type RowClass string

// Grid row style classes by outcome.
const (
	RowClassValid     RowClass = "valid-row"
	RowClassInvalid   RowClass = "invalid-row"
	RowClassNew       RowClass = "new-row"
	RowClassModified  RowClass = "modified-row"
	RowClassUnchanged RowClass = "unchanged-row"
)

// UnsuccessfulEnroll is a per-student rejection reported by the platform
// for a chunk that otherwise succeeded.
type UnsuccessfulEnroll struct {
	StudentEmail string `json:"studentEmail"`
	ErrorMessage string `json:"errorMessage"`
}
